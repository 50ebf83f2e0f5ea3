package hints

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

type countingFetcher struct {
	calls int
	body  string
}

func (f *countingFetcher) FetchArticle(_ context.Context, _ Language, _ string) (string, error) {
	f.calls++
	return f.body, nil
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCachedFetcherOnlyCallsUpstreamOnce(t *testing.T) {
	db := openTestDB(t)
	upstream := &countingFetcher{body: "some wikitext"}
	cached, err := NewCachedFetcher(db, upstream)
	if err != nil {
		t.Fatalf("NewCachedFetcher: %v", err)
	}

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		body, err := cached.FetchArticle(ctx, English, "Example")
		if err != nil {
			t.Fatalf("FetchArticle: %v", err)
		}
		if body != "some wikitext" {
			t.Fatalf("got %q, want %q", body, "some wikitext")
		}
	}
	if upstream.calls != 1 {
		t.Fatalf("expected upstream to be called once, got %d calls", upstream.calls)
	}
}

func TestCachedFetcherKeysByLanguage(t *testing.T) {
	db := openTestDB(t)
	upstream := &countingFetcher{body: "text"}
	cached, err := NewCachedFetcher(db, upstream)
	if err != nil {
		t.Fatalf("NewCachedFetcher: %v", err)
	}

	ctx := context.Background()
	cached.FetchArticle(ctx, English, "Example")
	cached.FetchArticle(ctx, German, "Example")

	if upstream.calls != 2 {
		t.Fatalf("expected a separate upstream call per language, got %d calls", upstream.calls)
	}
}
