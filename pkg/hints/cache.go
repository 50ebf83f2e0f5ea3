package hints

import (
	"context"
	"database/sql"
	"fmt"
)

// CachedFetcher wraps a Fetcher with a local sqlite-backed cache, so a
// dictionary's hints only need to cross the network once. Grounded in the
// teacher's clue cache (pkg/clues' sqlite-backed ClueCache): same
// get-before-fetch, save-after-fetch shape, applied here to raw wikitext
// instead of finished clue strings.
type CachedFetcher struct {
	db       *sql.DB
	upstream Fetcher
}

// NewCachedFetcher opens (creating if necessary) the wikitext cache table in
// db and returns a Fetcher that consults it before calling upstream.
func NewCachedFetcher(db *sql.DB, upstream Fetcher) (*CachedFetcher, error) {
	const schema = `
CREATE TABLE IF NOT EXISTS wikitext_cache (
	lang  TEXT NOT NULL,
	title TEXT NOT NULL,
	body  TEXT NOT NULL,
	PRIMARY KEY (lang, title)
)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("hints: creating cache schema: %w", err)
	}
	return &CachedFetcher{db: db, upstream: upstream}, nil
}

// FetchArticle returns the cached article body for (lang, title) if present,
// otherwise fetches it from upstream and stores the result before returning.
func (c *CachedFetcher) FetchArticle(ctx context.Context, lang Language, title string) (string, error) {
	var body string
	err := c.db.QueryRowContext(ctx,
		`SELECT body FROM wikitext_cache WHERE lang = ? AND title = ?`, string(lang), title).Scan(&body)
	if err == nil {
		return body, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("hints: reading cache: %w", err)
	}

	body, err = c.upstream.FetchArticle(ctx, lang, title)
	if err != nil {
		return "", err
	}

	if _, err := c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO wikitext_cache (lang, title, body) VALUES (?, ?, ?)`,
		string(lang), title, body); err != nil {
		return "", fmt.Errorf("hints: writing cache: %w", err)
	}
	return body, nil
}
