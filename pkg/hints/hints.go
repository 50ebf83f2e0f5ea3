// Package hints fetches a short clue for a crossword answer from Wikipedia:
// it downloads the raw wikitext of the word's article, strips markup down
// to something readable, and extracts the sentence most likely to describe
// the word.
//
// Grounded in the teacher's original Rust source, get_hints.rs. No library
// in the example pack makes outbound HTTP calls the way this package needs
// to, so it uses net/http directly -- documented as a stdlib choice in
// DESIGN.md rather than a gap.
package hints

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"unicode"
)

type replacement struct {
	re   *regexp.Regexp
	repl string
}

var cleanupRules = []replacement{
	{regexp.MustCompile(`(?s)<ref>.*?</ref>`), ""},
	{regexp.MustCompile(`(?s)<tt>.*?</tt>`), ""},
	{regexp.MustCompile(`\[\[(Image|File).*\n`), ""},
	{regexp.MustCompile(`(?i)\{\{convert\|([^|}]*)\|([^|}]*)[^}]*\}\}`), "$1 $2"},
	{regexp.MustCompile(`\{\{[^|}]*\|([^|}]*)[^}]*\}\}`), "$1"},
	{regexp.MustCompile(`\{\{([^}]*\|)?[^|}]*\}\}`), ""},
	{regexp.MustCompile(`\[\[([^\]]*\|)?([^|\]]*)\]\]`), "$2"},
	{regexp.MustCompile(`'''([^']*)'''`), "$1"},
}

func applyReplacements(text string, rules []replacement) string {
	for _, r := range rules {
		text = r.re.ReplaceAllString(text, r.repl)
	}
	return text
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Language names the Wikipedia edition to query and selects the copula
// forms used to recognize "<word> is/are/was/were ..." sentences.
type Language string

const (
	English Language = "en"
	German  Language = "de"
)

func descriptionCopula(lang Language) (string, error) {
	switch lang {
	case German:
		return ` ist | bezeichnet | war | sind | waren `, nil
	case English:
		return ` is | are | was | were `, nil
	default:
		return "", fmt.Errorf("hints: unsupported language %q", lang)
	}
}

func excerptFromArticle(article, word string, lang Language) (string, error) {
	clean := strings.TrimSpace(applyReplacements(article, cleanupRules))

	copula, err := descriptionCopula(lang)
	if err != nil {
		return "", err
	}
	wordRE := regexp.QuoteMeta(word)

	disambiguation := regexp.MustCompile(
		`(?i)` + wordRE + `\S* (or [^.\n]* )?may refer to:\n(\s*((=|;).*|.*:)?\n)*\*([^\n]*)\n`)
	description := regexp.MustCompile(
		`(?i)(` + wordRE + `(\([^)]*\))?(` + copula + `)([^."\n]*)(\.|"|\n))`)
	mentioning := regexp.MustCompile(
		`(?i)(\n|\*|\. )\s*([^.\n]*` + wordRE + `[^.\n*]*(\.|\n))`)
	anySentence := regexp.MustCompile(`(\n|\. )\s*([^.\n]+(\.|\n))`)

	if m := description.FindStringSubmatch(clean); m != nil {
		return "... " + m[4], nil
	}
	if m := disambiguation.FindStringSubmatch(clean); m != nil {
		return m[len(m)-1], nil
	}
	if m := mentioning.FindStringSubmatch(clean); m != nil {
		return m[2], nil
	}
	if m := anySentence.FindStringSubmatch(clean); m != nil {
		return m[2], nil
	}
	return clean, nil
}

func getHintFromArticle(article, word string, lang Language) (string, error) {
	excerpt, err := excerptFromArticle(article, word, lang)
	if err != nil {
		return "", err
	}
	masked := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word)).ReplaceAllString(excerpt, "...")
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(masked, " ")), nil
}

// titleCase upper-cases only the first rune, matching the convention
// Wikipedia article titles use (capitalized first letter, rest as typed).
func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

var redirectPattern = regexp.MustCompile(`(?i)^#(REDIRECT|WEITERLEITUNG)\s*\[\[([^\]]*)\]\]`)

// Fetcher downloads wikitext. The default Fetcher hits Wikipedia directly;
// tests substitute their own.
type Fetcher interface {
	FetchArticle(ctx context.Context, lang Language, title string) (string, error)
}

// HTTPFetcher fetches raw wikitext over HTTP from "<lang>.wikipedia.org".
type HTTPFetcher struct {
	Client *http.Client
}

func (f *HTTPFetcher) client() *http.Client {
	if f.Client != nil {
		return f.Client
	}
	return http.DefaultClient
}

// FetchArticle downloads the raw wikitext for title, following Wikipedia's
// own "#REDIRECT"/"#WEITERLEITUNG" markers when present.
func (f *HTTPFetcher) FetchArticle(ctx context.Context, lang Language, title string) (string, error) {
	body, err := f.download(ctx, lang, title)
	if err != nil {
		return "", err
	}
	if m := redirectPattern.FindStringSubmatch(body); m != nil {
		target := strings.ReplaceAll(m[2], " ", "_")
		return f.download(ctx, lang, target)
	}
	return body, nil
}

func (f *HTTPFetcher) download(ctx context.Context, lang Language, title string) (string, error) {
	url := fmt.Sprintf("https://%s.wikipedia.org/w/index.php?title=%s&action=raw", lang, title)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("hints: building request: %w", err)
	}
	resp, err := f.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("hints: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("hints: %s returned status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("hints: reading response: %w", err)
	}
	return string(body), nil
}

// Get fetches and extracts a one-sentence hint for word, with the word
// itself masked out by an ellipsis so the hint doesn't give the answer away.
func Get(ctx context.Context, fetcher Fetcher, word string, lang Language) (string, error) {
	article, err := fetcher.FetchArticle(ctx, lang, titleCase(word))
	if err != nil {
		return "", err
	}
	return getHintFromArticle(article, word, lang)
}

// GetAll fetches hints for every word, skipping (not failing on) any word
// whose article couldn't be retrieved or parsed.
func GetAll(ctx context.Context, fetcher Fetcher, words []string, lang Language) map[string]string {
	result := make(map[string]string, len(words))
	for _, word := range words {
		hint, err := Get(ctx, fetcher, word, lang)
		if err != nil {
			continue
		}
		result[word] = hint
	}
	return result
}
