// Package wiki scrapes article text from Wikipedia pages.
package wiki

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// minParagraphLen drops navigation stubs and coordinate lines.
const minParagraphLen = 20

var (
	citationRe   = regexp.MustCompile(`\[\d+\]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Page is the scraped article: title, cleaned body text and metadata.
type Page struct {
	Title    string
	Content  string
	Metadata map[string]any
}

// Scraper fetches and parses Wikipedia pages.
type Scraper struct {
	client *http.Client
}

// NewScraper creates a scraper with a default HTTP timeout.
func NewScraper() *Scraper {
	return &Scraper{client: &http.Client{Timeout: 30 * time.Second}}
}

// NewScraperWithClient creates a scraper using the provided HTTP client.
func NewScraperWithClient(c *http.Client) *Scraper {
	return &Scraper{client: c}
}

// Scrape downloads a Wikipedia page and extracts the article body.
// Citation markers like [1] are stripped, whitespace is collapsed and
// short paragraphs are dropped.
func (s *Scraper) Scrape(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	title := strings.TrimSpace(doc.Find("h1.firstHeading").First().Text())
	if title == "" {
		return nil, fmt.Errorf("parse %s: no article heading found", url)
	}

	var parts []string
	doc.Find("div.mw-parser-output p").Each(func(_ int, sel *goquery.Selection) {
		text := cleanParagraph(sel.Text())
		if len(text) > minParagraphLen {
			parts = append(parts, text)
		}
	})

	hasInfobox := doc.Find("table.infobox").Length() > 0

	return &Page{
		Title:   title,
		Content: strings.Join(parts, "\n\n"),
		Metadata: map[string]any{
			"source":      "wikipedia",
			"url":         url,
			"title":       title,
			"has_infobox": hasInfobox,
		},
	}, nil
}

func cleanParagraph(text string) string {
	text = citationRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
