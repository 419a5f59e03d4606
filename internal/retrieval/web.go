package retrieval

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/serenity-health/serenity/internal/config"
)

// WebSearch queries DuckDuckGo's HTML endpoint and scrapes result anchors
// and snippets.
type WebSearch struct {
	httpClient *http.Client
	baseURL    string
}

func NewWebSearch() *WebSearch {
	return &WebSearch{
		httpClient: &http.Client{Timeout: config.WebSearchTimeout},
		baseURL:    "https://html.duckduckgo.com/html/",
	}
}

func (w *WebSearch) Search(ctx context.Context, query string, maxResults int) ([]Snippet, error) {
	searchURL := w.baseURL + "?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// The HTML endpoint rejects clients without a browser user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch search results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search results: %w", err)
	}

	results := []Snippet{}
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find(".result__a")
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		if title == "" && snippet == "" {
			return true
		}
		results = append(results, Snippet{
			Title:   title,
			Text:    strings.TrimSpace(title + " " + snippet),
			URL:     href,
			Sources: []string{"web"},
		})
		return len(results) < maxResults
	})

	return results, nil
}
