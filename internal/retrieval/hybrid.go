package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/serenity-health/serenity/internal/analyzer"
	"github.com/serenity-health/serenity/internal/config"
)

// strategy sets per-source weights and fetch depth for one query type.
type strategy struct {
	indexWeight float64
	webWeight   float64
	topK        int
}

var strategies = map[analyzer.QueryType]strategy{
	analyzer.QueryEmotional:      {indexWeight: 0.5, webWeight: 0.2, topK: 15},
	analyzer.QueryFactual:        {indexWeight: 0.3, webWeight: 0.7, topK: 15},
	analyzer.QueryPractical:      {indexWeight: 0.0, webWeight: 1.0, topK: 12},
	analyzer.QueryConversational: {indexWeight: 1.0, webWeight: 0.0, topK: 10},
}

// Retriever fans a query out to the corpus index and web search and fuses
// the rankings. A nil web client disables the web leg.
type Retriever struct {
	index *Index
	web   *WebSearch
}

func NewRetriever(index *Index, web *WebSearch) *Retriever {
	return &Retriever{index: index, web: web}
}

func (r *Retriever) Index() *Index {
	return r.index
}

// Retrieve runs the strategy for the query type. Web failures degrade to
// index-only results; this never returns an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, qt analyzer.QueryType) []Snippet {
	strat, ok := strategies[qt]
	if !ok {
		strat = strategies[analyzer.QueryEmotional]
	}

	var (
		wg         sync.WaitGroup
		webResults []Snippet
	)
	if strat.webWeight > 0 && r.web != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results, err := r.web.Search(ctx, query+" mental health", strat.topK)
			if err != nil {
				slog.Warn("web search failed", "error", err)
				return
			}
			webResults = results
		}()
	}

	var indexResults []Snippet
	if strat.indexWeight > 0 {
		indexResults = r.index.Search(query, strat.topK)
	}
	wg.Wait()

	fused := fuse([]rankedList{
		{weight: strat.indexWeight, snippets: indexResults},
		{weight: strat.webWeight, snippets: webResults},
	}, config.FinalTopK)
	return fused
}

type rankedList struct {
	weight   float64
	snippets []Snippet
}

// fuse merges ranked lists with reciprocal-rank scoring: each entry
// contributes weight * 1/(rank+1). Entries are deduplicated on their first
// 100 lower-cased characters; duplicates accumulate score and sources.
func fuse(lists []rankedList, topK int) []Snippet {
	type merged struct {
		snippet Snippet
		order   int
	}
	byKey := map[string]*merged{}
	order := 0

	for _, list := range lists {
		if list.weight <= 0 {
			continue
		}
		for i, sn := range list.snippets {
			key := dedupeKey(sn.Text)
			score := list.weight * (1.0 / float64(i+1))
			m, ok := byKey[key]
			if !ok {
				sn.Score = score
				byKey[key] = &merged{snippet: sn, order: order}
				order++
				continue
			}
			m.snippet.Score += score
			m.snippet.Sources = appendUnique(m.snippet.Sources, sn.Sources...)
			if m.snippet.URL == "" {
				m.snippet.URL = sn.URL
			}
		}
	}

	out := make([]*merged, 0, len(byKey))
	for _, m := range byKey {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].snippet.Score != out[j].snippet.Score {
			return out[i].snippet.Score > out[j].snippet.Score
		}
		return out[i].order < out[j].order
	})
	if len(out) > topK {
		out = out[:topK]
	}

	snippets := make([]Snippet, len(out))
	for i, m := range out {
		snippets[i] = m.snippet
	}
	return snippets
}

func dedupeKey(text string) string {
	key := strings.ToLower(text)
	if len(key) > 100 {
		key = key[:100]
	}
	return key
}

func appendUnique(dst []string, vals ...string) []string {
	for _, v := range vals {
		found := false
		for _, d := range dst {
			if d == v {
				found = true
				break
			}
		}
		if !found {
			dst = append(dst, v)
		}
	}
	return dst
}

// SourceConfidence returns the trust weight for a retrieval source.
func SourceConfidence(source string) float64 {
	switch source {
	case "index":
		return config.IndexSourceWeight
	case "web":
		return config.WebSourceWeight
	default:
		return 0.5
	}
}
