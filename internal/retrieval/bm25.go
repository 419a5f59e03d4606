// Package retrieval ranks support content for the assistant: a BM25 index
// over the embedded psychoeducation corpus, a DuckDuckGo web search client
// and a reciprocal-rank fusion of both.
package retrieval

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/serenity-health/serenity/internal/catalog"
)

const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// Snippet is one ranked piece of support content.
type Snippet struct {
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	URL     string   `json:"url,omitempty"`
	Score   float64  `json:"score"`
	Sources []string `json:"sources"`
}

// Index is a BM25 index over the corpus. Safe for concurrent search; Rebuild
// swaps the whole index under the write lock.
type Index struct {
	mu     sync.RWMutex
	docs   []catalog.Document
	tokens [][]string
	df     map[string]int
	avgLen float64
}

func NewIndex(docs []catalog.Document) *Index {
	ix := &Index{}
	ix.Rebuild(docs)
	return ix
}

func (ix *Index) Rebuild(docs []catalog.Document) {
	tokens := make([][]string, len(docs))
	df := map[string]int{}
	total := 0
	for i, doc := range docs {
		toks := tokenize(doc.Title + " " + doc.Text + " " + strings.Join(doc.Tags, " "))
		tokens[i] = toks
		total += len(toks)
		seen := map[string]bool{}
		for _, t := range toks {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}
	avgLen := 0.0
	if len(docs) > 0 {
		avgLen = float64(total) / float64(len(docs))
	}

	ix.mu.Lock()
	ix.docs = docs
	ix.tokens = tokens
	ix.df = df
	ix.avgLen = avgLen
	ix.mu.Unlock()
}

func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// Search scores every document against the query terms and returns the topK
// with positive scores, best first.
func (ix *Index) Search(query string, topK int) []Snippet {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.docs) == 0 || topK <= 0 {
		return nil
	}

	qTokens := tokenize(query)
	n := float64(len(ix.docs))

	type scoredDoc struct {
		idx   int
		score float64
	}
	scored := make([]scoredDoc, 0, len(ix.docs))
	for i, docTokens := range ix.tokens {
		tf := map[string]int{}
		for _, t := range docTokens {
			tf[t]++
		}
		dl := float64(len(docTokens))

		score := 0.0
		for _, q := range qTokens {
			f := float64(tf[q])
			if f == 0 {
				continue
			}
			nq := float64(ix.df[q])
			idf := math.Log(1 + (n-nq+0.5)/(nq+0.5))
			score += idf * (f * (bm25K1 + 1)) / (f + bm25K1*(1-bm25B+bm25B*dl/ix.avgLen))
		}
		if score > 0 {
			scored = append(scored, scoredDoc{idx: i, score: score})
		}
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > topK {
		scored = scored[:topK]
	}

	out := make([]Snippet, len(scored))
	for i, sd := range scored {
		doc := ix.docs[sd.idx]
		out[i] = Snippet{
			Title:   doc.Title,
			Text:    doc.Text,
			Score:   sd.score,
			Sources: []string{"index"},
		}
	}
	return out
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
