package retrieval

import (
	"testing"

	"github.com/serenity-health/serenity/internal/catalog"
)

func testDocs() []catalog.Document {
	return []catalog.Document{
		{ID: "breathing", Title: "Slow breathing", Text: "slow counted breathing calms panic and anxiety fast", Tags: []string{"anxiety"}},
		{ID: "sleep", Title: "Sleep routine", Text: "a consistent wake time rebuilds a broken sleep routine", Tags: []string{"sleep"}},
		{ID: "grief", Title: "Grief waves", Text: "grief arrives in waves triggered by memories and places", Tags: []string{"loss"}},
	}
}

func TestIndexSearch_RanksRelevantDocFirst(t *testing.T) {
	ix := NewIndex(testDocs())

	got := ix.Search("panic and anxiety breathing", 3)
	if len(got) == 0 {
		t.Fatal("expected results")
	}
	if got[0].Title != "Slow breathing" {
		t.Fatalf("top result = %q, want Slow breathing", got[0].Title)
	}
	if got[0].Score <= 0 {
		t.Fatalf("top score = %v, want > 0", got[0].Score)
	}
	for _, sn := range got {
		if sn.Score <= 0 {
			t.Fatalf("result %q has non-positive score %v", sn.Title, sn.Score)
		}
	}
}

func TestIndexSearch_NoMatchesReturnsEmpty(t *testing.T) {
	ix := NewIndex(testDocs())
	if got := ix.Search("quantum chromodynamics", 5); len(got) != 0 {
		t.Fatalf("Search = %v, want empty", got)
	}
}

func TestIndexRebuild(t *testing.T) {
	ix := NewIndex(testDocs())
	if ix.Size() != 3 {
		t.Fatalf("Size = %d, want 3", ix.Size())
	}

	ix.Rebuild([]catalog.Document{
		{ID: "one", Title: "Only doc", Text: "grounding for panic"},
	})
	if ix.Size() != 1 {
		t.Fatalf("Size after rebuild = %d, want 1", ix.Size())
	}
	got := ix.Search("panic grounding", 5)
	if len(got) != 1 || got[0].Title != "Only doc" {
		t.Fatalf("Search after rebuild = %v", got)
	}
}

func TestFuse_ReciprocalRankAndDedupe(t *testing.T) {
	indexList := []Snippet{
		{Text: "shared snippet about grounding", Sources: []string{"index"}},
		{Text: "index only snippet", Sources: []string{"index"}},
	}
	webList := []Snippet{
		{Text: "SHARED snippet about grounding", URL: "https://example.com", Sources: []string{"web"}},
		{Text: "web only snippet", Sources: []string{"web"}},
	}

	got := fuse([]rankedList{
		{weight: 0.5, snippets: indexList},
		{weight: 0.2, snippets: webList},
	}, 10)

	if len(got) != 3 {
		t.Fatalf("fuse returned %d results, want 3 after dedupe", len(got))
	}

	// Shared entry: 0.5*1/1 + 0.2*1/1 = 0.7, ahead of everything else.
	top := got[0]
	if top.Score != 0.7 {
		t.Fatalf("top score = %v, want 0.7", top.Score)
	}
	if len(top.Sources) != 2 {
		t.Fatalf("top sources = %v, want both", top.Sources)
	}
	if top.URL != "https://example.com" {
		t.Fatalf("top URL = %q, want filled from web duplicate", top.URL)
	}

	// index only: 0.5*1/2 = 0.25; web only: 0.2*1/2 = 0.1.
	if got[1].Text != "index only snippet" || got[2].Text != "web only snippet" {
		t.Fatalf("order = %q, %q", got[1].Text, got[2].Text)
	}
}

func TestFuse_TruncatesToTopK(t *testing.T) {
	var list []Snippet
	for _, txt := range []string{"a", "b", "c", "d", "e"} {
		list = append(list, Snippet{Text: txt, Sources: []string{"index"}})
	}
	got := fuse([]rankedList{{weight: 1.0, snippets: list}}, 2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "a" || got[1].Text != "b" {
		t.Fatalf("order = %q, %q", got[0].Text, got[1].Text)
	}
}

func TestSourceConfidence(t *testing.T) {
	if SourceConfidence("index") <= SourceConfidence("web") {
		t.Fatal("index should outrank web confidence")
	}
	if got := SourceConfidence("unknown"); got != 0.5 {
		t.Fatalf("unknown source confidence = %v, want 0.5", got)
	}
}
