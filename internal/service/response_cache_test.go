package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/serenity-health/serenity/internal/domain"
)

func TestResponseCache_PutGet(t *testing.T) {
	c := NewResponseCache(time.Hour, 10)
	c.Put("  How Are  You ", domain.AssistantReply{Response: "doing fine"})

	got := c.Get("how are you")
	if got == nil || got.Response != "doing fine" {
		t.Fatalf("Get = %+v, want cached reply", got)
	}
	if got := c.Get("something else"); got != nil {
		t.Fatalf("Get(miss) = %+v, want nil", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}

func TestResponseCache_IgnoresBlankQuery(t *testing.T) {
	c := NewResponseCache(time.Hour, 10)
	c.Put("   ", domain.AssistantReply{Response: "x"})
	if c.Len() != 0 {
		t.Fatalf("Len = %d, want 0", c.Len())
	}
}

func TestResponseCache_Expiry(t *testing.T) {
	c := NewResponseCache(time.Minute, 10)
	c.Put("query", domain.AssistantReply{Response: "x"})

	c.mu.Lock()
	e := c.entries["query"]
	e.cachedAt = time.Now().Add(-2 * time.Minute)
	c.entries["query"] = e
	c.mu.Unlock()

	if got := c.Get("query"); got != nil {
		t.Fatalf("Get(stale) = %+v, want nil", got)
	}
	if n := c.Sweep(); n != 1 {
		t.Fatalf("Sweep = %d, want 1", n)
	}
	if c.Len() != 0 {
		t.Fatalf("Len after sweep = %d, want 0", c.Len())
	}
}

func TestResponseCache_EvictsOldestHalfAtCap(t *testing.T) {
	c := NewResponseCache(time.Hour, 4)
	base := time.Now().Add(-30 * time.Minute)
	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("q%d", i)
		c.Put(key, domain.AssistantReply{Response: key})
		c.mu.Lock()
		e := c.entries[key]
		e.cachedAt = base.Add(time.Duration(i) * time.Second)
		c.entries[key] = e
		c.mu.Unlock()
	}

	c.Put("q4", domain.AssistantReply{Response: "q4"})

	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	for _, gone := range []string{"q0", "q1"} {
		if c.Get(gone) != nil {
			t.Errorf("Get(%s) should have been evicted", gone)
		}
	}
	for _, kept := range []string{"q2", "q3", "q4"} {
		if c.Get(kept) == nil {
			t.Errorf("Get(%s) = nil, want kept", kept)
		}
	}
}
