package cache

import (
	"testing"
	"time"

	"globenews/internal/news"
)

func TestGetMissesUnknownCountry(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	if _, ok := c.Get("Atlantis"); ok {
		t.Error("expected a miss for an unknown country")
	}
}

func TestSetThenGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	items := []news.News{{Title: "Hello"}}
	c.Set("UK", items)

	got, ok := c.Get("UK")
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(got) != 1 || got[0].Title != "Hello" {
		t.Errorf("got %+v", got)
	}
}

func TestGetExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	c := New(10 * time.Millisecond)
	c.Set("UK", []news.News{{Title: "Stale"}})

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("UK"); ok {
		t.Error("expected a miss after the TTL elapsed")
	}
}

func TestCleanupRemovesExpiredEntries(t *testing.T) {
	t.Parallel()

	c := New(10 * time.Millisecond)
	c.Set("UK", []news.News{{Title: "Old"}})

	time.Sleep(30 * time.Millisecond)
	c.cleanup()

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.entries) != 0 {
		t.Errorf("expected empty cache, have %d entries", len(c.entries))
	}
}
