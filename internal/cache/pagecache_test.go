package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()
	const url = "https://example.com/a"

	if err := c.Save(ctx, url, "text/html; charset=utf-8", []byte("<p>hi</p>")); err != nil {
		t.Fatalf("save: %v", err)
	}
	body, ct, err := c.Load(ctx, url)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(body) != "<p>hi</p>" {
		t.Fatalf("body = %q", body)
	}
	if ct != "text/html; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestMissForUnknownURL(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	if _, _, err := c.Load(context.Background(), "https://example.com/nope"); !errors.Is(err, ErrMiss) {
		t.Fatalf("err = %v, want ErrMiss", err)
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := &PageCache{Dir: t.TempDir(), MaxAge: time.Nanosecond}
	ctx := context.Background()
	const url = "https://example.com/old"

	if err := c.Save(ctx, url, "text/html", []byte("stale")); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, _, err := c.Load(ctx, url); !errors.Is(err, ErrMiss) {
		t.Fatalf("err = %v, want ErrMiss for expired entry", err)
	}
}

func TestDistinctURLsDistinctEntries(t *testing.T) {
	c := &PageCache{Dir: t.TempDir()}
	ctx := context.Background()

	if err := c.Save(ctx, "https://example.com/a", "text/html", []byte("aaa")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Save(ctx, "https://example.com/b", "text/html", []byte("bbb")); err != nil {
		t.Fatalf("save: %v", err)
	}
	body, _, err := c.Load(ctx, "https://example.com/a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(body) != "aaa" {
		t.Fatalf("entries collided: %q", body)
	}
}
