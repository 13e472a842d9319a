package embedding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestCacheNormalizesKeys(t *testing.T) {
	cache := NewCache(4)
	cache.Put("A  Blade\tRunner", []float32{1, 2})
	if _, ok := cache.Get("a blade runner"); !ok {
		t.Fatal("expected hit through normalized key")
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	cache := NewCache(2)
	cache.Put("one", []float32{1})
	cache.Put("two", []float32{2})
	cache.Put("three", []float32{3})
	if cache.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", cache.Len())
	}
	if _, ok := cache.Get("one"); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
	if _, ok := cache.Get("three"); !ok {
		t.Fatal("expected newest entry to remain")
	}
}

func TestCacheIgnoresEmptyVectors(t *testing.T) {
	cache := NewCache(2)
	cache.Put("empty", nil)
	if cache.Len() != 0 {
		t.Fatal("empty vectors must not be stored")
	}
}

func TestEmbedUsesCache(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := New("key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for i := 0; i < 3; i++ {
		vector, err := client.Embed(context.Background(), "dystopian future")
		if err != nil {
			t.Fatalf("Embed returned error: %v", err)
		}
		if len(vector) != 3 {
			t.Fatalf("unexpected vector %v", vector)
		}
	}
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}
}

func TestEmbedErrorsOnEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := New("key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Embed(context.Background(), "anything"); err == nil {
		t.Fatal("expected error when no vector returned")
	}
}
