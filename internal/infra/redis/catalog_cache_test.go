package redis

import (
	"context"
	"testing"
	"time"

	"learnplay/internal/domain"
	"learnplay/internal/infra/memory"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestCatalogCacheCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)
	loader := &countingLoader{
		CatalogLoader: memory.NewStaticCatalogLoader(sampleCatalog()),
	}
	cache := NewCatalogCache(client, loader, time.Minute)

	catalog, err := cache.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if len(catalog.Projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(catalog.Projects))
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader called once, got %d", loader.calls)
	}
	if !mr.Exists("catalog:v1") {
		t.Fatalf("expected catalog key in redis")
	}

	// Second call should hit the cache.
	again, err := cache.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("get catalog 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls=%d", loader.calls)
	}
	if len(again.Segments) != len(catalog.Segments) {
		t.Fatalf("cached catalog lost segments")
	}
}

type countingLoader struct {
	memory.CatalogLoader
	calls int
}

func (l *countingLoader) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	l.calls++
	return l.CatalogLoader.LoadCatalog(ctx)
}

func sampleCatalog() domain.Catalog {
	return domain.Catalog{
		Projects: []domain.Project{{ID: "proj-1", Title: "First Project", TotalSegments: 1}},
		Segments: []domain.Segment{{ID: "seg-1", ProjectID: "proj-1", Title: "Only Part"}},
		Roster:   []domain.LeaderboardEntry{{Name: "Maya Chen", Points: 480}},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
