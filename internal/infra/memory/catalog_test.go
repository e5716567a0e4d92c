package memory

import (
	"context"
	"testing"
	"time"

	"learnplay/internal/domain"
)

func TestCatalogCacheCaches(t *testing.T) {
	loader := &countingLoader{
		CatalogLoader: NewStaticCatalogLoader(sampleCatalog()),
	}
	cache := NewCatalogCache(loader, time.Minute)

	if _, err := cache.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := cache.GetCatalog(context.Background()); err != nil {
		t.Fatalf("get catalog 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestStaticLoaderEmptyCatalog(t *testing.T) {
	loader := NewStaticCatalogLoader(domain.Catalog{})
	if _, err := loader.LoadCatalog(context.Background()); err != domain.ErrCatalogNotFound {
		t.Fatalf("expected catalog-not-found, got %v", err)
	}
}

type countingLoader struct {
	CatalogLoader
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
		Quizzes: []domain.Quiz{
			{
				ProjectID: "proj-1",
				Questions: []domain.Question{
					{ID: "q1", Prompt: "Pick right", Options: []string{"wrong", "right"}, CorrectAnswer: "right"},
				},
			},
		},
		Roster: []domain.LeaderboardEntry{{Name: "Maya Chen", Points: 480}},
	}
}
