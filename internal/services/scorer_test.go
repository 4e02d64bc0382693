package services

import (
	"context"
	"math"
	"testing"

	"go.uber.org/zap"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 1}, []float32{-1, -1}, -1},
		{"scaled", []float32{1, 2}, []float32{2, 4}, 1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1}, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarityScorer_Deterministic(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"jd":     {0.6, 0.8, 0},
		"resume": {0.8, 0.6, 0},
	}}
	scorer := NewSimilarityScorer(embedder)

	first, err := scorer.Score(context.Background(), "jd", "resume")
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	second, _ := scorer.Score(context.Background(), "jd", "resume")

	if first != second {
		t.Errorf("Score() not deterministic: %v vs %v", first, second)
	}
	if math.Abs(first-0.96) > 1e-6 {
		t.Errorf("Score() = %v, want 0.96", first)
	}
}

func TestSimilarityScorer_EmbedFailure(t *testing.T) {
	scorer := NewSimilarityScorer(&fakeEmbedder{vectors: map[string][]float32{"jd": {1}}})
	if _, err := scorer.Score(context.Background(), "jd", "unknown"); err == nil {
		t.Fatal("Score() error = nil, want embed failure")
	}
}

type memoryStore struct {
	points map[string][]float32
}

func (m *memoryStore) InitCollection(context.Context) error { return nil }

func (m *memoryStore) Lookup(_ context.Context, text string) ([]float32, bool, error) {
	v, ok := m.points[EmbeddingID(text)]
	return v, ok, nil
}

func (m *memoryStore) Upsert(_ context.Context, _, _, text string, vec []float32) error {
	m.points[EmbeddingID(text)] = vec
	return nil
}

func (m *memoryStore) SearchSimilar(context.Context, []float32, string, int) ([]SearchResult, error) {
	return nil, nil
}

func TestCachedEmbedder_HitsStoreSecondTime(t *testing.T) {
	inner := &fakeEmbedder{vectors: map[string][]float32{"hello": {1, 0}}}
	store := &memoryStore{points: map[string][]float32{}}
	cached := NewCachedEmbedder(inner, store, zap.NewNop())

	for range 3 {
		if _, err := cached.Embed(context.Background(), "hello"); err != nil {
			t.Fatalf("Embed() error = %v", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("inner embedder called %d times, want 1", inner.calls)
	}
}

func TestEmbeddingID_StableAndDistinct(t *testing.T) {
	if EmbeddingID("a") != EmbeddingID("a") {
		t.Error("EmbeddingID() not stable")
	}
	if EmbeddingID("a") == EmbeddingID("b") {
		t.Error("EmbeddingID() collides for different text")
	}
}
