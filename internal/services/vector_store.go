package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// Embedding kinds stored in the collection. Points written by the cache
// carry KindCached until an indexer claims them.
const (
	KindCached = "cached"
	KindResume = "resume"
)

// embeddingNamespace seeds the deterministic point ids: the same text always
// lands on the same point.
var embeddingNamespace = uuid.MustParse("6f1c0c6e-8d4a-4c55-9b8e-3f2a51f0c7d1")

// EmbeddingID is the point id a text's embedding is stored under.
func EmbeddingID(text string) string {
	return uuid.NewSHA1(embeddingNamespace, []byte(text)).String()
}

type VectorStore interface {
	InitCollection(ctx context.Context) error
	Lookup(ctx context.Context, text string) ([]float32, bool, error)
	Upsert(ctx context.Context, kind, reference, text string, embedding []float32) error
	SearchSimilar(ctx context.Context, embedding []float32, kind string, limit int) ([]SearchResult, error)
}

type SearchResult struct {
	Reference string
	Kind      string
	Score     float32
}

type qdrantStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	log            *zap.Logger
}

func NewQdrantStore(urlStr, apiKey, collectionName string, vectorSize uint64, log *zap.Logger) (VectorStore, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		log:            log,
	}, nil
}

// InitCollection implements VectorStore.
func (q *qdrantStore) InitCollection(ctx context.Context) error {
	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.log.Debug("collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.log.Info("✅ Qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// Lookup implements VectorStore.
func (q *qdrantStore) Lookup(ctx context.Context, text string) ([]float32, bool, error) {
	points, err := q.client.Get(ctx, &qdrant.GetPoints{
		CollectionName: q.collectionName,
		Ids:            []*qdrant.PointId{qdrant.NewID(EmbeddingID(text))},
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to get point: %w", err)
	}

	if len(points) == 0 {
		return nil, false, nil
	}

	vec := points[0].GetVectors().GetVector()
	if dense := vec.GetDense(); dense != nil {
		return dense.GetData(), true, nil
	}
	if data := vec.GetData(); len(data) > 0 {
		return data, true, nil
	}
	return nil, false, nil
}

// Upsert implements VectorStore.
func (q *qdrantStore) Upsert(ctx context.Context, kind, reference, text string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(EmbeddingID(text)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"kind":      kind,
			"reference": reference,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchSimilar implements VectorStore.
func (q *qdrantStore) SearchSimilar(ctx context.Context, embedding []float32, kind string, limit int) ([]SearchResult, error) {
	var filter *qdrant.Filter
	if kind != "" {
		filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("kind", kind),
			},
		}
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]SearchResult, 0, len(points))
	for _, point := range points {
		result := SearchResult{Score: point.Score}
		if v, ok := point.Payload["reference"]; ok {
			result.Reference = v.GetStringValue()
		}
		if v, ok := point.Payload["kind"]; ok {
			result.Kind = v.GetStringValue()
		}
		results = append(results, result)
	}

	return results, nil
}
