package services

import (
	"context"
	"fmt"
	"unicode/utf8"

	"google.golang.org/genai"
)

// maxEmbedChars keeps requests under the embedding model's input limit.
const maxEmbedChars = 40000

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type geminiEmbedder struct {
	client     *Lazy[*genai.Client]
	embedModel string
}

// NewGeminiEmbedder creates the client on first use and shares it afterwards.
func NewGeminiEmbedder(apiKey, embedModel string) Embedder {
	return &geminiEmbedder{
		client: NewLazy(func() (*genai.Client, error) {
			client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create gemini client: %w", err)
			}
			return client, nil
		}),
		embedModel: embedModel,
	}
}

// Embed implements Embedder.
func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	client, err := g.client.Get()
	if err != nil {
		return nil, err
	}

	text = truncateUTF8(text, maxEmbedChars)

	result, err := client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
