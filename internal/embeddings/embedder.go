package embeddings

import (
	"context"

	chromem "github.com/philippgille/chromem-go"
)

// Embedder generates a vector embedding for a single text. Keywords
// and questions are short, so there is no batch path.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)

	// Name returns the identifier of the embedding model.
	Name() string
}

// ToChromemFunc converts an Embedder into a chromem.EmbeddingFunc.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return e.Embed(ctx, text)
	}
}
