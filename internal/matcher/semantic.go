package matcher

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	chromem "github.com/philippgille/chromem-go"

	"github.com/docchat/docchat/internal/embeddings"
)

const collectionName = "keywords"

// SemanticMatcher ranks keywords by embedding similarity using an
// in-memory chromem-go collection. Keywords are embedded once per
// Index call; questions are embedded per query.
type SemanticMatcher struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
	indexedKey string
}

// NewSemanticMatcher creates a SemanticMatcher backed by the given embedder.
func NewSemanticMatcher(embedder embeddings.Embedder) (*SemanticMatcher, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &SemanticMatcher{db: db, collection: col, embedFunc: ef}, nil
}

// Index embeds and stores the given keywords, replacing any previous
// index contents.
func (m *SemanticMatcher) Index(ctx context.Context, keywords []string) error {
	if err := m.db.DeleteCollection(collectionName); err != nil {
		return fmt.Errorf("reset collection: %w", err)
	}
	col, err := m.db.GetOrCreateCollection(collectionName, nil, m.embedFunc)
	if err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}
	m.collection = col
	m.indexedKey = keywordSetKey(keywords)

	if len(keywords) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(keywords))
	for i, kw := range keywords {
		docs[i] = chromem.Document{
			ID:      fmt.Sprintf("kw-%d", i),
			Content: kw,
		}
	}
	return m.collection.AddDocuments(ctx, docs, 1)
}

// keywordSetKey is an order-insensitive fingerprint of a keyword set,
// used to detect that the index is stale.
func keywordSetKey(keywords []string) string {
	sorted := make([]string, len(keywords))
	copy(sorted, keywords)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}

// Match embeds the question and returns the most similar indexed
// keywords. When the keyword set differs from the indexed one the
// index is rebuilt first, so the matcher can be used without an
// explicit Index call and can serve multiple documents in turn.
func (m *SemanticMatcher) Match(ctx context.Context, question string, keywords []string, limit int) ([]Scored, error) {
	if question == "" || len(keywords) == 0 {
		return nil, nil
	}

	if m.indexedKey != keywordSetKey(keywords) {
		if err := m.Index(ctx, keywords); err != nil {
			return nil, err
		}
	}

	if limit <= 0 {
		limit = 3
	}
	// chromem-go requires nResults <= collection size.
	if count := m.collection.Count(); limit > count {
		limit = count
	}
	if limit == 0 {
		return nil, nil
	}

	results, err := m.collection.Query(ctx, question, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	scored := make([]Scored, len(results))
	for i, r := range results {
		// Cosine similarity can be slightly negative for unrelated
		// texts; confidence is clamped to [0,1].
		scored[i] = Scored{
			Keyword:    r.Content,
			Confidence: round3(math.Max(0, float64(r.Similarity))),
		}
	}
	return scored, nil
}
