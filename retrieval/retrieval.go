// Package retrieval provides optional passage retrieval over a document:
// index its passages once, then find the ones most relevant to a question.
// The context fitter does not depend on it; callers that want
// retrieval-augmented context select passages here and hand the result to
// the fitter as ordinary document context.
package retrieval

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/google/uuid"

	"github.com/askdoc/askdoc/chunk"
	"github.com/askdoc/askdoc/normalize"
)

// Passage is one indexed fragment of a document.
type Passage struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Position int     `json:"position"` // document order
	Score    float64 `json:"score,omitempty"`
}

// Index is an in-memory BM25 index over one document's passages.
type Index struct {
	mu       sync.RWMutex
	index    bleve.Index
	passages map[string]Passage
}

// NewIndex creates an empty in-memory passage index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create passage index: %w", err)
	}
	return &Index{
		index:    idx,
		passages: make(map[string]Passage),
	}, nil
}

// buildIndexMapping creates the Bleve index mapping for passages.
func buildIndexMapping() mapping.IndexMapping {
	passageMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	passageMapping.AddFieldMappingsAt("text", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = passageMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}

// AddDocument normalizes text, splits it into passages of at most
// passageSize characters, and indexes them in document order. It returns
// the indexed passages.
func (x *Index) AddDocument(ctx context.Context, text string, passageSize int) ([]Passage, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	parts := chunk.Split(normalize.Clean(text), passageSize)
	passages := make([]Passage, 0, len(parts))

	batch := x.index.NewBatch()
	for i, part := range parts {
		p := Passage{
			ID:       uuid.New().String(),
			Text:     part,
			Position: i,
		}
		if err := batch.Index(p.ID, p); err != nil {
			return nil, fmt.Errorf("index passage %d: %w", i, err)
		}
		passages = append(passages, p)
	}
	if err := x.index.Batch(batch); err != nil {
		return nil, fmt.Errorf("commit passage batch: %w", err)
	}

	for _, p := range passages {
		x.passages[p.ID] = p
	}
	return passages, nil
}

// Search returns the topK passages most relevant to the question, best
// first.
func (x *Index) Search(ctx context.Context, question string, topK int) ([]Passage, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if topK <= 0 {
		topK = 3
	}

	searchReq := bleve.NewSearchRequest(bleve.NewMatchQuery(question))
	searchReq.Size = topK

	result, err := x.index.SearchInContext(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("passage search: %w", err)
	}

	var passages []Passage
	for _, hit := range result.Hits {
		p, ok := x.passages[hit.ID]
		if !ok {
			continue
		}
		p.Score = hit.Score
		passages = append(passages, p)
	}
	return passages, nil
}

// BestPassage returns the single most relevant passage, or "" when the
// index has nothing relevant.
func (x *Index) BestPassage(ctx context.Context, question string) (string, error) {
	passages, err := x.Search(ctx, question, 1)
	if err != nil {
		return "", err
	}
	if len(passages) == 0 {
		return "", nil
	}
	return passages[0].Text, nil
}

// Close releases the index.
func (x *Index) Close() error {
	return x.index.Close()
}
