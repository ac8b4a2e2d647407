package lessons

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	chromem "github.com/philippgille/chromem-go"
)

const (
	collectionName = "sections"
	embeddingDims  = 256
)

// Hit is one search result.
type Hit struct {
	Slug       string  `json:"slug"`
	Title      string  `json:"title"`
	Summary    string  `json:"summary"`
	Similarity float32 `json:"similarity"`
}

// Index is a semantic-ish search over the sections. Embeddings are hashed
// term frequencies, so it runs without any model or network access.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewIndex embeds every section into an in-memory chromem collection.
func NewIndex(ctx context.Context, sections []Section) (*Index, error) {
	db := chromem.NewDB()
	col, err := db.GetOrCreateCollection(collectionName, nil, HashEmbedding)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	docs := make([]chromem.Document, len(sections))
	for i, s := range sections {
		docs[i] = chromem.Document{
			ID:      s.Slug,
			Content: documentText(s),
			Metadata: map[string]string{
				"title":   s.Title,
				"summary": s.Summary,
			},
		}
	}
	if len(docs) > 0 {
		if err := col.AddDocuments(ctx, docs, 1); err != nil {
			return nil, fmt.Errorf("adding sections: %w", err)
		}
	}

	return &Index{db: db, collection: col}, nil
}

// Count returns the number of indexed sections.
func (ix *Index) Count() int { return ix.collection.Count() }

// Search returns up to limit sections ranked by similarity to query.
// Sections sharing no terms with the query are left out.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if len(tokenize(query)) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	// chromem-go requires nResults <= collection size.
	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	results, err := ix.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		if r.Similarity <= 0 {
			continue
		}
		hits = append(hits, Hit{
			Slug:       r.ID,
			Title:      r.Metadata["title"],
			Summary:    r.Metadata["summary"],
			Similarity: r.Similarity,
		})
	}
	return hits, nil
}

// HashEmbedding is a chromem.EmbeddingFunc that hashes each term of text
// into a fixed number of buckets and normalises the result.
func HashEmbedding(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDims)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		vec[h.Sum32()%embeddingDims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		// Any unit vector; the caller filters empty queries out beforehand.
		vec[0] = 1
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= 2 && !stopWords[f] {
			out = append(out, f)
		}
	}
	return out
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "the": true, "to": true, "of": true,
	"in": true, "on": true, "or": true, "is": true, "it": true, "with": true,
	"for": true, "st": true, "as": true, "be": true, "by": true,
}

func documentText(s Section) string {
	var b strings.Builder
	// Titles count twice so they outrank passing mentions in the body.
	b.WriteString(s.Title + "\n" + s.Title + "\n" + s.Summary + "\n" + s.Body + "\n")
	for _, sn := range s.Snippets {
		b.WriteString(sn.Title + "\n" + sn.Code + "\n")
	}
	return b.String()
}
