package artifacts

import (
	"fmt"
	"os"
	"strings"

	"bookRecSystem/domain"

	"github.com/goccy/go-json"
)

// ContentIndex holds the precomputed pairwise content-similarity matrix
// (count-vectorizer cosine scores, square, indexed by raw index) and the
// normalized-title to raw-index lookup. Read-only after load.
type ContentIndex struct {
	matrix       [][]float64
	titleIndices map[string]int
}

// LoadContentIndex reads the similarity matrix and the title index from
// their JSON artifact files.
func LoadContentIndex(matrixPath, titleIndexPath string) (*ContentIndex, error) {
	var matrix [][]float64
	if err := readJSONFile(matrixPath, &matrix); err != nil {
		return nil, fmt.Errorf("load cosine similarity matrix: %w", err)
	}

	var indices map[string]int
	if err := readJSONFile(titleIndexPath, &indices); err != nil {
		return nil, fmt.Errorf("load title indices: %w", err)
	}

	return NewContentIndex(matrix, indices)
}

// NewContentIndex validates and wraps an in-memory matrix and title map.
func NewContentIndex(matrix [][]float64, titleIndices map[string]int) (*ContentIndex, error) {
	n := len(matrix)
	if n == 0 {
		return nil, fmt.Errorf("similarity matrix is empty")
	}
	for i, row := range matrix {
		if len(row) != n {
			return nil, fmt.Errorf("similarity matrix row %d: got %d columns, want %d", i, len(row), n)
		}
	}
	for title, idx := range titleIndices {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("title index %q -> %d out of matrix range [0,%d)", title, idx, n)
		}
	}

	return &ContentIndex{matrix: matrix, titleIndices: titleIndices}, nil
}

// NormalizeTitle produces the lookup key used by the title index:
// lowercase with all spaces removed.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", ""))
}

// IndexOfTitle resolves a normalized title key to its raw index.
// A missing title means the catalog and the precomputed index have
// drifted apart, reported as NotFound.
func (ci *ContentIndex) IndexOfTitle(titleKey string) (int, error) {
	idx, ok := ci.titleIndices[titleKey]
	if !ok {
		return 0, fmt.Errorf("title key %q: %w", titleKey, domain.ErrNotFound)
	}
	return idx, nil
}

// Row returns the similarity scores of the given raw index against every
// book, including itself at position rawIndex. Callers must not mutate
// the returned slice.
func (ci *ContentIndex) Row(rawIndex int) ([]float64, error) {
	if rawIndex < 0 || rawIndex >= len(ci.matrix) {
		return nil, fmt.Errorf("similarity row %d: %w", rawIndex, domain.ErrNotFound)
	}
	return ci.matrix[rawIndex], nil
}

// Size returns the matrix dimension.
func (ci *ContentIndex) Size() int {
	return len(ci.matrix)
}

func readJSONFile(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
