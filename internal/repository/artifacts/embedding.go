package artifacts

import (
	"fmt"

	"bookRecSystem/domain"
)

// Neighbor is one precomputed nearest neighbor of a book in the
// collaborative-filtering embedding space.
type Neighbor struct {
	RawIndex int     `json:"raw_index"`
	Score    float64 `json:"score"`
}

// EmbeddingIndex holds the surprise-model artifacts: the raw-id to
// inner-id bijections, the per-inner-id embedding vectors and the
// per-raw-index ranked neighbor lists (pre-sorted descending by score,
// pre-truncated). Read-only after load.
type EmbeddingIndex struct {
	rawToInner map[int]int
	innerToRaw map[int]int
	vectors    [][]float64
	neighbors  map[int][]Neighbor
}

// EmbeddingPaths names the four artifact files of the embedding model.
type EmbeddingPaths struct {
	RawToInner string
	InnerToRaw string
	Vectors    string
	Neighbors  string
}

// LoadEmbeddingIndex reads the embedding artifacts from their JSON
// files. The vectors are not consulted by the recommendation path but
// are part of the model artifact set and must load cleanly.
func LoadEmbeddingIndex(paths EmbeddingPaths) (*EmbeddingIndex, error) {
	var rawToInner map[int]int
	if err := readJSONFile(paths.RawToInner, &rawToInner); err != nil {
		return nil, fmt.Errorf("load raw-to-inner map: %w", err)
	}

	var innerToRaw map[int]int
	if err := readJSONFile(paths.InnerToRaw, &innerToRaw); err != nil {
		return nil, fmt.Errorf("load inner-to-raw map: %w", err)
	}

	var vectors [][]float64
	if err := readJSONFile(paths.Vectors, &vectors); err != nil {
		return nil, fmt.Errorf("load embedding vectors: %w", err)
	}

	var neighbors map[int][]Neighbor
	if err := readJSONFile(paths.Neighbors, &neighbors); err != nil {
		return nil, fmt.Errorf("load neighbor table: %w", err)
	}

	return NewEmbeddingIndex(rawToInner, innerToRaw, vectors, neighbors)
}

// NewEmbeddingIndex validates and wraps in-memory embedding artifacts.
// The id maps must be mutual inverses.
func NewEmbeddingIndex(
	rawToInner map[int]int,
	innerToRaw map[int]int,
	vectors [][]float64,
	neighbors map[int][]Neighbor,
) (*EmbeddingIndex, error) {

	if len(rawToInner) != len(innerToRaw) {
		return nil, fmt.Errorf("id maps disagree: %d raw ids vs %d inner ids",
			len(rawToInner), len(innerToRaw))
	}
	for raw, inner := range rawToInner {
		back, ok := innerToRaw[inner]
		if !ok || back != raw {
			return nil, fmt.Errorf("id maps are not a bijection at raw id %d", raw)
		}
	}

	return &EmbeddingIndex{
		rawToInner: rawToInner,
		innerToRaw: innerToRaw,
		vectors:    vectors,
		neighbors:  neighbors,
	}, nil
}

// InnerID maps a raw index into the embedding model's own index space.
func (ei *EmbeddingIndex) InnerID(rawIndex int) (int, error) {
	inner, ok := ei.rawToInner[rawIndex]
	if !ok {
		return 0, fmt.Errorf("raw index %d has no inner id: %w", rawIndex, domain.ErrNotFound)
	}
	return inner, nil
}

// RawID maps an inner id back to its raw index.
func (ei *EmbeddingIndex) RawID(innerID int) (int, error) {
	raw, ok := ei.innerToRaw[innerID]
	if !ok {
		return 0, fmt.Errorf("inner id %d has no raw index: %w", innerID, domain.ErrNotFound)
	}
	return raw, nil
}

// Vector returns the embedding vector for an inner id.
func (ei *EmbeddingIndex) Vector(innerID int) ([]float64, error) {
	if innerID < 0 || innerID >= len(ei.vectors) {
		return nil, fmt.Errorf("embedding vector %d: %w", innerID, domain.ErrNotFound)
	}
	return ei.vectors[innerID], nil
}

// Neighbors returns the raw indices of the top-k precomputed neighbors
// of a raw index, nearest first. Scores are dropped. A raw index absent
// from the table is a NotFound.
func (ei *EmbeddingIndex) Neighbors(rawIndex, k int) ([]int, error) {
	ranked, ok := ei.neighbors[rawIndex]
	if !ok {
		return nil, fmt.Errorf("neighbors of raw index %d: %w", rawIndex, domain.ErrNotFound)
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]int, 0, k)
	for _, nb := range ranked[:k] {
		out = append(out, nb.RawIndex)
	}
	return out, nil
}
