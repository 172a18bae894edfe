package recommend

import (
	"context"
	"testing"

	"bookRecSystem/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contentFixture() (*fakeCatalog, *fakeContentIndex) {
	catalog := &fakeCatalog{
		titles: map[uint64]string{100: "The Seed Book"},
		raw:    map[uint64]int{100: 0},
		byRaw:  map[int]uint64{},
		genres: map[uint64][]string{},
	}
	// raw index i maps to book id 100+i
	for i := 0; i < 15; i++ {
		catalog.byRaw[i] = uint64(100 + i)
	}

	content := &fakeContentIndex{
		indices: map[string]int{"theseedbook": 0},
		rows: map[int][]float64{
			0: {1.0, 0.9, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.15, 0.1, 0.05, 0.02, 0.01},
		},
	}
	return catalog, content
}

func TestContentRecommendations_TopNineStableOrder(t *testing.T) {
	catalog, content := contentFixture()
	svc := newTestService(catalog, content, nil, nil, 1)

	got, err := svc.ContentRecommendations(context.Background(), 100)
	require.NoError(t, err)

	// exactly 9 ids, self (raw 0 / id 100) excluded, descending score
	// with the 0.9 tie kept in original index order
	want := []uint64{101, 102, 103, 104, 105, 106, 107, 108, 109}
	assert.Equal(t, want, got)
	assert.NotContains(t, got, uint64(100))
}

func TestContentRecommendations_ShortRow(t *testing.T) {
	catalog, content := contentFixture()
	content.rows[0] = []float64{1.0, 0.4, 0.8}
	svc := newTestService(catalog, content, nil, nil, 1)

	got, err := svc.ContentRecommendations(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, []uint64{102, 101}, got)
}

func TestContentRecommendations_TitleDriftSurfaces(t *testing.T) {
	catalog, content := contentFixture()
	catalog.titles[100] = "Renamed After Indexing"
	svc := newTestService(catalog, content, nil, nil, 1)

	_, err := svc.ContentRecommendations(context.Background(), 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentRecommendations_UnknownSeed(t *testing.T) {
	catalog, content := contentFixture()
	svc := newTestService(catalog, content, nil, nil, 1)

	_, err := svc.ContentRecommendations(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "theseedbook", normalizeTitle("The Seed Book"))
	assert.Equal(t, "ataleoftwocities", normalizeTitle("A Tale of Two Cities"))
}
