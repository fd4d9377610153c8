package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Entries())
	_, ok := h.Last()
	assert.False(t, ok)
}

func TestRecordAppendsInOrder(t *testing.T) {
	h := NewHistory()

	a, err := Record(h, 100, 50, 1, DefaultOptions(), CatalogInfo{ItemCode: "A1"})
	require.NoError(t, err)
	b, err := Record(h, 60, 7.6, 0.45, DefaultOptions(), CatalogInfo{ItemCode: "B2"})
	require.NoError(t, err)

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, a.ID, entries[0].ID)
	assert.Equal(t, b.ID, entries[1].ID)
	assert.Equal(t, "A1", entries[0].Catalog.ItemCode)

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, b.ID, last.ID)
}

func TestRecordInvalidAppendsNothing(t *testing.T) {
	h := NewHistory()
	_, err := Record(h, 0, 0, 1, DefaultOptions(), CatalogInfo{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Record(h, 50, 50, 2, DefaultOptions(), CatalogInfo{})
	require.Error(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestHistoryNoDeduplication(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 3; i++ {
		_, err := Record(h, 100, 50, 1, DefaultOptions(), CatalogInfo{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, h.Len())
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	_, err := Record(h, 100, 50, 1, DefaultOptions(), CatalogInfo{})
	require.NoError(t, err)

	h.Clear()
	assert.Equal(t, 0, h.Len())

	// Clearing an empty history is a no-op.
	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryEntriesIsCopy(t *testing.T) {
	h := NewHistory()
	_, err := Record(h, 100, 50, 1, DefaultOptions(), CatalogInfo{ProductName: "Canto PVC"})
	require.NoError(t, err)

	entries := h.Entries()
	entries[0].Catalog.ProductName = "Modified"

	assert.Equal(t, "Canto PVC", h.Entries()[0].Catalog.ProductName)
}

func TestNewHistoryEntryRoundsInputs(t *testing.T) {
	m, err := Validate(60.126, 7.604, 0.456)
	require.NoError(t, err)
	e := NewHistoryEntry(m, ComputeLength(m, DefaultOptions()), CatalogInfo{})

	assert.Len(t, e.ID, 8)
	assert.NotEmpty(t, e.CreatedAt)
	assert.InDelta(t, 60.13, e.Inputs.OuterCM, 1e-9)
	// The result is computed from the unrounded inputs.
	assert.InDelta(t, ComputeLength(m, DefaultOptions()).AreaCM2, e.Result.AreaCM2, 1e-12)
}

func TestNewHistoryEntryCopiesRoundingPolicy(t *testing.T) {
	m, _ := Validate(100, 50, 1)
	res := ComputeLength(m, Options{Unit: UnitMeters, Rounding: RoundingPolicy{Step: 1, Mode: RoundFloor}})
	e := NewHistoryEntry(m, res, CatalogInfo{})

	res.Rounding.Step = 0.5
	require.NotNil(t, e.Result.Rounding)
	assert.Equal(t, 1.0, e.Result.Rounding.Step)
}

func TestCatalogInfoIsEmpty(t *testing.T) {
	assert.True(t, CatalogInfo{}.IsEmpty())
	assert.False(t, CatalogInfo{Color: "Blanco"}.IsEmpty())
}

func TestRecordKeepsValidatedMeasurement(t *testing.T) {
	h := NewHistory()
	e, err := Record(h, 10.004, 10.0, 0.004, DefaultOptions(), CatalogInfo{})
	require.NoError(t, err)

	assert.Equal(t, Measurement{OuterCM: 10, InnerCM: 10, ThicknessMM: 0}, e.Inputs)
	assert.Equal(t, Measurement{OuterCM: 10.004, InnerCM: 10.0, ThicknessMM: 0.004}, e.Raw)
	assert.NoError(t, e.Diagram().Validate(), "diagram measurement must stay valid after display rounding")
}

func TestDiagramFallsBackToInputs(t *testing.T) {
	e := HistoryEntry{Inputs: Measurement{OuterCM: 60, InnerCM: 7.6, ThicknessMM: 1}}
	assert.Equal(t, e.Inputs, e.Diagram())
}
