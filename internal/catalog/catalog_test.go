package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		Source: "test",
		Rows: []Row{
			{ItemCode: "C100", ProductName: "Canto PVC 22x0.45", Color: "Blanco"},
			{ItemCode: "C200", ProductName: "Canto PVC 33x1", Color: "Roble"},
			{ItemCode: "A300", ProductName: "Canto ABS 19x2", Color: "blanco"},
			{ItemCode: "A400", ProductName: "Canto ABS 45x2", Color: ""},
		},
	}
}

func TestSearch_Substring(t *testing.T) {
	c := testCatalog()

	rows := c.Search("pvc")
	require.Len(t, rows, 2)
	assert.Equal(t, "C100", rows[0].ItemCode)

	rows = c.Search("19x")
	require.Len(t, rows, 1)
	assert.Equal(t, "A300", rows[0].ItemCode)

	assert.Len(t, c.Search("ROBLE"), 1, "search should also match color")
	assert.Len(t, c.Search("a3"), 1, "search should also match code")
	assert.Empty(t, c.Search("nogal"))
}

func TestSearch_EmptyQueryReturnsAll(t *testing.T) {
	assert.Len(t, testCatalog().Search("  "), 4)
}

func TestFilterColor_Equality(t *testing.T) {
	c := testCatalog()
	rows := c.FilterColor("Blanco")
	require.Len(t, rows, 2)
	assert.Equal(t, "C100", rows[0].ItemCode)
	assert.Equal(t, "A300", rows[1].ItemCode)

	assert.Empty(t, c.FilterColor("Blan"), "color filter is not a substring match")
	assert.Len(t, c.FilterColor(""), 4)
}

func TestQuery_Combined(t *testing.T) {
	rows := testCatalog().Query("abs", "blanco")
	require.Len(t, rows, 1)
	assert.Equal(t, "A300", rows[0].ItemCode)
}

func TestFindByCode_Exact(t *testing.T) {
	c := testCatalog()
	row, ok := c.FindByCode("C200")
	require.True(t, ok)
	assert.Equal(t, "Roble", row.Color)

	_, ok = c.FindByCode("c200")
	assert.False(t, ok, "code lookup is exact")
	_, ok = c.FindByCode("C2")
	assert.False(t, ok)
}

func TestColors_DistinctSorted(t *testing.T) {
	assert.Equal(t, []string{"Blanco", "Roble"}, testCatalog().Colors())
}

func TestRowInfoAndLabel(t *testing.T) {
	r := Row{ItemCode: "C100", ProductName: "Canto PVC", Color: "Blanco"}
	info := r.Info()
	assert.Equal(t, "C100", info.ItemCode)
	assert.Equal(t, "Canto PVC", info.ProductName)
	assert.Equal(t, "Blanco", info.Color)
	assert.Equal(t, "C100 · Canto PVC · Blanco", r.Label())
	assert.Equal(t, "X", Row{ItemCode: "X"}.Label())
}
