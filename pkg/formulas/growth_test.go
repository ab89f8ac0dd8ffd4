package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupYearOverYear(t *testing.T) {
	rows := []YearRevenue{
		{"A", 2023, 100},
		{"B", 2024, 50},
		{"A", 2024, 150},
		{"A", 2022, 0},
	}

	groups := GroupYearOverYear(rows)
	require.Len(t, groups, 2)

	a := groups[0]
	assert.Equal(t, "A", a.Name)
	require.Len(t, a.Years, 3)
	assert.Equal(t, []int{2024, 2023, 2022}, []int{a.Years[0].Year, a.Years[1].Year, a.Years[2].Year})
	require.NotNil(t, a.Years[0].Growth)
	assert.InDelta(t, 50.0, *a.Years[0].Growth, 1e-9)
	assert.Nil(t, a.Years[1].Growth, "growth over a zero-revenue year is not computed")
	assert.Nil(t, a.Years[2].Growth, "oldest year has no growth")

	b := groups[1]
	assert.Equal(t, "B", b.Name)
	require.Len(t, b.Years, 1)
	assert.Nil(t, b.Years[0].Growth)
}

func TestGroupYearOverYear_DuplicateYearKeepsFirst(t *testing.T) {
	groups := GroupYearOverYear([]YearRevenue{
		{"A", 2024, 10},
		{"A", 2024, 99},
	})

	require.Len(t, groups, 1)
	require.Len(t, groups[0].Years, 1)
	assert.Equal(t, 10.0, groups[0].Years[0].Revenue)
}

func TestGroupYearOverYear_Empty(t *testing.T) {
	assert.Empty(t, GroupYearOverYear(nil))
}

func TestYearOverYear(t *testing.T) {
	rows := []YearRevenue{
		{"A", 2024, 300},
		{"A", 2023, 200},
		{"B", 2024, 10},
	}

	assert.InDelta(t, 50.0, YearOverYear(rows, "A", 2024), 1e-9)
	assert.Equal(t, 0.0, YearOverYear(rows, "B", 2024))
	assert.Equal(t, 0.0, YearOverYear(rows, "missing", 2024))
}
