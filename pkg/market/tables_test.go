package market

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDefaultTables(t *testing.T) {
	tb := DefaultTables()

	assert.Equal(t, PriceBand{Min: 12, Max: 35, Avg: 20, Volatility: 0.4}, tb.Band("Tomato"))
	assert.Equal(t, PriceBand{Min: 15, Max: 50, Avg: 28, Volatility: 0.5}, tb.Band("Onion"))
	assert.Equal(t, defaultBand, tb.Band("Brinjal"))

	assert.Equal(t, 75, tb.CycleDays("Tomato"))
	assert.Equal(t, 120, tb.CycleDays("Onion"))
	assert.Equal(t, 90, tb.CycleDays("Brinjal"))

	assert.Equal(t, 1.05, tb.StateFactor("Karnataka"))
	assert.Equal(t, 1.08, tb.StateFactor("Maharashtra"))
	assert.Equal(t, 1.0, tb.StateFactor("Kerala"))

	assert.Contains(t, tb.Markets("Maharashtra"), "Nashik")
	// Unknown states fall back to the Karnataka mandis.
	assert.Contains(t, tb.Markets("Kerala"), "Bangalore")
}

func TestSeasonOf(t *testing.T) {
	cases := map[time.Month]string{
		time.December:  "winter",
		time.January:   "winter",
		time.February:  "winter",
		time.March:     "spring",
		time.May:       "spring",
		time.June:      "monsoon",
		time.August:    "monsoon",
		time.September: "autumn",
		time.November:  "autumn",
	}
	for m, want := range cases {
		assert.Equal(t, want, SeasonOf(m), m.String())
	}
}

func TestSeasonalFactor(t *testing.T) {
	tb := DefaultTables()

	assert.Equal(t, 1.2, tb.SeasonalFactor("Tomato", time.January))
	assert.Equal(t, 1.1, tb.SeasonalFactor("Tomato", time.July))
	assert.Equal(t, 0.85, tb.SeasonalFactor("Tomato", time.October))
	assert.Equal(t, 1.3, tb.SeasonalFactor("Onion", time.September))
	assert.Equal(t, 1.0, tb.SeasonalFactor("Brinjal", time.January))
}

func TestLoadFromFiles_CSVOverridesBands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bands.csv")
	csv := "Crop,Min Price,Max Price,Avg,Volatility,Cycle Days\n" +
		"Tomato,14,40,24,0.45,80\n" +
		"Brinjal,9,22,14,0.3,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	tb, err := LoadFromFiles(path, "")
	require.NoError(t, err)

	assert.Equal(t, PriceBand{Min: 14, Max: 40, Avg: 24, Volatility: 0.45}, tb.Band("Tomato"))
	assert.Equal(t, 80, tb.CycleDays("Tomato"))

	// New crops join the table; their cycle stays the default when omitted.
	assert.Equal(t, PriceBand{Min: 9, Max: 22, Avg: 14, Volatility: 0.3}, tb.Band("Brinjal"))
	assert.Equal(t, 90, tb.CycleDays("Brinjal"))

	// Crops absent from the file keep the defaults.
	assert.Equal(t, PriceBand{Min: 15, Max: 50, Avg: 28, Volatility: 0.5}, tb.Band("Onion"))
}

func TestLoadFromFiles_CSVMissingColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("crop,min\nTomato,12\n"), 0o644))

	_, err := LoadFromFiles(path, "")
	assert.Error(t, err)
}

func TestLoadFromFiles_XLSXOverridesSeasonal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seasonal.xlsx")

	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	rows := [][]any{
		{"Crop", "Winter", "Spring", "Monsoon", "Autumn"},
		{"Tomato", 1.25, 1.0, 1.05, 0.8},
		{"Brinjal", 1.1, 1.0, 0.95, 1.0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, x.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, x.SaveAs(path))

	tb, err := LoadFromFiles("", path)
	require.NoError(t, err)

	assert.Equal(t, 1.25, tb.SeasonalFactor("Tomato", time.January))
	assert.Equal(t, 0.8, tb.SeasonalFactor("Tomato", time.October))
	assert.Equal(t, 0.95, tb.SeasonalFactor("Brinjal", time.July))
	// Untouched crops keep their built-in factors.
	assert.Equal(t, 1.15, tb.SeasonalFactor("Onion", time.January))
}

func TestLoadFromFiles_EmptyPathsUseDefaults(t *testing.T) {
	tb, err := LoadFromFiles("", "")
	require.NoError(t, err)
	assert.Equal(t, PriceBand{Min: 12, Max: 35, Avg: 20, Volatility: 0.4}, tb.Band("Tomato"))
}
