package market

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// PriceBand is a crop's historical price envelope (INR/kg).
type PriceBand struct {
	Min        float64
	Max        float64
	Avg        float64
	Volatility float64
}

// SeasonFactors are per-season price multipliers for one crop.
type SeasonFactors struct {
	Winter  float64
	Spring  float64
	Monsoon float64
	Autumn  float64
}

// Tables holds the immutable lookup data behind price forecasting. Built once
// at startup and injected; never mutated afterwards.
type Tables struct {
	bands        map[string]PriceBand
	seasonal     map[string]SeasonFactors
	cycleDays    map[string]int
	stateFactors map[string]float64
	stateMarkets map[string][]string
}

const defaultCycleDays = 90

var defaultBand = PriceBand{Min: 10, Max: 30, Avg: 18, Volatility: 0.3}

// DefaultTables returns the built-in dataset covering the five supported
// crops and the four sourcing states.
func DefaultTables() *Tables {
	return &Tables{
		bands: map[string]PriceBand{
			"Tomato":  {Min: 12, Max: 35, Avg: 20, Volatility: 0.4},
			"Onion":   {Min: 15, Max: 50, Avg: 28, Volatility: 0.5},
			"Potato":  {Min: 10, Max: 25, Avg: 16, Volatility: 0.3},
			"Cabbage": {Min: 8, Max: 20, Avg: 12, Volatility: 0.35},
			"Carrot":  {Min: 15, Max: 30, Avg: 22, Volatility: 0.25},
		},
		seasonal: map[string]SeasonFactors{
			"Tomato":  {Winter: 1.2, Spring: 1.0, Monsoon: 1.1, Autumn: 0.85},
			"Onion":   {Winter: 1.15, Spring: 1.05, Monsoon: 0.9, Autumn: 1.3},
			"Potato":  {Winter: 0.95, Spring: 1.0, Monsoon: 1.05, Autumn: 1.1},
			"Cabbage": {Winter: 1.1, Spring: 1.0, Monsoon: 1.0, Autumn: 0.9},
			"Carrot":  {Winter: 1.15, Spring: 1.05, Monsoon: 1.0, Autumn: 0.95},
		},
		cycleDays: map[string]int{
			"Tomato":  75,
			"Onion":   120,
			"Potato":  90,
			"Cabbage": 80,
			"Carrot":  70,
		},
		stateFactors: map[string]float64{
			"Karnataka":      1.05,
			"Maharashtra":    1.08,
			"Tamil Nadu":     1.03,
			"Andhra Pradesh": 1.02,
		},
		stateMarkets: map[string][]string{
			"Karnataka":      {"Bangalore", "Mysore", "Hubli", "Belgaum"},
			"Maharashtra":    {"Mumbai", "Pune", "Nashik", "Nagpur"},
			"Tamil Nadu":     {"Chennai", "Coimbatore", "Madurai", "Salem"},
			"Andhra Pradesh": {"Vijayawada", "Visakhapatnam", "Guntur", "Tirupati"},
		},
	}
}

// LoadFromFiles starts from the defaults and applies optional CSV band
// overrides and an optional XLSX seasonal sheet. Empty paths are skipped.
func LoadFromFiles(bandCSV, seasonalXLSX string) (*Tables, error) {
	t := DefaultTables()
	if bandCSV != "" {
		if err := t.loadBandsCSV(bandCSV); err != nil {
			return nil, err
		}
	}
	if seasonalXLSX != "" {
		if err := t.loadSeasonalXLSX(seasonalXLSX); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Tables) Band(crop string) PriceBand {
	if b, ok := t.bands[crop]; ok {
		return b
	}
	return defaultBand
}

func (t *Tables) CycleDays(crop string) int {
	if d, ok := t.cycleDays[crop]; ok {
		return d
	}
	return defaultCycleDays
}

func (t *Tables) StateFactor(state string) float64 {
	if f, ok := t.stateFactors[state]; ok {
		return f
	}
	return 1.0
}

func (t *Tables) Markets(state string) []string {
	if m, ok := t.stateMarkets[state]; ok {
		return m
	}
	return t.stateMarkets["Karnataka"]
}

// SeasonOf buckets a month: winter Dec-Feb, spring Mar-May, monsoon Jun-Aug,
// autumn Sep-Nov.
func SeasonOf(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "spring"
	case m >= time.June && m <= time.August:
		return "monsoon"
	case m >= time.September && m <= time.November:
		return "autumn"
	}
	return "winter"
}

// SeasonalFactor returns the crop's multiplier for the harvest month, 1.0 for
// unknown crops.
func (t *Tables) SeasonalFactor(crop string, m time.Month) float64 {
	f, ok := t.seasonal[crop]
	if !ok {
		return 1.0
	}
	switch SeasonOf(m) {
	case "spring":
		return f.Spring
	case "monsoon":
		return f.Monsoon
	case "autumn":
		return f.Autumn
	}
	return f.Winter
}

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\ufeff") // BOM
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// loadBandsCSV expects columns crop,min,max,avg,volatility[,cycle_days].
// Header aliases are tolerated the same way the rest of our config loaders do.
func (t *Tables) loadBandsCSV(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return err
	}
	hmap := map[string]int{}
	for i, h := range head {
		hmap[normHeader(h)] = i
	}
	findAny := func(keys ...string) int {
		for _, k := range keys {
			if idx, ok := hmap[normHeader(k)]; ok {
				return idx
			}
		}
		return -1
	}

	cCrop := findAny("crop", "commodity", "crop_type")
	cMin := findAny("min", "min_price")
	cMax := findAny("max", "max_price")
	cAvg := findAny("avg", "avg_price", "average")
	cVol := findAny("volatility", "vol")
	cCyc := findAny("cycle_days", "cycle", "typical_cycle")

	if cCrop == -1 || cMin == -1 || cMax == -1 || cAvg == -1 {
		return fmt.Errorf("price table %s missing required columns, found headers: %v", path, head)
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		get := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		crop := get(cCrop)
		if crop == "" {
			continue
		}
		band := t.Band(crop)
		if v, err := strconv.ParseFloat(get(cMin), 64); err == nil {
			band.Min = v
		}
		if v, err := strconv.ParseFloat(get(cMax), 64); err == nil {
			band.Max = v
		}
		if v, err := strconv.ParseFloat(get(cAvg), 64); err == nil {
			band.Avg = v
		}
		if v, err := strconv.ParseFloat(get(cVol), 64); err == nil {
			band.Volatility = v
		}
		t.bands[crop] = band
		if v, err := strconv.Atoi(get(cCyc)); err == nil && v > 0 {
			t.cycleDays[crop] = v
		}
	}
	return nil
}

// loadSeasonalXLSX reads rows of crop, winter, spring, monsoon, autumn from
// the first sheet.
func (t *Tables) loadSeasonalXLSX(path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	sheet := x.GetSheetName(0)
	rows, err := x.GetRows(sheet)
	if err != nil {
		return err
	}
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue // header or short row
		}
		crop := strings.TrimSpace(row[0])
		if crop == "" {
			continue
		}
		parse := func(s string, def float64) float64 {
			if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
				return v
			}
			return def
		}
		t.seasonal[crop] = SeasonFactors{
			Winter:  parse(row[1], 1.0),
			Spring:  parse(row[2], 1.0),
			Monsoon: parse(row[3], 1.0),
			Autumn:  parse(row[4], 1.0),
		}
	}
	return nil
}
