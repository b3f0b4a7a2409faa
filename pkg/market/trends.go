package market

type TrendPoint struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Market string  `json:"market"`
}

// HistoricalTrends synthesizes a daily price series from the crop's
// historical average: small daily jitter over a gradual upward drift.
// A stand-in until per-day mandi history is ingested.
func (f *Forecaster) HistoricalTrends(cropType string, days int, state string) []TrendPoint {
	if days <= 0 {
		days = 30
	}
	band := f.tables.Band(cropType)
	markets := f.tables.Markets(state)
	market := "Local Market"
	if len(markets) > 0 {
		market = markets[0]
	}

	now := f.now()
	points := make([]TrendPoint, 0, days+1)
	for i := days; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		daily := 1 + (f.noise()*0.1 - 0.05)
		drift := 1 + float64(days-i)/float64(days)*0.1
		points = append(points, TrendPoint{
			Date:   date.Format("2006-01-02"),
			Price:  round2(band.Avg * daily * drift),
			Market: market,
		})
	}
	return points
}
