package market

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"agrilink/entities"
)

// Quote is a current market price observation for a crop in a state.
type Quote struct {
	CropType     string              `json:"crop_type"`
	State        string              `json:"state"`
	CurrentPrice float64             `json:"current_price"`
	PriceRange   entities.PriceRange `json:"price_range"`
	Markets      []string            `json:"markets,omitempty"`
	Source       string              `json:"source"`
	DataPoints   int                 `json:"data_points"`
	Date         time.Time           `json:"date"`
}

// QuoteProvider yields the current market price for a crop+state.
type QuoteProvider interface {
	Current(ctx context.Context, cropType, state string) (Quote, error)
}

// StaticQuotes answers from the historical band only. Used when no upstream
// is configured and in tests.
type StaticQuotes struct{ Tables *Tables }

func (s StaticQuotes) Current(_ context.Context, cropType, state string) (Quote, error) {
	band := s.Tables.Band(cropType)
	return Quote{
		CropType:     cropType,
		State:        state,
		CurrentPrice: band.Avg,
		PriceRange:   entities.PriceRange{Min: band.Min, Max: band.Max},
		Markets:      s.Tables.Markets(state),
		Source:       "Historical Average",
		DataPoints:   1,
		Date:         time.Now(),
	}, nil
}

const (
	dataGovBase     = "https://api.data.gov.in/resource/9ef84268-d588-465a-a308-a864a43d0070"
	agmarknetPortal = "https://agmarknet.gov.in/SearchCmmMkt.aspx"
)

// MandiQuotes fetches live mandi prices: the data.gov.in API first, then an
// HTML scrape of the Agmarknet portal, then a seeded estimate from the
// historical band. Concurrent lookups for the same crop+state are collapsed.
type MandiQuotes struct {
	apiKey string
	tables *Tables
	http   *http.Client
	log    *zap.SugaredLogger
	group  singleflight.Group
	noise  Noise
	now    func() time.Time
}

func NewMandiQuotes(apiKey string, tables *Tables, noise Noise, log *zap.SugaredLogger) *MandiQuotes {
	return &MandiQuotes{
		apiKey: apiKey,
		tables: tables,
		http:   &http.Client{Timeout: 5 * time.Second},
		log:    log,
		noise:  noise,
		now:    time.Now,
	}
}

func (m *MandiQuotes) Current(ctx context.Context, cropType, state string) (Quote, error) {
	v, err, _ := m.group.Do(cropType+"|"+state, func() (any, error) {
		if m.apiKey != "" {
			if q, err := m.fetchAPI(ctx, cropType, state); err == nil {
				return q, nil
			} else {
				m.log.Debugw("mandi api lookup failed", "crop", cropType, "state", state, "err", err)
			}
		}
		if q, err := m.scrapePortal(ctx, cropType, state); err == nil {
			return q, nil
		} else {
			m.log.Debugw("mandi portal scrape failed", "crop", cropType, "state", state, "err", err)
		}
		return m.estimate(cropType, state), nil
	})
	if err != nil {
		return Quote{}, err
	}
	return v.(Quote), nil
}

type dataGovResp struct {
	Records []struct {
		Market     string `json:"market"`
		ModalPrice string `json:"modal_price"`
	} `json:"records"`
}

func (m *MandiQuotes) fetchAPI(ctx context.Context, cropType, state string) (Quote, error) {
	u, _ := url.Parse(dataGovBase)
	q := u.Query()
	q.Set("api-key", m.apiKey)
	q.Set("format", "json")
	q.Set("limit", "10")
	q.Set("filters[commodity]", cropType)
	q.Set("filters[state]", state)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Quote{}, err
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("data.gov.in status %d", resp.StatusCode)
	}

	var body dataGovResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, err
	}

	var prices []float64
	var markets []string
	for _, r := range body.Records {
		if p, err := strconv.ParseFloat(r.ModalPrice, 64); err == nil {
			prices = append(prices, p)
			markets = append(markets, r.Market)
		}
	}
	if len(prices) == 0 {
		return Quote{}, fmt.Errorf("no usable records for %s/%s", cropType, state)
	}

	sum, min, max := 0.0, prices[0], prices[0]
	for _, p := range prices {
		sum += p
		min = math.Min(min, p)
		max = math.Max(max, p)
	}
	return Quote{
		CropType:     cropType,
		State:        state,
		CurrentPrice: round2(sum / float64(len(prices))),
		PriceRange:   entities.PriceRange{Min: round2(min), Max: round2(max)},
		Markets:      markets,
		Source:       "AgMarkNet",
		DataPoints:   len(prices),
		Date:         m.now(),
	}, nil
}

// scrapePortal pulls the commodity price table off the Agmarknet search page.
// Modal prices sit in the 7th column of the results table.
func (m *MandiQuotes) scrapePortal(ctx context.Context, cropType, state string) (Quote, error) {
	u := fmt.Sprintf("%s?Tx_Commodity=%s&Tx_State=%s", agmarknetPortal, url.QueryEscape(cropType), url.QueryEscape(state))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Quote{}, err
	}
	resp, err := m.http.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Quote{}, fmt.Errorf("agmarknet status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	var prices []float64
	var markets []string
	doc.Find("table.tableagmark_new tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() < 8 {
			return
		}
		modal := strings.TrimSpace(cells.Eq(7).Text())
		if p, err := strconv.ParseFloat(strings.ReplaceAll(modal, ",", ""), 64); err == nil && p > 0 {
			prices = append(prices, p/100) // quintal to kg
			markets = append(markets, strings.TrimSpace(cells.Eq(1).Text()))
		}
	})
	if len(prices) == 0 {
		return Quote{}, fmt.Errorf("no price rows for %s/%s", cropType, state)
	}

	sum, min, max := 0.0, prices[0], prices[0]
	for _, p := range prices {
		sum += p
		min = math.Min(min, p)
		max = math.Max(max, p)
	}
	return Quote{
		CropType:     cropType,
		State:        state,
		CurrentPrice: round2(sum / float64(len(prices))),
		PriceRange:   entities.PriceRange{Min: round2(min), Max: round2(max)},
		Markets:      markets,
		Source:       "Agmarknet Portal",
		DataPoints:   len(prices),
		Date:         m.now(),
	}, nil
}

// estimate synthesizes a plausible price from the historical band: winter
// demand lifts it, monsoon glut cuts it, weekends add a little, and the noise
// source jitters within +/-7.5%.
func (m *MandiQuotes) estimate(cropType, state string) Quote {
	band := m.tables.Band(cropType)
	now := m.now()

	seasonal := 1.0
	switch now.Month() {
	case time.November, time.December, time.January, time.February:
		seasonal = 1.15
	case time.July, time.August, time.September, time.October:
		seasonal = 0.9
	}

	weekday := 1.0
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		weekday = 1.05
	}

	variation := 1 + (m.noise()*0.15 - 0.075)

	price := band.Avg * seasonal * weekday * variation
	return Quote{
		CropType:     cropType,
		State:        state,
		CurrentPrice: round2(price),
		PriceRange:   entities.PriceRange{Min: round2(price * 0.9), Max: round2(price * 1.1)},
		Markets:      m.tables.Markets(state),
		Source:       "Estimated",
		DataPoints:   1,
		Date:         now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
