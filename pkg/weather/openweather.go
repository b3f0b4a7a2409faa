package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrilink/entities"
)

const openWeatherBase = "https://api.openweathermap.org/data/2.5"

// OpenWeather derives a yield factor from current conditions plus the short
// forecast. Temperature sweet spot is 20-30C; heavy rain and storms pull the
// factor down. Result is capped to [0.6, 1.2].
type OpenWeather struct {
	apiKey string
	http   *http.Client
	log    *zap.SugaredLogger
}

func NewOpenWeather(apiKey string, log *zap.SugaredLogger) *OpenWeather {
	return &OpenWeather{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 5 * time.Second},
		log:    log,
	}
}

type currentResp struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Rain struct {
		OneH float64 `json:"1h"`
	} `json:"rain"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

type forecastResp struct {
	List []struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Rain struct {
			ThreeH float64 `json:"3h"`
		} `json:"rain"`
	} `json:"list"`
}

func (w *OpenWeather) Impact(ctx context.Context, loc *entities.GeoPoint) float64 {
	if loc == nil || w.apiKey == "" {
		return 1.0
	}

	var cur currentResp
	if err := w.getJSON(ctx, fmt.Sprintf("%s/weather?lat=%f&lon=%f&appid=%s&units=metric", openWeatherBase, loc.Lat, loc.Lng, w.apiKey), &cur); err != nil {
		w.log.Warnw("weather lookup failed, using neutral factor", "err", err)
		return 1.0
	}
	var fc forecastResp
	if err := w.getJSON(ctx, fmt.Sprintf("%s/forecast?lat=%f&lon=%f&appid=%s&units=metric", openWeatherBase, loc.Lat, loc.Lng, w.apiKey), &fc); err != nil {
		w.log.Warnw("forecast lookup failed, using neutral factor", "err", err)
		return 1.0
	}

	factor := 1.0

	switch {
	case cur.Main.Temp < 15 || cur.Main.Temp > 35:
		factor *= 0.85
	case cur.Main.Temp >= 20 && cur.Main.Temp <= 30:
		factor *= 1.1
	}

	switch {
	case cur.Rain.OneH > 50:
		factor *= 0.8
	case cur.Rain.OneH > 10:
		factor *= 1.05
	}

	if len(cur.Weather) > 0 {
		main := strings.ToLower(cur.Weather[0].Main)
		if strings.Contains(main, "storm") || strings.Contains(main, "extreme") {
			factor *= 0.7
		}
	}

	// Next ~2 days of 3h slots.
	rainy, extreme := 0, 0
	list := fc.List
	if len(list) > 14 {
		list = list[:14]
	}
	for _, item := range list {
		if item.Rain.ThreeH > 10 {
			rainy++
		}
		if item.Main.Temp > 38 || item.Main.Temp < 10 {
			extreme++
		}
	}
	if rainy > 4 {
		factor *= 0.9
	}
	if extreme > 3 {
		factor *= 0.85
	}

	if factor < 0.6 {
		factor = 0.6
	}
	if factor > 1.2 {
		factor = 1.2
	}
	return factor
}

func (w *OpenWeather) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := w.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather api status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
