package weather

import (
	"context"

	"agrilink/entities"
)

// Provider yields a multiplicative yield factor for a field location.
// Implementations must never fail: on any upstream problem they return the
// neutral factor 1.0 so yield prediction always succeeds.
type Provider interface {
	Impact(ctx context.Context, loc *entities.GeoPoint) float64
}

type static struct{ factor float64 }

// NewStatic returns a provider with a fixed factor. Used when no API key is
// configured and in tests.
func NewStatic(factor float64) Provider { return static{factor} }

func (s static) Impact(context.Context, *entities.GeoPoint) float64 { return s.factor }

// Describe maps a weather factor onto the label shown to farmers.
func Describe(factor float64) string {
	switch {
	case factor > 1.05:
		return "Favorable"
	case factor < 0.9:
		return "Challenging"
	}
	return "Normal"
}
