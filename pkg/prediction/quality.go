package prediction

import "agrilink/entities"

// QualityInput carries the signals the adjusted strategy consumes. The fixed
// baseline ignores it entirely.
type QualityInput struct {
	CropType        string
	SoilType        string
	RainProbability float64
}

// QualityStrategy predicts the grade split of a harvest.
//
// Two strategies exist and are deliberately not merged: the production path
// has always used the fixed baseline, while the crop/weather-adjusted
// heuristic shipped alongside it unused. Which one should be canonical is an
// open product decision, so both stay selectable by name.
type QualityStrategy interface {
	Name() string
	Distribute(in QualityInput) entities.QualityDistribution
}

type fixedBaseline struct{}

// FixedBaseline returns the constant 35/50/15 split used by the main path.
func FixedBaseline() QualityStrategy { return fixedBaseline{} }

func (fixedBaseline) Name() string { return "baseline" }

func (fixedBaseline) Distribute(QualityInput) entities.QualityDistribution {
	return entities.QualityDistribution{GradeA: 0.35, GradeB: 0.50, GradeC: 0.15}
}

type adjusted struct{}

// Adjusted starts from a per-crop base split and shifts it for rain risk and
// sandy soil, then renormalizes.
func Adjusted() QualityStrategy { return adjusted{} }

func (adjusted) Name() string { return "adjusted" }

var adjustedBase = map[string]entities.QualityDistribution{
	"Tomato": {GradeA: 0.35, GradeB: 0.42, GradeC: 0.23},
	"Onion":  {GradeA: 0.40, GradeB: 0.35, GradeC: 0.25},
	"Potato": {GradeA: 0.30, GradeB: 0.50, GradeC: 0.20},
}

func (adjusted) Distribute(in QualityInput) entities.QualityDistribution {
	d, ok := adjustedBase[in.CropType]
	if !ok {
		d = adjustedBase["Tomato"]
	}
	if in.RainProbability > 0.3 {
		d.GradeC += 0.15
	}
	if in.SoilType == "Sandy" {
		d.GradeA -= 0.10
	}
	total := d.GradeA + d.GradeB + d.GradeC
	return entities.QualityDistribution{
		GradeA: d.GradeA / total,
		GradeB: d.GradeB / total,
		GradeC: d.GradeC / total,
	}
}

// StrategyByName resolves a configured strategy name, defaulting to the
// baseline.
func StrategyByName(name string) QualityStrategy {
	if name == "adjusted" {
		return Adjusted()
	}
	return FixedBaseline()
}
