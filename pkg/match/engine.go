package match

import (
	"context"
	"fmt"
	"math"
	"time"

	gonanoid "github.com/matoous/go-nanoid"
	"go.uber.org/zap"

	"agrilink/entities"
	contractrepo "agrilink/pkg/contract/repository"
	croprepo "agrilink/pkg/crop/repository"
	reqrepo "agrilink/pkg/requirement/repository"
)

const (
	// Crops with less than this much unallocated yield are not worth a
	// contract.
	minAvailableKg = 50.0
	// Grade fraction below this fails the quality gate.
	minGradeFraction = 0.2
	// Cap per contract when the requirement sets no per-farmer minimum.
	defaultPerFarmerCapKg = 1000.0

	defaultPickupTime = "6:00 AM - 10:00 AM"
)

// Scope selects what the engine scans: a single crop against all active
// requirements, a single requirement against all growing crops, or everything
// against everything.
type Scope struct {
	CropID        *uint
	RequirementID *uint
}

// Engine pairs growing crops with active requirements, first-fit in
// nested-loop order, creating a pending contract per hit and mutating crop
// allocation and requirement fulfillment along the way. A crop may match
// several requirements in one run and a requirement may take several crops.
type Engine struct {
	crops     croprepo.CropRepository
	reqs      reqrepo.RequirementRepository
	contracts contractrepo.ContractRepository
	ledger    *AllocationLedger
	log       *zap.SugaredLogger
}

func NewEngine(
	crops croprepo.CropRepository,
	reqs reqrepo.RequirementRepository,
	contracts contractrepo.ContractRepository,
	ledger *AllocationLedger,
	log *zap.SugaredLogger,
) *Engine {
	return &Engine{crops: crops, reqs: reqs, contracts: contracts, ledger: ledger, log: log}
}

// Run returns the contracts created by this invocation. A failure on one
// pair is logged and skipped; it never aborts the rest of the scan. An error
// is returned only when the scoped entities cannot be loaded at all.
func (e *Engine) Run(ctx context.Context, scope Scope) ([]entities.Contract, error) {
	crops, err := e.loadCrops(scope)
	if err != nil {
		return nil, fmt.Errorf("load crops: %w", err)
	}
	reqs, err := e.loadRequirements(scope)
	if err != nil {
		return nil, fmt.Errorf("load requirements: %w", err)
	}

	e.log.Infow("matching run", "crops", len(crops), "requirements", len(reqs))

	var created []entities.Contract
	for ci := range crops {
		crop := &crops[ci]
		for ri := range reqs {
			req := &reqs[ri]
			contract, err := e.matchPair(ctx, crop, req)
			if err != nil {
				e.log.Warnw("pair failed, skipping",
					"crop_id", crop.CropID, "requirement_id", req.RequirementID, "err", err)
				continue
			}
			if contract != nil {
				created = append(created, *contract)
			}
		}
	}

	e.log.Infow("matching complete", "contracts", len(created))
	return created, nil
}

func (e *Engine) loadCrops(scope Scope) ([]entities.Crop, error) {
	if scope.CropID != nil {
		c, err := e.crops.FindByID(*scope.CropID)
		if err != nil {
			return nil, err
		}
		return []entities.Crop{*c}, nil
	}
	return e.crops.FindByStatus(entities.CropGrowing)
}

func (e *Engine) loadRequirements(scope Scope) ([]entities.Requirement, error) {
	if scope.RequirementID != nil {
		r, err := e.reqs.FindByID(*scope.RequirementID)
		if err != nil {
			return nil, err
		}
		return []entities.Requirement{*r}, nil
	}
	return e.reqs.FindByStatus(entities.RequirementActive)
}

// matchPair runs the gates and, on a hit, the allocate-and-persist sequence
// under the ledger locks. Returns (nil, nil) when a gate rejects.
func (e *Engine) matchPair(ctx context.Context, crop *entities.Crop, req *entities.Requirement) (*entities.Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if crop.CropType != req.CropType {
		return nil, nil
	}

	if crop.Prediction == nil {
		e.log.Debugw("crop has no prediction, skipping", "crop_id", crop.CropID)
		return nil, nil
	}

	if !crop.Prediction.MaturityWindow.Overlaps(req.Timeline.StartDate, req.Timeline.EndDate) {
		e.log.Debugw("timeline mismatch", "crop_id", crop.CropID, "requirement_id", req.RequirementID)
		return nil, nil
	}

	if req.QualityGrade != "Any" {
		fraction, ok := crop.Prediction.Quality.Fraction(req.QualityGrade)
		if !ok || fraction < minGradeFraction {
			e.log.Debugw("quality match too low",
				"crop_id", crop.CropID, "grade", req.QualityGrade, "fraction", fraction)
			return nil, nil
		}
	}

	unlock := e.ledger.LockPair(crop.CropID, req.RequirementID)
	defer unlock()

	// Re-read under the lock: a concurrent run may have allocated from this
	// crop or filled this requirement since we loaded it.
	fresh, err := e.crops.FindByID(crop.CropID)
	if err != nil {
		return nil, fmt.Errorf("reload crop: %w", err)
	}
	crop.AllocatedQuantityKg = fresh.AllocatedQuantityKg
	freshReq, err := e.reqs.FindByID(req.RequirementID)
	if err != nil {
		return nil, fmt.Errorf("reload requirement: %w", err)
	}
	req.Fulfillment = freshReq.Fulfillment

	available := crop.Prediction.ExpectedYieldKg - crop.AllocatedQuantityKg
	needed := req.Fulfillment.TotalRequiredKg - req.Fulfillment.MatchedKg

	if available < minAvailableKg {
		e.log.Debugw("available quantity too low", "crop_id", crop.CropID, "available_kg", available)
		return nil, nil
	}

	perFarmerCap := defaultPerFarmerCapKg
	if req.Preferences.MinQuantityPerFarmerKg != nil {
		perFarmerCap = *req.Preferences.MinQuantityPerFarmerKg
	}
	quantity := math.Min(available, math.Min(needed, perFarmerCap))

	e.log.Infow("match found",
		"crop_id", crop.CropID, "requirement_id", req.RequirementID,
		"available_kg", available, "needed_kg", needed, "allocated_kg", quantity)

	contract := &entities.Contract{
		Reference:     newReference(),
		FarmerID:      crop.FarmerID,
		CompanyID:     req.CompanyID,
		CropID:        crop.CropID,
		RequirementID: req.RequirementID,
		Details: entities.ContractDetails{
			CropType:         crop.CropType,
			QualityGrade:     req.QualityGrade,
			QuantityKg:       quantity,
			PricePerKg:       req.Pricing.OfferPrice,
			HarvestDates:     []time.Time{crop.Prediction.MaturityWindow.Start},
			DeliveryLocation: req.Logistics.DeliveryLocation,
			PickupTime:       pickupTime(req),
		},
		Schedule: deliverySchedule(req, quantity, crop.Prediction.MaturityWindow.Start),
		Status:   entities.ContractPending,
	}
	if err := e.contracts.Create(contract); err != nil {
		return nil, fmt.Errorf("save contract: %w", err)
	}

	crop.AllocatedQuantityKg += quantity
	if err := e.crops.Save(crop); err != nil {
		return nil, fmt.Errorf("save crop allocation: %w", err)
	}

	req.Fulfillment.Apply(quantity)
	if err := e.reqs.Save(req); err != nil {
		return nil, fmt.Errorf("save requirement fulfillment: %w", err)
	}
	e.log.Debugw("requirement updated",
		"requirement_id", req.RequirementID, "fulfilled_pct", req.Fulfillment.Percentage)

	return contract, nil
}

func pickupTime(req *entities.Requirement) string {
	if req.Logistics.PreferredDeliveryTime != "" {
		return req.Logistics.PreferredDeliveryTime
	}
	return defaultPickupTime
}

// deliverySchedule expands a Daily pattern into per-day slots starting at the
// harvest date. Other patterns get a single slot.
func deliverySchedule(req *entities.Requirement, quantity float64, start time.Time) []entities.DeliverySlot {
	if req.Quantity.DeliveryPattern == "Daily" && req.Quantity.DailyAmountKg != nil && *req.Quantity.DailyAmountKg > 0 {
		daily := *req.Quantity.DailyAmountKg
		var slots []entities.DeliverySlot
		remaining := quantity
		for day := 0; remaining > 0; day++ {
			amount := math.Min(daily, remaining)
			slots = append(slots, entities.DeliverySlot{
				Date:       start.AddDate(0, 0, day),
				QuantityKg: amount,
				Status:     "Scheduled",
			})
			remaining -= amount
		}
		return slots
	}
	return []entities.DeliverySlot{{Date: start, QuantityKg: quantity, Status: "Scheduled"}}
}

const referenceAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

func newReference() string {
	id, err := gonanoid.Generate(referenceAlphabet, 12)
	if err != nil {
		// Only fails when the OS entropy source does.
		return "CT-UNAVAILABLE"
	}
	return "CT-" + id
}
