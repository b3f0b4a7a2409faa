package controllerImp

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrilink/entities"
	croprepo "agrilink/pkg/crop/repository"
	farmerrepo "agrilink/pkg/farmer/repository"
	"agrilink/pkg/match"
	"agrilink/pkg/prediction"
)

// revisionThreshold is the relative change in expected yield that re-triggers
// matching after a progress update.
const revisionThreshold = 0.15

type CropCtrl struct {
	crops     croprepo.CropRepository
	farmers   farmerrepo.FarmerRepository
	predictor *prediction.Service
	engine    *match.Engine
	log       *zap.SugaredLogger
}

func New(crops croprepo.CropRepository, farmers farmerrepo.FarmerRepository, predictor *prediction.Service, engine *match.Engine, log *zap.SugaredLogger) *CropCtrl {
	return &CropCtrl{crops: crops, farmers: farmers, predictor: predictor, engine: engine, log: log}
}

type createReq struct {
	CropType        string             `json:"crop_type"`
	Variety         string             `json:"variety"`
	AreaAcres       float64            `json:"area_acres"`
	PlantingDate    string             `json:"planting_date"` // 2006-01-02
	FieldLocation   *entities.GeoPoint `json:"field_location"`
	SeedType        string             `json:"seed_type"`
	IrrigationPlan  string             `json:"irrigation_plan"`
	FertilizersUsed []string           `json:"fertilizers_used"`
	PesticidesUsed  []string           `json:"pesticides_used"`
	PreviousYieldKg *float64           `json:"previous_yield_kg"`
	PreviousQuality string             `json:"previous_quality"`
}

// Create adds a crop, predicts its yield/price, then runs matching. Matching
// failures do not fail the request: the crop is listed either way and the
// farmer is notified when a buyer turns up later.
func (h *CropCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(uint)

	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	plantingDate, err := time.Parse("2006-01-02", req.PlantingDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "planting_date must be YYYY-MM-DD"})
	}

	farmer, err := h.farmers.FindByID(uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}

	crop := &entities.Crop{
		FarmerID:            uid,
		CropType:            req.CropType,
		Variety:             req.Variety,
		AreaAcres:           req.AreaAcres,
		PlantingDate:        plantingDate,
		ExpectedHarvestDate: prediction.ExpectedHarvestDate(plantingDate),
		FieldLocation:       req.FieldLocation,
		SeedType:            req.SeedType,
		IrrigationPlan:      req.IrrigationPlan,
		FertilizersUsed:     req.FertilizersUsed,
		PesticidesUsed:      req.PesticidesUsed,
		PreviousYieldKg:     req.PreviousYieldKg,
		PreviousQuality:     req.PreviousQuality,
		Status:              entities.CropGrowing,
	}

	pred, err := h.predictor.Predict(c.Request().Context(), crop, farmerContext(farmer))
	if err != nil {
		if errors.Is(err, prediction.ErrValidation) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	crop.Prediction = pred

	if err := h.crops.Create(crop); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	matches, err := h.engine.Run(c.Request().Context(), match.Scope{CropID: &crop.CropID})
	if err != nil {
		h.log.Warnw("matching failed after crop create", "crop_id", crop.CropID, "err", err)
		return c.JSON(http.StatusCreated, map[string]any{
			"crop":    crop,
			"matches": 0,
			"message": "Crop added successfully.",
		})
	}

	message := "Crop added successfully. We'll notify you when a buyer is found."
	if len(matches) > 0 {
		message = "Great! Your crop matched with " + strconv.Itoa(len(matches)) + " contract(s)!"
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"crop":    crop,
		"matches": len(matches),
		"message": message,
	})
}

func (h *CropCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(uint)
	crops, err := h.crops.FindByFarmer(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"crops": crops})
}

func (h *CropCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	crop, err := h.crops.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"crop": crop})
}

type progressReq struct {
	Health        string   `json:"health"`
	PestIssues    bool     `json:"pest_issues"`
	WeatherImpact string   `json:"weather_impact"`
	Photos        []string `json:"photos"`
}

// Progress appends an update and re-predicts. A yield revision above the
// threshold relative to the previous prediction re-runs matching for this
// crop.
func (h *CropCtrl) Progress(c echo.Context) error {
	uid := c.Get("uid").(uint)
	id, _ := strconv.Atoi(c.Param("id"))

	crop, err := h.crops.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "crop not found"})
	}
	if crop.FarmerID != uid {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "not your crop"})
	}

	var req progressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	crop.ProgressUpdates = append(crop.ProgressUpdates, entities.ProgressUpdate{
		Date:          time.Now(),
		Health:        req.Health,
		PestIssues:    req.PestIssues,
		WeatherImpact: req.WeatherImpact,
		Photos:        req.Photos,
	})

	farmer, err := h.farmers.FindByID(crop.FarmerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	oldYield := 0.0
	if crop.Prediction != nil {
		oldYield = crop.Prediction.ExpectedYieldKg
	}
	pred, err := h.predictor.Predict(c.Request().Context(), crop, farmerContext(farmer))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	crop.Prediction = pred

	if err := h.crops.Save(crop); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if oldYield > 0 && math.Abs(pred.ExpectedYieldKg-oldYield)/oldYield > revisionThreshold {
		h.log.Infow("significant yield revision, re-running matching",
			"crop_id", crop.CropID, "old_kg", oldYield, "new_kg", pred.ExpectedYieldKg)
		if _, err := h.engine.Run(c.Request().Context(), match.Scope{CropID: &crop.CropID}); err != nil {
			h.log.Warnw("re-match failed", "crop_id", crop.CropID, "err", err)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{"crop": crop})
}

func farmerContext(f *entities.Farmer) prediction.FarmerContext {
	return prediction.FarmerContext{
		SoilType:       f.SoilType,
		IrrigationType: f.IrrigationType,
		State:          f.State,
		Location:       f.GPSLocation,
	}
}
