package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"agrilink/entities"
	"agrilink/pkg/match"
	reqrepo "agrilink/pkg/requirement/repository"
)

type RequirementCtrl struct {
	reqs   reqrepo.RequirementRepository
	engine *match.Engine
	log    *zap.SugaredLogger
}

func New(reqs reqrepo.RequirementRepository, engine *match.Engine, log *zap.SugaredLogger) *RequirementCtrl {
	return &RequirementCtrl{reqs: reqs, engine: engine, log: log}
}

type postReq struct {
	CropType     string                `json:"crop_type"`
	QualityGrade string                `json:"quality_grade"`
	QualitySpecs entities.QualitySpecs `json:"quality_specs"`
	Quantity     entities.DemandedQty  `json:"quantity"`
	Pricing      entities.Pricing      `json:"pricing"`
	Logistics    entities.Logistics    `json:"logistics"`
	Timeline     entities.Timeline     `json:"timeline"`
	Preferences  entities.Preferences  `json:"preferences"`
}

// Create posts a sourcing requirement and immediately scans growing crops
// for matches. Matching failures are logged, not surfaced: the requirement
// stands either way.
func (h *RequirementCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(uint)

	var req postReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.CropType == "" || req.QualityGrade == "" || req.Quantity.TotalKg <= 0 || req.Pricing.OfferPrice <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "crop_type, quality_grade, quantity.total_kg and pricing.offer_price are required"})
	}
	if req.Timeline.StartDate.IsZero() || req.Timeline.EndDate.IsZero() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "timeline start and end dates are required"})
	}

	r := &entities.Requirement{
		CompanyID:    uid,
		CropType:     req.CropType,
		QualityGrade: req.QualityGrade,
		QualitySpecs: req.QualitySpecs,
		Quantity:     req.Quantity,
		Pricing:      req.Pricing,
		Logistics:    req.Logistics,
		Timeline:     req.Timeline,
		Preferences:  req.Preferences,
		Fulfillment: entities.Fulfillment{
			TotalRequiredKg: req.Quantity.TotalKg,
			Status:          entities.FulfillmentPending,
		},
		Status: entities.RequirementActive,
	}
	if err := h.reqs.Create(r); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	matches, err := h.engine.Run(c.Request().Context(), match.Scope{RequirementID: &r.RequirementID})
	if err != nil {
		h.log.Warnw("matching failed after requirement post", "requirement_id", r.RequirementID, "err", err)
		return c.JSON(http.StatusCreated, map[string]any{
			"requirement": r,
			"matches":     0,
			"message":     "Requirement posted successfully.",
		})
	}

	message := "Requirement posted successfully. We'll notify you when farmers are found."
	if len(matches) > 0 {
		message = "Great! Matched with " + strconv.Itoa(len(matches)) + " farmer(s)!"
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"requirement": r,
		"matches":     len(matches),
		"message":     message,
	})
}

func (h *RequirementCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(uint)
	reqs, err := h.reqs.FindByCompany(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"requirements": reqs})
}

func (h *RequirementCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	r, err := h.reqs.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "requirement not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"requirement": r})
}
