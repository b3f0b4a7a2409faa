package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"agrilink/entities"
	farmerrepo "agrilink/pkg/farmer/repository"
)

type FarmerCtrl struct {
	farmers farmerrepo.FarmerRepository
}

func New(farmers farmerrepo.FarmerRepository) *FarmerCtrl { return &FarmerCtrl{farmers} }

func (h *FarmerCtrl) Profile(c echo.Context) error {
	uid := c.Get("uid").(uint)
	f, err := h.farmers.FindByID(uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"farmer": f})
}

type updateReq struct {
	Name           *string            `json:"name"`
	Village        *string            `json:"village"`
	District       *string            `json:"district"`
	State          *string            `json:"state"`
	Language       *string            `json:"language"`
	TotalLandAcres *float64           `json:"total_land_acres"`
	SoilType       *string            `json:"soil_type"`
	IrrigationType *string            `json:"irrigation_type"`
	GPSLocation    *entities.GeoPoint `json:"gps_location"`
}

func (h *FarmerCtrl) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(uint)
	f, err := h.farmers.FindByID(uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}

	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name != nil {
		f.Name = *req.Name
	}
	if req.Village != nil {
		f.Village = *req.Village
	}
	if req.District != nil {
		f.District = *req.District
	}
	if req.State != nil {
		f.State = *req.State
	}
	if req.Language != nil {
		f.Language = *req.Language
	}
	if req.TotalLandAcres != nil {
		f.TotalLandAcres = *req.TotalLandAcres
	}
	if req.SoilType != nil {
		f.SoilType = *req.SoilType
	}
	if req.IrrigationType != nil {
		f.IrrigationType = *req.IrrigationType
	}
	if req.GPSLocation != nil {
		f.GPSLocation = req.GPSLocation
	}

	if err := h.farmers.Save(f); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"farmer": f})
}

func (h *FarmerCtrl) Wallet(c echo.Context) error {
	uid := c.Get("uid").(uint)
	f, err := h.farmers.FindByID(uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "farmer not found"})
	}
	txs, err := h.farmers.Transactions(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"balance":      f.WalletBalance,
		"transactions": txs,
	})
}
