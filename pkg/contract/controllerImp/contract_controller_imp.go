package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"agrilink/entities"
	contractrepo "agrilink/pkg/contract/repository"
	"agrilink/pkg/contract/service"
)

type ContractCtrl struct {
	contracts contractrepo.ContractRepository
	svc       service.ContractService
}

func New(contracts contractrepo.ContractRepository, svc service.ContractService) *ContractCtrl {
	return &ContractCtrl{contracts: contracts, svc: svc}
}

func (h *ContractCtrl) ListFarmer(c echo.Context) error {
	uid := c.Get("uid").(uint)
	cs, err := h.contracts.FindByFarmer(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"contracts": cs})
}

func (h *ContractCtrl) ListCompany(c echo.Context) error {
	uid := c.Get("uid").(uint)
	cs, err := h.contracts.FindByCompany(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"contracts": cs})
}

func (h *ContractCtrl) ListByRequirement(c echo.Context) error {
	uid := c.Get("uid").(uint)
	reqID, _ := strconv.Atoi(c.Param("id"))
	cs, err := h.contracts.FindByRequirement(uint(reqID), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"contracts": cs})
}

func (h *ContractCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	contract, err := h.contracts.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "contract not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"contract": contract})
}

// Confirm: farmer accepts a pending contract.
func (h *ContractCtrl) Confirm(c echo.Context) error {
	uid := c.Get("uid").(uint)
	id, _ := strconv.Atoi(c.Param("id"))

	contract, err := h.svc.Confirm(c.Request().Context(), uint(id), uid)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"contract": contract,
		"message":  "Contract confirmed successfully",
	})
}

type completeReq struct {
	QualityCheck entities.QualityCheck `json:"quality_check"`
}

// Complete: company closes out a confirmed contract, releasing the balance
// payment to the farmer's wallet.
func (h *ContractCtrl) Complete(c echo.Context) error {
	uid := c.Get("uid").(uint)
	id, _ := strconv.Atoi(c.Param("id"))

	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}

	contract, err := h.svc.Complete(c.Request().Context(), uint(id), uid, req.QualityCheck)
	if err != nil {
		return transitionError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"contract": contract,
		"message":  "Contract completed and payment released",
	})
}

func transitionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrNotParty):
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "contract not found"})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
