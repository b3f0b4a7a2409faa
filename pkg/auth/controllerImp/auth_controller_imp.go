package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"agrilink/entities"
	"agrilink/pkg/auth"
	companyrepo "agrilink/pkg/company/repository"
	farmerrepo "agrilink/pkg/farmer/repository"
)

type AuthCtrl struct {
	farmers   farmerrepo.FarmerRepository
	companies companyrepo.CompanyRepository
	secret    string
	log       *zap.SugaredLogger
}

func New(farmers farmerrepo.FarmerRepository, companies companyrepo.CompanyRepository, secret string, log *zap.SugaredLogger) *AuthCtrl {
	return &AuthCtrl{farmers: farmers, companies: companies, secret: secret, log: log}
}

type farmerRegisterReq struct {
	Name           string             `json:"name"`
	Phone          string             `json:"phone"`
	PIN            string             `json:"pin"`
	Village        string             `json:"village"`
	District       string             `json:"district"`
	State          string             `json:"state"`
	Language       string             `json:"language"`
	TotalLandAcres float64            `json:"total_land_acres"`
	SoilType       string             `json:"soil_type"`
	IrrigationType string             `json:"irrigation_type"`
	GPSLocation    *entities.GeoPoint `json:"gps_location"`
}

func (h *AuthCtrl) RegisterFarmer(c echo.Context) error {
	var req farmerRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name == "" || req.Phone == "" || len(req.PIN) < 4 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name, phone and a 4+ digit pin are required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	language := req.Language
	if language == "" {
		language = "English"
	}
	f := &entities.Farmer{
		PINHash:        string(hash),
		Name:           req.Name,
		Phone:          req.Phone,
		Village:        req.Village,
		District:       req.District,
		State:          req.State,
		Language:       language,
		TotalLandAcres: req.TotalLandAcres,
		SoilType:       req.SoilType,
		IrrigationType: req.IrrigationType,
		GPSLocation:    req.GPSLocation,
	}
	if err := h.farmers.Create(f); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "phone already registered"})
	}

	token, err := auth.Issue(h.secret, f.FarmerID, auth.RoleFarmer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	h.log.Infow("farmer registered", "farmer_id", f.FarmerID)
	return c.JSON(http.StatusCreated, map[string]any{"token": token, "farmer": f})
}

type farmerLoginReq struct {
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

func (h *AuthCtrl) LoginFarmer(c echo.Context) error {
	var req farmerLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.farmers.FindByPhone(req.Phone)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid phone or pin"})
	}
	if bcrypt.CompareHashAndPassword([]byte(f.PINHash), []byte(req.PIN)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid phone or pin"})
	}
	token, err := auth.Issue(h.secret, f.FarmerID, auth.RoleFarmer)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "farmer": f})
}

type companyRegisterReq struct {
	CompanyName        string `json:"company_name"`
	RegistrationNumber string `json:"registration_number"`
	CompanyType        string `json:"company_type"`
	GSTNumber          string `json:"gst_number"`
	Street             string `json:"street"`
	City               string `json:"city"`
	State              string `json:"state"`
	Pincode            string `json:"pincode"`
	ContactName        string `json:"contact_name"`
	ContactDesignation string `json:"contact_designation"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	Password           string `json:"password"`
}

func (h *AuthCtrl) RegisterCompany(c echo.Context) error {
	var req companyRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.CompanyName == "" || req.RegistrationNumber == "" || req.ContactEmail == "" || len(req.Password) < 8 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "company name, registration number, contact email and an 8+ char password are required"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	co := &entities.Company{
		PasswordHash:       string(hash),
		CompanyName:        req.CompanyName,
		RegistrationNumber: req.RegistrationNumber,
		CompanyType:        req.CompanyType,
		GSTNumber:          req.GSTNumber,
		Street:             req.Street,
		City:               req.City,
		State:              req.State,
		Pincode:            req.Pincode,
		ContactName:        req.ContactName,
		ContactDesignation: req.ContactDesignation,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		VerificationStatus: "Verified",
	}
	if err := h.companies.Create(co); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "email or registration number already registered"})
	}

	token, err := auth.Issue(h.secret, co.CompanyID, auth.RoleCompany)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	h.log.Infow("company registered", "company_id", co.CompanyID)
	return c.JSON(http.StatusCreated, map[string]any{"token": token, "company": co})
}

type companyLoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthCtrl) LoginCompany(c echo.Context) error {
	var req companyLoginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	co, err := h.companies.FindByEmail(req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	}
	if bcrypt.CompareHashAndPassword([]byte(co.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	}
	token, err := auth.Issue(h.secret, co.CompanyID, auth.RoleCompany)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "company": co})
}
