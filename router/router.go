package router

import (
	"github.com/labstack/echo/v4"

	"agrilink/pkg/auth"
	authctrl "agrilink/pkg/auth/controller"
	"agrilink/pkg/middleware"
)

func New(
	e *echo.Echo,
	jwtSecret string,
	devBypass bool,
	authCtrl authctrl.AuthController,
	cropCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
		Progress(echo.Context) error
	},
	reqCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
		Get(echo.Context) error
	},
	contractCtrl interface {
		ListFarmer(echo.Context) error
		ListCompany(echo.Context) error
		ListByRequirement(echo.Context) error
		Get(echo.Context) error
		Confirm(echo.Context) error
		Complete(echo.Context) error
	},
	farmerCtrl interface {
		Profile(echo.Context) error
		UpdateProfile(echo.Context) error
		Wallet(echo.Context) error
	},
	priceCtrl interface {
		Current(echo.Context) error
		Forecast(echo.Context) error
		Trends(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.POST("/auth/farmer/register", authCtrl.RegisterFarmer)
	e.POST("/auth/farmer/login", authCtrl.LoginFarmer)
	e.POST("/auth/company/register", authCtrl.RegisterCompany)
	e.POST("/auth/company/login", authCtrl.LoginCompany)

	api := e.Group("/api", middleware.JWT(jwtSecret, devBypass))

	farmer := api.Group("/farmer", middleware.RequireRole(auth.RoleFarmer))
	farmer.GET("/profile", farmerCtrl.Profile)
	farmer.PATCH("/profile", farmerCtrl.UpdateProfile)
	farmer.GET("/wallet", farmerCtrl.Wallet)
	farmer.POST("/crops", cropCtrl.Create)
	farmer.GET("/crops", cropCtrl.List)
	farmer.GET("/crops/:id", cropCtrl.Get)
	farmer.POST("/crops/:id/progress", cropCtrl.Progress)
	farmer.GET("/contracts", contractCtrl.ListFarmer)
	farmer.POST("/contracts/:id/confirm", contractCtrl.Confirm)

	company := api.Group("/company", middleware.RequireRole(auth.RoleCompany))
	company.POST("/requirements", reqCtrl.Create)
	company.GET("/requirements", reqCtrl.List)
	company.GET("/requirements/:id", reqCtrl.Get)
	company.GET("/requirements/:id/contracts", contractCtrl.ListByRequirement)
	company.GET("/contracts", contractCtrl.ListCompany)
	company.POST("/contracts/:id/complete", contractCtrl.Complete)

	api.GET("/contracts/:id", contractCtrl.Get)

	api.GET("/prices/current", priceCtrl.Current)
	api.GET("/prices/forecast", priceCtrl.Forecast)
	api.GET("/prices/trends", priceCtrl.Trends)

	return e
}
