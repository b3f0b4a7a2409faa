package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	RegisterFarmer(c echo.Context) error
	LoginFarmer(c echo.Context) error
	RegisterCompany(c echo.Context) error
	LoginCompany(c echo.Context) error
}
