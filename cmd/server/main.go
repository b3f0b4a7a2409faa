package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"agrilink/config"
	"agrilink/database"
	"agrilink/router"

	authCtrlImp "agrilink/pkg/auth/controllerImp"
	companyRepoImp "agrilink/pkg/company/repositoryImp"
	contractCtrlImp "agrilink/pkg/contract/controllerImp"
	contractRepoImp "agrilink/pkg/contract/repositoryImp"
	contractSvcImp "agrilink/pkg/contract/serviceImp"
	cropCtrlImp "agrilink/pkg/crop/controllerImp"
	cropRepoImp "agrilink/pkg/crop/repositoryImp"
	farmerCtrlImp "agrilink/pkg/farmer/controllerImp"
	farmerRepoImp "agrilink/pkg/farmer/repositoryImp"
	healthCtrlImp "agrilink/pkg/health/controllerImp"
	priceCtrlImp "agrilink/pkg/price/controllerImp"
	reqCtrlImp "agrilink/pkg/requirement/controllerImp"
	reqRepoImp "agrilink/pkg/requirement/repositoryImp"

	"agrilink/pkg/logging"
	"agrilink/pkg/market"
	"agrilink/pkg/match"
	"agrilink/pkg/prediction"
	"agrilink/pkg/weather"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger := logging.New(cfg.Debug)
	defer logger.Sync()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Price tables (built-in defaults + optional overrides)
	tables, err := market.LoadFromFiles(cfg.PriceTableCSV, cfg.PriceTableXLSX)
	if err != nil {
		log.Fatalf("load price tables: %v", err)
	}

	// 4) Providers: live when keys are configured, static otherwise
	var weatherProvider weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		weatherProvider = weather.NewOpenWeather(cfg.OpenWeatherAPIKey, logger)
	} else {
		weatherProvider = weather.NewStatic(1.0)
	}

	noise := market.NewNoise(time.Now().UnixNano())
	var quotes market.QuoteProvider
	if cfg.DataGovAPIKey != "" {
		quotes = market.NewMandiQuotes(cfg.DataGovAPIKey, tables, noise, logger)
	} else {
		quotes = market.StaticQuotes{Tables: tables}
	}
	forecaster := market.NewForecaster(quotes, tables, noise, logger)

	predictor := prediction.New(
		weatherProvider,
		forecaster,
		prediction.StrategyByName(cfg.QualityStrategy),
		logger,
	)

	// 5) Repos
	farmerRepo := farmerRepoImp.New(db)
	companyRepo := companyRepoImp.New(db)
	cropRepo := cropRepoImp.New(db)
	reqRepo := reqRepoImp.New(db)
	contractRepo := contractRepoImp.New(db)

	// 6) Match engine + contract lifecycle
	engine := match.NewEngine(cropRepo, reqRepo, contractRepo, match.NewLedger(), logger)
	contractSvc := contractSvcImp.New(contractRepo, farmerRepo, logger)

	// 7) Controllers
	authCtrl := authCtrlImp.New(farmerRepo, companyRepo, cfg.JWTSecret, logger)
	cropCtrl := cropCtrlImp.New(cropRepo, farmerRepo, predictor, engine, logger)
	reqCtrl := reqCtrlImp.New(reqRepo, engine, logger)
	contractCtrl := contractCtrlImp.New(contractRepo, contractSvc)
	farmerCtrl := farmerCtrlImp.New(farmerRepo)
	priceCtrl := priceCtrlImp.New(quotes, forecaster)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 8) Echo + routes
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	r := router.New(
		e,
		cfg.JWTSecret,
		cfg.AuthDevBypass,
		authCtrl,
		cropCtrl,
		reqCtrl,
		contractCtrl,
		farmerCtrl,
		priceCtrl,
		healthCtrl,
	)

	// 9) Start
	logger.Infow("listening", "port", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
