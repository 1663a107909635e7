package cmd

import (
	"database/sql"
	"drawdowncycles/api"
	"drawdowncycles/internal/ingest"
	"drawdowncycles/internal/repository"
	"drawdowncycles/internal/service"
	"drawdowncycles/internal/util"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func CloseDependencies(handler *api.ApiHandler) {
	err := handler.Db.Close()
	if err != nil {
		zap.S().Fatalw("failed to close db", "error", err)
	}
}

func InitializeDependencies() (*api.ApiHandler, *util.Secrets, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	priceRepository := repository.NewHistoricalPriceRepository(dbConn)
	tickerRepository := repository.NewTickerRepository(dbConn)
	dataFreshnessRepository := repository.NewDataFreshnessRepository(dbConn)
	ingestRunRepository := repository.NewIngestRunRepository(dbConn)

	cycleService := service.NewCycleService(priceRepository, service.NewCycleCache())
	simulationService := service.NewSimulationService(priceRepository)
	ingestService := service.NewIngestService(
		dbConn,
		priceRepository,
		tickerRepository,
		dataFreshnessRepository,
		ingestRunRepository,
		ingest.NewYahooBarSource(),
	)

	apiHandler := &api.ApiHandler{
		Db:                        dbConn,
		CycleService:              cycleService,
		SimulationService:         simulationService,
		IngestService:             ingestService,
		ApiRequestRepository:      repository.ApiRequestRepositoryHandler{},
		LatencyTrackingRepository: repository.NewLatencyTrackingRepository(dbConn),
	}

	return apiHandler, secrets, nil
}
