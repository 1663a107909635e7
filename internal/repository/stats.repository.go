package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type UsageStats struct {
	TotalRequests  int `json:"totalRequests"`
	UniqueClients  int `json:"uniqueClients"`
	SimulationsRun int `json:"simulationsRun"`
}

func GetUsageStats(ctx context.Context, db *sql.DB) (*UsageStats, error) {
	query := `select
	(select count(*) from api_request) as "total_requests",
	(select count(distinct ip_address) from api_request) as "unique_clients",
	(select count(*) from api_request where route = '/simulate' and status_code = 200) as "simulations_run";`

	row := db.QueryRowContext(ctx, query)

	out := UsageStats{}

	err := row.Scan(&out.TotalRequests, &out.UniqueClients, &out.SimulationsRun)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	return &out, nil
}
