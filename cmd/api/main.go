package main

import (
	"drawdowncycles/cmd"
	"drawdowncycles/internal/scheduler"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	lg := zap.S()
	lg.Infow("starting api", "commitHash", os.Getenv("commit_hash"))

	apiHandler, secrets, err := cmd.InitializeDependencies()
	if err != nil {
		lg.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	if secrets.PriceRefreshCron != "" {
		s := scheduler.New(lg)
		err = s.AddJob(secrets.PriceRefreshCron, scheduler.NewPriceRefreshJob(apiHandler.IngestService))
		if err != nil {
			lg.Fatalw("invalid price refresh schedule", "schedule", secrets.PriceRefreshCron, "error", err)
		}
		s.Start()
		defer s.Stop()
	}

	err = apiHandler.StartApi(secrets.Port)
	if err != nil {
		lg.Fatal(err)
	}
}
