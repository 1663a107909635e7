package integration_tests

import (
	"drawdowncycles/internal/ingest"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// writeStooqFile writes one close per weekday starting at start, in the
// layout stooq uses for its daily bulk download
func writeStooqFile(dir, exchangeDir, ticker string, start time.Time, closes []float64) error {
	rows := []ingest.StooqRow{}
	date := start
	for _, c := range closes {
		for date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			date = date.AddDate(0, 0, 1)
		}
		rows = append(rows, ingest.StooqRow{
			Ticker:  ticker,
			Per:     "D",
			Date:    date.Format("20060102"),
			Time:    "000000",
			Open:    fmt.Sprintf("%.2f", c),
			High:    fmt.Sprintf("%.2f", c),
			Low:     fmt.Sprintf("%.2f", c),
			Close:   fmt.Sprintf("%.2f", c),
			Vol:     "1000",
			OpenInt: "0",
		})
		date = date.AddDate(0, 0, 1)
	}

	target := filepath.Join(dir, exchangeDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(target, strings.ToLower(ticker)+".txt"))
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}
