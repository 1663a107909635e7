package ingest

import (
	"drawdowncycles/internal/db/models/postgres/public/model"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
)

// StooqRow is one line of a stooq daily text file
type StooqRow struct {
	Ticker  string `csv:"<TICKER>"`
	Per     string `csv:"<PER>"`
	Date    string `csv:"<DATE>"`
	Time    string `csv:"<TIME>"`
	Open    string `csv:"<OPEN>"`
	High    string `csv:"<HIGH>"`
	Low     string `csv:"<LOW>"`
	Close   string `csv:"<CLOSE>"`
	Vol     string `csv:"<VOL>"`
	OpenInt string `csv:"<OPENINT>"`
}

var stooqExchanges = map[string]string{
	"nasdaq stocks":  "NASDAQ",
	"nyse stocks":    "NYSE",
	"nysemkt stocks": "NYSEMKT",
	"nasdaq etfs":    "NASDAQ",
	"nyse etfs":      "NYSE",
	"nysemkt etfs":   "NYSEMKT",
}

// ExchangeFromDir maps a stooq top level directory name to its exchange
func ExchangeFromDir(dirName string) *string {
	exchange, ok := stooqExchanges[strings.ToLower(strings.TrimSpace(dirName))]
	if !ok {
		return nil
	}
	return &exchange
}

// NormalizeSymbol strips the stooq market suffix, e.g. "aapl.us" -> "AAPL"
func NormalizeSymbol(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, ".TXT")
	return strings.TrimSuffix(s, ".US")
}

type ParsedFile struct {
	Symbol string
	Prices []model.HistoricalPrice
	// rows that could not be parsed and were skipped
	ErrorCount int
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseOptionalFloat(s string) *float64 {
	f, err := parseFloat(s)
	if err != nil {
		return nil
	}
	return &f
}

func (r StooqRow) toHistoricalPrice() (*model.HistoricalPrice, error) {
	if r.Ticker == "" || r.Date == "" {
		return nil, fmt.Errorf("missing ticker or date")
	}
	date, err := time.Parse("20060102", strings.TrimSpace(r.Date))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	closePrice, err := parseFloat(r.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid close %q on %s: %w", r.Close, r.Date, err)
	}
	if math.IsNaN(closePrice) || math.IsInf(closePrice, 0) || closePrice <= 0 {
		return nil, fmt.Errorf("close must be a positive number, got %q on %s", r.Close, r.Date)
	}

	out := &model.HistoricalPrice{
		Symbol: NormalizeSymbol(r.Ticker),
		Date:   date,
		Open:   parseOptionalFloat(r.Open),
		High:   parseOptionalFloat(r.High),
		Low:    parseOptionalFloat(r.Low),
		Close:  closePrice,
	}
	if vol, err := parseFloat(r.Vol); err == nil {
		v := int64(vol)
		out.Volume = &v
	}

	return out, nil
}

// ParseStooq reads one stooq file. malformed rows are counted and skipped,
// only an unreadable file is an error
func ParseStooq(in io.Reader, fallbackSymbol string) (*ParsedFile, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows := []StooqRow{}
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse stooq file: %w", err)
	}

	out := &ParsedFile{
		Symbol: NormalizeSymbol(fallbackSymbol),
		Prices: []model.HistoricalPrice{},
	}
	for _, r := range rows {
		p, err := r.toHistoricalPrice()
		if err != nil {
			out.ErrorCount++
			continue
		}
		out.Symbol = p.Symbol
		out.Prices = append(out.Prices, *p)
	}

	return out, nil
}

func ParseStooqFile(path string) (*ParsedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	parsed, err := ParseStooq(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return parsed, nil
}

type StooqFile struct {
	Path     string
	Exchange *string
}

// ListStooqFiles walks root recursively for .txt files. the exchange comes
// from the first directory level under root
func ListStooqFiles(root string) ([]StooqFile, error) {
	out := []StooqFile{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		var exchange *string
		if len(parts) > 1 {
			exchange = ExchangeFromDir(parts[0])
		}

		out = append(out, StooqFile{
			Path:     path,
			Exchange: exchange,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out, nil
}
