package ingest

import (
	"drawdowncycles/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const stooqSample = `<TICKER>,<PER>,<DATE>,<TIME>,<OPEN>,<HIGH>,<LOW>,<CLOSE>,<VOL>,<OPENINT>
AAPL.US,D,19840907,000000,0.100763,0.101999,0.0995155,0.100763,97676041.2,0
AAPL.US,D,19840910,000000,0.100763,0.101071,0.0983143,0.100165,75812543.7,0
AAPL.US,D,1984091,000000,0.1,0.1,0.1,0.1,1,0
AAPL.US,D,19840912,000000,0.1,0.1,0.1,oops,1,0
AAPL.US,D,19840913
`

func TestParseStooq(t *testing.T) {
	t.Run("valid rows are kept and bad rows counted", func(t *testing.T) {
		parsed, err := ParseStooq(strings.NewReader(stooqSample), "aapl.us.txt")
		require.NoError(t, err)

		require.Equal(t, "AAPL", parsed.Symbol)
		require.Len(t, parsed.Prices, 2)
		require.Equal(t, 3, parsed.ErrorCount)

		first := parsed.Prices[0]
		require.Equal(t, "AAPL", first.Symbol)
		require.Equal(t, util.NewDate(1984, 9, 7), first.Date)
		require.Equal(t, 0.100763, first.Close)
		require.Equal(t, 0.101999, *first.High)
		require.Equal(t, int64(97676041), *first.Volume)
	})

	t.Run("non positive and non finite closes are malformed rows", func(t *testing.T) {
		in := `<TICKER>,<PER>,<DATE>,<TIME>,<OPEN>,<HIGH>,<LOW>,<CLOSE>,<VOL>,<OPENINT>
SPY.US,D,20200102,000000,100,100,100,100,1,0
SPY.US,D,20200103,000000,1,1,1,0,1,0
SPY.US,D,20200106,000000,1,1,1,-5,1,0
SPY.US,D,20200107,000000,1,1,1,nan,1,0
SPY.US,D,20200108,000000,1,1,1,inf,1,0
`
		parsed, err := ParseStooq(strings.NewReader(in), "spy.us.txt")
		require.NoError(t, err)

		require.Len(t, parsed.Prices, 1)
		require.Equal(t, 100.0, parsed.Prices[0].Close)
		require.Equal(t, 4, parsed.ErrorCount)
	})

	t.Run("header only", func(t *testing.T) {
		parsed, err := ParseStooq(
			strings.NewReader("<TICKER>,<PER>,<DATE>,<TIME>,<OPEN>,<HIGH>,<LOW>,<CLOSE>,<VOL>,<OPENINT>\n"),
			"spy.us.txt",
		)
		require.NoError(t, err)
		require.Equal(t, "SPY", parsed.Symbol)
		require.Empty(t, parsed.Prices)
		require.Equal(t, 0, parsed.ErrorCount)
	})
}

func TestNormalizeSymbol(t *testing.T) {
	require.Equal(t, "AAPL", NormalizeSymbol("aapl.us.txt"))
	require.Equal(t, "BRK-B", NormalizeSymbol("BRK-B.US"))
	require.Equal(t, "QQQ", NormalizeSymbol(" qqq "))
}

func TestListStooqFiles(t *testing.T) {
	root := t.TempDir()
	write := func(rel string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(stooqSample), 0o644))
	}
	write("nasdaq stocks/1/aapl.us.txt")
	write("nyse etfs/spy.us.txt")
	write("unknown/x.us.txt")
	write("nasdaq stocks/readme.md")

	files, err := ListStooqFiles(root)
	require.NoError(t, err)
	require.Len(t, files, 3)

	exchanges := map[string]*string{}
	for _, f := range files {
		exchanges[filepath.Base(f.Path)] = f.Exchange
	}
	require.Equal(t, "NASDAQ", *exchanges["aapl.us.txt"])
	require.Equal(t, "NYSE", *exchanges["spy.us.txt"])
	require.Nil(t, exchanges["x.us.txt"])
}
