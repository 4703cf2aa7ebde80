package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTickers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), TickersFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTickersScalarAndMappingForms(t *testing.T) {
	path := writeTickers(t, `
- AAPL
- symbol: VOO
  name: Vanguard S&P 500 ETF
- MSFT
`)

	tickers := LoadTickers(context.Background(), path)

	require.Len(t, tickers, 3)
	assert.Equal(t, TickerSpec{Symbol: "AAPL"}, tickers[0])
	assert.Equal(t, TickerSpec{Symbol: "VOO", Name: "Vanguard S&P 500 ETF"}, tickers[1])
	assert.Equal(t, TickerSpec{Symbol: "MSFT"}, tickers[2])
}

func TestLoadTickersPreservesFileOrder(t *testing.T) {
	path := writeTickers(t, "- ZZZ\n- AAA\n- MMM\n")

	tickers := LoadTickers(context.Background(), path)

	require.Len(t, tickers, 3)
	assert.Equal(t, "ZZZ", tickers[0].Symbol)
	assert.Equal(t, "AAA", tickers[1].Symbol)
	assert.Equal(t, "MMM", tickers[2].Symbol)
}

func TestLoadTickersNormalizesSymbols(t *testing.T) {
	path := writeTickers(t, "- \"  aapl \"\n- symbol: \" brk.b\"\n  name: Berkshire\n")

	tickers := LoadTickers(context.Background(), path)

	require.Len(t, tickers, 2)
	assert.Equal(t, "AAPL", tickers[0].Symbol)
	assert.Equal(t, "BRK.B", tickers[1].Symbol)
}

func TestLoadTickersSkipsInvalidEntries(t *testing.T) {
	path := writeTickers(t, `
- AAPL
- name: missing the symbol key
- "   "
- [not, a, ticker]
- MSFT
`)

	tickers := LoadTickers(context.Background(), path)

	require.Len(t, tickers, 2, "invalid entries are skipped, not fatal")
	assert.Equal(t, "AAPL", tickers[0].Symbol)
	assert.Equal(t, "MSFT", tickers[1].Symbol)
}

func TestLoadTickersKeepsDuplicates(t *testing.T) {
	path := writeTickers(t, "- AAPL\n- AAPL\n")

	tickers := LoadTickers(context.Background(), path)

	assert.Len(t, tickers, 2)
}

func TestLoadTickersMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), TickersFileName)

	assert.Empty(t, LoadTickers(context.Background(), path))
}

func TestLoadTickersMalformedFile(t *testing.T) {
	path := writeTickers(t, "{{{ not yaml")

	assert.Empty(t, LoadTickers(context.Background(), path))
}

func TestSaveTickersRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), TickersFileName)
	original := []TickerSpec{
		{Symbol: "AAPL"},
		{Symbol: "VOO", Name: "Vanguard S&P 500 ETF"},
	}

	require.NoError(t, SaveTickers(path, original))
	loaded := LoadTickers(context.Background(), path)

	assert.Equal(t, original, loaded)
}

func TestSaveTickersScalarFormForUnnamedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), TickersFileName)
	require.NoError(t, SaveTickers(path, []TickerSpec{{Symbol: "AAPL"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- AAPL")
	assert.NotContains(t, string(data), "symbol:")
}
