package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/tickwatch/internal/logging"
)

// ErrNoTickers is returned by commands when the ticker list resolves to
// empty, whether the file is missing, empty, or fully invalid.
var ErrNoTickers = errors.New("no tickers to process")

// TickerSpec is one entry of tickers.yaml. Entries are either a plain
// symbol string or a mapping with symbol and an optional display name:
//
//	- AAPL
//	- symbol: VOO
//	  name: Vanguard S&P 500 ETF
//
// A non-empty Name suppresses the company profile lookup for the symbol.
type TickerSpec struct {
	Symbol string
	Name   string
}

// UnmarshalYAML accepts both entry forms. Scalar nodes become the
// symbol; mapping nodes must carry a non-empty symbol key.
func (t *TickerSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Symbol = value.Value
		t.Name = ""
		return nil
	case yaml.MappingNode:
		var raw struct {
			Symbol string `yaml:"symbol"`
			Name   string `yaml:"name"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		if strings.TrimSpace(raw.Symbol) == "" {
			return errors.New("ticker mapping is missing a symbol")
		}
		t.Symbol = raw.Symbol
		t.Name = raw.Name
		return nil
	default:
		return fmt.Errorf("ticker entry must be a string or a mapping, got line %d", value.Line)
	}
}

// LoadTickers reads the ticker list, preserving file order. Symbols are
// trimmed and uppercased. Invalid entries are skipped with a warning
// rather than failing the load; a missing or malformed file yields an
// empty list. Duplicate symbols are kept as independent entries.
func LoadTickers(ctx context.Context, path string) []TickerSpec {
	log := logging.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("Ticker file not found")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("Failed to read ticker file")
		}
		return nil
	}

	var nodes []yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to parse ticker file")
		return nil
	}

	tickers := make([]TickerSpec, 0, len(nodes))
	for i := range nodes {
		var spec TickerSpec
		if err := nodes[i].Decode(&spec); err != nil {
			log.Warn().Err(err).Int("entry", i+1).Str("path", path).Msg("Skipping invalid ticker entry")
			continue
		}
		spec.Symbol = strings.ToUpper(strings.TrimSpace(spec.Symbol))
		if spec.Symbol == "" {
			log.Warn().Int("entry", i+1).Str("path", path).Msg("Skipping ticker entry with empty symbol")
			continue
		}
		tickers = append(tickers, spec)
	}
	return tickers
}

// SaveTickers writes the ticker list to path, using the short scalar
// form for entries without a display name.
func SaveTickers(path string, tickers []TickerSpec) error {
	doc := make([]any, 0, len(tickers))
	for _, t := range tickers {
		if t.Name == "" {
			doc = append(doc, t.Symbol)
			continue
		}
		doc = append(doc, map[string]string{"symbol": t.Symbol, "name": t.Name})
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal ticker list: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write ticker file: %w", err)
	}
	return nil
}
