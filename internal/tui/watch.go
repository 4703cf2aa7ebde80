// Package tui holds the live watch-mode table: a bubbletea program fed
// by the websocket trade stream, repainting on a fixed tick.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/tickwatch/internal/config"
)

// Column widths for the watch table.
const (
	colWidthTicker  = 8
	colWidthName    = 28
	colWidthPrice   = 14
	colWidthPercent = 14
	colWidthMetric  = 10
)

// tableChromeHeight covers the header row plus border.
const tableChromeHeight = 2

// WatchItem is one ticker's static data plus its live price. Reference
// prices (previous close, YTD, ten-year) stay fixed while Price moves
// with the trade stream, so percent changes are re-derived per repaint.
type WatchItem struct {
	Symbol       string
	Name         string
	Price        float64
	PrevClose    float64
	EPS          *float64
	PERatio      *float64
	Dividend     *float64
	YTDPrice     *float64
	TenYearPrice *float64

	// Unavailable marks a ticker whose static fetch failed; its row
	// renders an error message and ignores price updates.
	Unavailable bool
}

// PriceMsg delivers a live trade price into the model.
type PriceMsg struct {
	Symbol string
	Price  float64
}

// tickMsg drives the periodic repaint.
type tickMsg time.Time

// Model is the bubbletea model for watch mode.
type Model struct {
	items    []WatchItem
	index    map[string]int // symbol -> first items index
	columns  config.Columns
	interval time.Duration
	updates  <-chan PriceMsg
	table    table.Model
}

// NewWatchModel builds the watch table over the statically fetched
// items. Live prices arrive on updates; the view repaints every
// interval.
func NewWatchModel(
	items []WatchItem,
	columns config.Columns,
	interval time.Duration,
	updates <-chan PriceMsg,
) *Model {
	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, ok := index[item.Symbol]; !ok {
			index[item.Symbol] = i
		}
	}

	tbl := table.New(
		table.WithColumns(watchColumns(columns)),
		table.WithFocused(true),
		table.WithHeight(len(items)+tableChromeHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = TableHeaderStyle
	styles.Selected = TableSelectedStyle
	tbl.SetStyles(styles)

	m := &Model{
		items:    items,
		index:    index,
		columns:  columns,
		interval: interval,
		updates:  updates,
		table:    tbl,
	}
	m.table.SetRows(m.rows())
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForPrice(), m.tick())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case PriceMsg:
		m.applyPrice(msg)
		return m, m.waitForPrice()
	case tickMsg:
		m.table.SetRows(m.rows())
		return m, m.tick()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	return m.table.View() + "\n" + FooterStyle.Render("q to quit") + "\n"
}

// applyPrice updates every row for the symbol; duplicate tickers share
// one live price.
func (m *Model) applyPrice(msg PriceMsg) {
	for i := range m.items {
		if m.items[i].Symbol == msg.Symbol && !m.items[i].Unavailable {
			m.items[i].Price = msg.Price
		}
	}
	m.table.SetRows(m.rows())
}

// waitForPrice blocks on the update channel as a tea command. A closed
// channel ends the subscription quietly.
func (m *Model) waitForPrice() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchColumns mirrors the render layer's column rules: base columns
// always, optional ones per settings.
func watchColumns(cols config.Columns) []table.Column {
	columns := []table.Column{
		{Title: "Ticker", Width: colWidthTicker},
		{Title: "Company Name", Width: colWidthName},
		{Title: "Current Price", Width: colWidthPrice},
		{Title: "Daily % Change", Width: colWidthPercent},
	}
	if cols.EPS {
		columns = append(columns, table.Column{Title: "EPS", Width: colWidthMetric})
	}
	if cols.PERatio {
		columns = append(columns, table.Column{Title: "PE Ratio", Width: colWidthMetric})
	}
	if cols.Dividend {
		columns = append(columns, table.Column{Title: "Dividend", Width: colWidthMetric})
	}
	if cols.YTDChange {
		columns = append(columns, table.Column{Title: "YTD % Change", Width: colWidthPercent})
	}
	if cols.TenYearChange {
		columns = append(columns, table.Column{Title: "10-Year % Change", Width: colWidthPercent + 2})
	}
	return columns
}

func (m *Model) rows() []table.Row {
	rows := make([]table.Row, len(m.items))
	for i, item := range m.items {
		rows[i] = m.row(item)
	}
	return rows
}

func (m *Model) row(item WatchItem) table.Row {
	width := 4 + optionalCount(m.columns)
	cells := make(table.Row, width)
	cells[0] = item.Symbol
	if item.Unavailable {
		cells[1] = "Data unavailable"
		for i := 2; i < width; i++ {
			cells[i] = ""
		}
		return cells
	}

	name := item.Name
	if name == "" {
		name = item.Symbol
	}
	cells[1] = name
	cells[2] = fmt.Sprintf("%.2f", item.Price)
	cells[3] = renderPercent(liveChange(item.Price, &item.PrevClose))

	next := 4
	if m.columns.EPS {
		cells[next] = renderMetric(item.EPS)
		next++
	}
	if m.columns.PERatio {
		cells[next] = renderMetric(item.PERatio)
		next++
	}
	if m.columns.Dividend {
		cells[next] = renderMetric(item.Dividend)
		next++
	}
	if m.columns.YTDChange {
		cells[next] = renderPercent(liveChange(item.Price, item.YTDPrice))
		next++
	}
	if m.columns.TenYearChange {
		cells[next] = renderPercent(liveChange(item.Price, item.TenYearPrice))
	}
	return cells
}

func optionalCount(cols config.Columns) int {
	count := 0
	for _, enabled := range []bool{cols.EPS, cols.PERatio, cols.Dividend, cols.YTDChange, cols.TenYearChange} {
		if enabled {
			count++
		}
	}
	return count
}

// liveChange recomputes a percent change against a fixed reference
// price, nil when the reference is missing or zero.
func liveChange(price float64, ref *float64) *float64 {
	if ref == nil || *ref == 0 {
		return nil
	}
	change := (price - *ref) / *ref * 100
	return &change
}

func renderPercent(v *float64) string {
	if v == nil {
		return "N/A"
	}
	formatted := fmt.Sprintf("%.2f%%", *v)
	switch {
	case *v > 0:
		return GainStyle.Render(formatted)
	case *v < 0:
		return LossStyle.Render(formatted)
	default:
		return formatted
	}
}

func renderMetric(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}
