package entities

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDataset    = errors.New("dataset has no funds")
	ErrDuplicateFund   = errors.New("duplicate fund")
	ErrMissingReturn   = errors.New("missing return value")
	ErrDuplicatePeriod = errors.New("duplicate period")
)

type FundRecord struct {
	Name    string                     `json:"name"`
	Ticker  string                     `json:"ticker"`
	Returns map[Period]decimal.Decimal `json:"returns"`
}

// Dataset is the wide table: one row per fund, one column per period.
// It is built once and must not be mutated afterwards.
type Dataset struct {
	Funds   []FundRecord `json:"funds"`
	Periods []Period     `json:"periods"`
}

func (d Dataset) FundNames() []string {
	names := make([]string, 0, len(d.Funds))
	for _, f := range d.Funds {
		names = append(names, f.Name)
	}

	return names
}

func (d Dataset) Fund(name string) (FundRecord, bool) {
	for _, f := range d.Funds {
		if f.Name == name {
			return f, true
		}
	}

	return FundRecord{}, false
}

// Validate checks that names and tickers are unique and that every fund
// carries a value for every period.
func (d Dataset) Validate() error {
	if len(d.Funds) == 0 {
		return ErrEmptyDataset
	}

	periods := make(map[Period]struct{}, len(d.Periods))
	for _, p := range d.Periods {
		if _, ok := periods[p]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicatePeriod, p)
		}
		periods[p] = struct{}{}
	}

	names := make(map[string]struct{}, len(d.Funds))
	tickers := make(map[string]struct{}, len(d.Funds))
	for _, f := range d.Funds {
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("%w: name %q", ErrDuplicateFund, f.Name)
		}
		if _, ok := tickers[f.Ticker]; ok {
			return fmt.Errorf("%w: ticker %q", ErrDuplicateFund, f.Ticker)
		}
		names[f.Name] = struct{}{}
		tickers[f.Ticker] = struct{}{}

		for _, p := range d.Periods {
			if _, ok := f.Returns[p]; !ok {
				return fmt.Errorf("%w: %s %s", ErrMissingReturn, f.Ticker, p)
			}
		}
	}

	return nil
}

// Selection is what the user ticked in the two filters. It lives for a
// single render pass.
type Selection struct {
	Periods []Period `json:"periods"`
	Funds   []string `json:"funds"`
}

// DefaultSelection picks every fund and the YTD and 1-Year periods.
func DefaultSelection(d Dataset, periods ...Period) Selection {
	if len(periods) == 0 {
		periods = DefaultPeriods
	}

	sel := Selection{Funds: d.FundNames()}
	for _, p := range periods {
		if d.HasPeriod(p) {
			sel.Periods = append(sel.Periods, p)
		}
	}

	return sel
}

func (d Dataset) HasPeriod(p Period) bool {
	for _, dp := range d.Periods {
		if dp == p {
			return true
		}
	}

	return false
}

type LongRecord struct {
	Fund   string          `json:"fund"`
	Ticker string          `json:"ticker"`
	Period Period          `json:"period"`
	Return decimal.Decimal `json:"return"`
}

type TableRow struct {
	Fund    string            `json:"fund"`
	Ticker  string            `json:"ticker"`
	Returns []decimal.Decimal `json:"returns"`
}

// TableSpec is the filtered wide table indexed by fund name. Returns in
// each row line up with Columns.
type TableSpec struct {
	Columns []Period   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

type ChartSeries struct {
	Fund   string    `json:"fund"`
	Ticker string    `json:"ticker"`
	Color  string    `json:"color"`
	Values []float64 `json:"values"`
}

type ChartSpec struct {
	Title       string        `json:"title"`
	XAxisTitle  string        `json:"x_axis_title"`
	YAxisTitle  string        `json:"y_axis_title"`
	LegendTitle string        `json:"legend_title"`
	BarMode     string        `json:"bar_mode"`
	Categories  []Period      `json:"categories"`
	Series      []ChartSeries `json:"series"`
}

func (c ChartSpec) IsEmpty() bool {
	return len(c.Categories) == 0 || len(c.Series) == 0
}

type View struct {
	Selection Selection    `json:"selection"`
	Records   []LongRecord `json:"records"`
	Chart     ChartSpec    `json:"chart"`
	Table     TableSpec    `json:"table"`
}

type RenderEvent struct {
	ID      string    `json:"id"`
	Periods []Period  `json:"periods"`
	Funds   []string  `json:"funds"`
	Records int       `json:"records"`
	At      time.Time `json:"at"`
}
