package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/glbter/fund-returns/entities"
)

const (
	fundColumn   = "Fund"
	tickerColumn = "Ticker"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrUnknownPeriod = errors.New("unknown period")
	ErrNoRows        = errors.New("no fund rows")
)

// FundRepo reads the wide returns table from a CSV file with a
// "Fund,Ticker,<period>..." header.
type FundRepo struct {
	Path string
}

func NewFundRepo(path string) FundRepo {
	return FundRepo{Path: path}
}

func (r FundRepo) GetFunds(_ context.Context) (entities.Dataset, error) {
	f, err := os.Open(r.Path)
	if err != nil {
		return entities.Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadFunds(f)
	if err != nil {
		return entities.Dataset{}, fmt.Errorf("read %s: %w", r.Path, err)
	}

	return ds, nil
}

// ReadFunds parses and validates a returns table.
func ReadFunds(rd io.Reader) (entities.Dataset, error) {
	csvReader := csv.NewReader(rd)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return entities.Dataset{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return entities.Dataset{}, fmt.Errorf("%w: %s", ErrMissingColumn, fundColumn)
	}

	header := records[0]
	fundIdx, tickerIdx := -1, -1
	periodIdx := make([]int, 0, len(header))
	periods := make([]entities.Period, 0, len(header))

	for i, col := range header {
		col = strings.TrimSpace(col)
		switch col {
		case fundColumn:
			fundIdx = i
		case tickerColumn:
			tickerIdx = i
		default:
			p, err := entities.ParsePeriod(col)
			if err != nil {
				return entities.Dataset{}, fmt.Errorf("%w: column %d %q", ErrUnknownPeriod, i+1, col)
			}
			periods = append(periods, p)
			periodIdx = append(periodIdx, i)
		}
	}

	if fundIdx < 0 {
		return entities.Dataset{}, fmt.Errorf("%w: %s", ErrMissingColumn, fundColumn)
	}
	if tickerIdx < 0 {
		return entities.Dataset{}, fmt.Errorf("%w: %s", ErrMissingColumn, tickerColumn)
	}
	if len(records) == 1 {
		return entities.Dataset{}, ErrNoRows
	}

	ds := entities.Dataset{
		Funds:   make([]entities.FundRecord, 0, len(records)-1),
		Periods: periods,
	}

	for n, line := range records[1:] {
		returns := make(map[entities.Period]decimal.Decimal, len(periods))
		for j, idx := range periodIdx {
			v, err := decimal.NewFromString(strings.TrimSpace(line[idx]))
			if err != nil {
				return entities.Dataset{}, fmt.Errorf("parse %s on line %d: %w", periods[j], n+2, err)
			}
			returns[periods[j]] = v
		}

		ds.Funds = append(ds.Funds, entities.FundRecord{
			Name:    strings.TrimSpace(line[fundIdx]),
			Ticker:  strings.TrimSpace(line[tickerIdx]),
			Returns: returns,
		})
	}

	if err := ds.Validate(); err != nil {
		return entities.Dataset{}, fmt.Errorf("validate dataset: %w", err)
	}

	return ds, nil
}
