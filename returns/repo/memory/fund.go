package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/glbter/fund-returns/entities"
)

type FundRepo struct {
}

type fundRow struct {
	name    string
	ticker  string
	returns []string
}

// Columns follow entities.Periods.
var funds = []fundRow{
	{"Vanguard Target Retirement 2025 Fund", "VTTVX", []string{"-2.02", "-1.64", "9.44", "9.44", "1.92", "5.66", "6.32", "7.61"}},
	{"Vanguard Target Retirement 2030 Fund", "VTHRX", []string{"-2.28", "-1.69", "10.64", "10.64", "2.44", "6.44", "6.92", "8.19"}},
	{"Vanguard Target Retirement 2035 Fund", "VTTHX", []string{"-2.38", "-1.61", "11.78", "11.78", "2.97", "7.2", "7.51", "8.75"}},
	{"Vanguard Target Retirement 2040 Fund", "VFORX", []string{"-2.48", "-1.5", "12.88", "12.88", "3.51", "7.97", "8.08", "9.23"}},
	{"Vanguard Target Retirement 2045 Fund", "VTIVX", []string{"-2.6", "-1.46", "13.91", "13.91", "4.0", "8.73", "8.57", "9.56"}},
}

// GetFunds returns the compiled-in table. Every call builds a fresh copy.
func (FundRepo) GetFunds(_ context.Context) (entities.Dataset, error) {
	ds := entities.Dataset{
		Funds:   make([]entities.FundRecord, 0, len(funds)),
		Periods: append([]entities.Period(nil), entities.Periods...),
	}

	for _, f := range funds {
		returns := make(map[entities.Period]decimal.Decimal, len(ds.Periods))
		for i, p := range ds.Periods {
			returns[p] = decimal.RequireFromString(f.returns[i])
		}

		ds.Funds = append(ds.Funds, entities.FundRecord{
			Name:    f.name,
			Ticker:  f.ticker,
			Returns: returns,
		})
	}

	return ds, nil
}
