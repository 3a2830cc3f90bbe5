package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glbter/fund-returns/entities"
)

func TestFundRepo_GetFunds(t *testing.T) {
	ds, err := FundRepo{}.GetFunds(context.Background())
	require.NoError(t, err)
	require.NoError(t, ds.Validate())

	assert.Len(t, ds.Funds, 5)
	assert.Equal(t, entities.Periods, ds.Periods)
	assert.Equal(t, []string{
		"Vanguard Target Retirement 2025 Fund",
		"Vanguard Target Retirement 2030 Fund",
		"Vanguard Target Retirement 2035 Fund",
		"Vanguard Target Retirement 2040 Fund",
		"Vanguard Target Retirement 2045 Fund",
	}, ds.FundNames())

	tickers := make([]string, 0, len(ds.Funds))
	for _, f := range ds.Funds {
		tickers = append(tickers, f.Ticker)
		assert.Len(t, f.Returns, len(entities.Periods), f.Ticker)
	}
	assert.Equal(t, []string{"VTTVX", "VTHRX", "VTTHX", "VFORX", "VTIVX"}, tickers)
}

func TestFundRepo_GetFunds_Values(t *testing.T) {
	ds, err := FundRepo{}.GetFunds(context.Background())
	require.NoError(t, err)

	tests := []struct {
		fund   string
		period entities.Period
		want   string
	}{
		{"Vanguard Target Retirement 2025 Fund", entities.Month1, "-2.02"},
		{"Vanguard Target Retirement 2030 Fund", entities.Month3, "-1.69"},
		{"Vanguard Target Retirement 2035 Fund", entities.Year5, "7.2"},
		{"Vanguard Target Retirement 2040 Fund", entities.YTD, "12.88"},
		{"Vanguard Target Retirement 2045 Fund", entities.Year3, "4"},
		{"Vanguard Target Retirement 2045 Fund", entities.Year15, "9.56"},
	}

	for _, tt := range tests {
		t.Run(tt.fund+" "+tt.period.String(), func(t *testing.T) {
			f, ok := ds.Fund(tt.fund)
			require.True(t, ok)
			assert.True(t, f.Returns[tt.period].Equal(decimal.RequireFromString(tt.want)),
				"got %s", f.Returns[tt.period])
		})
	}
}

func TestFundRepo_GetFunds_FreshCopy(t *testing.T) {
	first, err := FundRepo{}.GetFunds(context.Background())
	require.NoError(t, err)

	first.Funds[0].Returns[entities.YTD] = decimal.Zero
	first.Periods[0] = "changed"

	second, err := FundRepo{}.GetFunds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9.44", second.Funds[0].Returns[entities.YTD].String())
	assert.Equal(t, entities.Month1, second.Periods[0])
}
