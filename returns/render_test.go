package returns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glbter/fund-returns/entities"
)

func TestRender_Default(t *testing.T) {
	ds := loadDataset(t)

	view := Render(ds, entities.DefaultSelection(ds))

	assert.Equal(t, []entities.Period{entities.YTD, entities.Year1}, view.Selection.Periods)
	assert.Equal(t, ds.FundNames(), view.Selection.Funds)
	assert.Len(t, view.Records, 10)
	assert.Len(t, view.Table.Rows, 5)

	chart := view.Chart
	assert.Equal(t, ChartTitle, chart.Title)
	assert.Equal(t, "Time Period", chart.XAxisTitle)
	assert.Equal(t, "Return (%)", chart.YAxisTitle)
	assert.Equal(t, "Funds", chart.LegendTitle)
	assert.Equal(t, "group", chart.BarMode)
	assert.Equal(t, []entities.Period{entities.YTD, entities.Year1}, chart.Categories)
	require.Len(t, chart.Series, 5)
	assert.Equal(t, "VTTVX", chart.Series[0].Ticker)
	assert.Equal(t, []float64{9.44, 9.44}, chart.Series[0].Values)
	assert.Equal(t, []float64{13.91, 13.91}, chart.Series[4].Values)
}

func TestRender_Empty(t *testing.T) {
	ds := loadDataset(t)

	view := Render(ds, entities.Selection{Funds: ds.FundNames()})

	assert.Empty(t, view.Records)
	assert.True(t, view.Chart.IsEmpty())
	assert.NotNil(t, view.Chart.Series)
	assert.Empty(t, view.Table.Rows)
	assert.Equal(t, ds.FundNames(), view.Selection.Funds)
}

func TestRender_StableColors(t *testing.T) {
	ds := loadDataset(t)

	all := Render(ds, entities.DefaultSelection(ds))
	one := Render(ds, entities.Selection{
		Periods: []entities.Period{entities.YTD},
		Funds:   []string{fund2035},
	})

	require.Len(t, one.Chart.Series, 1)
	assert.Equal(t, all.Chart.Series[2].Color, one.Chart.Series[0].Color)

	seen := map[string]bool{}
	for _, s := range all.Chart.Series {
		assert.False(t, seen[s.Color], "color %s reused", s.Color)
		seen[s.Color] = true
	}
}

func TestChart_NegativeValues(t *testing.T) {
	ds := loadDataset(t)

	view := Render(ds, entities.Selection{
		Periods: []entities.Period{entities.Month1, entities.Month3},
		Funds:   []string{fund2045},
	})

	require.Len(t, view.Chart.Series, 1)
	assert.Equal(t, []float64{-2.6, -1.46}, view.Chart.Series[0].Values)
}
