package returns

import (
	"github.com/glbter/fund-returns/entities"
)

const (
	ChartTitle  = "Fund Returns by Time Period"
	XAxisTitle  = "Time Period"
	YAxisTitle  = "Return (%)"
	LegendTitle = "Funds"
	BarMode     = "group"
)

// Palette holds the fund colors. A fund's color depends on its position in
// the dataset so it does not change when other funds are deselected.
var Palette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

func FundColor(ds entities.Dataset, name string) string {
	for i, f := range ds.Funds {
		if f.Name == name {
			return Palette[i%len(Palette)]
		}
	}

	return Palette[0]
}

// Render runs one full pass of the dashboard for a selection.
func Render(ds entities.Dataset, sel entities.Selection) entities.View {
	records := Reshape(ds, sel)
	table := Table(ds, sel)

	return entities.View{
		Selection: Normalize(ds, sel),
		Records:   records,
		Chart:     Chart(ds, records, table.Columns),
		Table:     table,
	}
}

// Chart groups long records by period with one series per fund.
func Chart(ds entities.Dataset, records []entities.LongRecord, periods []entities.Period) entities.ChartSpec {
	spec := entities.ChartSpec{
		Title:       ChartTitle,
		XAxisTitle:  XAxisTitle,
		YAxisTitle:  YAxisTitle,
		LegendTitle: LegendTitle,
		BarMode:     BarMode,
		Categories:  []entities.Period{},
		Series:      []entities.ChartSeries{},
	}
	if len(records) == 0 {
		return spec
	}

	spec.Categories = periods

	col := make(map[entities.Period]int, len(periods))
	for i, p := range periods {
		col[p] = i
	}

	idx := make(map[string]int)
	for _, r := range records {
		i, ok := idx[r.Fund]
		if !ok {
			i = len(spec.Series)
			idx[r.Fund] = i
			spec.Series = append(spec.Series, entities.ChartSeries{
				Fund:   r.Fund,
				Ticker: r.Ticker,
				Color:  FundColor(ds, r.Fund),
				Values: make([]float64, len(periods)),
			})
		}

		if c, ok := col[r.Period]; ok {
			spec.Series[i].Values[c] = r.Return.InexactFloat64()
		}
	}

	return spec
}
