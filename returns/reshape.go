package returns

import (
	"github.com/glbter/fund-returns/entities"
)

// Reshape melts the selected part of the wide table into one record per
// fund and period. Funds keep dataset order and periods keep canonical
// order regardless of the order they were selected in. Names and periods
// that are not in the dataset are ignored.
func Reshape(ds entities.Dataset, sel entities.Selection) []entities.LongRecord {
	funds := filterFunds(ds, sel)
	periods := filterPeriods(ds, sel)
	if len(funds) == 0 || len(periods) == 0 {
		return []entities.LongRecord{}
	}

	out := make([]entities.LongRecord, 0, len(funds)*len(periods))
	for _, f := range funds {
		for _, p := range periods {
			out = append(out, entities.LongRecord{
				Fund:   f.Name,
				Ticker: f.Ticker,
				Period: p,
				Return: f.Returns[p],
			})
		}
	}

	return out
}

// Table is the filtered wide table: rows are the selected funds, columns
// the selected periods.
func Table(ds entities.Dataset, sel entities.Selection) entities.TableSpec {
	funds := filterFunds(ds, sel)
	periods := filterPeriods(ds, sel)

	table := entities.TableSpec{
		Columns: periods,
		Rows:    make([]entities.TableRow, 0, len(funds)),
	}
	if len(periods) == 0 {
		return table
	}

	for _, f := range funds {
		row := entities.TableRow{Fund: f.Name, Ticker: f.Ticker}
		for _, p := range periods {
			row.Returns = append(row.Returns, f.Returns[p])
		}
		table.Rows = append(table.Rows, row)
	}

	return table
}

// Normalize drops unknown funds and periods and puts the rest in dataset
// order.
func Normalize(ds entities.Dataset, sel entities.Selection) entities.Selection {
	funds := filterFunds(ds, sel)
	names := make([]string, 0, len(funds))
	for _, f := range funds {
		names = append(names, f.Name)
	}

	return entities.Selection{
		Periods: filterPeriods(ds, sel),
		Funds:   names,
	}
}

func filterFunds(ds entities.Dataset, sel entities.Selection) []entities.FundRecord {
	selected := make(map[string]struct{}, len(sel.Funds))
	for _, name := range sel.Funds {
		selected[name] = struct{}{}
	}

	funds := make([]entities.FundRecord, 0, len(sel.Funds))
	for _, f := range ds.Funds {
		if _, ok := selected[f.Name]; ok {
			funds = append(funds, f)
		}
	}

	return funds
}

func filterPeriods(ds entities.Dataset, sel entities.Selection) []entities.Period {
	selected := make(map[entities.Period]struct{}, len(sel.Periods))
	for _, p := range sel.Periods {
		selected[p] = struct{}{}
	}

	periods := make([]entities.Period, 0, len(sel.Periods))
	for _, p := range ds.Periods {
		if _, ok := selected[p]; ok {
			periods = append(periods, p)
		}
	}

	return periods
}
