package entities

import "fmt"

type Period string

const (
	Month1 Period = "1-Month"
	Month3 Period = "3-Month"
	YTD    Period = "YTD"
	Year1  Period = "1-Year"
	Year3  Period = "3-Year"
	Year5  Period = "5-Year"
	Year10 Period = "10-Year"
	Year15 Period = "15-Year"
)

// Periods is the canonical display order.
var Periods = []Period{Month1, Month3, YTD, Year1, Year3, Year5, Year10, Year15}

var DefaultPeriods = []Period{YTD, Year1}

func (p Period) String() string {
	return string(p)
}

func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("unknown period %q", s)
}
