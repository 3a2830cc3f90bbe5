package http

import (
	"html/template"
	"net/url"

	"github.com/glbter/fund-returns/entities"
)

type option struct {
	Value    string
	Label    string
	Selected bool
}

type page struct {
	Title      string
	Periods    []option
	Funds      []option
	View       entities.View
	PNGURL     template.URL
	SVGURL     template.URL
	JSONURL    template.URL
	EmptyChart bool
}

func newPage(title string, ds entities.Dataset, view entities.View, query url.Values) page {
	p := page{
		Title:      title,
		View:       view,
		PNGURL:     exportURL("/chart.png", query),
		SVGURL:     exportURL("/chart.svg", query),
		JSONURL:    exportURL("/api/returns", query),
		EmptyChart: view.Chart.IsEmpty(),
	}

	periods := make(map[entities.Period]bool, len(view.Selection.Periods))
	for _, sp := range view.Selection.Periods {
		periods[sp] = true
	}
	for _, dp := range ds.Periods {
		p.Periods = append(p.Periods, option{Value: dp.String(), Label: dp.String(), Selected: periods[dp]})
	}

	funds := make(map[string]bool, len(view.Selection.Funds))
	for _, name := range view.Selection.Funds {
		funds[name] = true
	}
	for _, f := range ds.Funds {
		p.Funds = append(p.Funds, option{Value: f.Name, Label: f.Name + " (" + f.Ticker + ")", Selected: funds[f.Name]})
	}

	return p
}

// exportURL keeps the current selection on the export links.
func exportURL(path string, query url.Values) template.URL {
	if len(query) == 0 {
		return template.URL(path)
	}

	return template.URL(path + "?" + query.Encode())
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

var indexTemplate = template.Must(template.New("index").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 1100px; color: #262730; }
form { display: flex; gap: 2rem; margin-bottom: 1rem; }
label { display: block; font-weight: 600; margin-bottom: .25rem; }
select { min-width: 16rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: .35rem .6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.empty { color: #888; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>

<form method="get" action="/">
  <input type="hidden" name="submitted" value="1">
  <div>
    <label for="period">Select Time Periods</label>
    <select id="period" name="period" multiple size="8" onchange="this.form.submit()">
      {{- range .Periods}}
      <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{- end}}
    </select>
  </div>
  <div>
    <label for="fund">Select Funds</label>
    <select id="fund" name="fund" multiple size="8" onchange="this.form.submit()">
      {{- range .Funds}}
      <option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
      {{- end}}
    </select>
  </div>
  <noscript><button type="submit">Apply</button></noscript>
</form>

<div id="chart">{{if not .EmptyChart}}<img src="{{.SVGURL}}" alt="{{.View.Chart.Title}}">{{end}}</div>
<p>{{if not .EmptyChart}}<a href="{{.PNGURL}}">PNG</a> · <a href="{{.SVGURL}}">SVG</a> · {{end}}<a href="{{.JSONURL}}">JSON</a></p>

<h2>Detailed Returns</h2>
<table id="returns">
  <thead>
    <tr><th>Fund</th>{{range .View.Table.Columns}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
    {{- range .View.Table.Rows}}
    <tr><td>{{.Fund}}</td>{{range .Returns}}<td>{{.String}}</td>{{end}}</tr>
    {{- else}}
    <tr><td class="empty" colspan="{{len .View.Table.Columns | inc}}">No data</td></tr>
    {{- end}}
  </tbody>
</table>

<script>
const spec = {{.View.Chart}};
const traces = spec.series.map(s => ({
  type: "bar",
  name: s.fund,
  x: spec.categories,
  y: s.values,
  marker: { color: s.color },
  hovertemplate: s.ticker + " %{x}: %{y:.2f}%<extra></extra>",
}));
// without Plotly the static SVG stays in place
if (window.Plotly) {
  document.getElementById("chart").replaceChildren();
  Plotly.newPlot("chart", traces, {
    title: { text: spec.title },
    barmode: spec.bar_mode,
    xaxis: { title: { text: spec.x_axis_title }, type: "category", categoryarray: spec.categories },
    yaxis: { title: { text: spec.y_axis_title } },
    legend: { title: { text: spec.legend_title } },
  }, { responsive: true });
}
</script>
</body>
</html>
`))
