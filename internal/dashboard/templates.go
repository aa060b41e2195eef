package dashboard

import (
	"encoding/json"
	"html/template"
	"sync"
)

var (
	pageTmplOnce sync.Once
	pageTmpls    map[string]*template.Template
)

var pageSources = map[string]string{
	"map":           mapTemplate,
	"neighborhoods": neighborhoodsTemplate,
	"schools":       schoolsTemplate,
}

// pageTemplate returns the parsed layout combined with the named page.
func pageTemplate(name string) *template.Template {
	pageTmplOnce.Do(func() {
		funcs := template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
		}
		pageTmpls = make(map[string]*template.Template, len(pageSources))
		for n, src := range pageSources {
			t := template.Must(template.New("layout").Funcs(funcs).Parse(layoutTemplate))
			pageTmpls[n] = template.Must(t.Parse(src))
		}
	})
	return pageTmpls[name]
}

const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Urban Traffic Collisions</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
:root {
  --bg: #fff; --fg: #1a1a2e; --card-bg: #f8f9fa; --border: #dee2e6;
  --table-alt: #f1f3f5; --hover: #e9ecef; --muted: #6c757d;
  --warn: #fd7e14; --error: #dc3545; --info: #0d6efd;
  --accent: #0d6efd; --dim: #bbbbbb;
}
@media (prefers-color-scheme: dark) {
  :root {
    --bg: #1a1a2e; --fg: #e9ecef; --card-bg: #16213e; --border: #495057;
    --table-alt: #0f3460; --hover: #1a1a4e; --muted: #adb5bd;
    --warn: #fd7e14; --error: #f55; --info: #5b9aff;
    --accent: #5b9aff; --dim: #5a5a6e;
  }
}
* { box-sizing: border-box; margin: 0; padding: 0; }
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: var(--bg); color: var(--fg); line-height: 1.5; padding: 1rem; max-width: 1400px; margin: 0 auto; }
header { margin-bottom: 1rem; display: flex; flex-wrap: wrap; align-items: baseline; gap: 1.5rem; }
header h1 { font-size: 1.5rem; }
nav a { margin-right: 1rem; color: var(--muted); text-decoration: none; font-weight: 600; }
nav a.active { color: var(--accent); border-bottom: 2px solid var(--accent); }
h2 { font-size: 1.125rem; margin: 1rem 0 .5rem; }
.muted { color: var(--muted); font-size: .8125rem; }
.notice { border-left: 4px solid var(--info); background: var(--card-bg); padding: .5rem .75rem; margin-bottom: .5rem; font-size: .875rem; }
.notice-warning { border-color: var(--warn); }
.notice-error { border-color: var(--error); }
.empty { display: flex; flex-direction: column; justify-content: center; align-items: center; height: 40vh; color: var(--muted); }
.empty p:first-child { font-size: 1.25rem; }
.cards { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: .75rem; margin-bottom: 1rem; }
.card { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: .75rem; text-align: center; }
.card .value { font-size: 1.5rem; font-weight: 700; }
.card .label { font-size: .75rem; color: var(--muted); text-transform: uppercase; }
.map { height: 520px; border: 1px solid var(--border); border-radius: 8px; margin-bottom: .5rem; }
.split { display: grid; grid-template-columns: 2fr 1fr; gap: 1rem; margin-bottom: 1rem; }
.charts { display: grid; grid-template-columns: repeat(2, 1fr); gap: 1rem; margin-bottom: 1rem; }
.charts.three { grid-template-columns: repeat(3, 1fr); }
@media (max-width: 768px) { .split, .charts, .charts.three { grid-template-columns: 1fr; } }
.chart-box { background: var(--card-bg); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.chart-box h3 { font-size: .875rem; margin-bottom: .5rem; }
.chart-box svg { max-width: 100%; height: auto; }
.filters { display: flex; flex-wrap: wrap; gap: .75rem; margin-bottom: 1rem; align-items: center; font-size: .8125rem; }
.filters select, .filters input, .filters button { padding: .375rem .5rem; border: 1px solid var(--border); border-radius: 4px; background: var(--card-bg); color: var(--fg); font-size: .8125rem; }
.filters select { max-width: 28rem; }
.legend span { display: inline-block; margin-right: 1rem; font-size: .8125rem; }
.swatch { display: inline-block; width: .75rem; height: .75rem; border-radius: 2px; margin-right: .25rem; vertical-align: middle; }
table { width: 100%; border-collapse: collapse; font-size: .8125rem; }
th, td { padding: .4rem .6rem; text-align: left; border-bottom: 1px solid var(--border); }
td.num, th.num { text-align: right; }
tr:nth-child(even) { background: var(--table-alt); }
tr:hover { background: var(--hover); }
tr.selected { outline: 2px solid var(--accent); }
.scroll { max-height: 400px; overflow-y: auto; }
</style>
</head>
<body>
<header>
  <h1>Urban Traffic Collisions</h1>
  <nav>{{range .Nav}}<a href="{{.Path}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</nav>
</header>
{{template "filters" .}}
{{range .Notices}}<div class="notice notice-{{.Level}}">{{.Text}}</div>
{{end}}
{{if .Empty}}
<section class="empty" id="empty"><p>No data available</p><p class="muted">Adjust the filters to see collisions.</p></section>
{{else}}
{{template "content" .}}
{{end}}
<script>
function svgEl(tag, attrs) {
  var el = document.createElementNS("http://www.w3.org/2000/svg", tag);
  for (var k in attrs) el.setAttribute(k, attrs[k]);
  return el;
}

function renderBarChart(id, series, colors) {
  var c = document.getElementById(id); if (!c || !series || !series.labels) return;
  var labels = series.labels, values = series.values;
  var max = Math.max.apply(null, values) || 1;
  var h = labels.length * 24 + 4;
  var svg = svgEl("svg", {width: "100%", viewBox: "0 0 420 " + h});
  for (var i = 0; i < labels.length; i++) {
    var w = (values[i] / max) * 260;
    var y = i * 24 + 2;
    var fill = colors[i % colors.length];
    if (series.selected >= 0) fill = i === series.selected ? "var(--accent)" : "var(--dim)";
    svg.appendChild(svgEl("rect", {x: 140, y: y, width: Math.max(w, 2), height: 18, fill: fill, rx: 3}));
    var txt = svgEl("text", {x: 135, y: y + 13, "text-anchor": "end", fill: "currentColor", "font-size": "11"});
    txt.textContent = labels[i].length > 24 ? labels[i].slice(0, 22) + "..." : labels[i];
    svg.appendChild(txt);
    var val = svgEl("text", {x: 145 + w, y: y + 13, fill: "currentColor", "font-size": "11"});
    val.textContent = Math.round(values[i] * 100) / 100;
    svg.appendChild(val);
  }
  c.appendChild(svg);
}

function renderDoughnut(id, series, colors) {
  var c = document.getElementById(id); if (!c || !series || !series.labels) return;
  var labels = series.labels, values = series.values;
  var total = values.reduce(function(a, b) { return a + b; }, 0);
  if (!total) return;
  var svg = svgEl("svg", {width: "100%", viewBox: "0 0 300 160"});
  var cx = 80, cy = 80, r = 60, angle = -Math.PI / 2;
  for (var i = 0; i < values.length; i++) {
    var slice = (values[i] / total) * Math.PI * 2;
    if (values[i] === 0) continue;
    var x1 = cx + r * Math.cos(angle), y1 = cy + r * Math.sin(angle);
    angle += slice;
    var x2 = cx + r * Math.cos(angle), y2 = cy + r * Math.sin(angle);
    var large = slice > Math.PI ? 1 : 0;
    var d = "M" + cx + "," + cy + " L" + x1 + "," + y1 + " A" + r + "," + r + " 0 " + large + ",1 " + x2 + "," + y2 + " Z";
    if (values.length === 1) d = "M" + cx + "," + (cy - r) + " A" + r + "," + r + " 0 1,1 " + (cx - 0.01) + "," + (cy - r) + " Z";
    svg.appendChild(svgEl("path", {d: d, fill: colors[i % colors.length]}));
  }
  svg.appendChild(svgEl("circle", {cx: cx, cy: cy, r: 30, fill: "var(--card-bg)"}));
  for (var j = 0; j < labels.length; j++) {
    if (values[j] === 0) continue;
    var ly = 16 + j * 18;
    svg.appendChild(svgEl("rect", {x: 175, y: ly - 8, width: 10, height: 10, fill: colors[j % colors.length], rx: 2}));
    var lt = svgEl("text", {x: 190, y: ly + 1, fill: "currentColor", "font-size": "11"});
    lt.textContent = labels[j] + " (" + values[j] + ")";
    svg.appendChild(lt);
  }
  c.appendChild(svg);
}

function initMap(view, layers) {
  var el = document.getElementById("map");
  if (!el || typeof L === "undefined") return null;
  var map = L.map(el).setView([view.lat, view.lon], view.zoom);
  L.tileLayer(view.tiles.url, {
    attribution: view.tiles.attribution,
    tileSize: view.tiles.tileSize,
    zoomOffset: view.tiles.zoomOffset,
    maxZoom: 19
  }).addTo(map);
  if (layers.regions) {
    L.geoJSON(layers.regions, {
      style: function(f) { return {color: "#4a7a4a", weight: 1, fillColor: f.properties.fill, fillOpacity: 0.55}; },
      onEachFeature: function(f, l) { l.bindTooltip(f.properties.name + ": " + f.properties.value + " collisions"); }
    }).addTo(map);
  }
  if (layers.hexes) {
    L.geoJSON(layers.hexes, {
      style: function(f) { return {stroke: false, fillColor: f.properties.fill, fillOpacity: 0.85}; },
      onEachFeature: function(f, l) { l.bindTooltip(f.properties.value + " collisions"); }
    }).addTo(map);
  }
  if (layers.circle) {
    L.circle(layers.circle.center, {radius: layers.circle.radius, color: layers.circle.color, weight: 1, fillOpacity: 0.15}).addTo(map);
  }
  (layers.points || []).forEach(function(p) {
    L.circleMarker([p.lat, p.lon], {radius: 3, stroke: false, fillColor: p.color, fillOpacity: 1})
      .bindTooltip(p.id + " (" + p.weight + " at this spot)").addTo(map);
  });
  (layers.schools || []).forEach(function(s) {
    L.circleMarker([s.lat, s.lon], {radius: 6, color: "#555", weight: 1, fillColor: s.color, fillOpacity: 0.9})
      .bindTooltip(s.name + ": " + s.collisions + " collisions").addTo(map);
  });
  if (layers.route) {
    var line = L.polyline(layers.route, {color: "#0033ff", weight: 4}).addTo(map);
    map.fitBounds(line.getBounds(), {padding: [20, 20]});
  }
  if (layers.highlight) {
    L.circleMarker(layers.highlight, {radius: 9, color: "#0000ff", weight: 3, fill: false}).addTo(map);
  }
  return map;
}

function selectParam(name, value) {
  var u = new URL(window.location.href);
  u.searchParams.set(name, value);
  window.location.href = u.toString();
}
{{if not .Empty}}{{template "script" .}}{{end}}
</script>
</body>
</html>`

const mapTemplate = `{{define "filters"}}
<form class="filters" method="get" action="/map">
  {{range .Hidden}}<input type="hidden" name="{{.Name}}" value="{{.Value}}">{{end}}
  <label>Year
    <select name="year" onchange="this.form.submit()">{{range .Years}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>Map mode
    <select name="mode" onchange="this.form.submit()">{{range .Modes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  {{if .Route}}{{with .Route}}
  <label>Start
    <select name="start">{{range .Starts}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>End
    <select name="end">{{range .Ends}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>Buffer (m)
    <input type="number" name="buffer" min="{{.MinBuffer}}" max="{{.MaxBuffer}}" step="50" value="{{.Buffer}}">
  </label>
  {{end}}{{else if .Locations}}
  <label>Location
    <select name="loc" onchange="this.form.submit()">{{range .Locations}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  {{end}}
  <button type="submit">Apply</button>
</form>
{{end}}

{{define "content"}}
<section class="cards" id="summary">
  <div class="card"><div class="value">{{.Fmt.Int .Rows}}</div><div class="label">Collisions</div></div>
  <div class="card"><div class="value">{{.Fmt.Int .LocationCount}}</div><div class="label">Locations</div></div>
  <div class="card"><div class="value">{{.Fmt.Int .LocationsExcluded}}</div><div class="label">Without coordinates</div></div>
  {{if not .Route}}<div class="card"><div class="value">{{.Fmt.Int .RegionsExcluded}}</div><div class="label">Not in a neighborhood</div></div>{{end}}
</section>

<p class="muted">Filters: {{.Filter}}</p>
<div id="map" class="map"></div>
{{if .Points.Sampled}}<p class="muted">Showing {{.Fmt.Int (len .Points.Points)}} sampled points; {{.Fmt.Int .Points.Sampled}} more are not drawn.</p>{{end}}

{{with .Route}}{{if .Ready}}
<h2>Commute route safety</h2>
<section class="cards" id="route">
  <div class="card"><div class="value">{{$.Fmt.Int .OnRoute}}</div><div class="label">Within {{.Buffer}} m of the route</div></div>
  <div class="card"><div class="value">{{$.Fmt.Int .Total}}</div><div class="label">Located collisions</div></div>
  <div class="card"><div class="value">{{$.Fmt.Percent .Ratio}}</div><div class="label">Share on route</div></div>
</section>
<p class="muted">Route from {{.Provider}}.{{if .Excluded}} {{$.Fmt.Int .Excluded}} collisions without coordinates were not considered.{{end}}</p>
{{if .Hotspots}}
<h2>High-risk spots near the route</h2>
<table id="hotspots">
<thead><tr><th>Location</th><th class="num">Collisions</th></tr></thead>
<tbody>{{range .Hotspots}}<tr><td>{{if .Address}}{{.Address}}{{else}}{{.Key}}{{end}} | {{.Area}}</td><td class="num">{{$.Fmt.Int .Count}}</td></tr>{{end}}</tbody>
</table>
{{end}}
{{end}}{{end}}

{{with .Location}}
<section class="split" id="location">
  <div class="chart-box">
    <h3>Collision details</h3>
    <p class="muted">{{.Label}}</p>
    <p><select onchange="selectParam('record', this.value)">{{range .Records}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select></p>
    <table>{{range .Fields}}<tr><th>{{.Name}}</th><td>{{.Value}}</td></tr>{{end}}</table>
  </div>
  <div class="chart-box"><h3>Collision types at this location</h3><div id="chart-location"></div></div>
</section>
{{else}}{{if not .Route}}<p class="muted">Select a location to see its collision records.</p>{{end}}
{{end}}

{{if .Histograms}}
<section class="charts" id="histograms">
{{range .Histograms}}
  <div class="chart-box"><h3>{{.Title}}</h3>{{if .SVG}}{{.SVG}}{{else}}<p class="muted">No data available</p>{{end}}{{if .Excluded}}<p class="muted">{{$.Fmt.Int .Excluded}} collisions with unknown values not shown.</p>{{end}}</div>
{{end}}
</section>
{{end}}

{{if .Charts}}
<section class="charts" id="custom-charts">
{{range $i, $c := .Charts}}
  <div class="chart-box"><h3>{{$c.Title}}</h3><div id="chart-custom-{{$i}}"></div>{{if $c.Excluded}}<p class="muted">{{$.Fmt.Int $c.Excluded}} collisions excluded.</p>{{end}}</div>
{{end}}
</section>
{{end}}
{{end}}

{{define "script"}}
initMap({{json .View}}, {{json .Layers}});
{{with .Location}}renderBarChart("chart-location", {{json .Categories}}, ["var(--accent)"]);{{end}}
({{json .Charts}} || []).forEach(function(c, i) { renderBarChart("chart-custom-" + i, c, ["var(--accent)"]); });
{{end}}`

const neighborhoodsTemplate = `{{define "filters"}}
<form class="filters" method="get" action="/neighborhoods">
  <label>From
    <select name="from" onchange="this.form.submit()">{{range .From}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>To
    <select name="to" onchange="this.form.submit()">{{range .To}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  {{if .Regions}}
  <label>Neighborhood
    <select name="region" onchange="this.form.submit()">{{range .Regions}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  {{end}}
  <label><input type="checkbox" name="all" value="1"{{if .ShowAll}} checked{{end}} onchange="this.form.submit()"> Show all neighborhoods</label>
  <button type="submit">Apply</button>
</form>
{{end}}

{{define "content"}}
<section class="cards" id="summary">
  <div class="card"><div class="value">{{.Fmt.Int .Rows}}</div><div class="label">Collisions</div></div>
  <div class="card"><div class="value">{{.Fmt.Int (len .Regions)}}</div><div class="label">Neighborhoods</div></div>
  <div class="card"><div class="value">{{.Fmt.Int .RegionsExcluded}}</div><div class="label">Not in a neighborhood</div></div>
</section>

<section class="split">
  <div><h2>Collisions by neighborhood</h2><div id="map" class="map"></div></div>
  <div class="chart-box"><h3>{{.Ranking.Title}}</h3><div id="chart-ranking" class="scroll"></div></div>
</section>

{{with .Detail}}
<h2>Details for {{.Name}}</h2>
{{if .Count}}
<p class="muted">{{$.Fmt.Int .Count}} collisions in the selected years.</p>
<section class="charts three" id="detail">
  <div class="chart-box"><h3>Victim age</h3><div id="chart-age"></div>{{if .Ages.Excluded}}<p class="muted">{{$.Fmt.Int .Ages.Excluded}} without a known age.</p>{{end}}</div>
  <div class="chart-box"><h3>Victim sex</h3><div id="chart-sex"></div></div>
  <div class="chart-box"><h3>Premise</h3><div id="chart-premise"></div>{{if .Premises.Omitted}}<p class="muted">{{$.Fmt.Int .Premises.Omitted}} in other premises.</p>{{end}}</div>
</section>
{{if .Years.SVG}}<div class="chart-box"><h3>{{.Years.Title}}</h3>{{.Years.SVG}}</div>{{end}}
{{else}}
<p class="muted">No collision records for this neighborhood in the selected years.</p>
{{end}}
{{end}}
{{end}}

{{define "script"}}
initMap({{json .View}}, {{json .Layers}});
renderBarChart("chart-ranking", {{json .Ranking}}, ["var(--accent)"]);
{{with .Detail}}
renderBarChart("chart-age", {{json .Ages}}, ["var(--accent)"]);
renderDoughnut("chart-sex", {{json .Sexes}}, ["#1f77b4", "#ff7f0e", "#d3d3d3", "#2ca02c", "#9467bd"]);
renderBarChart("chart-premise", {{json .Premises}}, ["var(--warn)"]);
{{end}}
{{end}}`

const schoolsTemplate = `{{define "filters"}}
{{if .Available}}
<form class="filters" method="get" action="/schools">
  <label>From
    <select name="from">{{range .From}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>To
    <select name="to">{{range .To}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>Type
    <select name="type">{{range .Types}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>Category
    <select name="category">{{range .Categories}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <label>Safety
    <select name="safety">{{range .Ratings}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}</select>
  </label>
  <input type="text" name="q" value="{{.Query}}" placeholder="Search schools by name">
  <button type="submit">Apply filters</button>
</form>
{{end}}
{{end}}

{{define "content"}}
<p class="legend">{{range .Legend}}<span><i class="swatch" style="background: {{.Color}}"></i><strong>{{.Label}}</strong> ({{.Rule}})</span>{{end}}</p>
<section class="split">
  <div>
    <div id="map" class="map"></div>
    <p class="muted">Averages over {{.Years}} year(s).</p>
  </div>
  <div class="chart-box">
  {{with .Detail}}
    <h3>{{.Name}}</h3>
    <section class="cards">
      <div class="card"><div class="value">{{$.Fmt.Int .Collisions}}</div><div class="label">Nearby collisions</div></div>
      <div class="card"><div class="value">{{$.Fmt.Float .PerYear}}</div><div class="label">Per year</div></div>
      <div class="card"><div class="value" style="color: {{.Color}}">{{.Rating}}</div><div class="label">Safety</div></div>
    </section>
    <table>{{range .Fields}}<tr><th>{{.Name}}</th><td>{{.Value}}</td></tr>{{end}}</table>
    <h3>Collisions by year</h3><div id="chart-school-years"></div>
    <h3>Collision types</h3><div id="chart-school-types"></div>
  {{else}}
    <h3>School details</h3>
    <p class="muted">Select a school in the table to see its surroundings.</p>
  {{end}}
  </div>
</section>

<h2>Schools on the map</h2>
<div class="scroll">
<table id="schools">
<thead><tr><th>School</th><th>Type</th><th class="num">Collisions</th><th class="num">Avg/Year</th><th>Safety</th></tr></thead>
<tbody>
{{range .Rows}}<tr{{if .Selected}} class="selected"{{end}}>
  <td><a href="{{.Link}}">{{.Name}}</a></td><td>{{.Type}}</td>
  <td class="num">{{$.Fmt.Int .Collisions}}</td><td class="num">{{$.Fmt.Float .PerYear}}</td>
  <td><i class="swatch" style="background: {{.Color}}"></i>{{.Rating}}</td>
</tr>
{{end}}
</tbody>
</table>
</div>
{{end}}

{{define "script"}}
initMap({{json .View}}, {{json .Layers}});
{{with .Detail}}
renderBarChart("chart-school-years", {{json .ByYear}}, ["var(--accent)"]);
renderBarChart("chart-school-types", {{json .Categories}}, ["var(--warn)"]);
{{end}}
{{end}}`
