package report

import (
	"html/template"
	"io"
	"os"
	"strings"
	"time"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"

	"github.com/anstrom/nmapreport/internal/nmapxml"
)

// htmlData is the view model handed to the report template.
type htmlData struct {
	GeneratedAt string
	ReportID    string
	Sources     []string
	OpenOnly    bool
	Stats       Stats
	States      []string
	Records     []nmapxml.Record
	Warnings    []htmlWarning
}

type htmlWarning struct {
	File    string
	Message string
}

var htmlFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"stateClass": func(state string) string {
		switch state {
		case "open":
			return "state-open"
		case "closed":
			return "state-closed"
		case "filtered":
			return "state-filtered"
		default:
			return "state-other"
		}
	},
}

var htmlTemplate = template.Must(template.New("report").Funcs(htmlFuncs).Parse(htmlSource))

// RenderHTML writes the self-contained report page to w. Everything the
// page needs is inlined, so it renders without fetching any external
// resource. Protocol and state are uppercased for display here only; the
// data attributes carry the original values for the client-side filters.
func RenderHTML(set *ReportSet, w io.Writer) error {
	data := htmlData{
		GeneratedAt: set.GeneratedAt.Format(time.RFC1123),
		ReportID:    set.ID,
		Sources:     set.Sources,
		OpenOnly:    set.OpenOnly,
		Stats:       set.Stats,
		States:      distinctStates(set.Records),
		Records:     set.Records,
	}
	for _, warning := range set.Warnings {
		data.Warnings = append(data.Warnings, htmlWarning{
			File:    warning.File,
			Message: warning.Err.Error(),
		})
	}

	if err := htmlTemplate.Execute(w, data); err != nil {
		return errors.ErrRenderFailed(HTMLFileName, err)
	}
	return nil
}

// WriteHTML renders the report page into the file at path, replacing any
// previous run's output.
func WriteHTML(set *ReportSet, path string) error {
	file, err := os.Create(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return errors.ErrWriteFailed(HTMLFileName, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close html file", "path", path, "error", err)
		}
	}()

	return RenderHTML(set, file)
}

// distinctStates returns each state once, in first-encounter order, for
// the state filter dropdown.
func distinctStates(records []nmapxml.Record) []string {
	seen := make(map[string]bool)
	var states []string
	for i := range records {
		state := records[i].State
		if !seen[state] {
			seen[state] = true
			states = append(states, state)
		}
	}
	return states
}

const htmlSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Nmap Scan Report</title>
<style>
:root { --ink: #1f2933; --muted: #616e7c; --line: #d9dee4; --accent: #2563eb; }
* { box-sizing: border-box; }
body { margin: 0; padding: 1.5rem; font-family: system-ui, -apple-system, "Segoe UI", sans-serif; color: var(--ink); background: #f5f7fa; }
h1 { margin: 0 0 0.25rem; font-size: 1.5rem; }
h2 { margin: 2rem 0 0.75rem; font-size: 1.1rem; }
.meta { color: var(--muted); font-size: 0.85rem; margin: 0; }
.cards { display: flex; flex-wrap: wrap; gap: 0.75rem; margin-top: 1rem; }
.card { background: #fff; border: 1px solid var(--line); border-radius: 6px; padding: 0.75rem 1rem; min-width: 8rem; }
.card .value { font-size: 1.4rem; font-weight: 600; }
.card .label { color: var(--muted); font-size: 0.8rem; }
table { width: 100%; border-collapse: collapse; background: #fff; border: 1px solid var(--line); }
th, td { padding: 0.45rem 0.6rem; text-align: left; font-size: 0.85rem; border-bottom: 1px solid var(--line); }
th { background: #eef1f5; position: sticky; top: 0; }
tbody tr:hover { background: #f0f4ff; }
.state-open { color: #15803d; font-weight: 600; }
.state-closed { color: #b91c1c; }
.state-filtered { color: #b45309; }
.state-other { color: var(--muted); }
.controls { display: flex; flex-wrap: wrap; gap: 0.5rem; align-items: center; margin-bottom: 0.75rem; }
.controls select, .controls input { padding: 0.4rem 0.5rem; border: 1px solid var(--line); border-radius: 4px; font-size: 0.85rem; }
.controls input { min-width: 14rem; }
#row-count { color: var(--muted); font-size: 0.85rem; margin-left: auto; }
.note { color: var(--muted); font-size: 0.85rem; }
.warnings { background: #fef9c3; border: 1px solid #fde047; border-radius: 6px; padding: 0.75rem 1rem; margin-top: 1rem; }
.warnings li { font-size: 0.85rem; }
ol.top-services { padding-left: 1.25rem; }
ol.top-services li { margin: 0.2rem 0; font-size: 0.9rem; }
footer { margin-top: 2rem; color: var(--muted); font-size: 0.75rem; }
</style>
</head>
<body>
<header>
<h1>Nmap Scan Report</h1>
<p class="meta">Generated {{.GeneratedAt}} from {{len .Sources}} file(s): {{range $i, $s := .Sources}}{{if $i}}, {{end}}{{$s}}{{end}}{{if .OpenOnly}} &middot; open ports only{{end}}</p>
</header>

<section>
<div class="cards">
<div class="card"><div class="value">{{.Stats.TotalRecords}}</div><div class="label">Records</div></div>
<div class="card"><div class="value">{{.Stats.DistinctHosts}}</div><div class="label">Hosts</div></div>
<div class="card"><div class="value">{{.Stats.DistinctServices}}</div><div class="label">Services</div></div>
<div class="card"><div class="value">{{.Stats.OpenCount}}</div><div class="label">Open</div></div>
<div class="card"><div class="value">{{.Stats.ClosedCount}}</div><div class="label">Closed</div></div>
<div class="card"><div class="value">{{.Stats.FilteredCount}}</div><div class="label">Filtered</div></div>
</div>
</section>

<section>
<h2>Critical Services</h2>
{{if .Stats.Critical}}
<table>
<thead><tr><th>IP</th><th>Port Number</th><th>Protocol</th><th>Service</th><th>Details</th></tr></thead>
<tbody>
{{range .Stats.Critical}}<tr><td>{{.IP}}</td><td>{{.PortNumber}}</td><td>{{upper .Protocol}}</td><td>{{.Service}}</td><td>{{.Details}}</td></tr>
{{end}}</tbody>
</table>
{{else}}
<p class="note">No critical services found open.</p>
{{end}}
</section>

<section>
<h2>Top Open Services</h2>
{{if .Stats.TopServices}}
<ol class="top-services">
{{range .Stats.TopServices}}<li>{{.Service}} &mdash; {{.Count}} open</li>
{{end}}</ol>
{{else}}
<p class="note">No open ports found.</p>
{{end}}
</section>

<section>
<h2>Scan Results</h2>
<div class="controls">
<select id="state-filter">
<option value="">All states</option>
{{range .States}}<option value="{{.}}">{{upper .}}</option>
{{end}}</select>
<input id="ip-filter" type="text" placeholder="Exact IP">
<input id="text-filter" type="text" placeholder="Search all columns">
<span id="row-count"></span>
</div>
<table id="records-table">
<thead><tr><th>IP</th><th>Hostname</th><th>Port Number</th><th>Protocol</th><th>State</th><th>Service</th><th>Details</th><th>Source File</th></tr></thead>
<tbody>
{{range .Records}}<tr data-state="{{.State}}" data-ip="{{.IP}}"><td>{{.IP}}</td><td>{{.Hostname}}</td><td>{{.PortNumber}}</td><td>{{upper .Protocol}}</td><td class="{{stateClass .State}}">{{upper .State}}</td><td>{{.Service}}</td><td>{{.Details}}</td><td>{{.SourceFile}}</td></tr>
{{end}}</tbody>
</table>
</section>

{{if .Warnings}}
<section class="warnings">
<strong>Warnings</strong>
<ul>
{{range .Warnings}}<li>{{.File}}: {{.Message}}</li>
{{end}}</ul>
</section>
{{end}}

<footer>Report {{.ReportID}}</footer>

<script>
(function () {
	var stateSelect = document.getElementById("state-filter");
	var ipInput = document.getElementById("ip-filter");
	var textInput = document.getElementById("text-filter");
	var counter = document.getElementById("row-count");
	var rows = document.querySelectorAll("#records-table tbody tr");

	function applyFilters() {
		var state = stateSelect.value;
		var ip = ipInput.value.trim();
		var query = textInput.value.trim().toLowerCase();
		var visible = 0;

		rows.forEach(function (row) {
			var show = true;
			if (state !== "" && row.dataset.state !== state) {
				show = false;
			}
			if (show && ip !== "" && row.dataset.ip !== ip) {
				show = false;
			}
			if (show && query !== "" && row.textContent.toLowerCase().indexOf(query) === -1) {
				show = false;
			}
			row.style.display = show ? "" : "none";
			if (show) {
				visible++;
			}
		});

		counter.textContent = visible + " of " + rows.length + " rows";
	}

	stateSelect.addEventListener("change", applyFilters);
	ipInput.addEventListener("input", applyFilters);
	textInput.addEventListener("input", applyFilters);
	applyFilters();
})();
</script>
</body>
</html>
`
