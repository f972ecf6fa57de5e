// Package report renders analysis reports for completed label scans.
package report

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/riverlabs/aquacheck/internal/domain"
)

// ReportData carries everything the report template needs.
type ReportData struct {
	Scan        *domain.LabelScan
	GeneratedAt time.Time
	ImageURL    string // optional label photo URL
}

// parameterRow is one line of the report's readings table.
type parameterRow struct {
	Name     string
	Value    float64
	Unit     string
	Status   string
	Severity string
	Message  string
	Impact   string
}

type templateData struct {
	Scan           *domain.LabelScan
	GeneratedAt    time.Time
	ImageURL       string
	Rows           []parameterRow
	OverallVerdict string
	OverallMessage string
	BrandMessage   string
	BrandStatus    string
}

// HTMLGenerator renders a self-contained HTML report for a completed scan.
type HTMLGenerator struct {
	tmpl   *template.Template
	logger *slog.Logger
}

// NewHTMLGenerator creates an HTML report generator.
func NewHTMLGenerator(logger *slog.Logger) (*HTMLGenerator, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLGenerator{tmpl: tmpl, logger: logger}, nil
}

// Generate renders the report and writes it to w, returning bytes written.
func (g *HTMLGenerator) Generate(ctx context.Context, data *ReportData, w io.Writer) (int64, error) {
	if data.Scan == nil || data.Scan.Result == nil {
		return 0, fmt.Errorf("scan has no analysis result")
	}

	td := g.prepareTemplateData(data)

	cw := &countingWriter{w: w}
	if err := g.tmpl.Execute(cw, td); err != nil {
		return cw.n, fmt.Errorf("render report: %w", err)
	}

	g.logger.Info("Report generated",
		"scan_id", data.Scan.ID,
		"size_bytes", cw.n,
		"parameters", len(td.Rows),
	)

	return cw.n, nil
}

func (g *HTMLGenerator) prepareTemplateData(data *ReportData) templateData {
	td := templateData{
		Scan:        data.Scan,
		GeneratedAt: data.GeneratedAt,
		ImageURL:    data.ImageURL,
	}

	result := data.Scan.Result
	for param, verdict := range result.PerParameter {
		td.Rows = append(td.Rows, parameterRow{
			Name:     param.DisplayName(),
			Value:    verdict.Value,
			Unit:     verdict.Unit,
			Status:   verdict.Status.String(),
			Severity: verdict.Severity.String(),
			Message:  verdict.Message,
			Impact:   verdict.Impact,
		})
	}
	sort.Slice(td.Rows, func(i, j int) bool { return td.Rows[i].Name < td.Rows[j].Name })

	if result.Overall != nil {
		td.OverallVerdict = result.Overall.String()
		td.OverallMessage = result.Overall.Message()
	}
	if data.Scan.Brand != nil {
		td.BrandStatus = string(data.Scan.Brand.Status)
		td.BrandMessage = data.Scan.Brand.Message
	}

	return td
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Water Quality Report</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 52rem; color: #1a202c; }
  h1 { font-size: 1.5rem; }
  .meta { color: #4a5568; font-size: 0.9rem; margin-bottom: 1.5rem; }
  .verdict { padding: 1rem; border-radius: 0.5rem; margin: 1rem 0; }
  .verdict.Optimal { background: #e6f4ea; border: 1px solid #2f855a; }
  .verdict.NeedsAttention { background: #fef9e7; border: 1px solid #b7791f; }
  .verdict.Unsuitable { background: #fde8e8; border: 1px solid #c53030; }
  .verdict.none { background: #edf2f7; border: 1px solid #718096; }
  table { width: 100%; border-collapse: collapse; margin-top: 1rem; }
  th, td { text-align: left; padding: 0.5rem 0.75rem; border-bottom: 1px solid #e2e8f0; }
  th { background: #f7fafc; font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.03em; }
  td.severity-issue { color: #c53030; font-weight: 600; }
  td.severity-warning { color: #b7791f; font-weight: 600; }
  img.label { max-width: 100%; border-radius: 0.5rem; margin: 1rem 0; }
  footer { margin-top: 2rem; color: #718096; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>Water Quality Report</h1>
<p class="meta">
  Scan {{.Scan.ID}} &middot; Standard: {{.Scan.Standard}} &middot; Generated {{.GeneratedAt.Format "2 Jan 2006 15:04 MST"}}
</p>

{{if .ImageURL}}<img class="label" src="{{.ImageURL}}" alt="Label photo">{{end}}

{{if .OverallVerdict}}
<div class="verdict {{.OverallVerdict}}">
  <strong>{{.OverallVerdict}}</strong> &mdash; {{.OverallMessage}}
</div>
{{else}}
<div class="verdict none">
  No parameters could be evaluated against the selected standard.
</div>
{{end}}

{{if .BrandMessage}}
<p><strong>Brand check ({{.BrandStatus}}):</strong> {{.BrandMessage}}</p>
{{end}}

{{if .Rows}}
<table>
  <thead>
    <tr><th>Parameter</th><th>Value</th><th>Unit</th><th>Status</th><th>Assessment</th><th>Health relevance</th></tr>
  </thead>
  <tbody>
  {{range .Rows}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{printf "%g" .Value}}</td>
      <td>{{.Unit}}</td>
      <td class="severity-{{.Severity}}">{{.Status}}</td>
      <td>{{.Message}}</td>
      <td>{{.Impact}}</td>
    </tr>
  {{end}}
  </tbody>
</table>
{{end}}

<footer>
  Values were read from the product label and compared against published guideline limits.
  This report is informational and not a substitute for laboratory testing.
</footer>
</body>
</html>
`
