package report

import (
	"fmt"
	"html"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

const markdownTemplate = `# {{ .Module }} security test report

- **Run**: {{ .RunID }}
- **Engine**: {{ .Engine | default "accelerated" }}
- **Started**: {{ .StartedAt.Format "2006-01-02 15:04:05 MST" }}
- **Duration**: {{ .Duration }}
- **Payloads**: {{ .TotalPayloads }} total, {{ .Analyzed }} analyzed, {{ .Errors }} errors
- **Vulnerable**: {{ .Vulnerable }} ({{ printf "%.1f" (mulf (.VulnerabilityRate) 100.0) }}%)
- **Max confidence**: {{ printf "%.2f" .MaxConfidence }}

{{ if .Findings -}}
## Findings

| # | Confidence | Severity | Payload | Leaks |
|---|-----------|----------|---------|-------|
{{- range $i, $f := .Findings }}
| {{ add $i 1 }} | {{ printf "%.2f" $f.Confidence }} | {{ $f.Severity | default "n/a" }} | {{ mdcell $f.Payload }} | {{ join ", " $f.Leaks }} |
{{- end }}
{{- else -}}
No vulnerable responses detected.
{{- end }}
`

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ esc .Module }} security test report</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f4f4f4; }
.vulnerable { color: #c0392b; font-weight: bold; }
.clean { color: #27ae60; }
</style>
</head>
<body>
<h1>{{ esc .Module }} security test report</h1>
<ul>
<li><strong>Run</strong>: {{ esc .RunID }}</li>
<li><strong>Started</strong>: {{ .StartedAt.Format "2006-01-02 15:04:05 MST" }}</li>
<li><strong>Duration</strong>: {{ .Duration }}</li>
<li><strong>Payloads</strong>: {{ .TotalPayloads }} total, {{ .Analyzed }} analyzed, {{ .Errors }} errors</li>
<li class="{{ if .Findings }}vulnerable{{ else }}clean{{ end }}"><strong>Vulnerable</strong>: {{ .Vulnerable }}</li>
<li><strong>Max confidence</strong>: {{ printf "%.2f" .MaxConfidence }}</li>
</ul>
{{ if .Findings }}
<h2>Findings</h2>
<table>
<tr><th>#</th><th>Confidence</th><th>Severity</th><th>Payload</th><th>Leaks</th></tr>
{{- range $i, $f := .Findings }}
<tr>
<td>{{ add $i 1 }}</td>
<td>{{ printf "%.2f" $f.Confidence }}</td>
<td>{{ esc ($f.Severity | default "n/a") }}</td>
<td><code>{{ esc $f.Payload }}</code></td>
<td>{{ esc (join ", " $f.Leaks) }}</td>
</tr>
{{- end }}
</table>
{{ else }}
<p class="clean">No vulnerable responses detected.</p>
{{ end }}
</body>
</html>
`

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	// join with the separator first reads better inside table cells.
	fm["join"] = func(sep string, items []string) string {
		return strings.Join(items, sep)
	}
	fm["esc"] = html.EscapeString
	fm["mdcell"] = func(s string) string {
		s = strings.ReplaceAll(s, "|", `\|`)
		s = strings.ReplaceAll(s, "\n", " ")
		return s
	}
	return fm
}

// WriteMarkdown renders the summary as Markdown.
func WriteMarkdown(w io.Writer, s *Summary) error {
	tmpl, err := template.New("markdown").Funcs(funcMap()).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse markdown template: %w", err)
	}
	return tmpl.Execute(w, s)
}

// WriteHTML renders the summary as a standalone HTML page.
func WriteHTML(w io.Writer, s *Summary) error {
	tmpl, err := template.New("html").Funcs(funcMap()).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse html template: %w", err)
	}
	return tmpl.Execute(w, s)
}
