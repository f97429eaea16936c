// Package report renders an analysis run as a standalone HTML page with the
// manuscript text colorized at every echo occurrence. Spans are recomputed
// through the loose re-matcher rather than read from the stored results, so
// the highlights stay honest if matching rules or the text have drifted
// since the run; a live count that disagrees with the stored one is marked.
package report

import (
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"echofinder/internal/echo"
	"echofinder/internal/highlight"
)

const paletteSize = 6

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}} — echoes</title>
<style>
body { font-family: Georgia, serif; margin: 2rem auto; max-width: 52rem; line-height: 1.6; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #999; padding: 0.3rem 0.7rem; text-align: left; }
td.stale { color: #b00; }
pre.manuscript { white-space: pre-wrap; font-family: inherit; }
.hl-0 { background: #ffe08a; }
.hl-1 { background: #b5e3b5; }
.hl-2 { background: #c4d7ff; }
.hl-3 { background: #f4c2d7; }
.hl-4 { background: #d9c7f0; }
.hl-5 { background: #ffd2b0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>{{.EchoCount}} echoes found.</p>
<table>
<tr><th>Count</th><th>Live</th><th>Words</th><th>Phrase</th></tr>
{{range .Rows}}<tr><td>{{.Count}}</td><td{{if .Stale}} class="stale"{{end}}>{{.LiveCount}}</td><td>{{.Words}}</td><td class="hl-{{.Color}}">{{.Phrase}}</td></tr>
{{end}}</table>
<pre class="manuscript">{{.Body}}</pre>
</body>
</html>
`))

type row struct {
	Count     int
	LiveCount int
	Stale     bool
	Words     int
	Phrase    string
	Color     int
}

type pageData struct {
	Title     string
	EchoCount int
	Rows      []row
	Body      template.HTML
}

// WriteHTML renders the report for one manuscript and its ranked results.
func WriteHTML(w io.Writer, title, text string, results []echo.Result) error {
	rows := make([]row, 0, len(results))
	type colored struct {
		start, end, color int
	}
	var spans []colored

	for i, r := range results {
		live := highlight.Compute(text, r.Phrase)
		color := i % paletteSize
		rows = append(rows, row{
			Count:     r.Count,
			LiveCount: live.Count,
			Stale:     live.Count != r.Count,
			Words:     r.Words,
			Phrase:    r.Phrase,
			Color:     color,
		})
		for _, s := range live.Spans {
			spans = append(spans, colored{start: s.Start, end: s.End, color: color})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		return spans[i].end > spans[j].end
	})

	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.start < pos {
			// Overlap with an already-emitted highlight; earlier span wins.
			continue
		}
		b.WriteString(html.EscapeString(text[pos:s.start]))
		fmt.Fprintf(&b, `<mark class="hl-%d">%s</mark>`, s.color, html.EscapeString(text[s.start:s.end]))
		pos = s.end
	}
	b.WriteString(html.EscapeString(text[pos:]))

	return pageTemplate.Execute(w, pageData{
		Title:     title,
		EchoCount: len(results),
		Rows:      rows,
		Body:      template.HTML(b.String()),
	})
}

// SaveHTML writes the report to path, creating parent directories.
func SaveHTML(path, title, text string, results []echo.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	if err := WriteHTML(f, title, text, results); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}
