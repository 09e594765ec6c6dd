package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nao1215/markdown"
)

// MarkdownWriter emits a human-readable markdown summary, meant for the
// --report file.
type MarkdownWriter struct {
	output io.Writer
}

func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

func (w *MarkdownWriter) Write(res Result) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Decruft Report")
	md.PlainText("")

	var total int64
	for _, e := range res.Entries {
		total += e.Size
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Root", "`" + res.Root + "`"},
			{"Entries scanned", strconv.FormatInt(res.Scanned, 10)},
			{"Cruft directories", strconv.Itoa(len(res.Entries))},
			{"Total size", formatMB(total)},
			{"Skipped as unreadable", strconv.FormatInt(res.Warnings, 10)},
		},
	})
	md.PlainText("")

	md.H2("Cruft directories")
	md.PlainText("")
	rows := make([][]string, 0, len(res.Entries))
	for _, e := range res.Entries {
		age := "-"
		if e.AgeDays != nil {
			age = fmt.Sprintf("%d days", int(math.Round(*e.AgeDays)))
		}
		rows = append(rows, []string{formatMB(e.Size), age, e.Reason.String(), "`" + e.Path + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Size", "Age", "Type", "Path"},
		Rows:   rows,
	})

	return md.Build()
}

func formatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
}
