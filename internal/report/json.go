package report

import (
	"encoding/json"
	"io"
)

// JSONWriter emits the whole result as one indented JSON document, with
// reasons rendered as their display labels.
type JSONWriter struct {
	output io.Writer
}

func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

type jsonResult struct {
	Root     string      `json:"root"`
	Scanned  int64       `json:"scanned"`
	Warnings int64       `json:"warnings,omitempty"`
	Entries  []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	Path    string   `json:"path"`
	Size    int64    `json:"size"`
	Reason  string   `json:"reason"`
	AgeDays *float64 `json:"ageDays,omitempty"`
}

func (w *JSONWriter) Write(res Result) error {
	doc := jsonResult{
		Root:     res.Root,
		Scanned:  res.Scanned,
		Warnings: res.Warnings,
		Entries:  make([]jsonEntry, 0, len(res.Entries)),
	}
	for _, e := range res.Entries {
		doc.Entries = append(doc.Entries, jsonEntry{
			Path:    e.Path,
			Size:    e.Size,
			Reason:  e.Reason.String(),
			AgeDays: e.AgeDays,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.output.Write(data)
	return err
}
