package artifact

import (
	"bytes"
	"encoding/csv"
	"io"
)

type TSVWriter struct {
	*csv.Writer
}

func NewTSVWriter(w io.Writer) *TSVWriter {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	return &TSVWriter{Writer: tsv}
}

func (w *TSVWriter) Close() error {
	w.Writer.Flush()
	return w.Writer.Error()
}

// WriteTSV serializes a header and its rows as tab separated values into the store.
func WriteTSV(store Store, path string, header []string, rows [][]string) error {
	var buf bytes.Buffer
	w := NewTSVWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}

	if err := w.WriteAll(rows); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	return store.WriteFile(path, buf.Bytes())
}
