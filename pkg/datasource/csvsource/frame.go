package csvsource

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMissingColumn is returned when a record decoder asks for a column the header does not have.
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidValue is returned when a cell cannot be parsed into the requested type.
	ErrInvalidValue = errors.New("invalid value")

	// ErrEmptyFile is returned when the csv file has no header row.
	ErrEmptyFile = errors.New("empty csv file")
)

// Frame is a csv file held in memory with its columns indexed by header name.
type Frame struct {
	Name    string
	Header  []string
	Records [][]string

	index map[string]int
}

// ReadFrame reads the whole csv file at path.
func ReadFrame(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // Read ops only so safe to ignore err return
	defer file.Close()

	return NewFrame(path, file)
}

// NewFrame reads csv data from r. The first row is the header; an unnamed first column
// holds the row index and is named "index".
func NewFrame(name string, r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrEmptyFile, name)
	} else if err != nil {
		return nil, errors.Wrapf(err, "%s: read header", name)
	}

	f := &Frame{
		Name:   name,
		Header: header,
		index:  make(map[string]int, len(header)),
	}
	for i, col := range header {
		col = strings.TrimSpace(col)
		if i == 0 && col == "" {
			col = "index"
		}
		f.Header[i] = col
		if _, ok := f.index[col]; !ok {
			f.index[col] = i
		}
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "%s: read records", name)
	}
	f.Records = records
	return f, nil
}

func (f *Frame) Len() int {
	return len(f.Records)
}

func (f *Frame) HasColumn(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column returns the position of the named column.
func (f *Frame) Column(name string) (int, error) {
	i, ok := f.index[name]
	if !ok {
		return -1, errors.Wrapf(ErrMissingColumn, "%s: %q", f.Name, name)
	}
	return i, nil
}

// Row returns a cursor over the i-th record.
func (f *Frame) Row(i int) *Row {
	return &Row{frame: f, line: i + 2, record: f.Records[i]}
}

// Floats parses a whole column, at most limit rows when limit is positive.
func (f *Frame) Floats(name string, limit int) ([]float64, error) {
	n := f.Len()
	if limit > 0 && limit < n {
		n = limit
	}

	values := make([]float64, n)
	for i := 0; i < n; i++ {
		row := f.Row(i)
		values[i] = row.Float(name)
		if err := row.Err(); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// Row reads typed cells from a record. The first failure is kept and every later read
// returns the zero value, so a decoder can read all of its columns and check Err once.
type Row struct {
	frame  *Frame
	line   int
	record []string
	err    error
}

func (r *Row) Err() error {
	return r.err
}

func (r *Row) Line() int {
	return r.line
}

func (r *Row) cell(col string) (string, bool) {
	if r.err != nil {
		return "", false
	}

	i, err := r.frame.Column(col)
	if err != nil {
		r.err = err
		return "", false
	}

	if i >= len(r.record) {
		r.err = errors.Wrapf(ErrMissingColumn, "%s:%d: %q", r.frame.Name, r.line, col)
		return "", false
	}

	return strings.TrimSpace(r.record[i]), true
}

func (r *Row) fail(col, raw string) {
	r.err = errors.Wrapf(ErrInvalidValue, "%s:%d: column %q: %q", r.frame.Name, r.line, col, raw)
}

func (r *Row) String(col string) string {
	s, _ := r.cell(col)
	return s
}

// Float parses a float cell. Empty cells and NaN are read as NaN.
func (r *Row) Float(col string) float64 {
	s, ok := r.cell(col)
	if !ok {
		return 0
	}
	if s == "" {
		return math.NaN()
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		r.fail(col, s)
		return 0
	}
	return v
}

// Int parses an integer cell; integral floats such as "250.0" are accepted.
func (r *Row) Int(col string) int {
	s, ok := r.cell(col)
	if !ok {
		return 0
	}

	if v, err := strconv.Atoi(s); err == nil {
		return v
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || math.IsInf(v, 0) {
		r.fail(col, s)
		return 0
	}
	return int(v)
}

// Bool parses "True", "false", "1", "0" and the other forms strconv.ParseBool accepts.
func (r *Row) Bool(col string) bool {
	s, ok := r.cell(col)
	if !ok {
		return false
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		r.fail(col, s)
		return false
	}
	return v
}
