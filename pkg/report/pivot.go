package report

import (
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

var (
	ErrDuplicateCell = errors.New("duplicate cell")
	ErrShapeMismatch = errors.New("leading column does not match the table rows")
)

// Cell is a table value; cells that were never set or hold NaN are not valid.
type Cell struct {
	Value float64
	Valid bool
}

// Pivot collects long-format values into a wide table with one row per condition and
// the columns in exactly the order given to NewPivot.
type Pivot struct {
	columns  []string
	colIndex map[string]int

	rows     []string
	rowIndex map[string]int
	cells    [][]Cell
	set      [][]bool

	dropped int
}

func NewPivot(columns []string) *Pivot {
	p := &Pivot{
		columns:  append([]string(nil), columns...),
		colIndex: make(map[string]int, len(columns)),
		rowIndex: make(map[string]int),
	}
	for i, c := range columns {
		p.colIndex[c] = i
	}
	return p
}

// AddRow appends an empty row unless it exists already.
func (p *Pivot) AddRow(row string) int {
	if i, ok := p.rowIndex[row]; ok {
		return i
	}

	p.rowIndex[row] = len(p.rows)
	p.rows = append(p.rows, row)
	p.cells = append(p.cells, make([]Cell, len(p.columns)))
	p.set = append(p.set, make([]bool, len(p.columns)))
	return len(p.rows) - 1
}

// Set stores a value. Values of columns outside of the ordering are dropped; setting a
// cell twice is an error.
func (p *Pivot) Set(row, column string, value float64) error {
	j, ok := p.colIndex[column]
	if !ok {
		p.dropped++
		return nil
	}

	i := p.AddRow(row)
	if p.set[i][j] {
		return errors.Wrapf(ErrDuplicateCell, "row %q, column %q", row, column)
	}

	p.set[i][j] = true
	p.cells[i][j] = Cell{Value: value, Valid: !math.IsNaN(value)}
	return nil
}

func (p *Pivot) Cell(row, column string) Cell {
	i, ok := p.rowIndex[row]
	if !ok {
		return Cell{}
	}
	j, ok := p.colIndex[column]
	if !ok {
		return Cell{}
	}
	return p.cells[i][j]
}

func (p *Pivot) Rows() []string {
	return append([]string(nil), p.rows...)
}

func (p *Pivot) Columns() []string {
	return append([]string(nil), p.columns...)
}

// Dropped is the number of values whose column is not part of the table.
func (p *Pivot) Dropped() int {
	return p.dropped
}

// SortRows reorders the rows.
func (p *Pivot) SortRows(less func(a, b string) bool) {
	order := make([]int, len(p.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return less(p.rows[order[a]], p.rows[order[b]]) })

	rows := make([]string, len(order))
	cells := make([][]Cell, len(order))
	set := make([][]bool, len(order))
	for to, from := range order {
		rows[to] = p.rows[from]
		cells[to] = p.cells[from]
		set[to] = p.set[from]
		p.rowIndex[rows[to]] = to
	}
	p.rows, p.cells, p.set = rows, cells, set
}

// NumericLess orders row keys as numbers, falling back to string order.
func NumericLess(a, b string) bool {
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	if errA != nil || errB != nil {
		return a < b
	}
	return x < y
}

// LeadingColumn is a text column printed before the value columns, one value per row.
type LeadingColumn struct {
	Name   string
	Values []string
}

// Table freezes the pivot into a table with the given leading columns.
func (p *Pivot) Table(leading ...LeadingColumn) (*Table, error) {
	for _, lc := range leading {
		if len(lc.Values) != len(p.rows) {
			return nil, errors.Wrapf(ErrShapeMismatch, "%q has %d values for %d rows", lc.Name, len(lc.Values), len(p.rows))
		}
	}

	cells := make([][]Cell, len(p.cells))
	for i, row := range p.cells {
		cells[i] = append([]Cell(nil), row...)
	}

	return &Table{
		Leading:     leading,
		Columns:     p.Columns(),
		Rows:        p.Rows(),
		Cells:       cells,
		Placeholder: DefaultPlaceholder,
		FloatFormat: DefaultFloatFormat,
	}, nil
}
