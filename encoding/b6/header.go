package b6

import (
	"fmt"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
)

// Column identifies one of the twelve canonical B6 columns.
type Column int

// The canonical columns, in default order.
const (
	Query Column = iota
	Subject
	Identity
	Length
	Mismatches
	GapOpens
	QueryStart
	QueryEnd
	SubjectStart
	SubjectEnd
	EValue
	BitScore

	// NumColumns is the number of canonical columns.
	NumColumns = 12
)

var columnNames = [NumColumns]string{
	"qaccver", "saccver", "pident", "length", "mismatch", "gapopen",
	"qstart", "qend", "sstart", "send", "evalue", "bitscore",
}

// Older BLAST+ releases and many pipelines name the ID columns differently.
var columnAliases = map[string]Column{
	"qseqid": Query,
	"qacc":   Query,
	"sseqid": Subject,
	"sacc":   Subject,
}

// String returns the BLAST+ format specifier of c.
func (c Column) String() string { return columnNames[c] }

// LookupColumn returns the canonical column named by a BLAST+ format
// specifier.
func LookupColumn(name string) (Column, bool) {
	for c, n := range columnNames {
		if n == name {
			return Column(c), true
		}
	}
	c, ok := columnAliases[name]
	return c, ok
}

// DefaultColumns returns the column layout of BLAST+ "-outfmt 6".  The
// returned slice is a fresh copy.
func DefaultColumns() []string {
	cols := make([]string, NumColumns)
	copy(cols, columnNames[:])
	return cols
}

// Header is a B6 column layout.  It is immutable once constructed and may
// be shared between Scanners and Records.
type Header struct {
	// names are the unique column names in file order.
	names []string
	// pos[i] is the row index of names[i].
	pos []int
	// canonical[i] is the canonical column of names[i], or -1 for an extra
	// column.
	canonical []Column
	// index maps each canonical column to its row index, or -1.
	index  [NumColumns]int
	extras []string
	// width is the number of columns in a row, including duplicates.
	width int
}

var defaultHeader = mustHeader(DefaultColumns())

func mustHeader(cols []string) *Header {
	h, err := NewHeader(cols)
	if err != nil {
		panic(err)
	}
	return h
}

// DefaultHeader returns the header for DefaultColumns.
func DefaultHeader() *Header { return defaultHeader }

// NewHeader constructs a Header from an ordered list of BLAST+ format
// specifiers.  Columns may be any super- or subset of the canonical
// twelve; non-canonical columns are kept in Record.Extra.  The query and
// subject columns are required.  When a name appears more than once, the
// first occurrence wins and later ones are ignored.
func NewHeader(columns []string) (*Header, error) {
	h := &Header{width: len(columns)}
	for i := range h.index {
		h.index[i] = -1
	}
	seen := make(map[string]bool, len(columns))
	for i, name := range columns {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.E(errors.Invalid, fmt.Sprintf("b6: empty column name at position %d", i+1))
		}
		if seen[name] {
			log.Printf("b6: duplicate column %q in header, keeping the first occurrence", name)
			continue
		}
		seen[name] = true
		c, ok := LookupColumn(name)
		if ok && h.index[c] >= 0 {
			log.Printf("b6: column %q duplicates %q, keeping the first occurrence", name, c)
			continue
		}
		h.names = append(h.names, name)
		h.pos = append(h.pos, i)
		if ok {
			h.index[c] = i
			h.canonical = append(h.canonical, c)
		} else {
			h.canonical = append(h.canonical, -1)
			h.extras = append(h.extras, name)
		}
	}
	if h.index[Query] < 0 {
		return nil, errors.E(errors.Invalid, "b6: header", strings.Join(columns, " "), "has no query ID column (qaccver)")
	}
	if h.index[Subject] < 0 {
		return nil, errors.E(errors.Invalid, "b6: header", strings.Join(columns, " "), "has no subject ID column (saccver)")
	}
	return h, nil
}

// Columns returns the unique column names in file order.
func (h *Header) Columns() []string {
	return append([]string(nil), h.names...)
}

// Extras returns the non-canonical column names in file order.
func (h *Header) Extras() []string {
	return append([]string(nil), h.extras...)
}

// Width returns the number of tab-separated columns in a row.
func (h *Header) Width() int { return h.width }

// Has reports whether the layout includes column c.
func (h *Header) Has(c Column) bool { return h.index[c] >= 0 }

// IsDefault reports whether h has the default layout.
func (h *Header) IsDefault() bool {
	if h.width != NumColumns || len(h.names) != NumColumns {
		return false
	}
	for i, c := range h.canonical {
		if c != Column(i) {
			return false
		}
	}
	return true
}
