// Package docgen turns a quotation bundle into a styled document model and
// serializes it as a WordprocessingML (.docx) package. The model is a flat,
// ordered list of blocks so that what the document contains stays decoupled
// from how it is encoded.
package docgen

// Alignment controls paragraph justification.
type Alignment string

const (
	AlignLeft   Alignment = ""
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Block is one element of a document: a paragraph, a table or an image.
type Block interface {
	isBlock()
}

// Document is an ordered sequence of blocks.
type Document struct {
	Blocks []Block
}

// Run is a span of identically-styled text.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Color  string // RRGGBB, empty for default
	Size   int    // half-points, 0 for default
}

// Paragraph is a sequence of runs with shared alignment. Numbered renders the
// paragraph as an auto-numbered list item.
type Paragraph struct {
	Runs     []Run
	Align    Alignment
	Numbered bool
}

func (Paragraph) isBlock() {}

// TableCell holds paragraphs, optional shading and an optional column span.
type TableCell struct {
	Paragraphs []Paragraph
	Shading    string // RRGGBB fill, empty for none
	Span       int    // gridSpan, values below 2 mean no span
}

// TableRow is one row of cells.
type TableRow struct {
	Cells []TableCell
}

// Table is a grid with fixed relative column widths.
type Table struct {
	// ColumnWidths are relative units; each column receives its share of the
	// printable page width.
	ColumnWidths []int
	Rows         []TableRow
	Borders      bool
}

func (Table) isBlock() {}

// Image is an embedded picture rendered inline at a fixed physical size.
type Image struct {
	Data      []byte
	Format    string // "png" or "jpeg"
	WidthEMU  int64
	HeightEMU int64
	Align     Alignment
}

func (Image) isBlock() {}

// Text helpers used by the assembler.

func text(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s}}}
}

func boldText(s string) Paragraph {
	return Paragraph{Runs: []Run{{Text: s, Bold: true}}}
}
