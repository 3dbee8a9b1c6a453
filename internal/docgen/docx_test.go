package docgen

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, doc *Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteDocx(&buf, doc))
	return buf.Bytes()
}

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer func() {
				_ = rc.Close()
			}()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func partNames(t *testing.T, data []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestWriteDocxPackageParts(t *testing.T) {
	doc := &Document{Blocks: []Block{text("hello")}}
	data := writeDoc(t, doc)

	assert.Equal(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"word/styles.xml",
		"word/numbering.xml",
	}, partNames(t, data))
}

func TestWriteDocxParagraphs(t *testing.T) {
	doc := &Document{Blocks: []Block{
		Paragraph{Runs: []Run{{Text: "Quotation", Bold: true, Size: 28}}, Align: AlignCenter},
		Paragraph{Runs: []Run{{Text: "a < b & c", Italic: true, Color: "1F4E79"}}},
		Paragraph{Runs: []Run{{Text: "First term"}}, Numbered: true},
	}}
	body := readPart(t, writeDoc(t, doc), "word/document.xml")

	assert.Contains(t, body, `<w:jc w:val="center"/>`)
	assert.Contains(t, body, `<w:b/>`)
	assert.Contains(t, body, `<w:sz w:val="28"/>`)
	assert.Contains(t, body, `<w:i/>`)
	assert.Contains(t, body, `<w:color w:val="1F4E79"/>`)
	assert.Contains(t, body, "a &lt; b &amp; c", "text is xml-escaped")
	assert.Contains(t, body, `<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
}

func TestWriteDocxTable(t *testing.T) {
	doc := &Document{Blocks: []Block{
		Table{
			ColumnWidths: []int{1, 3},
			Borders:      true,
			Rows: []TableRow{
				{Cells: []TableCell{
					{Paragraphs: []Paragraph{boldText("Head")}, Shading: "1F4E79"},
					{Paragraphs: []Paragraph{text("Value")}},
				}},
				{Cells: []TableCell{
					{Paragraphs: []Paragraph{text("wide")}, Span: 2},
				}},
			},
		},
	}}
	body := readPart(t, writeDoc(t, doc), "word/document.xml")

	assert.Contains(t, body, `<w:tblBorders>`)
	assert.Contains(t, body, `<w:shd w:val="clear" w:fill="1F4E79"/>`)
	assert.Contains(t, body, `<w:gridSpan w:val="2"/>`)
	// Relative widths 1:3 over the printable width.
	assert.Contains(t, body, `<w:gridCol w:w="2616"/>`)
	assert.Contains(t, body, `<w:gridCol w:w="7850"/>`)
}

func TestWriteDocxEmptyTableRejected(t *testing.T) {
	doc := &Document{Blocks: []Block{Table{}}}
	err := WriteDocx(io.Discard, doc)
	require.Error(t, err)
}

func TestWriteDocxImage(t *testing.T) {
	doc := &Document{Blocks: []Block{
		Image{
			Data:      []byte{0x89, 'P', 'N', 'G', 1, 2, 3},
			Format:    "png",
			WidthEMU:  914400,
			HeightEMU: 914400,
			Align:     AlignRight,
		},
	}}
	data := writeDoc(t, doc)

	assert.Contains(t, partNames(t, data), "word/media/image1.png")

	types := readPart(t, data, "[Content_Types].xml")
	assert.Contains(t, types, `Extension="png"`)

	rels := readPart(t, data, "word/_rels/document.xml.rels")
	assert.Contains(t, rels, `Target="media/image1.png"`)
	assert.Contains(t, rels, `Id="rId3"`)

	body := readPart(t, data, "word/document.xml")
	assert.Contains(t, body, `<wp:extent cx="914400" cy="914400"/>`)
	assert.Contains(t, body, `r:embed="rId3"`)
}

func TestWriteDocxDeterministic(t *testing.T) {
	doc := &Document{Blocks: []Block{
		text("same input"),
		Table{ColumnWidths: []int{1}, Rows: []TableRow{{Cells: []TableCell{{Paragraphs: []Paragraph{text("cell")}}}}}},
	}}

	first := writeDoc(t, doc)
	second := writeDoc(t, doc)
	assert.Equal(t, first, second, "identical documents produce identical archives")
}

func TestColumnTwips(t *testing.T) {
	widths := columnTwips([]int{1, 1})
	require.Len(t, widths, 2)
	assert.Equal(t, pageContentTwips, widths[0]+widths[1], "columns fill the printable width exactly")

	uneven := columnTwips([]int{400, 700, 1900})
	sum := 0
	for _, w := range uneven {
		sum += w
	}
	assert.Equal(t, pageContentTwips, sum)
}

func TestWriteDocxFullAssembly(t *testing.T) {
	doc, err := testAssembler(nil).Assemble(context.Background(), testInput())
	require.NoError(t, err)

	data := writeDoc(t, doc)
	body := readPart(t, data, "word/document.xml")
	assert.True(t, strings.Contains(body, "QUOTATION/PERFORMA INVOICE"))
	assert.True(t, strings.Contains(body, "₹318.60"))
}
