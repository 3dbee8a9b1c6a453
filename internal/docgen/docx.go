package docgen

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// WordprocessingML serializer for the block model. Only the parts a quotation
// needs are emitted; part order and zip entry order are fixed so identical
// documents produce identical archives.

const (
	wNS  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	rNS  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	wpNS = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"

	// Printable width in twips for an A4 page with 0.5in margins.
	pageContentTwips = 10466
)

// ContentType is the MIME type of a .docx download.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type mediaPart struct {
	name   string // part name under word/
	relID  string
	format string
	data   []byte
}

// WriteDocx serializes the document into a .docx package.
func WriteDocx(w io.Writer, doc *Document) error {
	media := collectMedia(doc)

	body, err := buildBody(doc, media)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML(media)},
		{"_rels/.rels", rootRelsXML},
		{"word/document.xml", documentXML(body)},
		{"word/_rels/document.xml.rels", documentRelsXML(media)},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
	}
	for _, part := range parts {
		if err := writeZipEntry(zw, part.name, []byte(part.data)); err != nil {
			return err
		}
	}
	for _, m := range media {
		if err := writeZipEntry(zw, "word/"+m.name, m.data); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("docgen: close docx package: %w", err)
	}
	return nil
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	// A zero Modified timestamp keeps archives byte-identical across runs.
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("docgen: create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("docgen: write %s: %w", name, err)
	}
	return nil
}

func collectMedia(doc *Document) []mediaPart {
	var media []mediaPart
	for _, block := range doc.Blocks {
		img, ok := block.(Image)
		if !ok {
			continue
		}
		n := len(media) + 1
		ext := "png"
		if img.Format == "jpeg" {
			ext = "jpeg"
		}
		media = append(media, mediaPart{
			name:   fmt.Sprintf("media/image%d.%s", n, ext),
			relID:  fmt.Sprintf("rId%d", n+2), // rId1/rId2 are styles and numbering
			format: img.Format,
			data:   img.Data,
		})
	}
	return media
}

func contentTypesXML(media []mediaPart) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	havePNG, haveJPEG := false, false
	for _, m := range media {
		switch m.format {
		case "png":
			havePNG = true
		case "jpeg":
			haveJPEG = true
		}
	}
	if havePNG {
		b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	}
	if haveJPEG {
		b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	}
	b.WriteString(`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>`)
	b.WriteString(`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>`)
	b.WriteString(`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>`)
	b.WriteString(`</Types>`)
	return b.String()
}

const rootRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

func documentRelsXML(media []mediaPart) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>`)
	b.WriteString(`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>`)
	for _, m := range media {
		b.WriteString(`<Relationship Id="` + m.relID + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="` + m.name + `"/>`)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

const stylesXML = xml.Header +
	`<w:styles xmlns:w="` + wNS + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="22"/><w:szCs w:val="22"/>` +
	`</w:rPr></w:rPrDefault></w:docDefaults>` +
	`</w:styles>`

const numberingXML = xml.Header +
	`<w:numbering xmlns:w="` + wNS + `">` +
	`<w:abstractNum w:abstractNumId="0"><w:lvl w:ilvl="0">` +
	`<w:start w:val="1"/><w:numFmt w:val="decimal"/><w:lvlText w:val="%1."/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr>` +
	`</w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`

func documentXML(body string) string {
	return xml.Header +
		`<w:document xmlns:w="` + wNS + `" xmlns:r="` + rNS + `" xmlns:wp="` + wpNS + `">` +
		`<w:body>` + body +
		`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="720" w:right="720" w:bottom="720" w:left="720" w:header="708" w:footer="708" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`
}

func buildBody(doc *Document, media []mediaPart) (string, error) {
	var b strings.Builder
	imageIdx := 0
	for _, block := range doc.Blocks {
		switch v := block.(type) {
		case Paragraph:
			writeParagraph(&b, v)
		case Table:
			if err := writeTable(&b, v); err != nil {
				return "", err
			}
		case Image:
			writeImage(&b, v, media[imageIdx], imageIdx+1)
			imageIdx++
		default:
			return "", fmt.Errorf("docgen: unknown block type %T", block)
		}
	}
	return b.String(), nil
}

func writeParagraph(b *strings.Builder, p Paragraph) {
	b.WriteString(`<w:p>`)
	if p.Align != AlignLeft || p.Numbered {
		b.WriteString(`<w:pPr>`)
		if p.Numbered {
			b.WriteString(`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
		}
		writeAlign(b, p.Align)
		b.WriteString(`</w:pPr>`)
	}
	for _, run := range p.Runs {
		writeRun(b, run)
	}
	b.WriteString(`</w:p>`)
}

func writeAlign(b *strings.Builder, a Alignment) {
	switch a {
	case AlignCenter:
		b.WriteString(`<w:jc w:val="center"/>`)
	case AlignRight:
		b.WriteString(`<w:jc w:val="right"/>`)
	}
}

func writeRun(b *strings.Builder, r Run) {
	if r.Text == "" {
		return
	}
	b.WriteString(`<w:r>`)
	if r.Bold || r.Italic || r.Color != "" || r.Size > 0 {
		b.WriteString(`<w:rPr>`)
		if r.Bold {
			b.WriteString(`<w:b/>`)
		}
		if r.Italic {
			b.WriteString(`<w:i/>`)
		}
		if r.Color != "" {
			b.WriteString(`<w:color w:val="` + r.Color + `"/>`)
		}
		if r.Size > 0 {
			fmt.Fprintf(b, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, r.Size, r.Size)
		}
		b.WriteString(`</w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escape(r.Text))
	b.WriteString(`</w:t></w:r>`)
}

func writeTable(b *strings.Builder, t Table) error {
	if len(t.ColumnWidths) == 0 || len(t.Rows) == 0 {
		return fmt.Errorf("docgen: table requires columns and rows")
	}

	widths := columnTwips(t.ColumnWidths)

	b.WriteString(`<w:tbl><w:tblPr>`)
	fmt.Fprintf(b, `<w:tblW w:w="%d" w:type="dxa"/>`, pageContentTwips)
	if t.Borders {
		b.WriteString(`<w:tblBorders>` +
			`<w:top w:val="single" w:sz="4" w:color="auto"/>` +
			`<w:left w:val="single" w:sz="4" w:color="auto"/>` +
			`<w:bottom w:val="single" w:sz="4" w:color="auto"/>` +
			`<w:right w:val="single" w:sz="4" w:color="auto"/>` +
			`<w:insideH w:val="single" w:sz="4" w:color="auto"/>` +
			`<w:insideV w:val="single" w:sz="4" w:color="auto"/>` +
			`</w:tblBorders>`)
	}
	b.WriteString(`<w:tblLayout w:type="fixed"/></w:tblPr><w:tblGrid>`)
	for _, w := range widths {
		fmt.Fprintf(b, `<w:gridCol w:w="%d"/>`, w)
	}
	b.WriteString(`</w:tblGrid>`)

	for _, row := range t.Rows {
		b.WriteString(`<w:tr>`)
		for i, cell := range row.Cells {
			width := 0
			if i < len(widths) {
				width = widths[i]
			}
			writeCell(b, cell, width)
		}
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	return nil
}

func writeCell(b *strings.Builder, c TableCell, width int) {
	b.WriteString(`<w:tc><w:tcPr>`)
	if width > 0 {
		fmt.Fprintf(b, `<w:tcW w:w="%d" w:type="dxa"/>`, width)
	}
	if c.Span > 1 {
		fmt.Fprintf(b, `<w:gridSpan w:val="%d"/>`, c.Span)
	}
	if c.Shading != "" {
		b.WriteString(`<w:shd w:val="clear" w:fill="` + c.Shading + `"/>`)
	}
	b.WriteString(`</w:tcPr>`)
	if len(c.Paragraphs) == 0 {
		// A table cell must contain at least one paragraph.
		b.WriteString(`<w:p/>`)
	}
	for _, p := range c.Paragraphs {
		writeParagraph(b, p)
	}
	b.WriteString(`</w:tc>`)
}

func writeImage(b *strings.Builder, img Image, part mediaPart, n int) {
	b.WriteString(`<w:p>`)
	if img.Align != AlignLeft {
		b.WriteString(`<w:pPr>`)
		writeAlign(b, img.Align)
		b.WriteString(`</w:pPr>`)
	}
	fmt.Fprintf(b,
		`<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
			`<wp:extent cx="%d" cy="%d"/>`+
			`<wp:docPr id="%d" name="Picture %d"/>`+
			`<a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">`+
			`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
			`<pic:nvPicPr><pic:cNvPr id="%d" name="Picture %d"/><pic:cNvPicPr/></pic:nvPicPr>`+
			`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
			`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
			`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
			`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		img.WidthEMU, img.HeightEMU, n, n, n, n, part.relID, img.WidthEMU, img.HeightEMU)
	b.WriteString(`</w:p>`)
}

// columnTwips distributes the printable width across columns proportionally
// to their relative widths, assigning the remainder to the last column.
func columnTwips(relative []int) []int {
	total := 0
	for _, r := range relative {
		total += r
	}
	if total == 0 {
		total = len(relative)
	}

	widths := make([]int, len(relative))
	used := 0
	for i, r := range relative {
		if i == len(relative)-1 {
			widths[i] = pageContentTwips - used
			break
		}
		widths[i] = pageContentTwips * r / total
		used += widths[i]
	}
	return widths
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
