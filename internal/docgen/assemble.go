package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gauravitis/quotecms/internal/clients"
	"github.com/gauravitis/quotecms/internal/companies"
	"github.com/gauravitis/quotecms/internal/employees"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

const (
	brandFill       = "1F4E79"
	brandTextColor  = "FFFFFF"
	currencySymbol  = "₹"
	sealSizeEMU     = 1005840 // 1.1in
	documentCaption = "QUOTATION/PERFORMA INVOICE"
)

// Line is one priced row of the items table, carrying both the snapshot
// fields and the calculator's per-line outputs.
type Line struct {
	CatalogueID     string
	Description     string
	PackSize        string
	HSNCode         string
	Quantity        float64
	UnitRate        decimal.Decimal
	DiscountPercent float64
	DiscountedPrice decimal.Decimal
	ExpandedPrice   decimal.Decimal
	GSTPercent      float64
	GSTAmount       decimal.Decimal
	TotalValue      decimal.Decimal
	LeadTime        string
	Brand           string
}

// Input bundles everything the assembler needs. All figures come in
// precomputed; the assembler only formats.
type Input struct {
	Company   companies.Company
	Client    clients.Client
	Employee  *employees.Employee
	RefNumber string
	Date      time.Time
	Lines     []Line

	SubTotal   decimal.Decimal
	TotalGST   decimal.Decimal
	GrandTotal decimal.Decimal
}

var defaultTerms = []string{
	"Prices are quoted in INR and valid for 30 days from the date of this quotation.",
	"Lead times are estimates from the date of a confirmed purchase order.",
	"Goods once sold will not be taken back or exchanged.",
	"Interest @18% p.a. will be charged on payments beyond the agreed credit period.",
}

const defaultPaymentTerms = "Payment: 100% within 30 days of delivery."

// Assembler builds the quotation document model. The seal fetch is the only
// side effect; its failure downgrades to a document without the seal image.
type Assembler struct {
	logger *slog.Logger
	seals  SealFetcher
}

func NewAssembler(logger *slog.Logger, seals SealFetcher) *Assembler {
	return &Assembler{logger: logger, seals: seals}
}

// Assemble produces the document for a quotation. Given identical inputs the
// output is identical apart from the embedded seal image bytes.
func (a *Assembler) Assemble(ctx context.Context, in Input) (*Document, error) {
	if in.RefNumber == "" {
		return nil, fmt.Errorf("%w: missing reference number", httpx.ErrAssembly)
	}
	if len(in.Lines) == 0 {
		return nil, fmt.Errorf("%w: quotation has no line items", httpx.ErrAssembly)
	}

	doc := &Document{}

	doc.Blocks = append(doc.Blocks, a.headerBlock(in.Company))
	doc.Blocks = append(doc.Blocks,
		Paragraph{},
		Paragraph{Runs: []Run{{Text: documentCaption, Bold: true, Size: 28}}, Align: AlignCenter},
	)
	doc.Blocks = append(doc.Blocks, a.refDateBlock(in))
	doc.Blocks = append(doc.Blocks, a.recipientBlock(in.Client))
	doc.Blocks = append(doc.Blocks,
		Paragraph{},
		text("Dear Sir/Madam,"),
		text("Thank you for your enquiry. We are pleased to quote our best prices as follows:"),
		Paragraph{},
	)
	doc.Blocks = append(doc.Blocks, a.itemsTable(in.Lines))
	doc.Blocks = append(doc.Blocks, a.totalsBlock(in)...)
	doc.Blocks = append(doc.Blocks, a.termsBlock(in.Company)...)
	doc.Blocks = append(doc.Blocks, a.bankBlock(in.Company)...)
	doc.Blocks = append(doc.Blocks, a.createdByBlock(in.Employee)...)
	doc.Blocks = append(doc.Blocks, a.signatureBlocks(ctx, in.Company)...)

	return doc, nil
}

func (a *Assembler) headerBlock(c companies.Company) Block {
	paras := []Paragraph{
		{Runs: []Run{{Text: c.Name, Bold: true, Color: brandTextColor, Size: 26}}, Align: AlignCenter},
	}
	if addr := strPtr(c.Address); addr != "" {
		paras = append(paras, Paragraph{Runs: []Run{{Text: addr, Color: brandTextColor}}, Align: AlignCenter})
	}
	contact := joinNonEmpty(" | ", prefixed("Phone: ", strPtr(c.Phone)), prefixed("Email: ", strPtr(c.Email)))
	if contact != "" {
		paras = append(paras, Paragraph{Runs: []Run{{Text: contact, Color: brandTextColor}}, Align: AlignCenter})
	}
	taxLine := joinNonEmpty(" | ", prefixed("PAN: ", strPtr(c.PANNumber)), prefixed("GST: ", strPtr(c.GSTNumber)))
	if taxLine != "" {
		paras = append(paras, Paragraph{Runs: []Run{{Text: taxLine, Color: brandTextColor}}, Align: AlignCenter})
	}

	return Table{
		ColumnWidths: []int{1},
		Borders:      false,
		Rows: []TableRow{
			{Cells: []TableCell{{Paragraphs: paras, Shading: brandFill}}},
		},
	}
}

func (a *Assembler) refDateBlock(in Input) Block {
	return Table{
		ColumnWidths: []int{1, 1},
		Borders:      false,
		Rows: []TableRow{
			{Cells: []TableCell{
				{Paragraphs: []Paragraph{boldText("Ref No: " + in.RefNumber)}},
				{Paragraphs: []Paragraph{{Runs: []Run{{Text: "Date: " + in.Date.Format("02-01-2006"), Bold: true}}, Align: AlignRight}}},
			}},
		},
	}
}

func (a *Assembler) recipientBlock(c clients.Client) Block {
	detail := []Paragraph{}
	if business := strPtr(c.BusinessName); business != "" {
		detail = append(detail, boldText(business))
	}
	if addr := strPtr(c.Address); addr != "" {
		detail = append(detail, text(addr))
	}
	contact := joinNonEmpty(", ", c.Name, strPtr(c.Mobile), strPtr(c.Email))
	if contact != "" {
		detail = append(detail, text("Kind Attn: "+contact))
	}
	if len(detail) == 0 {
		detail = append(detail, text(c.Name))
	}

	return Table{
		ColumnWidths: []int{1},
		Borders:      true,
		Rows: []TableRow{
			{Cells: []TableCell{{
				Paragraphs: []Paragraph{{Runs: []Run{{Text: "To", Bold: true, Color: brandTextColor}}}},
				Shading:    brandFill,
			}}},
			{Cells: []TableCell{{Paragraphs: detail}}},
		},
	}
}

// itemsTableHeaders is the fixed 14-column schema of the items table.
var itemsTableHeaders = []string{
	"S.No", "Catalogue No.", "Description", "Pack Size", "HSN Code", "Qty",
	"Unit Rate", "Discounted Price", "Expanded Price", "GST %", "GST Amount",
	"Total Value", "Lead Time", "Brand",
}

var itemsTableWidths = []int{400, 700, 1900, 600, 700, 400, 700, 700, 700, 450, 700, 800, 650, 600}

func (a *Assembler) itemsTable(lines []Line) Block {
	rows := make([]TableRow, 0, len(lines)+1)

	header := TableRow{}
	for _, h := range itemsTableHeaders {
		header.Cells = append(header.Cells, TableCell{
			Shading:    brandFill,
			Paragraphs: []Paragraph{{Runs: []Run{{Text: h, Bold: true, Color: brandTextColor}}, Align: AlignCenter}},
		})
	}
	rows = append(rows, header)

	for i, line := range lines {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			line.CatalogueID,
			line.Description,
			line.PackSize,
			line.HSNCode,
			trimFloat(line.Quantity),
			money(line.UnitRate),
			money(line.DiscountedPrice),
			money(line.ExpandedPrice),
			trimFloat(line.GSTPercent),
			money(line.GSTAmount),
			money(line.TotalValue),
			line.LeadTime,
			line.Brand,
		}
		row := TableRow{}
		for _, cell := range cells {
			row.Cells = append(row.Cells, TableCell{Paragraphs: []Paragraph{{Runs: []Run{{Text: cell}}, Align: AlignCenter}}})
		}
		rows = append(rows, row)
	}

	return Table{ColumnWidths: itemsTableWidths, Rows: rows, Borders: true}
}

func (a *Assembler) totalsBlock(in Input) []Block {
	return []Block{
		Paragraph{},
		Paragraph{Runs: []Run{{Text: "Sub Total: " + money(in.SubTotal)}}, Align: AlignRight},
		Paragraph{Runs: []Run{{Text: "Total GST: " + money(in.TotalGST)}}, Align: AlignRight},
		Paragraph{Runs: []Run{{Text: "Grand Total: " + money(in.GrandTotal), Bold: true}}, Align: AlignRight},
	}
}

func (a *Assembler) termsBlock(c companies.Company) []Block {
	blocks := []Block{
		Paragraph{},
		a.shadedHeading("Terms & Conditions"),
	}

	payment := strPtr(c.PaymentTerms)
	if payment == "" {
		payment = defaultPaymentTerms
	}
	terms := append([]string{payment}, defaultTerms...)
	for _, term := range terms {
		blocks = append(blocks, Paragraph{Runs: []Run{{Text: term}}, Numbered: true})
	}
	return blocks
}

func (a *Assembler) bankBlock(c companies.Company) []Block {
	detail := joinNonEmpty("; ",
		prefixed("Bank: ", strPtr(c.BankName)),
		prefixed("A/C No: ", strPtr(c.AccountNumber)),
		prefixed("IFSC: ", strPtr(c.IFSCCode)),
		prefixed("Branch Code: ", strPtr(c.BranchCode)),
		prefixed("MICR: ", strPtr(c.MICRCode)),
		prefixed("Account Type: ", c.AccountType),
	)
	if detail == "" {
		return nil
	}
	return []Block{
		Paragraph{},
		a.shadedHeading("Bank Details"),
		text(detail),
	}
}

func (a *Assembler) createdByBlock(e *employees.Employee) []Block {
	if e == nil {
		return nil
	}
	blocks := []Block{
		Paragraph{},
		a.shadedHeading("Quotation Created By"),
	}
	line := Paragraph{Runs: []Run{{Text: e.Name}}}
	if phone := strPtr(e.Phone); phone != "" {
		line.Runs = append(line.Runs, Run{Text: " | " + phone})
	}
	if email := strPtr(e.Email); email != "" {
		line.Runs = append(line.Runs, Run{Text: " | "}, Run{Text: email, Italic: true, Color: brandFill})
	}
	return append(blocks, line)
}

func (a *Assembler) signatureBlocks(ctx context.Context, c companies.Company) []Block {
	blocks := []Block{
		Paragraph{},
		Paragraph{Runs: []Run{{Text: "For " + strings.ToUpper(c.Name), Bold: true}}, Align: AlignRight},
	}

	if ref := strPtr(c.SealImageURL); ref != "" && a.seals != nil {
		data, format, err := a.seals.Fetch(ctx, ref)
		if err != nil {
			// A missing seal never fails the document.
			a.logger.Warn("seal image unavailable, omitting",
				slog.String("ref", ref), slog.Any("error", err))
		} else {
			blocks = append(blocks, Image{
				Data:      data,
				Format:    format,
				WidthEMU:  sealSizeEMU,
				HeightEMU: sealSizeEMU,
				Align:     AlignRight,
			})
		}
	}

	blocks = append(blocks, Paragraph{Runs: []Run{{Text: "Authorized Signatory"}}, Align: AlignRight})
	return blocks
}

func (a *Assembler) shadedHeading(title string) Block {
	return Table{
		ColumnWidths: []int{1},
		Borders:      false,
		Rows: []TableRow{
			{Cells: []TableCell{{
				Paragraphs: []Paragraph{{Runs: []Run{{Text: title, Bold: true, Color: brandTextColor}}}},
				Shading:    brandFill,
			}}},
		},
	}
}

// money renders a decimal with the currency symbol and exactly two decimals.
// Rounding happens here, once, at the display edge.
func money(d decimal.Decimal) string {
	return currencySymbol + d.StringFixed(2)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

func strPtr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func prefixed(prefix, s string) string {
	if s == "" {
		return ""
	}
	return prefix + s
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
