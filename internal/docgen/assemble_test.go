package docgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravitis/quotecms/internal/clients"
	"github.com/gauravitis/quotecms/internal/companies"
	"github.com/gauravitis/quotecms/internal/employees"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

type stubSealFetcher struct {
	data   []byte
	format string
	err    error
}

func (s *stubSealFetcher) Fetch(ctx context.Context, ref string) ([]byte, string, error) {
	if s.err != nil {
		return nil, "", s.err
	}
	return s.data, s.format, nil
}

func strp(s string) *string { return &s }

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func testInput() Input {
	return Input{
		Company: companies.Company{
			ID:            1,
			Name:          "Acme Scientific Supplies",
			Address:       strp("14 Industrial Estate, New Delhi"),
			Phone:         strp("+91-11-40001000"),
			Email:         strp("sales@acmesci.example"),
			PANNumber:     strp("AAACA1234F"),
			GSTNumber:     strp("07AAACA1234F1Z5"),
			BankName:      strp("State Bank of India"),
			AccountNumber: strp("30112233445"),
			IFSCCode:      strp("SBIN0001234"),
			AccountType:   "Current Account",
		},
		Client: clients.Client{
			ID:           10,
			CompanyID:    1,
			Name:         "Dr. R. Sharma",
			BusinessName: strp("National Research Institute"),
			Address:      strp("Sector 62, Noida"),
			Mobile:       strp("+91-98100-11111"),
		},
		Employee: &employees.Employee{
			ID:    100,
			Name:  "Gaurav Singh",
			Email: strp("gaurav@acmesci.example"),
		},
		RefNumber: "QT-2024-0007",
		Date:      time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		Lines: []Line{
			{
				CatalogueID:     "AC-1001",
				Description:     "Acetonitrile HPLC Grade",
				PackSize:        "2.5 L",
				HSNCode:         "29269000",
				Quantity:        3,
				UnitRate:        dec("100"),
				DiscountPercent: 10,
				DiscountedPrice: dec("90"),
				ExpandedPrice:   dec("270"),
				GSTPercent:      18,
				GSTAmount:       dec("48.60"),
				TotalValue:      dec("318.60"),
				LeadTime:        "2-3 weeks",
				Brand:           "Merck",
			},
		},
		SubTotal:   dec("270"),
		TotalGST:   dec("48.60"),
		GrandTotal: dec("318.60"),
	}
}

func testAssembler(seals SealFetcher) *Assembler {
	return NewAssembler(slog.New(slog.NewTextHandler(io.Discard, nil)), seals)
}

// collectText walks the document and gathers all run text.
func collectText(doc *Document) string {
	var b strings.Builder
	var fromParagraph func(p Paragraph)
	fromParagraph = func(p Paragraph) {
		for _, r := range p.Runs {
			b.WriteString(r.Text)
			b.WriteString("\n")
		}
	}
	for _, block := range doc.Blocks {
		switch v := block.(type) {
		case Paragraph:
			fromParagraph(v)
		case Table:
			for _, row := range v.Rows {
				for _, cell := range row.Cells {
					for _, p := range cell.Paragraphs {
						fromParagraph(p)
					}
				}
			}
		}
	}
	return b.String()
}

func TestAssembleSections(t *testing.T) {
	doc, err := testAssembler(nil).Assemble(context.Background(), testInput())
	require.NoError(t, err)

	text := collectText(doc)

	// Header and caption.
	assert.Contains(t, text, "Acme Scientific Supplies")
	assert.Contains(t, text, "QUOTATION/PERFORMA INVOICE")
	// Reference and date.
	assert.Contains(t, text, "Ref No: QT-2024-0007")
	assert.Contains(t, text, "Date: 15-06-2024")
	// Recipient.
	assert.Contains(t, text, "National Research Institute")
	assert.Contains(t, text, "Kind Attn: Dr. R. Sharma, +91-98100-11111")
	// Items with formatted money.
	assert.Contains(t, text, "Acetonitrile HPLC Grade")
	assert.Contains(t, text, "₹90.00")
	assert.Contains(t, text, "₹318.60")
	// Totals.
	assert.Contains(t, text, "Sub Total: ₹270.00")
	assert.Contains(t, text, "Total GST: ₹48.60")
	assert.Contains(t, text, "Grand Total: ₹318.60")
	// Terms, bank details, created-by and signature.
	assert.Contains(t, text, "Terms & Conditions")
	assert.Contains(t, text, "Bank Details")
	assert.Contains(t, text, "SBIN0001234")
	assert.Contains(t, text, "Quotation Created By")
	assert.Contains(t, text, "Gaurav Singh")
	assert.Contains(t, text, "For ACME SCIENTIFIC SUPPLIES")
	assert.Contains(t, text, "Authorized Signatory")
}

func TestAssembleItemsTableShape(t *testing.T) {
	doc, err := testAssembler(nil).Assemble(context.Background(), testInput())
	require.NoError(t, err)

	var itemsTable *Table
	for _, block := range doc.Blocks {
		if tbl, ok := block.(Table); ok && len(tbl.ColumnWidths) == len(itemsTableHeaders) {
			itemsTable = &tbl
			break
		}
	}
	require.NotNil(t, itemsTable, "items table present")
	require.Len(t, itemsTable.Rows, 2, "header row plus one line")
	assert.Len(t, itemsTable.Rows[0].Cells, 14)
	assert.Equal(t, "1", itemsTable.Rows[1].Cells[0].Paragraphs[0].Runs[0].Text)
}

func TestAssembleRequiresRefAndLines(t *testing.T) {
	a := testAssembler(nil)
	ctx := context.Background()

	in := testInput()
	in.RefNumber = ""
	_, err := a.Assemble(ctx, in)
	require.ErrorIs(t, err, httpx.ErrAssembly)

	in = testInput()
	in.Lines = nil
	_, err = a.Assemble(ctx, in)
	require.ErrorIs(t, err, httpx.ErrAssembly)
}

func TestAssembleEmbedsSeal(t *testing.T) {
	seal := &stubSealFetcher{data: []byte{0x89, 'P', 'N', 'G', 0, 0}, format: "png"}
	a := testAssembler(seal)

	in := testInput()
	in.Company.SealImageURL = strp("https://img.example/seal.png")

	doc, err := a.Assemble(context.Background(), in)
	require.NoError(t, err)

	var images int
	for _, block := range doc.Blocks {
		if _, ok := block.(Image); ok {
			images++
		}
	}
	assert.Equal(t, 1, images)
}

func TestAssembleOmitsSealOnFetchFailure(t *testing.T) {
	seal := &stubSealFetcher{err: errors.New("connection refused")}
	a := testAssembler(seal)

	in := testInput()
	in.Company.SealImageURL = strp("https://img.example/seal.png")

	doc, err := a.Assemble(context.Background(), in)
	require.NoError(t, err, "a missing seal never fails assembly")

	for _, block := range doc.Blocks {
		_, ok := block.(Image)
		assert.False(t, ok, "no image embedded when the fetch fails")
	}
	assert.Contains(t, collectText(doc), "Authorized Signatory")
}

func TestAssembleOptionalPartsOmitted(t *testing.T) {
	in := testInput()
	in.Employee = nil
	in.Company.BankName = nil
	in.Company.AccountNumber = nil
	in.Company.IFSCCode = nil
	in.Company.BranchCode = nil
	in.Company.MICRCode = nil
	in.Company.AccountType = ""

	doc, err := testAssembler(nil).Assemble(context.Background(), in)
	require.NoError(t, err)

	text := collectText(doc)
	assert.NotContains(t, text, "Quotation Created By")
	assert.NotContains(t, text, "Bank Details")
}
