package quotations

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gauravitis/quotecms/internal/clients"
	"github.com/gauravitis/quotecms/internal/companies"
	"github.com/gauravitis/quotecms/internal/docgen"
	"github.com/gauravitis/quotecms/internal/employees"
	"github.com/gauravitis/quotecms/internal/items"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

// Stage names the phase of quotation processing in which an error occurred.
type Stage string

const (
	StageValidating    Stage = "validating"
	StageAllocatingRef Stage = "allocating_ref"
	StagePersisting    Stage = "persisting"
	StageAssembling    Stage = "assembling"
	StageEncoding      Stage = "encoding"
	StageStoring       Stage = "storing"
)

// StageError wraps an error with the processing stage that produced it, so
// API responses and logs can say where a multi-step operation failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// maxAllocateAttempts bounds retries of the conditional counter update when
// concurrent creations race on the same company.
const maxAllocateAttempts = 5

var validate = validator.New()

type Service struct {
	logger    *slog.Logger
	repo      Repository
	companies companies.Repository
	clients   clients.Repository
	employees employees.Repository
	items     items.Repository
	assembler *docgen.Assembler
	artifacts *ArtifactStore
}

func NewService(
	logger *slog.Logger,
	repo Repository,
	companyRepo companies.Repository,
	clientRepo clients.Repository,
	employeeRepo employees.Repository,
	itemRepo items.Repository,
	assembler *docgen.Assembler,
	artifacts *ArtifactStore,
) *Service {
	return &Service{
		logger:    logger,
		repo:      repo,
		companies: companyRepo,
		clients:   clientRepo,
		employees: employeeRepo,
		items:     itemRepo,
		assembler: assembler,
		artifacts: artifacts,
	}
}

// Create validates the request, prices the lines, allocates the next
// reference number for the company and persists the quotation. Allocation and
// insert share one transaction so a failed insert never burns a number.
func (s *Service) Create(ctx context.Context, req CreateQuotationRequest) (*Quotation, error) {
	if err := validate.Struct(req); err != nil {
		return nil, stageErr(StageValidating, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	}

	company, err := s.companies.Get(ctx, req.CompanyID)
	if err != nil {
		return nil, stageErr(StageValidating, err)
	}
	client, err := s.clients.Get(ctx, req.ClientID)
	if err != nil {
		return nil, stageErr(StageValidating, err)
	}
	if client.CompanyID != company.ID {
		return nil, stageErr(StageValidating,
			fmt.Errorf("%w: client %d does not belong to company %d", httpx.ErrValidation, client.ID, company.ID))
	}
	if req.EmployeeID != nil {
		if _, err := s.employees.Get(ctx, *req.EmployeeID); err != nil {
			return nil, stageErr(StageValidating, err)
		}
	}

	quoteDate := time.Now()
	if req.QuoteDate != nil {
		quoteDate, _ = time.Parse("2006-01-02", *req.QuoteDate)
	}

	lineItems, totals, err := s.buildLines(ctx, req.Items)
	if err != nil {
		return nil, stageErr(StageValidating, err)
	}

	quotation := Quotation{
		CompanyID:  company.ID,
		ClientID:   client.ID,
		EmployeeID: req.EmployeeID,
		QuoteDate:  quoteDate,
		Items:      lineItems,
		SubTotal:   totals.SubTotal,
		TotalGST:   totals.TotalGST,
		GrandTotal: totals.GrandTotal,
	}

	id, err := s.createWithRef(ctx, company, &quotation, time.Now().Year())
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// createWithRef allocates a reference number and inserts the quotation
// atomically. The counter advance is a conditional update keyed on the value
// just read; losing the race rolls back the transaction and retries with a
// fresh read.
func (s *Service) createWithRef(ctx context.Context, company *companies.Company, q *Quotation, year int) (int64, error) {
	format := company.RefFormat
	if format == "" {
		format = companies.DefaultRefFormat
	}

	expected := company.LastQuoteNumber
	for attempt := 1; ; attempt++ {
		var id int64
		err := s.repo.WithTx(ctx, func(ctx context.Context, txRepo Repository) error {
			seq, err := txRepo.IncrementCompanyQuoteNumber(ctx, company.ID, expected)
			if err != nil {
				return err
			}
			q.RefNumber = FormatRefNumber(format, year, seq)
			id, err = txRepo.Create(ctx, *q)
			return err
		})
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, httpx.ErrConflict) || attempt >= maxAllocateAttempts {
			if errors.Is(err, httpx.ErrConflict) || errors.Is(err, httpx.ErrNotFound) {
				return 0, stageErr(StageAllocatingRef, err)
			}
			return 0, stageErr(StagePersisting, err)
		}

		s.logger.Debug("reference allocation raced, retrying",
			slog.Int64("company_id", company.ID), slog.Int("attempt", attempt))
		fresh, gerr := s.companies.Get(ctx, company.ID)
		if gerr != nil {
			return 0, stageErr(StageAllocatingRef, gerr)
		}
		expected = fresh.LastQuoteNumber
	}
}

// buildLines snapshots catalogue data into the quotation and prices each
// line. When a line names a catalogue item, empty fields are filled from it.
func (s *Service) buildLines(ctx context.Context, reqs []LineItemRequest) ([]LineItem, Totals, error) {
	lineItems := make([]LineItem, 0, len(reqs))
	pricings := make([]LinePricing, 0, len(reqs))

	for i, req := range reqs {
		line := LineItem{
			ItemID:          req.ItemID,
			CatalogueID:     req.CatalogueID,
			Description:     req.Description,
			PackSize:        req.PackSize,
			HSNCode:         req.HSNCode,
			Brand:           req.Brand,
			LeadTime:        req.LeadTime,
			Quantity:        req.Quantity,
			UnitRate:        decimal.NewFromFloat(req.UnitRate),
			DiscountPercent: req.DiscountPercent,
			GSTPercent:      req.GSTPercent,
		}

		if req.ItemID != nil {
			item, err := s.items.Get(ctx, *req.ItemID)
			if err != nil {
				return nil, Totals{}, fmt.Errorf("line %d: %w", i+1, err)
			}
			fillFromItem(&line, item, req)
		}

		p := ComputeLine(line.UnitRate, line.Quantity, line.DiscountPercent, line.GSTPercent)
		line.DiscountedPrice = p.DiscountedPrice
		line.ExpandedPrice = p.ExpandedPrice
		line.GSTAmount = p.GSTAmount
		line.TotalValue = p.TotalValue

		lineItems = append(lineItems, line)
		pricings = append(pricings, p)
	}

	return lineItems, ComputeTotals(pricings), nil
}

func fillFromItem(line *LineItem, item *items.Item, req LineItemRequest) {
	if line.CatalogueID == "" {
		line.CatalogueID = item.CatalogueID
	}
	if line.PackSize == "" && item.PackSize != nil {
		line.PackSize = *item.PackSize
	}
	if line.HSNCode == "" && item.HSNCode != nil {
		line.HSNCode = *item.HSNCode
	}
	if line.Brand == "" && item.Brand != nil {
		line.Brand = *item.Brand
	}
	if req.UnitRate == 0 && item.Price != nil {
		line.UnitRate = decimal.NewFromFloat(*item.Price)
	}
	if req.GSTPercent == 0 && item.GSTPercentage != nil {
		line.GSTPercent = *item.GSTPercentage
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*Quotation, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, companyID int64) ([]Quotation, error) {
	return s.repo.List(ctx, companyID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// GenerateDocument assembles the quotation document, serializes it and stores
// the result for download. Identical quotations yield identical files.
func (s *Service) GenerateDocument(ctx context.Context, id int64) (*Artifact, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := s.companies.Get(ctx, q.CompanyID)
	if err != nil {
		return nil, err
	}
	client, err := s.clients.Get(ctx, q.ClientID)
	if err != nil {
		return nil, err
	}
	var employee *employees.Employee
	if q.EmployeeID != nil {
		employee, err = s.employees.Get(ctx, *q.EmployeeID)
		if err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return nil, err
		}
	}

	doc, err := s.assembler.Assemble(ctx, assemblerInput(q, company, client, employee))
	if err != nil {
		return nil, stageErr(StageAssembling, err)
	}

	var buf bytes.Buffer
	if err := docgen.WriteDocx(&buf, doc); err != nil {
		return nil, stageErr(StageEncoding, fmt.Errorf("%w: %v", httpx.ErrAssembly, err))
	}

	filename := DocumentFilename(q.RefNumber)
	artifactID, err := s.artifacts.Put(ctx, filename, buf.Bytes())
	if err != nil {
		return nil, stageErr(StageStoring, err)
	}

	s.logger.Info("quotation document generated",
		slog.Int64("quotation_id", q.ID),
		slog.String("ref_number", q.RefNumber),
		slog.String("artifact_id", artifactID),
		slog.Int("bytes", buf.Len()))

	return &Artifact{ID: artifactID, Filename: filename, Data: buf.Bytes()}, nil
}

// DocumentFilename derives the download name from the reference number.
// Separators that are unsafe in filenames are flattened to dashes.
func DocumentFilename(refNumber string) string {
	safe := strings.NewReplacer("/", "-", "\\", "-", " ", "_").Replace(refNumber)
	return "quote_" + safe + ".docx"
}

func assemblerInput(q *Quotation, company *companies.Company, client *clients.Client, employee *employees.Employee) docgen.Input {
	lines := make([]docgen.Line, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, docgen.Line{
			CatalogueID:     it.CatalogueID,
			Description:     it.Description,
			PackSize:        it.PackSize,
			HSNCode:         it.HSNCode,
			Quantity:        it.Quantity,
			UnitRate:        it.UnitRate,
			DiscountPercent: it.DiscountPercent,
			DiscountedPrice: it.DiscountedPrice,
			ExpandedPrice:   it.ExpandedPrice,
			GSTPercent:      it.GSTPercent,
			GSTAmount:       it.GSTAmount,
			TotalValue:      it.TotalValue,
			LeadTime:        it.LeadTime,
			Brand:           it.Brand,
		})
	}

	return docgen.Input{
		Company:    *company,
		Client:     *client,
		Employee:   employee,
		RefNumber:  q.RefNumber,
		Date:       q.QuoteDate,
		Lines:      lines,
		SubTotal:   q.SubTotal,
		TotalGST:   q.TotalGST,
		GrandTotal: q.GrandTotal,
	}
}
