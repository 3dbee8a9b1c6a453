package companies

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

// DefaultRefFormat is used when a company has no reference-number template.
const DefaultRefFormat = "QT-{YYYY}-{NUM}"

// DefaultAccountType matches the bank account type used when none is given.
const DefaultAccountType = "Current Account"

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateCompanyRequest) (*Company, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	company := Company{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		PANNumber:     req.PANNumber,
		GSTNumber:     req.GSTNumber,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		BranchCode:    req.BranchCode,
		MICRCode:      req.MICRCode,
		AccountType:   DefaultAccountType,
		SealImageURL:  req.SealImageURL,
		RefFormat:     DefaultRefFormat,
		PaymentTerms:  req.PaymentTerms,
	}
	if req.AccountType != nil && *req.AccountType != "" {
		company.AccountType = *req.AccountType
	}
	if req.RefFormat != nil && *req.RefFormat != "" {
		company.RefFormat = *req.RefFormat
	}

	id, err := s.repo.Create(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCompanyRequest) (*Company, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.PANNumber != nil {
		updates["pan_number"] = *req.PANNumber
	}
	if req.GSTNumber != nil {
		updates["gst_number"] = *req.GSTNumber
	}
	if req.BankName != nil {
		updates["bank_name"] = *req.BankName
	}
	if req.AccountNumber != nil {
		updates["account_number"] = *req.AccountNumber
	}
	if req.IFSCCode != nil {
		updates["ifsc_code"] = *req.IFSCCode
	}
	if req.BranchCode != nil {
		updates["branch_code"] = *req.BranchCode
	}
	if req.MICRCode != nil {
		updates["micr_code"] = *req.MICRCode
	}
	if req.AccountType != nil {
		updates["account_type"] = *req.AccountType
	}
	if req.SealImageURL != nil {
		updates["seal_image_url"] = *req.SealImageURL
	}
	if req.RefFormat != nil {
		updates["ref_format"] = *req.RefFormat
	}
	if req.PaymentTerms != nil {
		updates["payment_terms"] = *req.PaymentTerms
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Company, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

// Delete removes a company together with its clients and quotations.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}
