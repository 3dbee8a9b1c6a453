package clients

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gauravitis/quotecms/internal/companies"
	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

var validate = validator.New()

type Service struct {
	repo        Repository
	companyRepo companies.Repository
}

func NewService(repo Repository, companyRepo companies.Repository) *Service {
	return &Service{repo: repo, companyRepo: companyRepo}
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	if _, err := s.companyRepo.Get(ctx, req.CompanyID); err != nil {
		return nil, fmt.Errorf("verify company: %w", err)
	}

	client := Client{
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Address:      req.Address,
	}

	id, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*Client, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.BusinessName != nil {
		updates["business_name"] = *req.BusinessName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Mobile != nil {
		updates["mobile"] = *req.Mobile
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListClientsRequest) ([]Client, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}
