package employees

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

var validate = validator.New()

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	id, err := s.repo.Create(ctx, Employee{Name: req.Name, Phone: req.Phone, Email: req.Email})
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*Employee, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

// Delete removes an employee unless any quotation still references them.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("get employee: %w", err)
	}

	count, err := s.repo.CountQuotations(ctx, id)
	if err != nil {
		return fmt.Errorf("count quotations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: employee %d is referenced by %d quotation(s)", httpx.ErrConflict, id, count)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
