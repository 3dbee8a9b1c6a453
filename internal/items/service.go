package items

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

func (s *Service) Create(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	item := Item{
		CatalogueID:   req.CatalogueID,
		Description:   req.Description,
		PackSize:      req.PackSize,
		CASNumber:     req.CASNumber,
		HSNCode:       req.HSNCode,
		Brand:         req.Brand,
		Price:         req.Price,
		GSTPercentage: req.GSTPercentage,
	}

	// Default the GST percentage from the HSN table when not supplied.
	if item.GSTPercentage == nil && item.HSNCode != nil {
		if gst, ok := LookupGST(*item.HSNCode); ok {
			item.GSTPercentage = &gst
		}
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateItemRequest) (*Item, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	updates := make(map[string]interface{})
	if req.CatalogueID != nil {
		updates["catalogue_id"] = *req.CatalogueID
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.PackSize != nil {
		updates["pack_size"] = *req.PackSize
	}
	if req.CASNumber != nil {
		updates["cas_number"] = *req.CASNumber
	}
	if req.HSNCode != nil {
		updates["hsn_code"] = *req.HSNCode
		// A changed HSN code refreshes the GST default unless the caller
		// pins one explicitly.
		if req.GSTPercentage == nil {
			if gst, ok := LookupGST(*req.HSNCode); ok {
				updates["gst_percentage"] = gst
			}
		}
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.GSTPercentage != nil {
		updates["gst_percentage"] = *req.GSTPercentage
	}

	if len(updates) == 0 {
		return existing, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, search string) ([]Item, error) {
	return s.repo.List(ctx, search)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// GSTForHSN resolves the GST percentage for an HSN code.
func (s *Service) GSTForHSN(hsnCode string) (float64, error) {
	gst, ok := LookupGST(hsnCode)
	if !ok {
		return 0, fmt.Errorf("%w: no GST mapping for HSN code %q", httpx.ErrNotFound, hsnCode)
	}
	return gst, nil
}
