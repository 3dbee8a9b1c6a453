package companies

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

type mockRepository struct {
	mu        sync.Mutex
	companies map[int64]*Company
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{companies: make(map[int64]*Company), nextID: 1}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: company", httpx.ErrNotFound)
	}
	clone := *c
	return &clone, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Company
	for _, c := range m.companies {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, c Company) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	m.companies[c.ID] = &c
	return c.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.companies[id]
	if !ok {
		return fmt.Errorf("%w: company %d", httpx.ErrNotFound, id)
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["ref_format"]; ok {
		c.RefFormat = v.(string)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.companies[id]; !ok {
		return fmt.Errorf("%w: company %d", httpx.ErrNotFound, id)
	}
	delete(m.companies, id)
	return nil
}

func strp(s string) *string { return &s }

func TestCreateCompanyDefaults(t *testing.T) {
	s := NewService(newMockRepository())

	c, err := s.Create(context.Background(), CreateCompanyRequest{Name: "Acme Scientific Supplies"})
	require.NoError(t, err)

	assert.Equal(t, DefaultRefFormat, c.RefFormat)
	assert.Equal(t, DefaultAccountType, c.AccountType)
	assert.Equal(t, 0, c.LastQuoteNumber)
}

func TestCreateCompanyExplicitFormat(t *testing.T) {
	s := NewService(newMockRepository())

	c, err := s.Create(context.Background(), CreateCompanyRequest{
		Name:      "Acme Scientific Supplies",
		RefFormat: strp("ACME/{YYYY}/{NUM}"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME/{YYYY}/{NUM}", c.RefFormat)
}

func TestCreateCompanyValidation(t *testing.T) {
	s := NewService(newMockRepository())

	_, err := s.Create(context.Background(), CreateCompanyRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = s.Create(context.Background(), CreateCompanyRequest{
		Name:  "Acme",
		Email: strp("not-an-email"),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateCompany(t *testing.T) {
	s := NewService(newMockRepository())
	ctx := context.Background()

	c, err := s.Create(ctx, CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	updated, err := s.Update(ctx, c.ID, UpdateCompanyRequest{Name: strp("Acme Scientific")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Scientific", updated.Name)

	// An empty update is a no-op, not an error.
	same, err := s.Update(ctx, c.ID, UpdateCompanyRequest{})
	require.NoError(t, err)
	assert.Equal(t, updated.Name, same.Name)
}

func TestDeleteCompany(t *testing.T) {
	s := NewService(newMockRepository())
	ctx := context.Background()

	c, err := s.Create(ctx, CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, c.ID))
	_, err = s.Get(ctx, c.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	require.ErrorIs(t, s.Delete(ctx, c.ID), httpx.ErrNotFound)
}
