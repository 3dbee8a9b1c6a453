package employees

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauravitis/quotecms/internal/platform/httpx"
)

type mockRepository struct {
	employees      map[int64]*Employee
	nextID         int64
	quotationCount map[int64]int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		employees:      make(map[int64]*Employee),
		nextID:         1,
		quotationCount: make(map[int64]int),
	}
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("%w: employee", httpx.ErrNotFound)
	}
	return e, nil
}

func (m *mockRepository) List(ctx context.Context) ([]Employee, error) {
	var out []Employee
	for _, e := range m.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockRepository) Create(ctx context.Context, e Employee) (int64, error) {
	e.ID = m.nextID
	m.nextID++
	m.employees[e.ID] = &e
	return e.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	e, ok := m.employees[id]
	if !ok {
		return fmt.Errorf("%w: employee %d", httpx.ErrNotFound, id)
	}
	if v, ok := updates["name"]; ok {
		e.Name = v.(string)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.employees[id]; !ok {
		return fmt.Errorf("%w: employee %d", httpx.ErrNotFound, id)
	}
	delete(m.employees, id)
	return nil
}

func (m *mockRepository) CountQuotations(ctx context.Context, employeeID int64) (int, error) {
	return m.quotationCount[employeeID], nil
}

func TestCreateEmployee(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)

	phone := "+91-98111-00001"
	e, err := s.Create(context.Background(), CreateEmployeeRequest{Name: "Gaurav Singh", Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Gaurav Singh", e.Name)
	require.NotNil(t, e.Phone)
	assert.Equal(t, phone, *e.Phone)
}

func TestCreateEmployeeValidation(t *testing.T) {
	s := NewService(newMockRepository())

	_, err := s.Create(context.Background(), CreateEmployeeRequest{})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteEmployeeWithoutQuotations(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)

	e, err := s.Create(context.Background(), CreateEmployeeRequest{Name: "Neha Verma"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), e.ID))
	_, err = s.Get(context.Background(), e.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteEmployeeReferencedByQuotations(t *testing.T) {
	repo := newMockRepository()
	s := NewService(repo)

	e, err := s.Create(context.Background(), CreateEmployeeRequest{Name: "Neha Verma"})
	require.NoError(t, err)
	repo.quotationCount[e.ID] = 3

	err = s.Delete(context.Background(), e.ID)
	require.ErrorIs(t, err, httpx.ErrConflict)

	// The employee row is untouched after the refused delete.
	got, err := s.Get(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Neha Verma", got.Name)
}

func TestDeleteMissingEmployee(t *testing.T) {
	s := NewService(newMockRepository())

	err := s.Delete(context.Background(), 404)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
