package usecase_test

import (
	"context"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

type memCompanies struct {
	items map[string]*entity.Company
	stats []repository.CompanyStatsResult
}

func newMemCompanies(companies ...*entity.Company) *memCompanies {
	m := &memCompanies{items: map[string]*entity.Company{}}
	for _, c := range companies {
		m.items[c.ID] = c
	}
	return m
}

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.items[c.ID] = c
	return nil
}

func (m *memCompanies) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	var out []*entity.Company
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCompanies) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memCompanies) Stats(_ context.Context) ([]repository.CompanyStatsResult, error) {
	return m.stats, nil
}

type memControllers struct {
	items map[string]*entity.Controller
}

func newMemControllers(controllers ...*entity.Controller) *memControllers {
	m := &memControllers{items: map[string]*entity.Controller{}}
	for _, c := range controllers {
		m.items[c.ID] = c
	}
	return m
}

func (m *memControllers) Get(_ context.Context, id string) (*entity.Controller, error) {
	return m.items[id], nil
}

func (m *memControllers) ListByCompany(_ context.Context, companyID string) ([]*entity.Controller, error) {
	var out []*entity.Controller
	for _, c := range m.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memControllers) GetByAddress(_ context.Context, address string) (*entity.Controller, error) {
	for _, c := range m.items {
		if c.Address == address {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memControllers) Create(_ context.Context, c *entity.Controller) error {
	m.items[c.ID] = c
	return nil
}

func (m *memControllers) UpdateConfig(_ context.Context, id string, config map[string]any, updatedAt time.Time) error {
	m.items[id].Config = config
	m.items[id].UpdatedAt = updatedAt
	return nil
}

func (m *memControllers) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memControllers) AddressExistsInCompany(_ context.Context, companyID, address string) (bool, error) {
	for _, c := range m.items {
		if c.CompanyID == companyID && c.Address == address {
			return true, nil
		}
	}
	return false, nil
}
