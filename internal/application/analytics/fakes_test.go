package analytics_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Telemetria-api/internal/domain/entity"
	"github.com/jhoicas/Telemetria-api/internal/domain/repository"
)

var errStore = errors.New("store caído")

var now = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

type fakeCompanies struct {
	items map[string]*entity.Company
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.items[id], nil
}

type fakeControllers struct {
	items []*entity.Controller
	calls int
}

func (f *fakeControllers) Get(_ context.Context, id string) (*entity.Controller, error) {
	f.calls++
	for _, c := range f.items {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeControllers) ListByCompany(_ context.Context, companyID string) ([]*entity.Controller, error) {
	f.calls++
	var out []*entity.Controller
	for _, c := range f.items {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeControllers) GetByAddress(_ context.Context, address string) (*entity.Controller, error) {
	for _, c := range f.items {
		if c.Address == address {
			return c, nil
		}
	}
	return nil, nil
}

type fakeSignals struct {
	mu       sync.Mutex
	byCtrl   map[string][]*entity.Signal
	failFor  string
	calls    int
	summary  []repository.SignalSummaryResult
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeSignals) Latest(_ context.Context, controllerID string, limit int) ([]*entity.Signal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if controllerID == f.failFor {
		return nil, errStore
	}
	list := append([]*entity.Signal(nil), f.byCtrl[controllerID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].Timestamp.After(list[j].Timestamp) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeSignals) InRange(_ context.Context, controllerID string, start, end time.Time) ([]*entity.Signal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastFrom, f.lastTo = start, end
	if controllerID == f.failFor {
		return nil, errStore
	}
	var out []*entity.Signal
	for _, s := range f.byCtrl[controllerID] {
		if !s.Timestamp.Before(start) && !s.Timestamp.After(end) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (f *fakeSignals) SummaryByCompany(_ context.Context, _ string) ([]repository.SignalSummaryResult, error) {
	f.calls++
	return f.summary, nil
}

func signalAt(controllerID string, ts time.Time, sensors ...bool) *entity.Signal {
	var v entity.SensorValues
	copy(v[:], sensors)
	return &entity.Signal{ID: controllerID + "-" + ts.Format(time.RFC3339), ControllerID: controllerID, Timestamp: ts, Sensors: v}
}
