package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextID++
		user.UserID = fmt.Sprintf("user-%d", m.nextID)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

// ── Mock CatalogRepository ──

type mockCatalogRepo struct {
	catalogs map[string]*model.Catalog
	nextID   int
}

func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{catalogs: make(map[string]*model.Catalog)}
}

func (m *mockCatalogRepo) Create(_ context.Context, catalog *model.Catalog) error {
	if catalog.CatalogID == "" {
		m.nextID++
		catalog.CatalogID = fmt.Sprintf("catalog-%d", m.nextID)
	}
	catalog.CreatedAt = time.Now()
	catalog.UpdatedAt = time.Now()
	for i := range catalog.Offerings {
		catalog.Offerings[i].CatalogID = catalog.CatalogID
	}
	m.catalogs[catalog.CatalogID] = catalog
	return nil
}

func (m *mockCatalogRepo) GetByID(_ context.Context, id string) (*model.Catalog, error) {
	stored, ok := m.catalogs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	// 模拟数据库读取：返回副本，调用方的修改不影响存储状态
	c := *stored
	c.Offerings = append([]model.ClassOffering(nil), stored.Offerings...)
	sort.SliceStable(c.Offerings, func(i, j int) bool {
		if c.Offerings[i].DayPosition != c.Offerings[j].DayPosition {
			return c.Offerings[i].DayPosition < c.Offerings[j].DayPosition
		}
		return c.Offerings[i].Position < c.Offerings[j].Position
	})
	return &c, nil
}

func (m *mockCatalogRepo) GetByName(_ context.Context, name string) (*model.Catalog, error) {
	for _, c := range m.catalogs {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCatalogRepo) List(_ context.Context, page, pageSize int) ([]model.Catalog, int64, error) {
	var all []model.Catalog
	for _, c := range m.catalogs {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CatalogID < all[j].CatalogID })

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *mockCatalogRepo) Update(_ context.Context, catalog *model.Catalog) error {
	existing, ok := m.catalogs[catalog.CatalogID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	// Save 不改动未加载的关联
	if catalog.Offerings == nil {
		catalog.Offerings = existing.Offerings
	}
	catalog.UpdatedAt = time.Now()
	m.catalogs[catalog.CatalogID] = catalog
	return nil
}

func (m *mockCatalogRepo) ReplaceOfferings(_ context.Context, catalogID string, offerings []model.ClassOffering) error {
	c, ok := m.catalogs[catalogID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i := range offerings {
		offerings[i].CatalogID = catalogID
	}
	c.Offerings = offerings
	return nil
}

func (m *mockCatalogRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.catalogs, id)
	return nil
}

// ── Mock SchedulerParamsRepository ──

type mockSchedulerParamsRepo struct {
	params *model.SchedulerParams
}

func newMockSchedulerParamsRepo() *mockSchedulerParamsRepo {
	return &mockSchedulerParamsRepo{
		params: &model.SchedulerParams{
			Singleton:         true,
			NumStudents:       10,
			ClassesPerStudent: 5,
			NumDays:           2,
			PeriodsPerDay:     6,
			MinClassesPerDay:  1,
			TermStartDate:     "2026-01-05",
			FirstPeriodStart:  "08:00",
			PeriodMinutes:     50,
		},
	}
}

func (m *mockSchedulerParamsRepo) Get(_ context.Context) (*model.SchedulerParams, error) {
	if m.params == nil {
		return nil, gorm.ErrRecordNotFound
	}
	// 模拟数据库读取：返回副本，调用方的修改不影响存储状态
	p := *m.params
	return &p, nil
}

func (m *mockSchedulerParamsRepo) Update(_ context.Context, params *model.SchedulerParams) error {
	params.Singleton = true
	params.UpdatedAt = time.Now()
	m.params = params
	return nil
}

// ── Mock ScheduleRunRepository ──

type mockScheduleRunRepo struct {
	runs   map[string]*model.ScheduleRun
	nextID int
}

func newMockScheduleRunRepo() *mockScheduleRunRepo {
	return &mockScheduleRunRepo{runs: make(map[string]*model.ScheduleRun)}
}

func (m *mockScheduleRunRepo) Create(_ context.Context, run *model.ScheduleRun) error {
	if run.RunID == "" {
		m.nextID++
		run.RunID = fmt.Sprintf("run-%d", m.nextID)
	}
	run.CreatedAt = time.Now()
	m.runs[run.RunID] = run
	return nil
}

func (m *mockScheduleRunRepo) GetByID(_ context.Context, id string) (*model.ScheduleRun, error) {
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRunRepo) List(_ context.Context, catalogID string, page, pageSize int) ([]model.ScheduleRun, int64, error) {
	var all []model.ScheduleRun
	for _, r := range m.runs {
		if catalogID != "" && r.CatalogID != catalogID {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RunID < all[j].RunID })

	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *mockScheduleRunRepo) Delete(_ context.Context, id string) error {
	delete(m.runs, id)
	return nil
}

// newTestRepository 组装全部 Mock 仓储
func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:           newMockUserRepo(),
		Catalog:        newMockCatalogRepo(),
		SchedulerParam: newMockSchedulerParamsRepo(),
		ScheduleRun:    newMockScheduleRunRepo(),
	}
}
