package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
)

// ── 课程目录模块业务错误 ──

var (
	ErrCatalogNotFound  = errors.New("课程目录不存在")
	ErrCatalogNameTaken = errors.New("同名课程目录已存在")
	ErrDuplicateClass   = errors.New("同一天内课程名称重复")
	ErrInvalidPeriods   = errors.New("课程节次非法")
)

// sampleCatalogName 初始示例目录名（首次启动时写入）
const sampleCatalogName = "Sample Two-Day Catalog"

// CatalogService 课程目录业务接口
type CatalogService interface {
	Create(ctx context.Context, operatorID string, req *dto.CreateCatalogRequest) (*dto.CatalogResponse, error)
	Get(ctx context.Context, id string) (*dto.CatalogResponse, error)
	List(ctx context.Context, page, pageSize int) ([]dto.CatalogSummaryResponse, int64, error)
	Update(ctx context.Context, operatorID string, id string, req *dto.UpdateCatalogRequest) (*dto.CatalogResponse, error)
	Delete(ctx context.Context, operatorID string, id string) error
	EnsureSampleCatalog(ctx context.Context) error
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *catalogService) Create(ctx context.Context, operatorID string, req *dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	if err := validateDays(req.Days); err != nil {
		return nil, err
	}

	if _, err := s.repo.Catalog.GetByName(ctx, req.Name); err == nil {
		return nil, ErrCatalogNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return nil, err
	}

	catalog := &model.Catalog{
		Name:        req.Name,
		Description: req.Description,
		Offerings:   buildOfferings(req.Days),
	}
	catalog.CreatedBy = &operatorID
	if err := s.repo.Catalog.Create(ctx, catalog); err != nil {
		s.logger.Error("创建课程目录失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课程目录已创建",
		zap.String("catalog_id", catalog.CatalogID),
		zap.String("name", catalog.Name),
		zap.Int("days", len(req.Days)))

	return toCatalogResponse(catalog), nil
}

// ────────────────────── Get ──────────────────────

func (s *catalogService) Get(ctx context.Context, id string) (*dto.CatalogResponse, error) {
	catalog, err := s.repo.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return nil, err
	}
	return toCatalogResponse(catalog), nil
}

// ────────────────────── List ──────────────────────

func (s *catalogService) List(ctx context.Context, page, pageSize int) ([]dto.CatalogSummaryResponse, int64, error) {
	catalogs, total, err := s.repo.Catalog.List(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("查询课程目录列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.CatalogSummaryResponse, 0, len(catalogs))
	for i := range catalogs {
		items = append(items, dto.CatalogSummaryResponse{
			CatalogID:   catalogs[i].CatalogID,
			Name:        catalogs[i].Name,
			Description: catalogs[i].Description,
			CreatedAt:   catalogs[i].CreatedAt.Format(timeLayout),
		})
	}
	return items, total, nil
}

// ────────────────────── Update ──────────────────────

// Update 更新目录元信息；Days 提供时整体替换全部课程条目
func (s *catalogService) Update(ctx context.Context, operatorID string, id string, req *dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	catalog, err := s.repo.Catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil && *req.Name != catalog.Name {
		if _, err := s.repo.Catalog.GetByName(ctx, *req.Name); err == nil {
			return nil, ErrCatalogNameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		catalog.Name = *req.Name
	}
	if req.Description != nil {
		catalog.Description = *req.Description
	}

	if req.Days != nil {
		if err := validateDays(req.Days); err != nil {
			return nil, err
		}
		if err := s.repo.Catalog.ReplaceOfferings(ctx, id, buildOfferings(req.Days)); err != nil {
			s.logger.Error("替换课程条目失败", zap.Error(err))
			return nil, err
		}
	}

	catalog.UpdatedBy = &operatorID
	catalog.Offerings = nil // 避免 Save 级联写关联
	if err := s.repo.Catalog.Update(ctx, catalog); err != nil {
		s.logger.Error("更新课程目录失败", zap.Error(err))
		return nil, err
	}

	return s.Get(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *catalogService) Delete(ctx context.Context, operatorID string, id string) error {
	if _, err := s.repo.Catalog.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCatalogNotFound
		}
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return err
	}
	if err := s.repo.Catalog.Delete(ctx, id, operatorID); err != nil {
		s.logger.Error("删除课程目录失败", zap.Error(err))
		return err
	}
	s.logger.Info("课程目录已删除", zap.String("catalog_id", id))
	return nil
}

// ────────────────────── EnsureSampleCatalog ──────────────────────

// EnsureSampleCatalog 确保示例目录存在（服务启动时调用，幂等）
func (s *catalogService) EnsureSampleCatalog(ctx context.Context) error {
	if _, err := s.repo.Catalog.GetByName(ctx, sampleCatalogName); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	catalog := &model.Catalog{
		Name:        sampleCatalogName,
		Description: "内置两天示例目录（10 名学生 / 每生 5 门课）",
		Offerings:   buildOfferings(sampleCatalogDays()),
	}
	if err := s.repo.Catalog.Create(ctx, catalog); err != nil {
		s.logger.Error("写入示例目录失败", zap.Error(err))
		return err
	}
	s.logger.Info("示例课程目录已写入", zap.String("catalog_id", catalog.CatalogID))
	return nil
}

// sampleCatalogDays 内置示例目录数据
func sampleCatalogDays() []dto.CatalogDayRequest {
	return []dto.CatalogDayRequest{
		{
			Day: "Day 1",
			Offerings: []dto.OfferingRequest{
				{ClassName: "Math", Capacity: 5, Periods: []int{1, 3, 5}},
				{ClassName: "Science", Capacity: 6, Periods: []int{2, 4}},
				{ClassName: "History", Capacity: 4, Periods: []int{1, 4}},
				{ClassName: "Art", Capacity: 5, Periods: []int{3, 5}},
				{ClassName: "Music", Capacity: 5, Periods: []int{2, 4, 6}},
				{ClassName: "PE", Capacity: 8, Periods: []int{1, 3, 5, 6}},
			},
		},
		{
			Day: "Day 2",
			Offerings: []dto.OfferingRequest{
				{ClassName: "Math", Capacity: 5, Periods: []int{1, 3, 5}},
				{ClassName: "Biology", Capacity: 6, Periods: []int{2, 4}},
				{ClassName: "English", Capacity: 6, Periods: []int{1, 3, 4}},
				{ClassName: "Computer Science", Capacity: 5, Periods: []int{2, 5, 6}},
				{ClassName: "Music", Capacity: 5, Periods: []int{3, 4, 6}},
				{ClassName: "PE", Capacity: 8, Periods: []int{1, 2, 5}},
			},
		},
	}
}

// ── 内部辅助 ──

// validateDays 校验同日课程名不重复、节次均为正整数
func validateDays(days []dto.CatalogDayRequest) error {
	for _, day := range days {
		seen := make(map[string]bool, len(day.Offerings))
		for _, off := range day.Offerings {
			if seen[off.ClassName] {
				return fmt.Errorf("%w: %s / %s", ErrDuplicateClass, day.Day, off.ClassName)
			}
			seen[off.ClassName] = true
			for _, p := range off.Periods {
				if p < 1 {
					return fmt.Errorf("%w: %s 节次 %d", ErrInvalidPeriods, off.ClassName, p)
				}
			}
		}
	}
	return nil
}

// buildOfferings 将请求展开为带位置序号的课程条目
func buildOfferings(days []dto.CatalogDayRequest) []model.ClassOffering {
	var offerings []model.ClassOffering
	for di, day := range days {
		for pi, off := range day.Offerings {
			offerings = append(offerings, model.ClassOffering{
				DayName:     day.Day,
				DayPosition: di,
				Position:    pi,
				ClassName:   off.ClassName,
				Capacity:    off.Capacity,
				Periods:     model.IntArray(off.Periods),
			})
		}
	}
	return offerings
}
