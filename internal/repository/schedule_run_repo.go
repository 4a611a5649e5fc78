package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
)

// ScheduleRunRepository 排课运行记录数据访问接口
type ScheduleRunRepository interface {
	Create(ctx context.Context, run *model.ScheduleRun) error
	GetByID(ctx context.Context, id string) (*model.ScheduleRun, error)
	List(ctx context.Context, catalogID string, page, pageSize int) ([]model.ScheduleRun, int64, error)
	Delete(ctx context.Context, id string) error
}

type scheduleRunRepo struct {
	db *gorm.DB
}

// NewScheduleRunRepo 创建 ScheduleRunRepository 实例
func NewScheduleRunRepo(db *gorm.DB) ScheduleRunRepository {
	return &scheduleRunRepo{db: db}
}

func (r *scheduleRunRepo) Create(ctx context.Context, run *model.ScheduleRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *scheduleRunRepo) GetByID(ctx context.Context, id string) (*model.ScheduleRun, error) {
	var run model.ScheduleRun
	err := r.db.WithContext(ctx).
		Preload("Catalog").
		Where("run_id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *scheduleRunRepo) List(ctx context.Context, catalogID string, page, pageSize int) ([]model.ScheduleRun, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.ScheduleRun{})
	if catalogID != "" {
		base = base.Where("catalog_id = ?", catalogID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var runs []model.ScheduleRun
	err := base.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&runs).Error
	return runs, total, err
}

func (r *scheduleRunRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("run_id = ?", id).
		Delete(&model.ScheduleRun{}).Error
}
