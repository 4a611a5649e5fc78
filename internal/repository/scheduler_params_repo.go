package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
)

// SchedulerParamsRepository 排课参数数据访问接口（单行）
type SchedulerParamsRepository interface {
	Get(ctx context.Context) (*model.SchedulerParams, error)
	Update(ctx context.Context, params *model.SchedulerParams) error
}

type schedulerParamsRepo struct {
	db *gorm.DB
}

// NewSchedulerParamsRepo 创建 SchedulerParamsRepository 实例
func NewSchedulerParamsRepo(db *gorm.DB) SchedulerParamsRepository {
	return &schedulerParamsRepo{db: db}
}

func (r *schedulerParamsRepo) Get(ctx context.Context) (*model.SchedulerParams, error) {
	var params model.SchedulerParams
	err := r.db.WithContext(ctx).
		Where("singleton = ?", true).
		First(&params).Error
	if err != nil {
		return nil, err
	}
	return &params, nil
}

func (r *schedulerParamsRepo) Update(ctx context.Context, params *model.SchedulerParams) error {
	params.Singleton = true
	return r.db.WithContext(ctx).Save(params).Error
}
