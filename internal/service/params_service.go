package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
)

// ── 排课参数模块业务错误 ──

var ErrParamsNotFound = errors.New("排课参数未初始化")

// ParamsService 排课参数业务接口（单行配置）
type ParamsService interface {
	Get(ctx context.Context) (*dto.SchedulerParamsResponse, error)
	Update(ctx context.Context, operatorID string, req *dto.UpdateSchedulerParamsRequest) (*dto.SchedulerParamsResponse, error)
}

type paramsService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParamsService 创建 ParamsService 实例
func NewParamsService(repo *repository.Repository, logger *zap.Logger) ParamsService {
	return &paramsService{repo: repo, logger: logger}
}

func (s *paramsService) Get(ctx context.Context) (*dto.SchedulerParamsResponse, error) {
	params, err := s.repo.SchedulerParam.Get(ctx)
	if err != nil {
		s.logger.Error("读取排课参数失败", zap.Error(err))
		return nil, err
	}

	return &dto.SchedulerParamsResponse{
		NumStudents:       params.NumStudents,
		ClassesPerStudent: params.ClassesPerStudent,
		NumDays:           params.NumDays,
		PeriodsPerDay:     params.PeriodsPerDay,
		MinClassesPerDay:  params.MinClassesPerDay,
		TermStartDate:     params.TermStartDate,
		FirstPeriodStart:  params.FirstPeriodStart,
		PeriodMinutes:     params.PeriodMinutes,
		UpdatedAt:         params.UpdatedAt.Format(timeLayout),
	}, nil
}

// Update 部分更新排课参数；五项核心参数更新后必须仍满足可行性约束，
// 不满足时整体回绝，不写入任何字段
func (s *paramsService) Update(ctx context.Context, operatorID string, req *dto.UpdateSchedulerParamsRequest) (*dto.SchedulerParamsResponse, error) {
	params, err := s.repo.SchedulerParam.Get(ctx)
	if err != nil {
		s.logger.Error("读取排课参数失败", zap.Error(err))
		return nil, err
	}

	if req.NumStudents != nil {
		params.NumStudents = *req.NumStudents
	}
	if req.ClassesPerStudent != nil {
		params.ClassesPerStudent = *req.ClassesPerStudent
	}
	if req.NumDays != nil {
		params.NumDays = *req.NumDays
	}
	if req.PeriodsPerDay != nil {
		params.PeriodsPerDay = *req.PeriodsPerDay
	}
	if req.MinClassesPerDay != nil {
		params.MinClassesPerDay = *req.MinClassesPerDay
	}
	if req.TermStartDate != nil {
		params.TermStartDate = *req.TermStartDate
	}
	if req.FirstPeriodStart != nil {
		params.FirstPeriodStart = *req.FirstPeriodStart
	}
	if req.PeriodMinutes != nil {
		params.PeriodMinutes = *req.PeriodMinutes
	}

	cfg := scheduler.Config{
		NumStudents:       params.NumStudents,
		ClassesPerStudent: params.ClassesPerStudent,
		NumDays:           params.NumDays,
		PeriodsPerDay:     params.PeriodsPerDay,
		MinClassesPerDay:  params.MinClassesPerDay,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params.UpdatedBy = &operatorID
	if err := s.repo.SchedulerParam.Update(ctx, params); err != nil {
		s.logger.Error("更新排课参数失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("排课参数已更新",
		zap.Int("num_students", params.NumStudents),
		zap.Int("classes_per_student", params.ClassesPerStudent),
		zap.Int("num_days", params.NumDays))

	return s.Get(ctx)
}
