package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
)

func intPtr(n int) *int { return &n }

func TestParams_GetDefaults(t *testing.T) {
	svc := NewParamsService(newTestRepository(), zap.NewNop())

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("读取参数失败: %v", err)
	}
	if got.NumStudents != 10 || got.ClassesPerStudent != 5 || got.NumDays != 2 ||
		got.PeriodsPerDay != 6 || got.MinClassesPerDay != 1 {
		t.Errorf("默认参数不符: %+v", got)
	}
	if got.PeriodMinutes != 50 || got.FirstPeriodStart != "08:00" {
		t.Errorf("默认时间设置不符: %+v", got)
	}
}

func TestParams_PartialUpdate(t *testing.T) {
	svc := NewParamsService(newTestRepository(), zap.NewNop())
	ctx := context.Background()

	updated, err := svc.Update(ctx, "op-1", &dto.UpdateSchedulerParamsRequest{
		NumStudents:   intPtr(20),
		PeriodMinutes: intPtr(45),
	})
	if err != nil {
		t.Fatalf("更新参数失败: %v", err)
	}
	if updated.NumStudents != 20 {
		t.Errorf("num_students: 期望 20, 实际 %d", updated.NumStudents)
	}
	if updated.PeriodMinutes != 45 {
		t.Errorf("period_minutes: 期望 45, 实际 %d", updated.PeriodMinutes)
	}
	// 未提供的字段保持不变
	if updated.ClassesPerStudent != 5 || updated.NumDays != 2 {
		t.Errorf("未更新字段不应改变: %+v", updated)
	}
}

func TestParams_UpdateRejectsInfeasible(t *testing.T) {
	svc := NewParamsService(newTestRepository(), zap.NewNop())
	ctx := context.Background()

	// classes_per_student(5) < min_classes_per_day(3) × num_days(2)
	_, err := svc.Update(ctx, "op-1", &dto.UpdateSchedulerParamsRequest{
		MinClassesPerDay: intPtr(3),
	})
	var infeasible *scheduler.InfeasibleConfigError
	if !errors.As(err, &infeasible) {
		t.Fatalf("不可行更新: 期望 InfeasibleConfigError, 实际 %v", err)
	}

	// 整体回绝：原值不变
	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("读取参数失败: %v", err)
	}
	if got.MinClassesPerDay != 1 {
		t.Errorf("回绝后 min_classes_per_day 应保持 1, 实际 %d", got.MinClassesPerDay)
	}
}

func TestParams_UpdateFeasibleBoundary(t *testing.T) {
	svc := NewParamsService(newTestRepository(), zap.NewNop())
	ctx := context.Background()

	// classes_per_student(6) = min_classes_per_day(3) × num_days(2)：恰好可行
	updated, err := svc.Update(ctx, "op-1", &dto.UpdateSchedulerParamsRequest{
		ClassesPerStudent: intPtr(6),
		MinClassesPerDay:  intPtr(3),
	})
	if err != nil {
		t.Fatalf("边界可行更新失败: %v", err)
	}
	if updated.ClassesPerStudent != 6 || updated.MinClassesPerDay != 3 {
		t.Errorf("更新结果不符: %+v", updated)
	}
}
