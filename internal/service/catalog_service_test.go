package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
)

func newTestCatalogService() (CatalogService, *repository.Repository) {
	repo := newTestRepository()
	return NewCatalogService(repo, zap.NewNop()), repo
}

func twoDayCatalogRequest() *dto.CreateCatalogRequest {
	return &dto.CreateCatalogRequest{
		Name: "测试目录",
		Days: []dto.CatalogDayRequest{
			{
				Day: "Day 1",
				Offerings: []dto.OfferingRequest{
					{ClassName: "Math", Capacity: 5, Periods: []int{1, 3, 5}},
					{ClassName: "Art", Capacity: 5, Periods: []int{3, 5}},
				},
			},
			{
				Day: "Day 2",
				Offerings: []dto.OfferingRequest{
					{ClassName: "Math", Capacity: 5, Periods: []int{1, 3, 5}},
					{ClassName: "Music", Capacity: 5, Periods: []int{3, 4, 6}},
				},
			},
		},
	}
}

func TestCatalog_CreateAndGet(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "op-1", twoDayCatalogRequest())
	if err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if created.CatalogID == "" {
		t.Fatal("创建应返回 CatalogID")
	}

	got, err := svc.Get(ctx, created.CatalogID)
	if err != nil {
		t.Fatalf("查询目录失败: %v", err)
	}
	if len(got.Days) != 2 {
		t.Fatalf("天数: 期望 2, 实际 %d", len(got.Days))
	}
	if got.Days[0].Day != "Day 1" || got.Days[1].Day != "Day 2" {
		t.Errorf("日序不符: %s, %s", got.Days[0].Day, got.Days[1].Day)
	}
	// 同日内保持声明顺序
	if got.Days[0].Offerings[0].ClassName != "Math" || got.Days[0].Offerings[1].ClassName != "Art" {
		t.Errorf("Day 1 课程顺序不符: %+v", got.Days[0].Offerings)
	}
}

func TestCatalog_CreateDuplicateName(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "op-1", twoDayCatalogRequest()); err != nil {
		t.Fatalf("首次创建失败: %v", err)
	}
	if _, err := svc.Create(ctx, "op-1", twoDayCatalogRequest()); !errors.Is(err, ErrCatalogNameTaken) {
		t.Errorf("同名创建: 期望 ErrCatalogNameTaken, 实际 %v", err)
	}
}

func TestCatalog_CreateRejectsDuplicateClassInDay(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	req := twoDayCatalogRequest()
	req.Days[0].Offerings = append(req.Days[0].Offerings, dto.OfferingRequest{
		ClassName: "Math", Capacity: 3, Periods: []int{2},
	})
	if _, err := svc.Create(ctx, "op-1", req); !errors.Is(err, ErrDuplicateClass) {
		t.Errorf("同日重复课程: 期望 ErrDuplicateClass, 实际 %v", err)
	}
}

func TestCatalog_UpdateReplacesDays(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "op-1", twoDayCatalogRequest())
	if err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}

	newName := "改名后的目录"
	updated, err := svc.Update(ctx, "op-2", created.CatalogID, &dto.UpdateCatalogRequest{
		Name: &newName,
		Days: []dto.CatalogDayRequest{
			{
				Day: "Monday",
				Offerings: []dto.OfferingRequest{
					{ClassName: "PE", Capacity: 8, Periods: []int{1, 2}},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("更新目录失败: %v", err)
	}
	if updated.Name != newName {
		t.Errorf("名称: 期望 %s, 实际 %s", newName, updated.Name)
	}
	if len(updated.Days) != 1 || updated.Days[0].Day != "Monday" {
		t.Errorf("Days 应被整体替换: %+v", updated.Days)
	}
}

func TestCatalog_DeleteThenGet(t *testing.T) {
	svc, _ := newTestCatalogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "op-1", twoDayCatalogRequest())
	if err != nil {
		t.Fatalf("创建目录失败: %v", err)
	}
	if err := svc.Delete(ctx, "op-1", created.CatalogID); err != nil {
		t.Fatalf("删除目录失败: %v", err)
	}
	if _, err := svc.Get(ctx, created.CatalogID); !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("删除后查询: 期望 ErrCatalogNotFound, 实际 %v", err)
	}
	if err := svc.Delete(ctx, "op-1", "missing-id"); !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("删除不存在目录: 期望 ErrCatalogNotFound, 实际 %v", err)
	}
}

func TestCatalog_EnsureSampleCatalogIdempotent(t *testing.T) {
	svc, repo := newTestCatalogService()
	ctx := context.Background()

	if err := svc.EnsureSampleCatalog(ctx); err != nil {
		t.Fatalf("写入示例目录失败: %v", err)
	}
	if err := svc.EnsureSampleCatalog(ctx); err != nil {
		t.Fatalf("重复写入示例目录失败: %v", err)
	}

	_, total, err := repo.Catalog.List(ctx, 1, 10)
	if err != nil {
		t.Fatalf("查询目录列表失败: %v", err)
	}
	if total != 1 {
		t.Errorf("示例目录应只写入一次: 期望 1, 实际 %d", total)
	}

	sample, err := repo.Catalog.GetByName(ctx, sampleCatalogName)
	if err != nil {
		t.Fatalf("查询示例目录失败: %v", err)
	}
	if len(sample.Offerings) != 12 {
		t.Errorf("示例目录课程条目数: 期望 12, 实际 %d", len(sample.Offerings))
	}
}
