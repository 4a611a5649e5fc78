package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
	ErrStudentNotInRun     = errors.New("该学生不在本次排课结果中")
	ErrInvalidTermSettings = errors.New("学期起始日期或首节时间格式非法")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出：学生 × 天 的排课表网格，单元格内按节次列出课程
//   - ICS 导出：按学生生成个人日历，时间映射依赖排课参数中的
//     term_start_date / first_period_start / period_minutes
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRunXLSX 导出一次排课运行为 Excel
	ExportRunXLSX(ctx context.Context, runID string) (*bytes.Buffer, string, error)
	// ExportStudentICS 导出某学生在一次运行中的个人日历
	ExportStudentICS(ctx context.Context, runID string, student int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportRunXLSX — 排课表导出为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "课程表"
//   - 行：学生（升序）
//   - 列：目录中的每一天（声明顺序）
//   - 单元格：每行一门 "课程 (P节次)"，按节次升序

func (s *exportService) ExportRunXLSX(ctx context.Context, runID string) (*bytes.Buffer, string, error) {
	schedule, dayNames, catalogName, _, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "课程表"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 10)
	for i := range dayNames {
		col := colName(1 + i)
		f.SetColWidth(sheetName, col, col, 24)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	cellStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})

	// 表头
	f.SetCellValue(sheetName, cell("A", 1), "学生")
	for i, day := range dayNames {
		f.SetCellValue(sheetName, cell(colName(1+i), 1), day)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(dayNames)), 1), headerStyle)

	// 数据行：学生升序
	students := sortedStudentKeys(schedule)
	row := 2
	for _, key := range students {
		f.SetCellValue(sheetName, cell("A", row), "学生 "+key)
		for i, day := range dayNames {
			entries := schedule[key][day]
			lines := make([]string, 0, len(entries))
			for _, e := range entries {
				lines = append(lines, fmt.Sprintf("%s (P%d)", e.Class, e.Period))
			}
			text := "-"
			if len(lines) > 0 {
				text = strings.Join(lines, "\n")
			}
			f.SetCellValue(sheetName, cell(colName(1+i), row), text)
		}
		f.SetCellStyle(sheetName, cell("A", row), cell(colName(len(dayNames)), row), cellStyle)
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("课程表_%s.xlsx", catalogName)
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportStudentICS — 学生个人日历导出
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStudentICS(ctx context.Context, runID string, student int) (*bytes.Buffer, string, error) {
	schedule, dayNames, _, params, err := s.loadRun(ctx, runID)
	if err != nil {
		return nil, "", err
	}

	key := studentKey(student)
	days, ok := schedule[key]
	if !ok {
		return nil, "", ErrStudentNotInRun
	}

	termStart, err := time.Parse("2006-01-02", params.TermStartDate)
	if err != nil {
		return nil, "", ErrInvalidTermSettings
	}
	firstPeriod, err := time.Parse("15:04", params.FirstPeriodStart)
	if err != nil {
		return nil, "", ErrInvalidTermSettings
	}

	// 天名 → 与学期起始日的偏移（按目录声明顺序）
	dayOffset := make(map[string]int, len(dayNames))
	for i, d := range dayNames {
		dayOffset[d] = i
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	for day, entries := range days {
		offset, ok := dayOffset[day]
		if !ok {
			continue
		}
		date := termStart.AddDate(0, 0, offset)
		for _, e := range entries {
			start := time.Date(date.Year(), date.Month(), date.Day(),
				firstPeriod.Hour(), firstPeriod.Minute(), 0, 0, time.UTC).
				Add(time.Duration(e.Period-1) * time.Duration(params.PeriodMinutes) * time.Minute)
			end := start.Add(time.Duration(params.PeriodMinutes) * time.Minute)

			uid := fmt.Sprintf("%s-%d-%s-p%d@class-scheduler", runID, student, sanitizeUID(day), e.Period)
			event := cal.AddEvent(uid)
			event.SetDtStampTime(time.Now().UTC())
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(e.Class)
			event.SetDescription(fmt.Sprintf("%s 第%d节", day, e.Period))
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("课程表_学生%d.ics", student)
	return buf, filename, nil
}

// ── 内部辅助 ──

// loadRun 读取运行快照，返回排课表、目录日序、目录名与当次参数快照之外的
// 导出时间设置（时间设置始终取当前排课参数，而非运行时快照）
func (s *exportService) loadRun(ctx context.Context, runID string) (dto.ScheduleJSON, []string, string, *exportTimeSettings, error) {
	run, err := s.repo.ScheduleRun.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", nil, ErrRunNotFound
		}
		s.logger.Error("查询排课运行记录失败", zap.Error(err))
		return nil, nil, "", nil, err
	}

	var schedule dto.ScheduleJSON
	if err := json.Unmarshal(run.Schedule, &schedule); err != nil {
		return nil, nil, "", nil, err
	}

	// 日序取自目录声明顺序（条目已按 day_position 排序）
	catalog, err := s.repo.Catalog.GetByID(ctx, run.CatalogID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, "", nil, ErrCatalogNotFound
		}
		return nil, nil, "", nil, err
	}
	var dayNames []string
	for _, off := range catalog.Offerings {
		if len(dayNames) == 0 || dayNames[len(dayNames)-1] != off.DayName {
			dayNames = append(dayNames, off.DayName)
		}
	}

	params, err := s.repo.SchedulerParam.Get(ctx)
	if err != nil {
		s.logger.Error("读取排课参数失败", zap.Error(err))
		return nil, nil, "", nil, err
	}

	settings := &exportTimeSettings{
		TermStartDate:    params.TermStartDate,
		FirstPeriodStart: params.FirstPeriodStart,
		PeriodMinutes:    params.PeriodMinutes,
	}
	return schedule, dayNames, catalog.Name, settings, nil
}

type exportTimeSettings struct {
	TermStartDate    string
	FirstPeriodStart string
	PeriodMinutes    int
}

// sortedStudentKeys 学生键按数值升序
func sortedStudentKeys(schedule dto.ScheduleJSON) []string {
	keys := make([]string, 0, len(schedule))
	for k := range schedule {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := parseStudentKey(keys[i])
		b, errB := parseStudentKey(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

// sanitizeUID 天名中的空格替换为连字符，保证 UID 合法
func sanitizeUID(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}

// ── Excel 坐标辅助 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
