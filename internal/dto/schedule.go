package dto

import (
	"encoding/json"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
)

// ── 排课运行模块 ──

// GenerateScheduleRequest 触发一次排课运行
type GenerateScheduleRequest struct {
	CatalogID string `json:"catalog_id" binding:"required,uuid"`
}

// ScheduleEntry 排课表中的一格：课程 + 节次
type ScheduleEntry struct {
	Class  string `json:"class"`
	Period int    `json:"period"`
}

// ScheduleJSON 对外的排课表形状：学生 → 日 → [{class, period}]
// 学生键为十进制 ID 字符串，日按目录声明顺序、格内按节次升序
type ScheduleJSON map[string]map[string][]ScheduleEntry

// ShortfallResponse 单个学生的排课缺口
type ShortfallResponse struct {
	Student int    `json:"student"`
	Day     string `json:"day,omitempty"`
	Missing int    `json:"missing"`
}

// ScheduleRunResponse 一次排课运行的完整响应
type ScheduleRunResponse struct {
	RunID       string              `json:"run_id"`
	CatalogID   string              `json:"catalog_id"`
	CatalogName string              `json:"catalog_name,omitempty"`
	Params      scheduler.Config    `json:"params"`
	Schedule    ScheduleJSON        `json:"schedule"`
	Shortfalls  []ShortfallResponse `json:"shortfalls,omitempty"`
	Report      json.RawMessage     `json:"report"` // 校验报告按存储原样透出
	Passed      bool                `json:"passed"`
	DurationMs  int64               `json:"duration_ms"`
	CreatedAt   string              `json:"created_at"`
}

// ScheduleRunSummaryResponse 运行记录列表项响应（不含排课明细）
type ScheduleRunSummaryResponse struct {
	RunID      string `json:"run_id"`
	CatalogID  string `json:"catalog_id"`
	Passed     bool   `json:"passed"`
	DurationMs int64  `json:"duration_ms"`
	CreatedAt  string `json:"created_at"`
}

// ValidateScheduleRequest 对外部提交的排课表执行校验（不落库）
type ValidateScheduleRequest struct {
	CatalogID string       `json:"catalog_id" binding:"required,uuid"`
	Schedule  ScheduleJSON `json:"schedule"   binding:"required"`
}
