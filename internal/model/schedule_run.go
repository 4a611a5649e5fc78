package model

import "time"

// ScheduleRun 排课运行记录表 — 对应 schedule_runs
// 一次运行固化当时的参数、产出的排课表与校验报告（均为 JSONB 快照）
type ScheduleRun struct {
	RunID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"run_id"`
	CatalogID  string    `gorm:"type:uuid;not null"                             json:"catalog_id"`
	Params     JSONB     `gorm:"type:jsonb;not null"                            json:"params"`
	Schedule   JSONB     `gorm:"type:jsonb;not null"                            json:"schedule"`
	Shortfalls JSONB     `gorm:"type:jsonb"                                     json:"shortfalls,omitempty"`
	Report     JSONB     `gorm:"type:jsonb;not null"                            json:"report"`
	Passed     bool      `gorm:"not null"                                       json:"passed"`
	DurationMs int64     `gorm:"not null;default:0"                             json:"duration_ms"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	CreatedBy  *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`

	// 关联
	Catalog *Catalog `gorm:"foreignKey:CatalogID;references:CatalogID" json:"catalog,omitempty"`
}

// TableName 指定表名
func (ScheduleRun) TableName() string { return "schedule_runs" }
