package dto

// ── 排课参数模块 ──

// SchedulerParamsResponse 排课参数响应
type SchedulerParamsResponse struct {
	NumStudents       int    `json:"num_students"`
	ClassesPerStudent int    `json:"classes_per_student"`
	NumDays           int    `json:"num_days"`
	PeriodsPerDay     int    `json:"periods_per_day"`
	MinClassesPerDay  int    `json:"min_classes_per_day"`
	TermStartDate     string `json:"term_start_date"`
	FirstPeriodStart  string `json:"first_period_start"`
	PeriodMinutes     int    `json:"period_minutes"`
	UpdatedAt         string `json:"updated_at"`
}

// UpdateSchedulerParamsRequest 更新排课参数请求（部分更新）
// 五项核心参数更新后需重新满足可行性约束：
// classes_per_student ≥ min_classes_per_day × num_days
type UpdateSchedulerParamsRequest struct {
	NumStudents       *int    `json:"num_students"        binding:"omitempty,min=1"`
	ClassesPerStudent *int    `json:"classes_per_student" binding:"omitempty,min=1"`
	NumDays           *int    `json:"num_days"            binding:"omitempty,min=1"`
	PeriodsPerDay     *int    `json:"periods_per_day"     binding:"omitempty,min=1"`
	MinClassesPerDay  *int    `json:"min_classes_per_day" binding:"omitempty,min=1"`
	TermStartDate     *string `json:"term_start_date"     binding:"omitempty,datetime=2006-01-02"`
	FirstPeriodStart  *string `json:"first_period_start"  binding:"omitempty,datetime=15:04"`
	PeriodMinutes     *int    `json:"period_minutes"      binding:"omitempty,min=1,max=480"`
}
