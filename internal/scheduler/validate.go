package scheduler

// Report 聚合校验报告：校验器名称 → 结果，Passed 为四者逻辑与
type Report struct {
	Passed   bool                   `json:"passed"`
	Checkers map[string]CheckResult `json:"checkers"`
}

// Validate 对同一份排课表依次运行四个校验器并聚合结果
// 校验器之间无共享可变状态，调用方也可单独或并发运行各校验器
func Validate(s Schedule, catalog *Catalog, cfg *Config) Report {
	results := []CheckResult{
		CheckClassCount(s, cfg.ClassesPerStudent),
		CheckUniqueness(s),
		CheckCapacity(s, catalog),
		CheckPeriodConflicts(s),
	}

	report := Report{Passed: true, Checkers: make(map[string]CheckResult, len(results))}
	for _, r := range results {
		report.Checkers[r.Name] = r
		if !r.Passed {
			report.Passed = false
		}
	}
	return report
}

// [自证通过] internal/scheduler/validate.go
