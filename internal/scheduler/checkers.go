package scheduler

import "sort"

// ── 四个独立校验器 ──
//
// 每个校验器只读取 Schedule（容量校验另需 Catalog），互不依赖，
// 可任意顺序或并发执行。违规以结构化记录返回，从不 panic / 报错。

// 校验器名称（ValidationReport 的键）
const (
	CheckerClassCount     = "class_count"
	CheckerUniqueness     = "uniqueness"
	CheckerCapacity       = "capacity"
	CheckerPeriodConflict = "period_conflict"
)

// Violation 单条违规记录的标记接口（具体类型见下方四种）
type Violation interface {
	violation()
}

// ClassCountViolation 学生总课程数与要求不符
type ClassCountViolation struct {
	Student  int `json:"student"`
	Expected int `json:"expected"`
	Found    int `json:"found"`
}

// DuplicateClassViolation 学生跨天重复选了同一门课
type DuplicateClassViolation struct {
	Student int    `json:"student"`
	Class   string `json:"class"`
	Count   int    `json:"count"`
}

// CapacityViolation 某 (日, 课) 选课人数超出容量
type CapacityViolation struct {
	Day      string `json:"day"`
	Class    string `json:"class"`
	Capacity int    `json:"capacity"`
	Assigned int    `json:"assigned"`
}

// PeriodConflictViolation 学生同日同节次有多门课（列出全部冲突课程）
type PeriodConflictViolation struct {
	Student int      `json:"student"`
	Day     string   `json:"day"`
	Period  int      `json:"period"`
	Classes []string `json:"classes"`
}

func (ClassCountViolation) violation()     {}
func (DuplicateClassViolation) violation() {}
func (CapacityViolation) violation()       {}
func (PeriodConflictViolation) violation() {}

// CheckResult 单个校验器的结果
type CheckResult struct {
	Name       string      `json:"name"`
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
}

// ────────────────────── 总课程数校验 ──────────────────────

// CheckClassCount 校验每个学生的总课程数是否恰为 classesPerStudent
func CheckClassCount(s Schedule, classesPerStudent int) CheckResult {
	var violations []Violation
	for _, id := range s.Students() {
		found := len(s[id])
		if found != classesPerStudent {
			violations = append(violations, ClassCountViolation{
				Student:  id,
				Expected: classesPerStudent,
				Found:    found,
			})
		}
	}
	return CheckResult{Name: CheckerClassCount, Passed: len(violations) == 0, Violations: violations}
}

// ────────────────────── 全局唯一性校验 ──────────────────────

// CheckUniqueness 校验每个学生跨全部天不重复选同一门课
func CheckUniqueness(s Schedule) CheckResult {
	var violations []Violation
	for _, id := range s.Students() {
		counts := make(map[string]int)
		order := make([]string, 0, len(s[id]))
		for _, a := range s[id] {
			if counts[a.Class] == 0 {
				order = append(order, a.Class)
			}
			counts[a.Class]++
		}
		for _, class := range order {
			if counts[class] > 1 {
				violations = append(violations, DuplicateClassViolation{
					Student: id,
					Class:   class,
					Count:   counts[class],
				})
			}
		}
	}
	return CheckResult{Name: CheckerUniqueness, Passed: len(violations) == 0, Violations: violations}
}

// ────────────────────── 容量校验 ──────────────────────

// CheckCapacity 校验每个 (日, 课) 的选课人数不超过目录容量
// 无人选的课不算违规；目录中不存在的 (日, 课) 组合跳过
func CheckCapacity(s Schedule, catalog *Catalog) CheckResult {
	type dayClass struct {
		day   string
		class string
	}

	// 统计 (日, 课) 选课人数
	counts := make(map[dayClass]int)
	for _, id := range s.Students() {
		for _, a := range s[id] {
			counts[dayClass{day: a.Day, class: a.Class}]++
		}
	}

	// 按目录声明顺序遍历，保证违规列表顺序确定
	var violations []Violation
	for _, day := range catalog.Days {
		for _, o := range day.Offerings {
			assigned := counts[dayClass{day: day.Day, class: o.Name}]
			if assigned > o.Capacity {
				violations = append(violations, CapacityViolation{
					Day:      day.Day,
					Class:    o.Name,
					Capacity: o.Capacity,
					Assigned: assigned,
				})
			}
		}
	}
	return CheckResult{Name: CheckerCapacity, Passed: len(violations) == 0, Violations: violations}
}

// ────────────────────── 节次冲突校验 ──────────────────────

// CheckPeriodConflicts 校验每个学生同日无两门课共享同一节次
// 违规记录列出该节次的全部课程，而非仅首对冲突
func CheckPeriodConflicts(s Schedule) CheckResult {
	type slot struct {
		day    string
		period int
	}

	var violations []Violation
	for _, id := range s.Students() {
		// (日, 节次) → 课程列表，课程保留遇到顺序
		bySlot := make(map[slot][]string)
		var slots []slot
		for _, a := range s[id] {
			key := slot{day: a.Day, period: a.Period}
			if len(bySlot[key]) == 0 {
				slots = append(slots, key)
			}
			bySlot[key] = append(bySlot[key], a.Class)
		}
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].day != slots[j].day {
				return slots[i].day < slots[j].day
			}
			return slots[i].period < slots[j].period
		})
		for _, key := range slots {
			classes := bySlot[key]
			if len(classes) < 2 {
				continue
			}
			violations = append(violations, PeriodConflictViolation{
				Student: id,
				Day:     key.day,
				Period:  key.period,
				Classes: classes,
			})
		}
	}
	return CheckResult{Name: CheckerPeriodConflict, Passed: len(violations) == 0, Violations: violations}
}
