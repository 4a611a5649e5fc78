package scheduler

import (
	"reflect"
	"testing"
)

// ════════════════════════════════════════════════════════════
// 校验器测试 — 手工构造含已知违规的排课表，
// 验证违规仅被对应校验器命中（其余三个保持通过）
// ════════════════════════════════════════════════════════════

func checkerCatalog() *Catalog {
	return &Catalog{Days: []CatalogDay{
		{Day: "Day1", Offerings: []ClassOffering{
			{Name: "Math", Capacity: 2, Periods: []int{1, 2}},
			{Name: "Art", Capacity: 2, Periods: []int{2, 3}},
		}},
		{Day: "Day2", Offerings: []ClassOffering{
			{Name: "Biology", Capacity: 2, Periods: []int{1}},
			{Name: "Music", Capacity: 2, Periods: []int{2}},
		}},
	}}
}

func checkerConfig() *Config {
	return &Config{NumStudents: 2, ClassesPerStudent: 2, NumDays: 2, PeriodsPerDay: 3, MinClassesPerDay: 1}
}

// validSchedule 满足全部约束的基准排课表
func validSchedule() Schedule {
	return Schedule{
		1: {
			{Student: 1, Day: "Day1", Class: "Math", Period: 1},
			{Student: 1, Day: "Day2", Class: "Biology", Period: 1},
		},
		2: {
			{Student: 2, Day: "Day1", Class: "Art", Period: 2},
			{Student: 2, Day: "Day2", Class: "Music", Period: 2},
		},
	}
}

// assertOnlyFails 断言报告中仅 failing 指定的校验器失败
func assertOnlyFails(t *testing.T, report Report, failing string) {
	t.Helper()
	if report.Passed {
		t.Fatalf("总体结果应为失败")
	}
	for _, name := range []string{CheckerClassCount, CheckerUniqueness, CheckerCapacity, CheckerPeriodConflict} {
		r, ok := report.Checkers[name]
		if !ok {
			t.Fatalf("报告缺少校验器 %s", name)
		}
		if name == failing && r.Passed {
			t.Errorf("%s 应失败, 实际通过", name)
		}
		if name != failing && !r.Passed {
			t.Errorf("%s 应通过, 实际 %+v", name, r.Violations)
		}
	}
}

func TestValidate_AllPass(t *testing.T) {
	report := Validate(validSchedule(), checkerCatalog(), checkerConfig())
	if !report.Passed {
		t.Fatalf("期望全部通过, 实际 %+v", report)
	}
	if len(report.Checkers) != 4 {
		t.Errorf("期望 4 个校验器结果, 实际 %d", len(report.Checkers))
	}
}

func TestClassCountChecker_Mismatch(t *testing.T) {
	s := validSchedule()
	s[2] = s[2][:1] // 学生 2 缺 1 门课

	report := Validate(s, checkerCatalog(), checkerConfig())
	assertOnlyFails(t, report, CheckerClassCount)

	violations := report.Checkers[CheckerClassCount].Violations
	if len(violations) != 1 {
		t.Fatalf("期望 1 条违规, 实际 %d", len(violations))
	}
	want := ClassCountViolation{Student: 2, Expected: 2, Found: 1}
	if violations[0] != want {
		t.Errorf("期望 %+v, 实际 %+v", want, violations[0])
	}
}

func TestUniquenessChecker_CrossDayDuplicate(t *testing.T) {
	// 学生 1 两天重复选 Math：唯一性跨全部天计算，而非仅同日
	s := Schedule{
		1: {
			{Student: 1, Day: "Day1", Class: "Math", Period: 1},
			{Student: 1, Day: "Day2", Class: "Math", Period: 1},
		},
	}
	catalog := &Catalog{Days: []CatalogDay{
		{Day: "Day1", Offerings: []ClassOffering{{Name: "Math", Capacity: 2, Periods: []int{1}}}},
		{Day: "Day2", Offerings: []ClassOffering{{Name: "Math", Capacity: 2, Periods: []int{1}}}},
	}}
	cfg := &Config{NumStudents: 1, ClassesPerStudent: 2, NumDays: 2, PeriodsPerDay: 1, MinClassesPerDay: 1}

	report := Validate(s, catalog, cfg)
	assertOnlyFails(t, report, CheckerUniqueness)

	violations := report.Checkers[CheckerUniqueness].Violations
	want := DuplicateClassViolation{Student: 1, Class: "Math", Count: 2}
	if len(violations) != 1 || violations[0] != want {
		t.Errorf("期望 [%+v], 实际 %+v", want, violations)
	}
}

func TestCapacityChecker_Overflow(t *testing.T) {
	// 3 人挤进容量 2 的 Day1 Math，各自节次不同 → 仅容量校验失败
	s := Schedule{
		1: {{Student: 1, Day: "Day1", Class: "Math", Period: 1}},
		2: {{Student: 2, Day: "Day1", Class: "Math", Period: 2}},
		3: {{Student: 3, Day: "Day1", Class: "Math", Period: 3}},
	}
	catalog := &Catalog{Days: []CatalogDay{
		{Day: "Day1", Offerings: []ClassOffering{
			{Name: "Math", Capacity: 2, Periods: []int{1, 2, 3}},
			{Name: "Art", Capacity: 2, Periods: []int{1}},
		}},
	}}
	cfg := &Config{NumStudents: 3, ClassesPerStudent: 1, NumDays: 1, PeriodsPerDay: 3, MinClassesPerDay: 1}

	report := Validate(s, catalog, cfg)
	assertOnlyFails(t, report, CheckerCapacity)

	violations := report.Checkers[CheckerCapacity].Violations
	if len(violations) != 1 {
		t.Fatalf("期望 1 条违规, 实际 %+v", violations)
	}
	want := CapacityViolation{Day: "Day1", Class: "Math", Capacity: 2, Assigned: 3}
	if violations[0] != want {
		t.Errorf("期望 %+v, 实际 %+v", want, violations[0])
	}
	// 无人选的 Art 不算违规（违规列表中不出现）
}

func TestCapacityChecker_UnknownClassSkipped(t *testing.T) {
	// 目录外的课不参与容量统计（课程存在性不是本校验器的职责）
	s := Schedule{
		1: {{Student: 1, Day: "Day1", Class: "Chemistry", Period: 1}},
	}
	result := CheckCapacity(s, checkerCatalog())
	if !result.Passed {
		t.Errorf("目录外课程应被跳过, 实际 %+v", result.Violations)
	}
}

func TestPeriodConflictChecker_ListsAllClasses(t *testing.T) {
	// 同日同节次 3 门课：违规记录应列出全部 3 门，而非首对
	s := Schedule{
		1: {
			{Student: 1, Day: "Day1", Class: "Math", Period: 2},
			{Student: 1, Day: "Day1", Class: "Art", Period: 2},
			{Student: 1, Day: "Day1", Class: "Music", Period: 2},
		},
	}
	catalog := &Catalog{Days: []CatalogDay{
		{Day: "Day1", Offerings: []ClassOffering{
			{Name: "Math", Capacity: 5, Periods: []int{2}},
			{Name: "Art", Capacity: 5, Periods: []int{2}},
			{Name: "Music", Capacity: 5, Periods: []int{2}},
		}},
	}}
	cfg := &Config{NumStudents: 1, ClassesPerStudent: 3, NumDays: 1, PeriodsPerDay: 3, MinClassesPerDay: 1}

	report := Validate(s, catalog, cfg)
	assertOnlyFails(t, report, CheckerPeriodConflict)

	violations := report.Checkers[CheckerPeriodConflict].Violations
	if len(violations) != 1 {
		t.Fatalf("期望 1 条违规, 实际 %+v", violations)
	}
	v := violations[0].(PeriodConflictViolation)
	if v.Student != 1 || v.Day != "Day1" || v.Period != 2 {
		t.Errorf("违规定位期望 {1, Day1, 2}, 实际 %+v", v)
	}
	wantClasses := []string{"Math", "Art", "Music"}
	if !reflect.DeepEqual(v.Classes, wantClasses) {
		t.Errorf("期望列出 %v, 实际 %v", wantClasses, v.Classes)
	}
}

// 不同日的同一节次不构成冲突
func TestPeriodConflictChecker_AcrossDaysNoConflict(t *testing.T) {
	s := Schedule{
		1: {
			{Student: 1, Day: "Day1", Class: "Math", Period: 1},
			{Student: 1, Day: "Day2", Class: "Biology", Period: 1},
		},
	}
	result := CheckPeriodConflicts(s)
	if !result.Passed {
		t.Errorf("跨天同节次不应视为冲突, 实际 %+v", result.Violations)
	}
}

// 校验器不得修改排课表
func TestValidate_DoesNotMutateSchedule(t *testing.T) {
	s := validSchedule()
	before := make(Schedule, len(s))
	for id, list := range s {
		cp := make([]Assignment, len(list))
		copy(cp, list)
		before[id] = cp
	}

	Validate(s, checkerCatalog(), checkerConfig())

	if !reflect.DeepEqual(s, before) {
		t.Fatalf("校验后排课表被修改")
	}
}
