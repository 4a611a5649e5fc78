package scheduler

import (
	"errors"
	"fmt"
	"sort"
)

// ── 核心数据模型 ──
//
// 本包为纯算法核心：不依赖数据库、HTTP 或任何外部状态，
// 每次 Build / Validate 调用都是其输入的纯函数。

// ClassOffering 某日开设的一门课程
// Capacity 按 (day, class) 维度计算，与具体节次无关
type ClassOffering struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Periods  []int  `json:"periods"` // 可上课的节次集合，非空
}

// CatalogDay 单日课程目录（Offerings 的声明顺序即贪心选课顺序）
type CatalogDay struct {
	Day       string          `json:"day"`
	Offerings []ClassOffering `json:"offerings"`
}

// Catalog 全部天的课程目录（Days 的声明顺序即排课的处理顺序）
type Catalog struct {
	Days []CatalogDay `json:"days"`
}

// Day 按下标取日目录，越界返回 nil
func (c *Catalog) Day(i int) *CatalogDay {
	if i < 0 || i >= len(c.Days) {
		return nil
	}
	return &c.Days[i]
}

// Config 排课系统参数（五项均 ≥1）
type Config struct {
	NumStudents       int `json:"num_students"`
	ClassesPerStudent int `json:"classes_per_student"`
	NumDays           int `json:"num_days"`
	PeriodsPerDay     int `json:"periods_per_day"`
	MinClassesPerDay  int `json:"min_classes_per_day"`
}

// Validate 校验可行性前置条件
// 任何字段 < 1 或 classes_per_student < min_classes_per_day × num_days 即不可行
func (c *Config) Validate() error {
	switch {
	case c.NumStudents < 1:
		return &InfeasibleConfigError{Reason: "num_students 必须 ≥ 1"}
	case c.ClassesPerStudent < 1:
		return &InfeasibleConfigError{Reason: "classes_per_student 必须 ≥ 1"}
	case c.NumDays < 1:
		return &InfeasibleConfigError{Reason: "num_days 必须 ≥ 1"}
	case c.PeriodsPerDay < 1:
		return &InfeasibleConfigError{Reason: "periods_per_day 必须 ≥ 1"}
	case c.MinClassesPerDay < 1:
		return &InfeasibleConfigError{Reason: "min_classes_per_day 必须 ≥ 1"}
	}
	if c.ClassesPerStudent < c.MinClassesPerDay*c.NumDays {
		return &InfeasibleConfigError{
			Reason: fmt.Sprintf("classes_per_student (%d) 小于 min_classes_per_day × num_days (%d × %d)",
				c.ClassesPerStudent, c.MinClassesPerDay, c.NumDays),
		}
	}
	return nil
}

// Assignment 一条选课结果：某学生在某日某节次上某门课
type Assignment struct {
	Student int    `json:"student"`
	Day     string `json:"day"`
	Class   string `json:"class"`
	Period  int    `json:"period"`
}

// Schedule 排课结果：学生 ID → 按日顺序、同日内按节次升序的选课列表
// Build 返回后即为只读值，校验器不得修改
type Schedule map[int][]Assignment

// Students 返回升序的学生 ID 列表（保证遍历确定性）
func (s Schedule) Students() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Shortfall 单个学生的排课缺口（非致命，随部分结果一并返回）
// Day 为空表示总课程数缺口，非空表示该日未达到每日最低课程数
type Shortfall struct {
	Student int    `json:"student"`
	Day     string `json:"day,omitempty"`
	Missing int    `json:"missing"`
}

// Result 一次构建的完整输出：可能不完整的排课表 + 缺口列表
type Result struct {
	Schedule   Schedule    `json:"schedule"`
	Shortfalls []Shortfall `json:"shortfalls,omitempty"`
}

// ── 错误类型 ──

// InfeasibleConfigError 配置在数学上无法满足约束，构建在任何分配前终止
type InfeasibleConfigError struct {
	Reason string
}

func (e *InfeasibleConfigError) Error() string {
	return "不可行配置: " + e.Reason
}

// ErrDayCountMismatch 课程目录的天数与 num_days 不一致
var ErrDayCountMismatch = errors.New("课程目录天数与 num_days 不一致")
