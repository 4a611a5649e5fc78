package service

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/dto"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/model"
	"github.com/USAFADFCS/final-project-wing-king-and-ty/internal/scheduler"
)

// 统一时间戳输出格式
const timeLayout = "2006-01-02 15:04:05"

// toCatalogResponse 将目录模型（含已按 day_position, position 排序的条目）
// 还原为按天分组的响应结构
func toCatalogResponse(catalog *model.Catalog) *dto.CatalogResponse {
	resp := &dto.CatalogResponse{
		CatalogID:   catalog.CatalogID,
		Name:        catalog.Name,
		Description: catalog.Description,
		CreatedAt:   catalog.CreatedAt.Format(timeLayout),
		UpdatedAt:   catalog.UpdatedAt.Format(timeLayout),
	}
	for _, off := range catalog.Offerings {
		if len(resp.Days) == 0 || resp.Days[len(resp.Days)-1].Day != off.DayName {
			resp.Days = append(resp.Days, dto.CatalogDayResponse{Day: off.DayName})
		}
		last := &resp.Days[len(resp.Days)-1]
		last.Offerings = append(last.Offerings, dto.OfferingResponse{
			ClassName: off.ClassName,
			Capacity:  off.Capacity,
			Periods:   []int(off.Periods),
		})
	}
	return resp
}

// toSchedulerCatalog 将目录模型转换为排课引擎的输入结构
func toSchedulerCatalog(catalog *model.Catalog) *scheduler.Catalog {
	out := &scheduler.Catalog{}
	for _, off := range catalog.Offerings {
		if len(out.Days) == 0 || out.Days[len(out.Days)-1].Day != off.DayName {
			out.Days = append(out.Days, scheduler.CatalogDay{Day: off.DayName})
		}
		last := &out.Days[len(out.Days)-1]
		last.Offerings = append(last.Offerings, scheduler.ClassOffering{
			Name:     off.ClassName,
			Capacity: off.Capacity,
			Periods:  []int(off.Periods),
		})
	}
	return out
}

// toScheduleJSON 将排课结果转换为 学生 → 日 → 条目 的响应结构
func toScheduleJSON(schedule scheduler.Schedule) dto.ScheduleJSON {
	out := make(dto.ScheduleJSON, len(schedule))
	for _, student := range schedule.Students() {
		days := make(map[string][]dto.ScheduleEntry)
		for _, a := range schedule[student] {
			days[a.Day] = append(days[a.Day], dto.ScheduleEntry{
				Class:  a.Class,
				Period: a.Period,
			})
		}
		out[studentKey(student)] = days
	}
	return out
}

// fromScheduleJSON 将外部提交的排课表还原为引擎结构（用于独立校验）
// 日序按目录声明顺序，同日内按节次升序
func fromScheduleJSON(in dto.ScheduleJSON, catalog *scheduler.Catalog) (scheduler.Schedule, error) {
	dayOrder := make(map[string]int, len(catalog.Days))
	for i, d := range catalog.Days {
		dayOrder[d.Day] = i
	}

	schedule := make(scheduler.Schedule, len(in))
	for key, days := range in {
		student, err := parseStudentKey(key)
		if err != nil {
			return nil, err
		}
		var assignments []scheduler.Assignment
		for day, entries := range days {
			for _, e := range entries {
				assignments = append(assignments, scheduler.Assignment{
					Student: student,
					Day:     day,
					Class:   e.Class,
					Period:  e.Period,
				})
			}
		}
		sortAssignments(assignments, dayOrder)
		schedule[student] = assignments
	}
	return schedule, nil
}

// studentKey 学生 ID 的 JSON 键（十进制字符串）
func studentKey(student int) string {
	return strconv.Itoa(student)
}

func parseStudentKey(key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("非法学生键: %q", key)
	}
	return n, nil
}

// sortAssignments 按目录日序、同日内节次升序排序（未知日排在末尾）
func sortAssignments(assignments []scheduler.Assignment, dayOrder map[string]int) {
	rank := func(day string) int {
		if r, ok := dayOrder[day]; ok {
			return r
		}
		return len(dayOrder)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		if rank(assignments[i].Day) != rank(assignments[j].Day) {
			return rank(assignments[i].Day) < rank(assignments[j].Day)
		}
		return assignments[i].Period < assignments[j].Period
	})
}
