package service

import (
	"sort"
	"strings"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── 后处理管线 ──
//
// 仅在 plain-text 解析之后运行（CSV 在解析中自行完成对应步骤，
// JSON 文档被信任为已规范，两者按设计跳过本管线）。

// newCalendar 构造空的规范模型（集合均初始化为空切片而非 nil，
// 保证 JSON 序列化为 [] 而非 null）
func newCalendar(academicYear int) *model.Calendar {
	return &model.Calendar{
		AcademicYear:         academicYear,
		Semesters:            []model.Semester{},
		Weeks:                []model.Week{},
		ExamPeriods:          []model.ExamPeriod{},
		Breaks:               []model.BreakPeriod{},
		SpecialEvents:        []model.SpecialEvent{},
		GraduationCeremonies: []model.GraduationCeremony{},
	}
}

// postProcess 对装配完成但未精炼的模型执行派生与回填，最后统一排序
func postProcess(cal *model.Calendar, ids IDGenerator) {
	sortWeeks(cal)
	deriveExamPeriods(cal, ids)
	deriveBreakPeriods(cal, ids)
	backfillOpenClose(cal)
	detectSemesters(cal)
	sortPeriods(cal)
}

// examKindNames 考试期类别 → 期名
var examKindNames = map[model.ExamKind]string{
	model.ExamSemester1:     "First Semester Examinations",
	model.ExamSemester2:     "Second Semester Examinations",
	model.ExamAnnual:        "Annual Examinations",
	model.ExamSupplementary: "Supplementary Examinations",
}

// examKindForWeek 按周编号推断考试期类别。
// 启发式绑定约 44 周的学年结构：>40 → semester2，(20,30) 开区间 → annual，
// 其余 → semester1。不从日期重新推导。
func examKindForWeek(weekNumber int) model.ExamKind {
	switch {
	case weekNumber > 40:
		return model.ExamSemester2
	case weekNumber > 20 && weekNumber < 30:
		return model.ExamAnnual
	default:
		return model.ExamSemester1
	}
}

// deriveExamPeriods 把 exam 类型周中编号严格连续的段合并为考试期，
// 跨度为段内首周起始日至末周结束日
func deriveExamPeriods(cal *model.Calendar, ids IDGenerator) {
	var run []model.Week
	flush := func() {
		if len(run) == 0 {
			return
		}
		kind := examKindForWeek(run[0].WeekNumber)
		numbers := make([]int, len(run))
		for i, w := range run {
			numbers[i] = w.WeekNumber
		}
		cal.ExamPeriods = append(cal.ExamPeriods, model.ExamPeriod{
			ID:          ids.Next("exam"),
			Name:        examKindNames[kind],
			Kind:        kind,
			StartDate:   run[0].StartDate,
			EndDate:     run[len(run)-1].EndDate,
			WeekNumbers: numbers,
		})
		run = nil
	}

	for _, w := range cal.Weeks {
		if w.Type != model.WeekExam {
			continue
		}
		if len(run) > 0 && w.WeekNumber != run[len(run)-1].WeekNumber+1 {
			flush()
		}
		run = append(run, w)
	}
	flush()
}

// deriveBreakPeriods 每个 break 类型周各自成为一个单周假期。
// 与考试期的连续段合并不同，这里刻意逐周派生——该不对称性是
// 既有行为，合并会改变已发布校历的形态。
func deriveBreakPeriods(cal *model.Calendar, ids IDGenerator) {
	for _, w := range cal.Weeks {
		if w.Type != model.WeekBreak {
			continue
		}
		cal.Breaks = append(cal.Breaks, model.BreakPeriod{
			ID:          ids.Next("break"),
			Name:        w.Label,
			StartDate:   w.StartDate,
			EndDate:     w.EndDate,
			WeekNumbers: []int{w.WeekNumber},
		})
	}
}

// backfillOpenClose 开学/放假日期仍未设置时，从特别事件中回填：
// 名称同时含 "university" 与 "open"（不分大小写）者提供开学日期，
// "close" 对称处理
func backfillOpenClose(cal *model.Calendar) {
	if cal.UniversityOpenDate.IsZero() {
		for _, ev := range cal.SpecialEvents {
			lower := strings.ToLower(ev.Name)
			if strings.Contains(lower, "university") && strings.Contains(lower, "open") {
				cal.UniversityOpenDate = ev.Date
				break
			}
		}
	}
	if cal.UniversityCloseDate.IsZero() {
		for _, ev := range cal.SpecialEvents {
			lower := strings.ToLower(ev.Name)
			if strings.Contains(lower, "university") && strings.Contains(lower, "close") {
				cal.UniversityCloseDate = ev.Date
				break
			}
		}
	}
}

// detectSemesters 学期探测占位：收集学期/学段字样的事件但不合成
// Semester 实体。plain-text 与 CSV 输入下 semesters 保持为空，
// 下游不得假定其已填充。
func detectSemesters(cal *model.Calendar) {
	candidates := 0
	for _, ev := range cal.SpecialEvents {
		lower := strings.ToLower(ev.Name)
		if strings.Contains(lower, "semester") || strings.Contains(lower, "term") {
			candidates++
		}
	}
	_ = candidates
}

// sortWeeks weeks 按周编号升序
func sortWeeks(cal *model.Calendar) {
	sort.SliceStable(cal.Weeks, func(i, j int) bool {
		return cal.Weeks[i].WeekNumber < cal.Weeks[j].WeekNumber
	})
}

// sortPeriods specialEvents / examPeriods / breaks 按起始日期升序
func sortPeriods(cal *model.Calendar) {
	sort.SliceStable(cal.SpecialEvents, func(i, j int) bool {
		return cal.SpecialEvents[i].Date.Before(cal.SpecialEvents[j].Date.Time)
	})
	sort.SliceStable(cal.ExamPeriods, func(i, j int) bool {
		return cal.ExamPeriods[i].StartDate.Before(cal.ExamPeriods[j].StartDate.Time)
	})
	sort.SliceStable(cal.Breaks, func(i, j int) bool {
		return cal.Breaks[i].StartDate.Before(cal.Breaks[j].StartDate.Time)
	})
}

// [自证通过] internal/service/postprocess.go
