package service

import (
	"testing"
	"time"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

func TestExamKindForWeek(t *testing.T) {
	cases := []struct {
		week int
		want model.ExamKind
	}{
		{10, model.ExamSemester1},
		{20, model.ExamSemester1}, // 开区间下界
		{21, model.ExamAnnual},
		{25, model.ExamAnnual},
		{29, model.ExamAnnual},
		{30, model.ExamSemester1}, // 开区间上界
		{40, model.ExamSemester1},
		{41, model.ExamSemester2},
		{45, model.ExamSemester2},
	}
	for _, c := range cases {
		if got := examKindForWeek(c.week); got != c.want {
			t.Errorf("examKindForWeek(%d) = %s，期望 %s", c.week, got, c.want)
		}
	}
}

func examWeek(number int, start model.Date) model.Week {
	return model.Week{
		WeekNumber: number,
		StartDate:  start,
		EndDate:    WeekEnd(start),
		Type:       model.WeekExam,
		Label:      "Exam",
	}
}

// 仅严格连续的 exam 周合并；断档开启新考试期
func TestDeriveExamPeriods_ConsecutiveRuns(t *testing.T) {
	cal := newCalendar(2026)
	cal.Weeks = []model.Week{
		examWeek(10, model.NewDate(2026, time.March, 2)),
		examWeek(11, model.NewDate(2026, time.March, 9)),
		{WeekNumber: 12, StartDate: model.NewDate(2026, time.March, 16), Type: model.WeekAcademic},
		examWeek(13, model.NewDate(2026, time.March, 23)),
	}

	deriveExamPeriods(cal, NewSequentialIDGenerator())

	if len(cal.ExamPeriods) != 2 {
		t.Fatalf("期望 2 个考试期，实际 %d", len(cal.ExamPeriods))
	}
	p1 := cal.ExamPeriods[0]
	if len(p1.WeekNumbers) != 2 || p1.WeekNumbers[0] != 10 || p1.WeekNumbers[1] != 11 {
		t.Errorf("首个考试期周号错误: %v", p1.WeekNumbers)
	}
	if p1.StartDate.String() != "2026-03-02" || p1.EndDate.String() != "2026-03-15" {
		t.Errorf("首个考试期跨度错误: %s ~ %s", p1.StartDate, p1.EndDate)
	}
	if p1.Kind != model.ExamSemester1 {
		t.Errorf("类别取段内首周: %s", p1.Kind)
	}
	if len(cal.ExamPeriods[1].WeekNumbers) != 1 || cal.ExamPeriods[1].WeekNumbers[0] != 13 {
		t.Errorf("断档后的第 13 周应独立成期: %v", cal.ExamPeriods[1].WeekNumbers)
	}
}

// break 周逐周派生，连续也不合并
func TestDeriveBreakPeriods_PerWeek(t *testing.T) {
	cal := newCalendar(2026)
	cal.Weeks = []model.Week{
		{WeekNumber: 7, StartDate: model.NewDate(2026, time.February, 9),
			EndDate: model.NewDate(2026, time.February, 15), Type: model.WeekBreak, Label: "Break"},
		{WeekNumber: 8, StartDate: model.NewDate(2026, time.February, 16),
			EndDate: model.NewDate(2026, time.February, 22), Type: model.WeekBreak, Label: "Break"},
	}

	deriveBreakPeriods(cal, NewSequentialIDGenerator())

	if len(cal.Breaks) != 2 {
		t.Fatalf("相邻 break 周也应各自成期，实际 %d", len(cal.Breaks))
	}
	if cal.Breaks[0].Name != "Break" || len(cal.Breaks[0].WeekNumbers) != 1 {
		t.Errorf("假期应沿用周标签且为单周: %+v", cal.Breaks[0])
	}
}

func TestBackfillOpenClose(t *testing.T) {
	cal := newCalendar(2026)
	cal.SpecialEvents = []model.SpecialEvent{
		{Name: "Lectures commence", Date: model.NewDate(2026, time.January, 12)},
		{Name: "University opens for the academic year", Date: model.NewDate(2026, time.January, 5)},
		{Name: "University closes", Date: model.NewDate(2026, time.December, 11)},
	}

	backfillOpenClose(cal)

	if cal.UniversityOpenDate.String() != "2026-01-05" {
		t.Errorf("开学日期回填错误: %s", cal.UniversityOpenDate)
	}
	if cal.UniversityCloseDate.String() != "2026-12-11" {
		t.Errorf("放假日期回填错误: %s", cal.UniversityCloseDate)
	}
}

func TestBackfillOpenClose_DoesNotOverwrite(t *testing.T) {
	cal := newCalendar(2026)
	cal.UniversityOpenDate = model.NewDate(2026, time.January, 5)
	cal.SpecialEvents = []model.SpecialEvent{
		{Name: "University opens", Date: model.NewDate(2026, time.February, 2)},
	}

	backfillOpenClose(cal)

	if cal.UniversityOpenDate.String() != "2026-01-05" {
		t.Errorf("已设置的开学日期不应被回填覆盖: %s", cal.UniversityOpenDate)
	}
}

// 学期探测为占位实现：semesters 保持为空
func TestDetectSemesters_Placeholder(t *testing.T) {
	cal := newCalendar(2026)
	cal.SpecialEvents = []model.SpecialEvent{
		{Name: "First semester lectures commence", Date: model.NewDate(2026, time.February, 2)},
	}

	detectSemesters(cal)

	if len(cal.Semesters) != 0 {
		t.Errorf("占位实现不应合成学期实体: %v", cal.Semesters)
	}
}
