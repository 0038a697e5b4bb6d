package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── plain-text 解析器 ──────────────────────────────────────────
//
// 职责：将自由书写的行式校历文本装配为规范模型。
//
// 文法（非正式）：
//   document    := (monthHeader | weekMarker | eventLine | 其他行)*
//   monthHeader := 英文月份全名（整行）
//   weekMarker  := "[Week N]"
//   eventLine   := 星期 空格 日号 ":" 文本
//
// 设计决策：
//   - 显式三态状态机（idle / noAnchor / anchored），周标记到来时
//     若当前周缺少周一锚点则按首个事件所在周的周一推算起始日，
//     并记录警告——不静默丢弃任何已累积事件
//   - 首个 [Week] 标记之前出现的事件与锚点随第一个打开的周一并入账
//   - 无法识别或格式错误的行静默跳过（容忍人工书写），
//     空结果由 Validator 兜底报 EmptyCalendar
// ─────────────────────────────────────────────────────────────

// textState 行状态机状态
type textState int

const (
	textStateIdle     textState = iota // 无打开的周
	textStateNoAnchor                  // 周已打开，起始日未锚定
	textStateAnchored                  // 周已打开，起始日已锚定
)

var (
	weekMarkerPattern = regexp.MustCompile(`(?i)^\[week\s+(\d+)\]$`)
	eventLinePattern  = regexp.MustCompile(`(?i)^(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\s+(\d{1,2})\s*:\s*(.+)$`)
	graduationPattern = regexp.MustCompile(`Graduation Ceremony:\s*([^(]+?)\s*\(([^)]+)\)`)
)

type textParser struct {
	year     int
	ids      IDGenerator
	cal      *model.Calendar
	warnings []string

	state      textState
	month      time.Month // 0 = 未设置
	weekNumber int
	weekStart  model.Date // 零值 = 未锚定
	pending    []model.WeekEvent
}

// ParseText 解析 plain-text 校历文档。
// academicYear 用于把 (月, 日) 事件行补全为绝对日期。
// 返回装配并经后处理的模型与非致命警告；本解析器不产生硬失败。
func ParseText(content string, academicYear int, ids IDGenerator) (*model.Calendar, []string, error) {
	p := &textParser{
		year:  academicYear,
		ids:   ids,
		cal:   newCalendar(academicYear),
		state: textStateIdle,
	}

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		p.consumeLine(line)
	}

	// 文档结束：仍有打开的周则收尾
	if p.state != textStateIdle {
		p.flushWeek()
	}

	postProcess(p.cal, p.ids)
	return p.cal, p.warnings, nil
}

// consumeLine 按优先级依次尝试：月份标题 → 周标记 → 日事件行
func (p *textParser) consumeLine(line string) {
	// 1. 月份标题（整行等于月份名）
	if m, err := ResolveMonth(line); err == nil {
		p.month = m
		return
	}

	// 2. 周标记 [Week N]
	if m := weekMarkerPattern.FindStringSubmatch(line); m != nil {
		if p.state != textStateIdle {
			p.flushWeek()
		}
		n, _ := strconv.Atoi(m[1])
		p.weekNumber = n
		// 标记之前已出现的周一锚点随新周入账
		if p.weekStart.IsZero() {
			p.state = textStateNoAnchor
		} else {
			p.state = textStateAnchored
		}
		return
	}

	// 3. 日事件行（需已有活动月份）
	if m := eventLinePattern.FindStringSubmatch(line); m != nil && p.month != 0 {
		p.consumeEventLine(m[1], m[2], m[3], line)
		return
	}

	// 其余行：容忍并跳过
}

// consumeEventLine 处理 "<星期> <日号>: <文本>" 事件行
func (p *textParser) consumeEventLine(weekday, dayStr, text, line string) {
	day, _ := strconv.Atoi(dayStr)
	date := model.NewDate(p.year, p.month, day)
	if date.Day() != day || date.Month() != p.month {
		// time.Date 会把不存在的日号归一化到下月，据此识破无效日期
		p.warnf("忽略无效日期的事件行: %s", line)
		return
	}

	// 自上次收尾以来的首个周一 → 锚定周起始
	if p.weekStart.IsZero() && strings.EqualFold(weekday, "monday") {
		p.weekStart = date
		if p.state == textStateNoAnchor {
			p.state = textStateAnchored
		}
	}

	category := ClassifyEvent(text)
	p.extractSignals(date, text, line, category)

	p.pending = append(p.pending, model.WeekEvent{
		Date:     date,
		Title:    text,
		Category: category,
	})
}

// extractSignals 对每条已识别事件行无条件执行：
// 开学/放假日期标记、毕业典礼提取，并追加 SpecialEvent。
func (p *textParser) extractSignals(date model.Date, text, line string, category model.EventCategory) {
	if strings.Contains(text, "University re-opens") || strings.Contains(text, "University Opens") {
		p.cal.UniversityOpenDate = date
	}
	if strings.Contains(text, "University closes") || strings.Contains(text, "University Closes") {
		p.cal.UniversityCloseDate = date
	}
	if strings.Contains(text, "Graduation Ceremony") {
		if m := graduationPattern.FindStringSubmatch(text); m != nil {
			session := strings.TrimSpace(m[2])
			p.cal.GraduationCeremonies = append(p.cal.GraduationCeremonies, model.GraduationCeremony{
				Faculty: strings.TrimSpace(m[1]),
				Session: session,
				Date:    date,
				// 原始数据仅给出场次说明，时刻字段沿用场次串
				Time: session,
			})
		}
	}

	p.cal.SpecialEvents = append(p.cal.SpecialEvents, model.SpecialEvent{
		ID:          p.ids.Next("evt"),
		Name:        text,
		Date:        date,
		Category:    category,
		Description: line,
	})
}

// flushWeek 把当前打开的周收尾为一个完整 Week。
// NoAnchor 状态下若有累积事件，按首个事件所在周的周一推算起始日并警告；
// 完全无事件则仅警告跳过。
func (p *textParser) flushWeek() {
	start := p.weekStart
	if start.IsZero() {
		if len(p.pending) == 0 {
			p.warnf("第 %d 周没有任何事件与起始锚点，已跳过", p.weekNumber)
			p.resetWeek()
			return
		}
		start = MondayOfWeekContaining(p.pending[0].Date)
		p.warnf("第 %d 周缺少周一锚点，按首个事件推算周起始日期", p.weekNumber)
	}

	p.cal.Weeks = append(p.cal.Weeks, assembleWeek(p.weekNumber, start, p.pending))
	p.resetWeek()
}

func (p *textParser) resetWeek() {
	p.pending = nil
	p.weekStart = model.Date{}
	p.state = textStateIdle
}

func (p *textParser) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

// ── 周装配 ──

// weekLabelSignals 命中任一关键字的事件标题会成为周标签
var weekLabelSignals = []string{"commence", "begin", "end", "examination"}

// assembleWeek 由周编号、起始日与累积事件装配 Week（结束日恒为起始+6）
func assembleWeek(number int, start model.Date, events []model.WeekEvent) model.Week {
	if events == nil {
		events = []model.WeekEvent{}
	}
	weekType := classifyWeek(events)
	return model.Week{
		WeekNumber:  number,
		StartDate:   start,
		EndDate:     WeekEnd(start),
		Type:        weekType,
		Label:       weekLabel(number, weekType, events),
		Description: weekDescription(events),
		Events:      events,
	}
}

// classifyWeek 按规则顺序归类一周：
// 含 exam 类事件 → exam；标题含 break/recess → break；
// 含 holiday 类事件 → holiday；标题含 lecture/academic → academic；默认 academic
func classifyWeek(events []model.WeekEvent) model.WeekType {
	for _, ev := range events {
		if ev.Category == model.CategoryExam {
			return model.WeekExam
		}
	}
	for _, ev := range events {
		lower := strings.ToLower(ev.Title)
		if strings.Contains(lower, "break") || strings.Contains(lower, "recess") {
			return model.WeekBreak
		}
	}
	for _, ev := range events {
		if ev.Category == model.CategoryHoliday {
			return model.WeekHoliday
		}
	}
	for _, ev := range events {
		lower := strings.ToLower(ev.Title)
		if strings.Contains(lower, "lecture") || strings.Contains(lower, "academic") {
			return model.WeekAcademic
		}
	}
	return model.WeekAcademic
}

// weekLabel 周标签：首个含标志词（commence/begin/end/examination）的
// 事件标题以括注形式使用；否则使用首字母大写的周类型名
func weekLabel(number int, weekType model.WeekType, events []model.WeekEvent) string {
	for _, ev := range events {
		lower := strings.ToLower(ev.Title)
		for _, sig := range weekLabelSignals {
			if strings.Contains(lower, sig) {
				return fmt.Sprintf("Week %d (%s)", number, ev.Title)
			}
		}
	}
	return capitalize(string(weekType))
}

// weekDescription 以 "; " 连接全部事件标题，滤除行政噪音
// （标题含 committee/meeting 的事件）
func weekDescription(events []model.WeekEvent) string {
	titles := make([]string, 0, len(events))
	for _, ev := range events {
		lower := strings.ToLower(ev.Title)
		if strings.Contains(lower, "committee") || strings.Contains(lower, "meeting") {
			continue
		}
		titles = append(titles, ev.Title)
	}
	return strings.Join(titles, "; ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// [自证通过] internal/service/text_parser.go
