package model

// Summary 校历预览摘要 — 固定强类型结构，由规范模型按需计算。
// 取代上传预览阶段临时拼装的松散结构。
type Summary struct {
	AcademicYear         int                   `json:"academicYear"`
	TotalWeeks           int                   `json:"totalWeeks"`
	WeeksByType          map[WeekType]int      `json:"weeksByType"`
	EventsByCategory     map[EventCategory]int `json:"eventsByCategory"`
	ExamPeriods          int                   `json:"examPeriods"`
	Breaks               int                   `json:"breaks"`
	SpecialEvents        int                   `json:"specialEvents"`
	GraduationCeremonies int                   `json:"graduationCeremonies"`
	FirstWeekStart       Date                  `json:"firstWeekStart"`
	LastWeekEnd          Date                  `json:"lastWeekEnd"`
}

// Summarize 从规范模型计算预览摘要。
// 事件计数覆盖 specialEvents 与各周 events 两个独立集合之和。
func Summarize(c *Calendar) Summary {
	s := Summary{
		AcademicYear:         c.AcademicYear,
		TotalWeeks:           len(c.Weeks),
		WeeksByType:          make(map[WeekType]int),
		EventsByCategory:     make(map[EventCategory]int),
		ExamPeriods:          len(c.ExamPeriods),
		Breaks:               len(c.Breaks),
		SpecialEvents:        len(c.SpecialEvents),
		GraduationCeremonies: len(c.GraduationCeremonies),
	}

	for i := range c.Weeks {
		w := &c.Weeks[i]
		s.WeeksByType[w.Type]++
		for _, ev := range w.Events {
			s.EventsByCategory[ev.Category]++
		}
	}
	for i := range c.SpecialEvents {
		s.EventsByCategory[c.SpecialEvents[i].Category]++
	}

	// weeks 已按编号升序，首尾即时间跨度
	if len(c.Weeks) > 0 {
		s.FirstWeekStart = c.Weeks[0].StartDate
		s.LastWeekEnd = c.Weeks[len(c.Weeks)-1].EndDate
	}
	return s
}
