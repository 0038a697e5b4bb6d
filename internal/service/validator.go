package service

import (
	"fmt"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── 模型校验器 ──
//
// 硬失败（中止下游使用）：模型中没有任何周。
// 软警告（收集但不阻断）：缺开学/放假日期、周编号序列存在缺口。

// ValidateCalendar 校验规范模型的结构完整性。
// 返回警告列表；仅错误会阻断模型的采纳。
func ValidateCalendar(cal *model.Calendar) ([]string, error) {
	if len(cal.Weeks) == 0 {
		return nil, ErrEmptyCalendar
	}

	var warnings []string
	if cal.UniversityOpenDate.IsZero() {
		warnings = append(warnings, "缺少大学开学日期 (universityOpenDate)")
	}
	if cal.UniversityCloseDate.IsZero() {
		warnings = append(warnings, "缺少大学放假日期 (universityCloseDate)")
	}

	// weeks 已按编号升序；逐个缺口报告
	for i := 1; i < len(cal.Weeks); i++ {
		prev, cur := cal.Weeks[i-1].WeekNumber, cal.Weeks[i].WeekNumber
		if cur != prev+1 {
			warnings = append(warnings, fmt.Sprintf("第 %d 周与第 %d 周之间存在周编号缺口", prev, cur))
		}
	}

	return warnings, nil
}
