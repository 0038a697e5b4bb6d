package service

import (
	"strings"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── 事件分类器 ──
//
// 有序关键字规则，大小写不敏感子串匹配，首个命中即返回。
// 规则顺序本身就是平局裁决：标题同时含 "holiday" 与 "exam" 时
// 归类为 holiday，因为 holiday 先被检查。

type classifyRule struct {
	keywords []string
	category model.EventCategory
}

var classifyRules = []classifyRule{
	{[]string{"holiday"}, model.CategoryHoliday},
	{[]string{"exam", "examination"}, model.CategoryExam},
	{[]string{"registration", "register"}, model.CategoryRegistration},
	{[]string{"committee", "meeting"}, model.CategoryCommittee},
	{[]string{"graduation", "ceremony"}, model.CategoryGraduation},
}

// ClassifyEvent 将自由文本事件标题映射到语义类别；无规则命中时默认 academic
func ClassifyEvent(title string) model.EventCategory {
	lower := strings.ToLower(title)
	for _, rule := range classifyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryAcademic
}
