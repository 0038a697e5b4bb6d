package dto

import "github.com/MUTInnovationLab/TTMS-sub001/internal/model"

// ── 校历解析 ──

// ParseCalendarResponse 解析成功响应：规范模型 + 非致命警告 + 预览摘要
type ParseCalendarResponse struct {
	Calendar *model.Calendar `json:"calendar"`
	Warnings []string        `json:"warnings"`
	Summary  model.Summary   `json:"summary"`
}

// SummarizeCalendarResponse 摘要响应
type SummarizeCalendarResponse struct {
	Summary model.Summary `json:"summary"`
}
