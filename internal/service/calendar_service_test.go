package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/MUTInnovationLab/TTMS-sub001/config"
	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

func newTestCalendarService() CalendarService {
	cfg := &config.Config{
		Calendar: config.CalendarConfig{
			AcademicYear:   2026,
			MaxUploadBytes: 2 << 20,
		},
	}
	return NewCalendarService(cfg, zap.NewNop())
}

func TestCalendarService_ParseText(t *testing.T) {
	svc := newTestCalendarService()

	// academicYear=0 → 取配置默认值 2026
	resp, err := svc.Parse(context.Background(), []byte(sampleTextDoc), model.FormatText, 0)
	if err != nil {
		t.Fatalf("Parse 应成功: %v", err)
	}
	if resp.Calendar.AcademicYear != 2026 {
		t.Errorf("学年应取配置默认值 2026，实际 %d", resp.Calendar.AcademicYear)
	}
	if len(resp.Calendar.Weeks) != 4 {
		t.Errorf("期望 4 周，实际 %d", len(resp.Calendar.Weeks))
	}
	// 校验器警告并入响应：缺放假日期 + 第 2/24 周缺口
	if len(resp.Warnings) != 2 {
		t.Errorf("期望 2 条校验警告，实际 %v", resp.Warnings)
	}
	if resp.Summary.TotalWeeks != 4 {
		t.Errorf("响应应携带摘要: %+v", resp.Summary)
	}
}

func TestCalendarService_ParseCSV(t *testing.T) {
	svc := newTestCalendarService()

	resp, err := svc.Parse(context.Background(), []byte(sampleCSVDoc), model.FormatCSV, 0)
	if err != nil {
		t.Fatalf("Parse 应成功: %v", err)
	}
	if len(resp.Calendar.Weeks) != 4 || len(resp.Calendar.ExamPeriods) != 1 {
		t.Errorf("CSV 解析结果错误: weeks=%d exams=%d",
			len(resp.Calendar.Weeks), len(resp.Calendar.ExamPeriods))
	}
}

func TestCalendarService_UnsupportedFormat(t *testing.T) {
	svc := newTestCalendarService()

	_, err := svc.Parse(context.Background(), []byte("whatever"), model.CalendarFormat("xml"), 0)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("未知格式应返回 ErrUnsupportedFormat，实际 %v", err)
	}
}

func TestCalendarService_EmptyTextFailsValidation(t *testing.T) {
	svc := newTestCalendarService()

	_, err := svc.Parse(context.Background(), []byte(""), model.FormatText, 0)
	if !errors.Is(err, ErrEmptyCalendar) {
		t.Fatalf("空文档应被校验器拒绝，实际 %v", err)
	}
}

// Excel 另存 CSV 常带 UTF-8 BOM
func TestCalendarService_UTF8BOM(t *testing.T) {
	svc := newTestCalendarService()

	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSVDoc)...)
	resp, err := svc.Parse(context.Background(), content, model.FormatCSV, 0)
	if err != nil {
		t.Fatalf("带 UTF-8 BOM 的文档应正常解析: %v", err)
	}
	if len(resp.Calendar.Weeks) != 4 {
		t.Errorf("期望 4 周，实际 %d", len(resp.Calendar.Weeks))
	}
}

func TestCalendarService_UTF16LE(t *testing.T) {
	svc := newTestCalendarService()

	resp, err := svc.Parse(context.Background(), utf16LE(sampleCSVDoc), model.FormatCSV, 0)
	if err != nil {
		t.Fatalf("UTF-16LE 文档应被归一化后解析: %v", err)
	}
	if len(resp.Calendar.Weeks) != 4 {
		t.Errorf("期望 4 周，实际 %d", len(resp.Calendar.Weeks))
	}
}

// utf16LE 把 ASCII 文本编码为带 BOM 的 UTF-16LE 字节流
func utf16LE(s string) []byte {
	buf := []byte{0xFF, 0xFE}
	for _, r := range s {
		buf = append(buf, byte(r), byte(r>>8))
	}
	return buf
}

func TestFormatFromFilename(t *testing.T) {
	cases := []struct {
		name    string
		want    model.CalendarFormat
		wantErr bool
	}{
		{"calendar.txt", model.FormatText, false},
		{"Calendar.TEXT", model.FormatText, false},
		{"calendar.csv", model.FormatCSV, false},
		{"calendar.json", model.FormatJSON, false},
		{"calendar.pdf", "", true},
		{"calendar", "", true},
	}
	for _, c := range cases {
		got, err := FormatFromFilename(c.name)
		if c.wantErr {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("FormatFromFilename(%q) 应返回 ErrUnsupportedFormat，实际 %v", c.name, err)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("FormatFromFilename(%q) = %s, %v，期望 %s", c.name, got, err, c.want)
		}
	}
}

func TestCalendarService_Summarize(t *testing.T) {
	svc := newTestCalendarService()

	cal, _, err := ParseCSV(sampleCSVDoc, NewSequentialIDGenerator())
	if err != nil {
		t.Fatalf("构造样例模型失败: %v", err)
	}
	s := svc.Summarize(context.Background(), cal)
	if s.TotalWeeks != 4 || s.ExamPeriods != 1 || s.Breaks != 1 {
		t.Errorf("摘要计数错误: %+v", s)
	}
	if !strings.HasPrefix(s.FirstWeekStart.String(), "2026-01") {
		t.Errorf("首周起始错误: %s", s.FirstWeekStart)
	}
}
