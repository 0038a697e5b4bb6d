package service

import (
	"errors"
	"testing"
	"time"

	"github.com/MUTInnovationLab/TTMS-sub001/internal/model"
)

func TestValidateCalendar_Empty(t *testing.T) {
	_, err := ValidateCalendar(newCalendar(2026))
	if !errors.Is(err, ErrEmptyCalendar) {
		t.Fatalf("无周模型应返回 ErrEmptyCalendar，实际 %v", err)
	}
}

func TestValidateCalendar_MissingDatesWarn(t *testing.T) {
	cal := newCalendar(2026)
	cal.Weeks = []model.Week{{WeekNumber: 1}}

	warnings, err := ValidateCalendar(cal)
	if err != nil {
		t.Fatalf("缺日期仅为软警告: %v", err)
	}
	if len(warnings) != 2 {
		t.Errorf("期望开学/放假两条警告，实际 %v", warnings)
	}
}

func TestValidateCalendar_WeekGaps(t *testing.T) {
	cal := newCalendar(2026)
	cal.UniversityOpenDate = model.NewDate(2026, time.January, 5)
	cal.UniversityCloseDate = model.NewDate(2026, time.December, 11)
	cal.Weeks = []model.Week{
		{WeekNumber: 1},
		{WeekNumber: 2},
		{WeekNumber: 5},
		{WeekNumber: 9},
	}

	warnings, err := ValidateCalendar(cal)
	if err != nil {
		t.Fatalf("缺口仅为软警告: %v", err)
	}
	want := []string{
		"第 2 周与第 5 周之间存在周编号缺口",
		"第 5 周与第 9 周之间存在周编号缺口",
	}
	if len(warnings) != len(want) {
		t.Fatalf("期望 %d 条缺口警告，实际 %v", len(want), warnings)
	}
	for i := range want {
		if warnings[i] != want[i] {
			t.Errorf("警告[%d] = %q，期望 %q", i, warnings[i], want[i])
		}
	}
}

func TestValidateCalendar_Clean(t *testing.T) {
	cal := newCalendar(2026)
	cal.UniversityOpenDate = model.NewDate(2026, time.January, 5)
	cal.UniversityCloseDate = model.NewDate(2026, time.December, 11)
	cal.Weeks = []model.Week{{WeekNumber: 1}, {WeekNumber: 2}, {WeekNumber: 3}}

	warnings, err := ValidateCalendar(cal)
	if err != nil || len(warnings) != 0 {
		t.Errorf("完整模型不应有错误或警告: %v / %v", err, warnings)
	}
}
