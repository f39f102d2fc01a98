package calendar

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthWeeksFebruary2024(t *testing.T) {
	// 2024 年 2 月は閏月（29 日）で木曜始まり
	weeks := MonthWeeks(2024, time.February)

	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
	if !weeks[0].StartDate.Equal(date(2024, time.January, 28)) {
		t.Fatalf("expected first week to start 2024-01-28, got %v", weeks[0].StartDate)
	}
	if !weeks[4].EndDate.Equal(date(2024, time.March, 2)) {
		t.Fatalf("expected last week to end 2024-03-02, got %v", weeks[4].EndDate)
	}
	if got := weeks[0].Label(); got != "1/28～2/3" {
		t.Fatalf("expected label 1/28～2/3, got %q", got)
	}
}

func TestMonthWeeksJune2024(t *testing.T) {
	// 2024 年 6 月は 30 日で土曜始まり、6 週に分かれる
	weeks := MonthWeeks(2024, time.June)

	if len(weeks) != 6 {
		t.Fatalf("expected 6 weeks, got %d", len(weeks))
	}
	if !weeks[0].StartDate.Equal(date(2024, time.May, 26)) {
		t.Fatalf("expected first week to start 2024-05-26, got %v", weeks[0].StartDate)
	}
	if !weeks[5].EndDate.Equal(date(2024, time.July, 6)) {
		t.Fatalf("expected last week to end 2024-07-06, got %v", weeks[5].EndDate)
	}
}

func TestMonthWeeksMonthStartingOnSunday(t *testing.T) {
	// 2024 年 9 月 1 日は日曜。遡りなしでそのまま 1 週目になる
	weeks := MonthWeeks(2024, time.September)

	if !weeks[0].StartDate.Equal(date(2024, time.September, 1)) {
		t.Fatalf("expected first week to start 2024-09-01, got %v", weeks[0].StartDate)
	}
	if len(weeks) != 5 {
		t.Fatalf("expected 5 weeks, got %d", len(weeks))
	}
}

func TestMonthWeeksProperties(t *testing.T) {
	for year := 2023; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			weeks := MonthWeeks(year, month)

			if len(weeks) < 4 || len(weeks) > 6 {
				t.Fatalf("%d-%02d: expected 4..6 weeks, got %d", year, month, len(weeks))
			}

			for i, w := range weeks {
				if w.Ordinal != i+1 {
					t.Fatalf("%d-%02d: week %d has ordinal %d", year, month, i, w.Ordinal)
				}
				if w.StartDate.Weekday() != time.Sunday {
					t.Fatalf("%d-%02d: week %d does not start on Sunday", year, month, w.Ordinal)
				}
				if !w.EndDate.Equal(w.StartDate.AddDate(0, 0, 6)) {
					t.Fatalf("%d-%02d: week %d is not 7 days long", year, month, w.Ordinal)
				}
				if i > 0 && !w.StartDate.Equal(weeks[i-1].EndDate.AddDate(0, 0, 1)) {
					t.Fatalf("%d-%02d: week %d is not contiguous with the previous week", year, month, w.Ordinal)
				}
			}

			// 対象月の全日がちょうど一つの週に含まれること
			first := date(year, month, 1)
			last := first.AddDate(0, 1, -1)
			for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
				covered := 0
				for _, w := range weeks {
					if w.Contains(day) {
						covered++
					}
				}
				if covered != 1 {
					t.Fatalf("%d-%02d: day %v covered by %d weeks", year, month, day, covered)
				}
			}
		}
	}
}

func TestAvailableWeeksProjectsMonthWeeks(t *testing.T) {
	weeks := MonthWeeks(2024, time.February)
	options := AvailableWeeks(2024, time.February, false)

	if len(options) != len(weeks) {
		t.Fatalf("expected %d options, got %d", len(weeks), len(options))
	}
	for i, opt := range options {
		if opt.Ordinal != weeks[i].Ordinal {
			t.Fatalf("option %d: expected ordinal %d, got %d", i, weeks[i].Ordinal, opt.Ordinal)
		}
		if opt.Label != weeks[i].Label() {
			t.Fatalf("option %d: expected label %q, got %q", i, weeks[i].Label(), opt.Label)
		}
	}
}

func TestAvailableWeeksMonthlyOption(t *testing.T) {
	options := AvailableWeeks(2024, time.February, true)

	lastOption := options[len(options)-1]
	if lastOption.Ordinal != MonthlyOrdinal {
		t.Fatalf("expected monthly sentinel ordinal %d, got %d", MonthlyOrdinal, lastOption.Ordinal)
	}
	if lastOption.Label != "2月全体" {
		t.Fatalf("expected monthly label 2月全体, got %q", lastOption.Label)
	}
	if len(options) != 6 {
		t.Fatalf("expected 5 weeks + monthly option, got %d options", len(options))
	}
}

func TestWeekDays(t *testing.T) {
	weeks := MonthWeeks(2024, time.February)
	days := weeks[0].Days()

	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if !days[0].Date.Equal(date(2024, time.January, 28)) {
		t.Fatalf("expected first day 2024-01-28, got %v", days[0].Date)
	}

	wantLabels := []string{"日", "月", "火", "水", "木", "金", "土"}
	for i, d := range days {
		if d.Weekday != time.Weekday(i) {
			t.Fatalf("day %d: expected weekday %v, got %v", i, time.Weekday(i), d.Weekday)
		}
		if d.WeekdayLabel() != wantLabels[i] {
			t.Fatalf("day %d: expected label %q, got %q", i, wantLabels[i], d.WeekdayLabel())
		}
	}
}
