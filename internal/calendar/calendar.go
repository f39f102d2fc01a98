package calendar

import (
	"fmt"
	"time"
)

// maxWeeksPerMonth は一つの月に重なり得る日曜始まり週の最大数。
// どの月でも日曜始まりで区切ると最大 6 週にしかならない。
const maxWeeksPerMonth = 6

// MonthlyOrdinal は「週単位ではなく月全体」を表す選択肢の番号。
// 実在する週の Ordinal は必ず 1 始まりなので 0 を番兵として使う。
const MonthlyOrdinal = 0

var weekdayLabels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// DayInfo はカレンダー上の一日。曜日は日付から一意に決まる。
type DayInfo struct {
	Date    time.Time    `json:"date"`
	Weekday time.Weekday `json:"weekday"`
}

// WeekdayLabel は曜日の一文字表記（日〜土）を返す。
func (d DayInfo) WeekdayLabel() string {
	return weekdayLabels[d.Weekday]
}

// Week は日曜始まりの連続 7 日間。EndDate は常に StartDate + 6 日。
type Week struct {
	Ordinal   int       `json:"ordinal"` // 月内での 1 始まりの通し番号
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Label は週セレクタ表示用の「開始月/開始日～終了月/終了日」を返す。
func (w Week) Label() string {
	return fmt.Sprintf("%d/%d～%d/%d", int(w.StartDate.Month()), w.StartDate.Day(), int(w.EndDate.Month()), w.EndDate.Day())
}

// Days は週に含まれる 7 日分の DayInfo を日曜から順に返す。
func (w Week) Days() []DayInfo {
	days := make([]DayInfo, 7)
	for i := range days {
		date := w.StartDate.AddDate(0, 0, i)
		days[i] = DayInfo{Date: date, Weekday: date.Weekday()}
	}
	return days
}

// Contains は date がこの週に含まれるかどうかを返す（両端を含む）。
func (w Week) Contains(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.StartDate) && !d.After(w.EndDate)
}

// MonthWeeks は year 年 month 月に重なる日曜始まりの週を時系列順に返す。
// 月初の日曜まで遡った日を 1 週目の開始とし、月に重ならなくなったところで打ち切る。
// 入力の妥当性（month が 1〜12 であること等）は呼び出し側の責任とする。
func MonthWeeks(year int, month time.Month) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	// 月初から直前の日曜まで遡る。月初が日曜ならそのまま。
	start := first
	for start.Weekday() != time.Sunday {
		start = start.AddDate(0, 0, -1)
	}

	weeks := make([]Week, 0, maxWeeksPerMonth)
	for i := 0; i < maxWeeksPerMonth; i++ {
		// 開始日が月末を越えたら、その週はもう対象の月に重ならない
		if start.After(last) {
			break
		}
		weeks = append(weeks, Week{
			Ordinal:   len(weeks) + 1,
			StartDate: start,
			EndDate:   start.AddDate(0, 0, 6),
		})
		start = start.AddDate(0, 0, 7)
	}

	return weeks
}

// WeekOption は週セレクタの一つの選択肢。
type WeekOption struct {
	Ordinal int    `json:"ordinal"`
	Label   string `json:"label"`
}

// AvailableWeeks は週セレクタに表示する選択肢を返す。
// 週境界の導出は MonthWeeks に一本化し、ここでは投影しかしない
// （二箇所で別々に週割りを計算すると表示がずれるため）。
// monthly が真のときは末尾に「月全体」の選択肢を追加する。
func AvailableWeeks(year int, month time.Month, monthly bool) []WeekOption {
	weeks := MonthWeeks(year, month)

	options := make([]WeekOption, 0, len(weeks)+1)
	for _, w := range weeks {
		options = append(options, WeekOption{Ordinal: w.Ordinal, Label: w.Label()})
	}

	if monthly {
		options = append(options, WeekOption{Ordinal: MonthlyOrdinal, Label: fmt.Sprintf("%d月全体", int(month))})
	}

	return options
}
