package domain

import "time"

// RoleType は求人（Order）とスタッフの職種を表す。
// フリー入場枠（RoleTypeFreeEntry）は求人側だけに使われ、どの職種のスタッフでも受け入れる。
type RoleType string

const (
	RoleTypeCloser    RoleType = "closer"
	RoleTypeGirl      RoleType = "girl"
	RoleTypeFreeEntry RoleType = "free_entry"
)

// Accepts はこの求人職種に staffType のスタッフを割り当てられるかどうかを返す。
func (t RoleType) Accepts(staffType RoleType) bool {
	if t == RoleTypeFreeEntry {
		return true
	}
	return t == staffType
}

// Order は店舗に紐づく一件の求人枠。
// Count が nil の場合は人数無制限（未指定）として扱う。
type Order struct {
	ID        int64     `json:"id"`
	Type      RoleType  `json:"type"`
	Count     *int32    `json:"count"`
	CreatedAt time.Time `json:"createdAt"`
}

// Venue は一つの営業先店舗。Orders の並び順は表示順として意味を持つ。
type Venue struct {
	ID              int64      `json:"id"`
	Agency          string     `json:"agency"`
	Location        string     `json:"location"`
	IsOutsideVenue  bool       `json:"isOutsideVenue"`
	HasBusinessTrip bool       `json:"hasBusinessTrip"`
	OpenFrom        *time.Time `json:"openFrom"`
	OpenUntil       *time.Time `json:"openUntil"`
	Orders          []Order    `json:"orders"`
	CreatedAt       time.Time  `json:"createdAt"`
	Version         int32      `json:"-"`
}

// ActiveOn は venue が date に営業しているかどうかを返す（期間は両端を含む）。
// 期間が未設定の店舗は常に営業扱い。
func (v *Venue) ActiveOn(date time.Time) bool {
	d := DateOnly(date)
	if v.OpenFrom != nil && d.Before(DateOnly(*v.OpenFrom)) {
		return false
	}
	if v.OpenUntil != nil && d.After(DateOnly(*v.OpenUntil)) {
		return false
	}
	return true
}

// DateOnly は時刻成分を落として日付だけにする。割当の日付キーは全てこれで正規化する。
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
