// Package schedule は一つの編集セッションが持つシフト表のインメモリモデルを提供する。
package schedule

import (
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

// PlaceholderStaffID はスタッフ未定のプレースホルダ枠を表すスタッフ ID。
// 実在のスタッフ ID は必ず正の値なので 0 を使う。
const PlaceholderStaffID int64 = 0

// assignmentKey は割当の一意キー。(店舗, 求人枠, 日付, スタッフ) の組ごとに
// 割当は高々一つしか存在できない。
type assignmentKey struct {
	venueID int64
	orderID int64
	date    string
	staffID int64
}

// slotKey は枠単位（スタッフを除いた）のキー。募集人数の判定に使う。
type slotKey struct {
	venueID int64
	orderID int64
	date    string
}

// Board は Venue / Order / Staff / Assignment のグラフを持つセッション所有の
// 可変値。グローバルには置かず、呼び出し側が明示的に生成して持ち回る。
// 排他制御はしない（同時アクセスはスコープ外、セッション内は同期実行のみ）。
type Board struct {
	venues     []*domain.Venue // 登録順がそのまま表示順
	venueIndex map[int64]*domain.Venue
	staff      map[int64]*domain.Staff

	// 割当はネストさせず平坦な索引で持つ。重複チェックと人数チェックを
	// 走査なしで済ませるため。
	assignments map[assignmentKey]*domain.Assignment
	slotCounts  map[slotKey]int
}

func NewBoard() *Board {
	return &Board{
		venues:      make([]*domain.Venue, 0),
		venueIndex:  make(map[int64]*domain.Venue),
		staff:       make(map[int64]*domain.Staff),
		assignments: make(map[assignmentKey]*domain.Assignment),
		slotCounts:  make(map[slotKey]int),
	}
}

func dateKey(date time.Time) string {
	return domain.DateOnly(date).Format("2006-01-02")
}

// AddVenue は店舗をボードに登録する。同じ ID の二重登録は重複として扱う。
func (b *Board) AddVenue(v *domain.Venue) error {
	if _, exists := b.venueIndex[v.ID]; exists {
		return domain.ErrDuplicateAssignment
	}
	b.venues = append(b.venues, v)
	b.venueIndex[v.ID] = v
	return nil
}

func (b *Board) AddStaff(s *domain.Staff) error {
	if _, exists := b.staff[s.ID]; exists {
		return domain.ErrDuplicateAssignment
	}
	b.staff[s.ID] = s
	return nil
}

// Venue は ID で店舗を引く。
func (b *Board) Venue(venueID int64) (*domain.Venue, error) {
	v, exists := b.venueIndex[venueID]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (b *Board) order(venueID, orderID int64) (*domain.Order, error) {
	v, err := b.Venue(venueID)
	if err != nil {
		return nil, err
	}
	for i := range v.Orders {
		if v.Orders[i].ID == orderID {
			return &v.Orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// VenuesForDate は date に営業していて求人枠を一つ以上持つ店舗を
// 登録順のまま返す。
func (b *Board) VenuesForDate(date time.Time) []*domain.Venue {
	venues := make([]*domain.Venue, 0, len(b.venues))
	for _, v := range b.venues {
		if len(v.Orders) > 0 && v.ActiveOn(date) {
			venues = append(venues, v)
		}
	}
	return venues
}

// Assign はスタッフを (店舗, 求人枠, 日付) に割り当てる。
// staffID に PlaceholderStaffID を渡すとスタッフ未定の枠だけを確保する。
// 失敗した呼び出しは状態を一切変更しない。
func (b *Board) Assign(venueID, orderID int64, date time.Time, staffID int64) (*domain.Assignment, error) {
	order, err := b.order(venueID, orderID)
	if err != nil {
		return nil, err
	}

	var staff *domain.Staff
	if staffID != PlaceholderStaffID {
		s, exists := b.staff[staffID]
		if !exists {
			return nil, domain.ErrNotFound
		}
		if !order.Type.Accepts(s.Type) {
			return nil, domain.ErrTypeMismatch
		}
		staff = s
	}

	key := assignmentKey{venueID: venueID, orderID: orderID, date: dateKey(date), staffID: staffID}
	if _, exists := b.assignments[key]; exists {
		return nil, domain.ErrDuplicateAssignment
	}

	slot := slotKey{venueID: venueID, orderID: orderID, date: key.date}
	if order.Count != nil && b.slotCounts[slot] >= int(*order.Count) {
		return nil, domain.ErrCapacityExceeded
	}

	assignment := &domain.Assignment{
		VenueID: venueID,
		OrderID: orderID,
		Date:    domain.DateOnly(date),
	}
	if staff != nil {
		id := staff.ID
		assignment.StaffID = &id
		assignment.StaffName = staff.Name
	}

	b.assignments[key] = assignment
	b.slotCounts[slot]++

	return assignment, nil
}

// Unassign は割当を取り消す。存在しない割当に対しては domain.ErrNotFound を
// 返すだけで状態は変えない（二重取り消しは安全）。
func (b *Board) Unassign(venueID, orderID int64, date time.Time, staffID int64) error {
	key := assignmentKey{venueID: venueID, orderID: orderID, date: dateKey(date), staffID: staffID}
	if _, exists := b.assignments[key]; !exists {
		return domain.ErrNotFound
	}

	delete(b.assignments, key)

	slot := slotKey{venueID: venueID, orderID: orderID, date: key.date}
	b.slotCounts[slot]--
	if b.slotCounts[slot] == 0 {
		delete(b.slotCounts, slot)
	}

	return nil
}

// SlotsFor は (店舗, 求人枠, 日付) の空き状況を返す。結果は保存せず、
// 呼ばれるたびに現在の割当状態から計算し直す。
func (b *Board) SlotsFor(venueID, orderID int64, date time.Time) (domain.SlotInfo, error) {
	order, err := b.order(venueID, orderID)
	if err != nil {
		return domain.SlotInfo{}, err
	}

	slot := slotKey{venueID: venueID, orderID: orderID, date: dateKey(date)}
	assigned := b.slotCounts[slot]

	info := domain.SlotInfo{
		VenueID:  venueID,
		OrderID:  orderID,
		Date:     domain.DateOnly(date),
		Assigned: assigned,
		Capacity: order.Count,
		// 人数未指定の求人枠は常に空きありとして扱う
		Open: order.Count == nil || assigned < int(*order.Count),
	}

	return info, nil
}

// AssignmentsFor は (店舗, 求人枠, 日付) に紐づく割当を返す。
func (b *Board) AssignmentsFor(venueID, orderID int64, date time.Time) []*domain.Assignment {
	d := dateKey(date)
	result := make([]*domain.Assignment, 0)
	for key, a := range b.assignments {
		if key.venueID == venueID && key.orderID == orderID && key.date == d {
			result = append(result, a)
		}
	}
	return result
}

// Load は永続層から読み出した既存の割当をボードに取り込む。
// DB 側で同じ一意制約が掛かっている前提なので、ここでは重複だけ確認する。
func (b *Board) Load(assignments []*domain.Assignment) error {
	for _, a := range assignments {
		staffID := PlaceholderStaffID
		if a.StaffID != nil {
			staffID = *a.StaffID
		}

		key := assignmentKey{venueID: a.VenueID, orderID: a.OrderID, date: dateKey(a.Date), staffID: staffID}
		if _, exists := b.assignments[key]; exists {
			return domain.ErrDuplicateAssignment
		}

		b.assignments[key] = a
		b.slotCounts[slotKey{venueID: a.VenueID, orderID: a.OrderID, date: key.date}]++
	}

	return nil
}
