package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

func count(n int32) *int32 {
	return &n
}

func testBoard(t *testing.T) *Board {
	t.Helper()

	b := NewBoard()

	venue := &domain.Venue{
		ID:       1,
		Agency:   "エージェンシーA",
		Location: "六本木",
		Orders: []domain.Order{
			{ID: 10, Type: domain.RoleTypeCloser, Count: count(2)},
			{ID: 11, Type: domain.RoleTypeGirl, Count: count(1)},
			{ID: 12, Type: domain.RoleTypeFreeEntry, Count: nil},
		},
	}
	if err := b.AddVenue(venue); err != nil {
		t.Fatalf("add venue: %v", err)
	}

	staff := []*domain.Staff{
		{ID: 100, Name: "佐藤", Type: domain.RoleTypeCloser},
		{ID: 101, Name: "鈴木", Type: domain.RoleTypeCloser},
		{ID: 102, Name: "高橋", Type: domain.RoleTypeCloser},
		{ID: 103, Name: "田中", Type: domain.RoleTypeGirl},
	}
	for _, s := range staff {
		if err := b.AddStaff(s); err != nil {
			t.Fatalf("add staff %d: %v", s.ID, err)
		}
	}

	return b
}

var testDate = time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC)

func TestAssignCapacity(t *testing.T) {
	b := testBoard(t)

	// 募集人数 2 の枠に 2 人までは入る
	if _, err := b.Assign(1, 10, testDate, 100); err != nil {
		t.Fatalf("first assign: %v", err)
	}
	if _, err := b.Assign(1, 10, testDate, 101); err != nil {
		t.Fatalf("second assign: %v", err)
	}

	info, err := b.SlotsFor(1, 10, testDate)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if info.Assigned != 2 || info.Open {
		t.Fatalf("expected full slot with 2 assigned, got assigned=%d open=%v", info.Assigned, info.Open)
	}

	// 3 人目は入らない
	if _, err := b.Assign(1, 10, testDate, 102); !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestAssignTypeMismatch(t *testing.T) {
	b := testBoard(t)

	// girl のスタッフは closer の枠に入れない
	if _, err := b.Assign(1, 10, testDate, 103); !errors.Is(err, domain.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}

	// 失敗した呼び出しは状態を変えない
	info, err := b.SlotsFor(1, 10, testDate)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if info.Assigned != 0 || !info.Open {
		t.Fatalf("expected untouched open slot, got assigned=%d open=%v", info.Assigned, info.Open)
	}
}

func TestAssignFreeEntryAcceptsAnyRole(t *testing.T) {
	b := testBoard(t)

	if _, err := b.Assign(1, 12, testDate, 100); err != nil {
		t.Fatalf("closer into free entry: %v", err)
	}
	if _, err := b.Assign(1, 12, testDate, 103); err != nil {
		t.Fatalf("girl into free entry: %v", err)
	}

	// 人数未指定の枠は何人入っても空きあり
	info, err := b.SlotsFor(1, 12, testDate)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if info.Assigned != 2 || !info.Open {
		t.Fatalf("expected open unbounded slot, got assigned=%d open=%v", info.Assigned, info.Open)
	}
}

func TestAssignDuplicate(t *testing.T) {
	b := testBoard(t)

	if _, err := b.Assign(1, 10, testDate, 100); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := b.Assign(1, 10, testDate, 100); !errors.Is(err, domain.ErrDuplicateAssignment) {
		t.Fatalf("expected ErrDuplicateAssignment, got %v", err)
	}
}

func TestAssignNotFound(t *testing.T) {
	b := testBoard(t)

	tests := []struct {
		name    string
		venueID int64
		orderID int64
		staffID int64
	}{
		{name: "unknown venue", venueID: 99, orderID: 10, staffID: 100},
		{name: "unknown order", venueID: 1, orderID: 99, staffID: 100},
		{name: "unknown staff", venueID: 1, orderID: 10, staffID: 999},
	}

	for _, tt := range tests {
		if _, err := b.Assign(tt.venueID, tt.orderID, testDate, tt.staffID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", tt.name, err)
		}
	}
}

func TestAssignUnassignRoundTrip(t *testing.T) {
	b := testBoard(t)

	before, err := b.SlotsFor(1, 10, testDate)
	if err != nil {
		t.Fatalf("slots before: %v", err)
	}

	if _, err := b.Assign(1, 10, testDate, 100); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := b.Unassign(1, 10, testDate, 100); err != nil {
		t.Fatalf("unassign: %v", err)
	}

	after, err := b.SlotsFor(1, 10, testDate)
	if err != nil {
		t.Fatalf("slots after: %v", err)
	}
	if before != after {
		t.Fatalf("expected identical slot info, before=%+v after=%+v", before, after)
	}
}

func TestUnassignTwice(t *testing.T) {
	b := testBoard(t)

	if _, err := b.Assign(1, 10, testDate, 100); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := b.Unassign(1, 10, testDate, 100); err != nil {
		t.Fatalf("first unassign: %v", err)
	}
	if err := b.Unassign(1, 10, testDate, 100); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second unassign, got %v", err)
	}

	info, err := b.SlotsFor(1, 10, testDate)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if info.Assigned != 0 {
		t.Fatalf("expected empty slot, got %d assigned", info.Assigned)
	}
}

func TestPlaceholderAssignment(t *testing.T) {
	b := testBoard(t)

	a, err := b.Assign(1, 10, testDate, PlaceholderStaffID)
	if err != nil {
		t.Fatalf("placeholder assign: %v", err)
	}
	if a.StaffID != nil {
		t.Fatalf("expected nil staff id on placeholder, got %v", *a.StaffID)
	}

	// プレースホルダも募集人数を消費する
	info, err := b.SlotsFor(1, 10, testDate)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if info.Assigned != 1 {
		t.Fatalf("expected 1 assigned, got %d", info.Assigned)
	}
}

func TestVenuesForDate(t *testing.T) {
	b := NewBoard()

	openFrom := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	openUntil := time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC)

	venues := []*domain.Venue{
		{ID: 1, Agency: "A社", Orders: []domain.Order{{ID: 1, Type: domain.RoleTypeGirl}}},
		{ID: 2, Agency: "B社", Orders: []domain.Order{{ID: 2, Type: domain.RoleTypeCloser}}, OpenFrom: &openFrom, OpenUntil: &openUntil},
		{ID: 3, Agency: "C社"}, // 求人枠なし
	}
	for _, v := range venues {
		if err := b.AddVenue(v); err != nil {
			t.Fatalf("add venue %d: %v", v.ID, err)
		}
	}

	// 営業期間内: 求人枠のない C社 だけ除外され、登録順が保たれる
	got := b.VenuesForDate(time.Date(2024, time.February, 9, 0, 0, 0, 0, time.UTC))
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected venues [1 2], got %v", got)
	}

	// 営業期間外: B社 も除外される
	got = b.VenuesForDate(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC))
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected venues [1], got %v", got)
	}
}

func TestSlotsForIgnoresTimeOfDay(t *testing.T) {
	b := testBoard(t)

	if _, err := b.Assign(1, 10, testDate, 100); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// 同じ日付なら時刻成分が違っても同じ枠として数える
	sameDayEvening := time.Date(2024, time.February, 9, 21, 30, 0, 0, time.UTC)
	info, err := b.SlotsFor(1, 10, sameDayEvening)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if info.Assigned != 1 {
		t.Fatalf("expected 1 assigned, got %d", info.Assigned)
	}
}
