package domain

import (
	"errors"
	"time"
)

// シフト割当操作のエラー分類。呼び出し側（handler）はこれらをそのまま
// レスポンスメッセージに対応させる。
var (
	ErrNotFound            = errors.New("対象が見つかりません")
	ErrTypeMismatch        = errors.New("スタッフの職種が求人枠と一致しません")
	ErrDuplicateAssignment = errors.New("同じ割当が既に存在します")
	ErrCapacityExceeded    = errors.New("求人枠の募集人数を超えています")
)

// Assignment は一人のスタッフをある店舗の求人枠に、ある日付で割り当てたもの。
// StaffID が nil の割当はスタッフ未定のプレースホルダ枠。
type Assignment struct {
	ID        int64     `json:"id"`
	VenueID   int64     `json:"venueID"`
	OrderID   int64     `json:"orderID"`
	Date      time.Time `json:"date"`
	StaffID   *int64    `json:"staffID"`
	StaffName string    `json:"staffName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// SlotInfo は (venue, order, date) 枠の空き状況。保存せず常に割当状態から導出する。
type SlotInfo struct {
	VenueID  int64     `json:"venueID"`
	OrderID  int64     `json:"orderID"`
	Date     time.Time `json:"date"`
	Assigned int       `json:"assigned"`
	Capacity *int32    `json:"capacity"` // nil は人数未指定（常に空きあり）
	Open     bool      `json:"open"`
}
