package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewport-dev/staffing-admin/backend/internal/calendar"
	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
	"github.com/crewport-dev/staffing-admin/backend/internal/schedule"
)

// parseYearMonth はクエリパラメータの year / month を検証付きで読み取る。
// calendar パッケージは入力済み検証を前提にしているので、検証はここで行う。
func parseYearMonth(r *http.Request) (int, time.Month, error) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1000 || year > 9999 {
		return 0, 0, errors.New("年の指定が不正です")
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("月の指定が不正です")
	}

	return year, time.Month(month), nil
}

type weekResponse struct {
	Ordinal   int                `json:"ordinal"`
	StartDate time.Time          `json:"startDate"`
	EndDate   time.Time          `json:"endDate"`
	Label     string             `json:"label"`
	Days      []calendar.DayInfo `json:"days"`
}

func (h *Handler) GetMonthWeeks(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	weeks := calendar.MonthWeeks(year, month)

	res := make([]weekResponse, 0, len(weeks))
	for _, week := range weeks {
		res = append(res, weekResponse{
			Ordinal:   week.Ordinal,
			StartDate: week.StartDate,
			EndDate:   week.EndDate,
			Label:     week.Label(),
			Days:      week.Days(),
		})
	}

	h.successResponse(w, r, "週一覧を取得しました", res)
}

func (h *Handler) GetWeekOptions(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseYearMonth(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	options := calendar.AvailableWeeks(year, month, h.config.Schedule.MonthlyOption)

	h.successResponse(w, r, "週セレクタの選択肢を取得しました", options)
}

// boardForDate は永続層の状態から date 一日分の編集用ボードを組み立てる。
// ボード側の契約は永続層と切り離されているので、ここが唯一の接続点になる。
func (h *Handler) boardForDate(date time.Time) (*schedule.Board, error) {
	board := schedule.NewBoard()

	venues, err := h.repository.GetAllVenues()
	if err != nil {
		return nil, err
	}
	for _, venue := range venues {
		if err := board.AddVenue(venue); err != nil {
			return nil, err
		}
	}

	staffList, err := h.repository.GetAllStaff()
	if err != nil {
		return nil, err
	}
	for _, staff := range staffList {
		if err := board.AddStaff(staff); err != nil {
			return nil, err
		}
	}

	assignments, err := h.repository.GetAssignmentsByDateRange(date, date)
	if err != nil {
		return nil, err
	}
	if err := board.Load(assignments); err != nil {
		return nil, err
	}

	return board, nil
}

// scheduleError はシフト割当のエラー分類をそのままレスポンスに対応させる。
// 分類外のエラーはサーバー内部エラーとして扱う。
func (h *Handler) scheduleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTypeMismatch),
		errors.Is(err, domain.ErrDuplicateAssignment),
		errors.Is(err, domain.ErrCapacityExceeded):
		h.errorResponse(w, r, err.Error())
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) GetScheduleVenues(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.errorResponse(w, r, "日付の形式が不正です")
		return
	}

	board, err := h.boardForDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "対象日の店舗一覧を取得しました", board.VenuesForDate(date))
}

func (h *Handler) GetSlotInfo(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	venueID, err := strconv.ParseInt(query.Get("venueID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "店舗IDが不正です")
		return
	}
	orderID, err := strconv.ParseInt(query.Get("orderID"), 10, 64)
	if err != nil {
		h.errorResponse(w, r, "求人枠IDが不正です")
		return
	}
	date, err := parseDate(query.Get("date"))
	if err != nil {
		h.errorResponse(w, r, "日付の形式が不正です")
		return
	}

	board, err := h.boardForDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	info, err := board.SlotsFor(venueID, orderID, date)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "枠の空き状況を取得しました", info)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VenueID int64  `json:"venueID" validate:"required"`
		OrderID int64  `json:"orderID" validate:"required"`
		Date    string `json:"date" validate:"required"`
		StaffID int64  `json:"staffID"` // 省略時はスタッフ未定のプレースホルダ枠
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.errorResponse(w, r, "日付の形式が不正です")
		return
	}

	board, err := h.boardForDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 不変条件（存在・職種・重複・人数）の判定はすべてボードが行う
	assignment, err := board.Assign(req.VenueID, req.OrderID, date, req.StaffID)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	if err := h.repository.CreateAssignment(assignment); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "assignments_venue_order_date_staff_key":
			// 別セッションが先に同じ割当を作った場合
			h.errorResponse(w, r, domain.ErrDuplicateAssignment.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// スタッフが決まっている割当は本人にシフト通知を送る
	if req.StaffID != schedule.PlaceholderStaffID {
		staff, err := h.repository.GetStaffByID(req.StaffID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		venue, err := board.Venue(req.VenueID)
		if err != nil {
			h.scheduleError(w, r, err)
			return
		}

		mailMessage := domain.MailMessage{
			Type: "assignment_notice",
			To:   staff.Email,
			Data: domain.AssignmentNoticeMailData{
				StaffName: staff.Name,
				Agency:    venue.Agency,
				Location:  venue.Location,
				Date:      domain.DateOnly(date).Format("2006/01/02"),
				RoleType:  string(staff.Type),
			},
		}

		if err := h.publishMailMessage(mailMessage); err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	info, err := board.SlotsFor(req.VenueID, req.OrderID, date)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "シフトを割り当てました", struct {
		Assignment *domain.Assignment `json:"assignment"`
		Slot       domain.SlotInfo    `json:"slot"`
	}{Assignment: assignment, Slot: info})
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VenueID int64  `json:"venueID" validate:"required"`
		OrderID int64  `json:"orderID" validate:"required"`
		Date    string `json:"date" validate:"required"`
		StaffID int64  `json:"staffID"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		h.errorResponse(w, r, "日付の形式が不正です")
		return
	}

	board, err := h.boardForDate(date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := board.Unassign(req.VenueID, req.OrderID, date, req.StaffID); err != nil {
		h.scheduleError(w, r, err)
		return
	}

	var staffID *int64
	if req.StaffID != schedule.PlaceholderStaffID {
		staffID = &req.StaffID
	}

	if err := h.repository.DeleteAssignment(req.VenueID, req.OrderID, date, staffID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 別セッションが先に取り消していた場合
			h.errorResponse(w, r, domain.ErrNotFound.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	info, err := board.SlotsFor(req.VenueID, req.OrderID, date)
	if err != nil {
		h.scheduleError(w, r, err)
		return
	}

	h.successResponse(w, r, "シフトの割当を取り消しました", info)
}
