package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

// parseDate はリクエストで使う日付形式（YYYY-MM-DD）をパースする。
func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func (h *Handler) GetAllVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.repository.GetAllVenues()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "店舗一覧を取得しました", venues)
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue := r.Context().Value(VenueInfoCtx).(*domain.Venue)
	h.successResponse(w, r, "店舗情報を取得しました", venue)
}

func (h *Handler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Agency          string  `json:"agency" validate:"required"`
		Location        string  `json:"location" validate:"required"`
		IsOutsideVenue  bool    `json:"isOutsideVenue"`
		HasBusinessTrip bool    `json:"hasBusinessTrip"`
		OpenFrom        *string `json:"openFrom"`
		OpenUntil       *string `json:"openUntil"`
		Orders          []struct {
			Type  string `json:"type" validate:"required,oneof=closer girl free_entry"`
			Count *int32 `json:"count" validate:"omitempty,gte=0"`
		} `json:"orders" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	venue := &domain.Venue{
		Agency:          req.Agency,
		Location:        req.Location,
		IsOutsideVenue:  req.IsOutsideVenue,
		HasBusinessTrip: req.HasBusinessTrip,
		Orders:          make([]domain.Order, 0, len(req.Orders)),
	}

	if req.OpenFrom != nil {
		from, err := parseDate(*req.OpenFrom)
		if err != nil {
			h.errorResponse(w, r, "営業開始日の形式が不正です")
			return
		}
		venue.OpenFrom = &from
	}
	if req.OpenUntil != nil {
		until, err := parseDate(*req.OpenUntil)
		if err != nil {
			h.errorResponse(w, r, "営業終了日の形式が不正です")
			return
		}
		venue.OpenUntil = &until
	}
	if venue.OpenFrom != nil && venue.OpenUntil != nil && venue.OpenUntil.Before(*venue.OpenFrom) {
		h.errorResponse(w, r, "営業終了日は営業開始日より後にしてください")
		return
	}

	for _, o := range req.Orders {
		venue.Orders = append(venue.Orders, domain.Order{
			Type:  domain.RoleType(o.Type),
			Count: o.Count,
		})
	}

	if err := h.repository.CreateVenue(venue); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "店舗を登録しました", venue)
}

func (h *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venue := r.Context().Value(VenueInfoCtx).(*domain.Venue)

	var req struct {
		Agency          *string `json:"agency"`
		Location        *string `json:"location"`
		IsOutsideVenue  *bool   `json:"isOutsideVenue"`
		HasBusinessTrip *bool   `json:"hasBusinessTrip"`
		OpenFrom        *string `json:"openFrom"`
		OpenUntil       *string `json:"openUntil"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Agency != nil {
		venue.Agency = *req.Agency
	}
	if req.Location != nil {
		venue.Location = *req.Location
	}
	if req.IsOutsideVenue != nil {
		venue.IsOutsideVenue = *req.IsOutsideVenue
	}
	if req.HasBusinessTrip != nil {
		venue.HasBusinessTrip = *req.HasBusinessTrip
	}
	if req.OpenFrom != nil {
		from, err := parseDate(*req.OpenFrom)
		if err != nil {
			h.errorResponse(w, r, "営業開始日の形式が不正です")
			return
		}
		venue.OpenFrom = &from
	}
	if req.OpenUntil != nil {
		until, err := parseDate(*req.OpenUntil)
		if err != nil {
			h.errorResponse(w, r, "営業終了日の形式が不正です")
			return
		}
		venue.OpenUntil = &until
	}

	if err := h.repository.UpdateVenue(venue); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "店舗情報を更新しました", venue)
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venue := r.Context().Value(VenueInfoCtx).(*domain.Venue)

	if err := h.repository.DeleteVenue(venue.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "店舗を削除しました", nil)
}

func (h *Handler) AddOrder(w http.ResponseWriter, r *http.Request) {
	venue := r.Context().Value(VenueInfoCtx).(*domain.Venue)

	var req struct {
		Type  string `json:"type" validate:"required,oneof=closer girl free_entry"`
		Count *int32 `json:"count" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	order := &domain.Order{
		Type:  domain.RoleType(req.Type),
		Count: req.Count,
	}

	if err := h.repository.AddOrder(venue.ID, order); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "求人枠を追加しました", order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	venue := r.Context().Value(VenueInfoCtx).(*domain.Venue)

	orderIDParam := chi.URLParam(r, "orderID")
	orderID, err := strconv.ParseInt(orderIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "求人枠IDが不正です")
		return
	}

	if err := h.repository.DeleteOrder(venue.ID, orderID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "求人枠が存在しません")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "求人枠を削除しました", nil)
}
