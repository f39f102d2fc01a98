package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	staffList, err := h.repository.GetAllStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "スタッフ一覧を取得しました", staffList)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)
	h.successResponse(w, r, "スタッフ情報を取得しました", staff)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name" validate:"required"`
		Type  string `json:"type" validate:"required,oneof=closer girl"`
		Email string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff := &domain.Staff{
		Name:  req.Name,
		Type:  domain.RoleType(req.Type),
		Email: req.Email,
	}

	if err := h.repository.CreateStaff(staff); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_email_key":
			h.badRequest(w, r, errors.New("このメールアドレスは既に使われています"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "スタッフを登録しました", staff)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	var req struct {
		Name     *string `json:"name"`
		Type     *string `json:"type" validate:"omitempty,oneof=closer girl"`
		Email    *string `json:"email" validate:"omitempty,email"`
		IsActive *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Type != nil {
		staff.Type = domain.RoleType(*req.Type)
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateStaff(staff); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "スタッフ情報を更新しました", staff)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.Staff)

	if err := h.repository.DeleteStaff(staff.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "スタッフを削除しました", nil)
}
