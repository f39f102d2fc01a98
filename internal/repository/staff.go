package repository

import (
	"context"
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

func (r *Repository) CreateStaff(staff *domain.Staff) error {
	query := `
		INSERT INTO staff (name, type, email)
		VALUES ($1, $2, $3)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{staff.Name, staff.Type, staff.Email}
	dst := []any{&staff.ID, &staff.IsActive, &staff.CreatedAt, &staff.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetStaffByID(id int64) (*domain.Staff, error) {
	query := `
		SELECT name, type, email, is_active, created_at, version
		FROM staff WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	staff := &domain.Staff{
		ID: id,
	}

	dst := []any{&staff.Name, &staff.Type, &staff.Email, &staff.IsActive, &staff.CreatedAt, &staff.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *Repository) GetAllStaff() ([]*domain.Staff, error) {
	query := `
		SELECT id, name, type, email, is_active, created_at, version
		FROM staff ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staffList := make([]*domain.Staff, 0)
	for rows.Next() {
		staff := &domain.Staff{}
		dst := []any{&staff.ID, &staff.Name, &staff.Type, &staff.Email, &staff.IsActive, &staff.CreatedAt, &staff.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		staffList = append(staffList, staff)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return staffList, nil
}

func (r *Repository) UpdateStaff(staff *domain.Staff) error {
	query := `
		UPDATE staff
		SET
			name = $1,
			type = $2,
			email = $3,
			is_active = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{staff.Name, staff.Type, staff.Email, staff.IsActive, staff.ID, staff.Version}
	dst := []any{&staff.CreatedAt, &staff.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteStaff(id int64) error {
	query := `DELETE FROM staff WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
