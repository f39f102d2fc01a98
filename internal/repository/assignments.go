package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

func (r *Repository) CreateAssignment(assignment *domain.Assignment) error {
	query := `
		INSERT INTO assignments (venue_id, order_id, date, staff_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{assignment.VenueID, assignment.OrderID, domain.DateOnly(assignment.Date), assignment.StaffID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&assignment.ID, &assignment.CreatedAt); err != nil {
		return err
	}

	return nil
}

// DeleteAssignment は (店舗, 求人枠, 日付, スタッフ) の組で割当を削除する。
// staffID が nil の場合はプレースホルダ枠を対象にする。
func (r *Repository) DeleteAssignment(venueID, orderID int64, date time.Time, staffID *int64) error {
	query := `
		DELETE FROM assignments
		WHERE venue_id = $1 AND order_id = $2 AND date = $3 AND staff_id IS NOT DISTINCT FROM $4
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, venueID, orderID, domain.DateOnly(date), staffID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetAssignmentsByDateRange は from から to（両端を含む）の割当を
// スタッフ名付きで返す。
func (r *Repository) GetAssignmentsByDateRange(from, to time.Time) ([]*domain.Assignment, error) {
	query := `
		SELECT a.id, a.venue_id, a.order_id, a.date, a.staff_id, s.name, a.created_at
		FROM assignments a
		LEFT JOIN staff s ON a.staff_id = s.id
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.date, a.venue_id, a.order_id, a.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, domain.DateOnly(from), domain.DateOnly(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		var staffID sql.NullInt64
		var staffName sql.NullString

		dst := []any{&assignment.ID, &assignment.VenueID, &assignment.OrderID, &assignment.Date, &staffID, &staffName, &assignment.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if staffID.Valid {
			id := staffID.Int64
			assignment.StaffID = &id
			assignment.StaffName = staffName.String
		}

		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
