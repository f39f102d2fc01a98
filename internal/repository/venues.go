package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/crewport-dev/staffing-admin/backend/internal/domain"
)

func (r *Repository) CreateVenue(venue *domain.Venue) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO venues (agency, location, is_outside_venue, has_business_trip, open_from, open_until)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	args := []any{venue.Agency, venue.Location, venue.IsOutsideVenue, venue.HasBusinessTrip, venue.OpenFrom, venue.OpenUntil}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&venue.ID, &venue.CreatedAt, &venue.Version); err != nil {
		return err
	}

	for i := range venue.Orders {
		query = `
			INSERT INTO venue_orders (venue_id, role_type, staff_count)
			VALUES ($1, $2, $3)
			RETURNING id, created_at
		`
		params := []any{venue.ID, venue.Orders[i].Type, venue.Orders[i].Count}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&venue.Orders[i].ID, &venue.Orders[i].CreatedAt); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAllVenues() ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	// 求人枠の並び順は表示順として意味を持つので、両方とも id 順で取り出し
	// 出てきた順のままスライスに組み立てる
	query := `
		SELECT
			v.id,
			v.agency,
			v.location,
			v.is_outside_venue,
			v.has_business_trip,
			v.open_from,
			v.open_until,
			v.created_at,
			v.version,
			vo.id,
			vo.role_type,
			vo.staff_count,
			vo.created_at
		FROM venues v
		LEFT JOIN venue_orders vo ON v.id = vo.venue_id
		ORDER BY v.id, vo.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	var current *domain.Venue

	for rows.Next() {
		var row struct {
			ID              int64
			Agency          string
			Location        string
			IsOutsideVenue  bool
			HasBusinessTrip bool
			OpenFrom        sql.NullTime
			OpenUntil       sql.NullTime
			CreatedAt       time.Time
			Version         int32

			OrderID        sql.NullInt64
			RoleType       sql.NullString
			StaffCount     sql.NullInt32
			OrderCreatedAt sql.NullTime
		}

		dst := []any{
			&row.ID,
			&row.Agency,
			&row.Location,
			&row.IsOutsideVenue,
			&row.HasBusinessTrip,
			&row.OpenFrom,
			&row.OpenUntil,
			&row.CreatedAt,
			&row.Version,
			&row.OrderID,
			&row.RoleType,
			&row.StaffCount,
			&row.OrderCreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if current == nil || current.ID != row.ID {
			// この店舗を初めて読んだのでスライスに追加する
			current = &domain.Venue{
				ID:              row.ID,
				Agency:          row.Agency,
				Location:        row.Location,
				IsOutsideVenue:  row.IsOutsideVenue,
				HasBusinessTrip: row.HasBusinessTrip,
				CreatedAt:       row.CreatedAt,
				Version:         row.Version,
				Orders:          make([]domain.Order, 0),
			}
			if row.OpenFrom.Valid {
				t := row.OpenFrom.Time
				current.OpenFrom = &t
			}
			if row.OpenUntil.Valid {
				t := row.OpenUntil.Time
				current.OpenUntil = &t
			}
			venues = append(venues, current)
		}

		// OrderID が NULL ならこの店舗には求人枠がない
		if !row.OrderID.Valid {
			continue
		}

		order := domain.Order{
			ID:        row.OrderID.Int64,
			Type:      domain.RoleType(row.RoleType.String),
			CreatedAt: row.OrderCreatedAt.Time,
		}
		if row.StaffCount.Valid {
			c := row.StaffCount.Int32
			order.Count = &c
		}
		current.Orders = append(current.Orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return venues, nil
}

func (r *Repository) GetVenueByID(id int64) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			v.agency,
			v.location,
			v.is_outside_venue,
			v.has_business_trip,
			v.open_from,
			v.open_until,
			v.created_at,
			v.version,
			vo.id,
			vo.role_type,
			vo.staff_count,
			vo.created_at
		FROM venues v
		LEFT JOIN venue_orders vo ON v.id = vo.venue_id
		WHERE v.id = $1
		ORDER BY vo.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venue := &domain.Venue{
		ID:     id,
		Orders: make([]domain.Order, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			Agency          string
			Location        string
			IsOutsideVenue  bool
			HasBusinessTrip bool
			OpenFrom        sql.NullTime
			OpenUntil       sql.NullTime
			CreatedAt       time.Time
			Version         int32

			OrderID        sql.NullInt64
			RoleType       sql.NullString
			StaffCount     sql.NullInt32
			OrderCreatedAt sql.NullTime
		}

		dst := []any{
			&row.Agency,
			&row.Location,
			&row.IsOutsideVenue,
			&row.HasBusinessTrip,
			&row.OpenFrom,
			&row.OpenUntil,
			&row.CreatedAt,
			&row.Version,
			&row.OrderID,
			&row.RoleType,
			&row.StaffCount,
			&row.OrderCreatedAt,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if !found {
			venue.Agency = row.Agency
			venue.Location = row.Location
			venue.IsOutsideVenue = row.IsOutsideVenue
			venue.HasBusinessTrip = row.HasBusinessTrip
			venue.CreatedAt = row.CreatedAt
			venue.Version = row.Version
			if row.OpenFrom.Valid {
				t := row.OpenFrom.Time
				venue.OpenFrom = &t
			}
			if row.OpenUntil.Valid {
				t := row.OpenUntil.Time
				venue.OpenUntil = &t
			}
			found = true
		}

		if !row.OrderID.Valid {
			continue
		}

		order := domain.Order{
			ID:        row.OrderID.Int64,
			Type:      domain.RoleType(row.RoleType.String),
			CreatedAt: row.OrderCreatedAt.Time,
		}
		if row.StaffCount.Valid {
			c := row.StaffCount.Int32
			order.Count = &c
		}
		venue.Orders = append(venue.Orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return venue, nil
}

func (r *Repository) UpdateVenue(venue *domain.Venue) error {
	query := `
		UPDATE venues
		SET
			agency = $1,
			location = $2,
			is_outside_venue = $3,
			has_business_trip = $4,
			open_from = $5,
			open_until = $6,
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{venue.Agency, venue.Location, venue.IsOutsideVenue, venue.HasBusinessTrip, venue.OpenFrom, venue.OpenUntil, venue.ID, venue.Version}
	dst := []any{&venue.CreatedAt, &venue.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteVenue(id int64) error {
	query := `DELETE FROM venues WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) AddOrder(venueID int64, order *domain.Order) error {
	query := `
		INSERT INTO venue_orders (venue_id, role_type, staff_count)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, venueID, order.Type, order.Count).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteOrder(venueID, orderID int64) error {
	query := `DELETE FROM venue_orders WHERE id = $1 AND venue_id = $2`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, orderID, venueID)
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
