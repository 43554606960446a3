package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gatherly/event-planner-service/internal/models"
)

// CreateEvent persists a new event owned by its organizer.
func (p *PostgresStore) CreateEvent(ctx context.Context, e models.Event) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO events(id, title, description, location, starts_at, created_by)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.ID, e.Title, e.Description, e.Location, e.StartsAt, e.CreatedBy)
	return err
}

// EventByID returns a single event, or ErrNotFound.
func (p *PostgresStore) EventByID(ctx context.Context, id string) (models.Event, error) {
	var e models.Event
	err := p.pool.QueryRow(ctx, `
		SELECT id, title, description, location, starts_at, created_by, created_at
		FROM events
		WHERE id=$1
	`, id).Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.CreatedBy, &e.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.Event{}, ErrNotFound
	}
	return e, err
}

// UpdateEvent rewrites the mutable fields of an event.
func (p *PostgresStore) UpdateEvent(ctx context.Context, e models.Event) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE events
		SET title=$1, description=$2, location=$3, starts_at=$4
		WHERE id=$5
	`, e.Title, e.Description, e.Location, e.StartsAt, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent removes an event; participations and polls cascade.
func (p *PostgresStore) DeleteEvent(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EventsForUser lists events the user organizes or has accepted, ascending
// by start time. Backs GET /events.
func (p *PostgresStore) EventsForUser(ctx context.Context, userID string) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT DISTINCT e.id, e.title, e.description, e.location, e.starts_at, e.created_by, e.created_at
		FROM events e
		LEFT JOIN participations pa ON pa.event_id = e.id
		WHERE e.created_by = $1
		   OR (pa.user_id = $1 AND pa.status = 'accepted')
		ORDER BY e.starts_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventsByCreator returns events organized by userID starting in [from, to),
// ordered by start time. Half-open interval avoids double counting at
// window boundaries.
func (p *PostgresStore) EventsByCreator(ctx context.Context, userID string, from, to time.Time) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, title, description, location, starts_at, created_by, created_at
		FROM events
		WHERE created_by=$1
		  AND starts_at >= $2
		  AND starts_at <  $3
		ORDER BY starts_at ASC
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

// EventsByID returns the subset of ids whose events start in [from, to),
// ordered by start time. Callers must not pass an empty id list.
func (p *PostgresStore) EventsByID(ctx context.Context, ids []string, from, to time.Time) ([]models.Event, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, title, description, location, starts_at, created_by, created_at
		FROM events
		WHERE id = ANY($1)
		  AND starts_at >= $2
		  AND starts_at <  $3
		ORDER BY starts_at ASC
	`, ids, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]models.Event, error) {
	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
