package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gatherly/event-planner-service/internal/models"
)

// InviteUser records a pending participation. Returns inserted=false when
// the user is already invited (idempotent re-invite).
func (p *PostgresStore) InviteUser(ctx context.Context, pa models.Participation) (bool, error) {
	tag, err := p.pool.Exec(ctx, `
		INSERT INTO participations(id, event_id, user_id, status)
		VALUES ($1,$2,$3,'pending')
		ON CONFLICT (event_id, user_id) DO NOTHING
	`, pa.ID, pa.EventID, pa.UserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ParticipationByID returns one participation record, or ErrNotFound.
func (p *PostgresStore) ParticipationByID(ctx context.Context, id string) (models.Participation, error) {
	var pa models.Participation
	err := p.pool.QueryRow(ctx, `
		SELECT id, event_id, user_id, status, created_at
		FROM participations
		WHERE id=$1
	`, id).Scan(&pa.ID, &pa.EventID, &pa.UserID, &pa.Status, &pa.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.Participation{}, ErrNotFound
	}
	return pa, err
}

// SetParticipationStatus moves a pending invite to accepted or declined.
// Responding twice is rejected with ErrNotFound (the pending row is gone).
func (p *PostgresStore) SetParticipationStatus(ctx context.Context, id, status string) error {
	tag, err := p.pool.Exec(ctx, `
		UPDATE participations
		SET status=$1
		WHERE id=$2 AND status='pending'
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingInvitesForUser lists the user's open invites with event summaries.
func (p *PostgresStore) PendingInvitesForUser(ctx context.Context, userID string) ([]models.Invite, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT pa.id, e.id, e.title, e.starts_at
		FROM participations pa
		JOIN events e ON e.id = pa.event_id
		WHERE pa.user_id=$1 AND pa.status='pending'
		ORDER BY e.starts_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.Invite
	for rows.Next() {
		var inv models.Invite
		if err := rows.Scan(&inv.ID, &inv.Event.ID, &inv.Event.Title, &inv.Event.Date); err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// AcceptedParticipations returns every accepted participation whose user id
// is in userIDs. Feeds the conflict resolver's attending sets.
func (p *PostgresStore) AcceptedParticipations(ctx context.Context, userIDs []string) ([]models.Participation, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT id, event_id, user_id, status, created_at
		FROM participations
		WHERE user_id = ANY($1) AND status='accepted'
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []models.Participation
	for rows.Next() {
		var pa models.Participation
		if err := rows.Scan(&pa.ID, &pa.EventID, &pa.UserID, &pa.Status, &pa.CreatedAt); err != nil {
			return nil, err
		}
		parts = append(parts, pa)
	}
	return parts, rows.Err()
}
