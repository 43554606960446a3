package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gatherly/event-planner-service/internal/models"
)

// ErrPollClosed is returned when voting on or closing an already closed poll.
var ErrPollClosed = errors.New("poll closed")

// CreatePoll inserts a poll and its options atomically.
func (p *PostgresStore) CreatePoll(ctx context.Context, poll models.Poll) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		INSERT INTO polls(id, event_id, title)
		VALUES ($1,$2,$3)
	`, poll.ID, poll.EventID, poll.Title); err != nil {
		return err
	}

	for _, opt := range poll.Options {
		if _, err := tx.Exec(ctx, `
			INSERT INTO poll_options(id, poll_id, starts_at)
			VALUES ($1,$2,$3)
		`, opt.ID, poll.ID, opt.StartsAt); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// PollByID returns a poll with its options and vote counts.
func (p *PostgresStore) PollByID(ctx context.Context, id string) (models.Poll, error) {
	var poll models.Poll
	err := p.pool.QueryRow(ctx, `
		SELECT id, event_id, title, closed
		FROM polls
		WHERE id=$1
	`, id).Scan(&poll.ID, &poll.EventID, &poll.Title, &poll.Closed)

	if errors.Is(err, pgx.ErrNoRows) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT o.id, o.starts_at, COUNT(v.user_id)
		FROM poll_options o
		LEFT JOIN poll_votes v ON v.option_id = o.id
		WHERE o.poll_id=$1
		GROUP BY o.id, o.starts_at
		ORDER BY o.starts_at ASC
	`, id)
	if err != nil {
		return models.Poll{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.StartsAt, &opt.Votes); err != nil {
			return models.Poll{}, err
		}
		poll.Options = append(poll.Options, opt)
	}
	return poll, rows.Err()
}

// Vote records or moves a user's vote. One vote per user per poll.
func (p *PostgresStore) Vote(ctx context.Context, pollID, optionID, userID string) error {
	var closed bool
	err := p.pool.QueryRow(ctx, `SELECT closed FROM polls WHERE id=$1`, pollID).Scan(&closed)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if closed {
		return ErrPollClosed
	}

	tag, err := p.pool.Exec(ctx, `
		INSERT INTO poll_votes(poll_id, option_id, user_id)
		SELECT $1, $2, $3
		WHERE EXISTS (SELECT 1 FROM poll_options WHERE id=$2 AND poll_id=$1)
		ON CONFLICT (poll_id, user_id) DO UPDATE SET option_id = EXCLUDED.option_id
	`, pollID, optionID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ClosePoll marks a poll closed and applies the winning option's start time
// to the event. Ties break toward the earlier option.
func (p *PostgresStore) ClosePoll(ctx context.Context, pollID string) (models.Poll, error) {
	poll, err := p.PollByID(ctx, pollID)
	if err != nil {
		return models.Poll{}, err
	}
	if poll.Closed {
		return models.Poll{}, ErrPollClosed
	}
	if len(poll.Options) == 0 {
		return models.Poll{}, ErrNotFound
	}

	winner := poll.Options[0]
	for _, opt := range poll.Options[1:] {
		if opt.Votes > winner.Votes {
			winner = opt
		}
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return models.Poll{}, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE polls SET closed=TRUE WHERE id=$1`, pollID); err != nil {
		return models.Poll{}, err
	}
	if _, err := tx.Exec(ctx, `UPDATE events SET starts_at=$1 WHERE id=$2`, winner.StartsAt, poll.EventID); err != nil {
		return models.Poll{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return models.Poll{}, err
	}

	poll.Closed = true
	return poll, nil
}
