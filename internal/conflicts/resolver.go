// Package conflicts answers "who is already busy on this day?" for a set
// of candidate participants: per user, the events they organize merged
// with the events they attend as an accepted participant, de-duplicated
// and scoped to a single local calendar day.
package conflicts

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gatherly/event-planner-service/internal/models"
)

// dateLayout is the calendar-date wire format (no time component).
const dateLayout = "2006-01-02"

// Store is the read-only storage surface the resolver needs. Satisfied by
// *store.PostgresStore; tests substitute a mock.
type Store interface {
	// AcceptedParticipations returns every accepted participation whose
	// user id is in userIDs.
	AcceptedParticipations(ctx context.Context, userIDs []string) ([]models.Participation, error)

	// EventsByCreator returns events organized by userID starting in
	// [from, to), ordered ascending by start time.
	EventsByCreator(ctx context.Context, userID string, from, to time.Time) ([]models.Event, error)

	// EventsByID returns the events among ids starting in [from, to),
	// ordered ascending by start time. Never called with an empty ids.
	EventsByID(ctx context.Context, ids []string, from, to time.Time) ([]models.Event, error)
}

// Resolver computes same-day scheduling conflicts. It holds no state
// beyond its store, so concurrent use is safe.
type Resolver struct {
	store Store
}

func NewResolver(st Store) *Resolver {
	return &Resolver{store: st}
}

// dayBounds returns the half-open interval [00:00, next-day 00:00) for the
// given calendar date, in the server's local timezone. The local-zone
// semantics match the original behavior; callers in other timezones get
// the server's notion of "that day".
func dayBounds(date string) (time.Time, time.Time, bool) {
	day, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	start := day
	end := start.AddDate(0, 0, 1)
	return start, end, true
}

// Resolve maps each requested user to the events that user is already
// committed to on date, ordered created-events-first then by start time.
//
// An empty user set or an empty/unparseable date yields an empty map
// without touching storage. Any storage failure fails the whole call; no
// partial map is returned. Every requested user appears in the result,
// with an empty list when conflict-free.
func (r *Resolver) Resolve(ctx context.Context, userIDs []string, date string) (map[string][]models.EventSummary, error) {
	out := make(map[string][]models.EventSummary)
	if len(userIDs) == 0 {
		return out, nil
	}
	start, end, ok := dayBounds(date)
	if !ok {
		return out, nil
	}

	parts, err := r.store.AcceptedParticipations(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	attending := make(map[string][]string, len(userIDs))
	for _, pa := range parts {
		attending[pa.UserID] = append(attending[pa.UserID], pa.EventID)
	}

	// Per-user fan-out: each goroutine owns one slot, the map is built
	// only after every user's lookup succeeded.
	results := make([][]models.EventSummary, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			created, err := r.store.EventsByCreator(gctx, userID, start, end)
			if err != nil {
				return err
			}

			var attended []models.Event
			if ids := attending[userID]; len(ids) > 0 {
				attended, err = r.store.EventsByID(gctx, ids, start, end)
				if err != nil {
					return err
				}
			}

			results[i] = mergeDedupe(created, attended)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, userID := range userIDs {
		out[userID] = results[i]
	}
	return out, nil
}

// mergeDedupe concatenates created then attended and drops later entries
// with an already-seen event id. Keeping the first occurrence means an
// organizer-side entry wins over a participant-side entry for the same
// event; consistent data never produces that overlap, but the merge stays
// deterministic when it does. The relative order is preserved, not
// re-sorted.
func mergeDedupe(created, attended []models.Event) []models.EventSummary {
	seen := make(map[string]struct{}, len(created)+len(attended))
	merged := make([]models.EventSummary, 0, len(created)+len(attended))

	for _, e := range append(created, attended...) {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}
		merged = append(merged, e.Summary())
	}
	return merged
}
