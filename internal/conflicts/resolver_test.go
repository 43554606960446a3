package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/event-planner-service/internal/models"
)

// MockStore is a test double for the resolver's storage surface.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) AcceptedParticipations(ctx context.Context, userIDs []string) ([]models.Participation, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Participation), args.Error(1)
}

func (m *MockStore) EventsByCreator(ctx context.Context, userID string, from, to time.Time) ([]models.Event, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockStore) EventsByID(ctx context.Context, ids []string, from, to time.Time) ([]models.Event, error) {
	args := m.Called(ctx, ids, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func event(id, title, creator string, startsAt time.Time) models.Event {
	return models.Event{ID: id, Title: title, CreatedBy: creator, StartsAt: startsAt}
}

func at(date string, hour int) time.Time {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return day.Add(time.Duration(hour) * time.Hour)
}

func TestResolve_EmptyUserIDs_NoStorageAccess(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	got, err := r.Resolve(context.Background(), nil, "2025-01-01")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	st.AssertNotCalled(t, "AcceptedParticipations")
	st.AssertNotCalled(t, "EventsByCreator")
}

func TestResolve_EmptyDate_NoStorageAccess(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	got, err := r.Resolve(context.Background(), []string{"u1"}, "")
	require.NoError(t, err)
	assert.Empty(t, got)
	st.AssertNotCalled(t, "AcceptedParticipations")
}

func TestResolve_UnparseableDate_NoStorageAccess(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	got, err := r.Resolve(context.Background(), []string{"u1"}, "not-a-date")
	require.NoError(t, err)
	assert.Empty(t, got)
	st.AssertNotCalled(t, "AcceptedParticipations")
}

func TestResolve_SingleUserTwoOwnedEvents(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	e1 := event("e1", "standup", "u1", at("2025-01-01", 10))
	e2 := event("e2", "retro", "u1", at("2025-01-01", 14))

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return([]models.Participation{}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{e1, e2}, nil)

	got, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)
	require.Len(t, got["u1"], 2)
	assert.Equal(t, "e1", got["u1"][0].ID)
	assert.Equal(t, "e2", got["u1"][1].ID)

	// No attending set, so the id-set query must not be issued.
	st.AssertNotCalled(t, "EventsByID")
}

func TestResolve_MultiUserIndependence(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	e1 := event("e1", "brunch", "u1", at("2025-01-01", 11))
	e2 := event("e2", "hike", "u2", at("2025-01-01", 9))

	st.On("AcceptedParticipations", mock.Anything, []string{"u1", "u2"}).Return([]models.Participation{}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{e1}, nil)
	st.On("EventsByCreator", mock.Anything, "u2", mock.Anything, mock.Anything).Return([]models.Event{e2}, nil)

	got, err := r.Resolve(context.Background(), []string{"u1", "u2"}, "2025-01-01")
	require.NoError(t, err)
	require.Len(t, got["u1"], 1)
	require.Len(t, got["u2"], 1)
	assert.Equal(t, "e1", got["u1"][0].ID)
	assert.Equal(t, "e2", got["u2"][0].ID)
}

func TestResolve_ConflictFreeUserPresentWithEmptyList(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return([]models.Participation{}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{}, nil)

	got, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)

	list, present := got["u1"]
	assert.True(t, present)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestResolve_MergesCreatedAndAttended(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	created := event("e1", "own", "u1", at("2025-01-01", 15))
	attended := event("e2", "other", "u9", at("2025-01-01", 9))

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return([]models.Participation{
		{ID: "p1", EventID: "e2", UserID: "u1", Status: models.ParticipationAccepted},
	}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{created}, nil)
	st.On("EventsByID", mock.Anything, []string{"e2"}, mock.Anything, mock.Anything).Return([]models.Event{attended}, nil)

	got, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)
	require.Len(t, got["u1"], 2)

	// Created events come first even when the attended one is earlier:
	// the merge keeps concatenation order and is never re-sorted.
	assert.Equal(t, "e1", got["u1"][0].ID)
	assert.Equal(t, "e2", got["u1"][1].ID)
}

func TestResolve_DedupesOrganizerAndParticipantEntries(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	e1 := event("e1", "own and attending", "u1", at("2025-01-01", 10))

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return([]models.Participation{
		{ID: "p1", EventID: "e1", UserID: "u1", Status: models.ParticipationAccepted},
	}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{e1}, nil)
	st.On("EventsByID", mock.Anything, []string{"e1"}, mock.Anything, mock.Anything).Return([]models.Event{e1}, nil)

	got, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)
	require.Len(t, got["u1"], 1)
	assert.Equal(t, "e1", got["u1"][0].ID)
}

func TestResolve_DayBoundsAreHalfOpenLocalDay(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return([]models.Participation{}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", wantStart, wantEnd).Return([]models.Event{}, nil)

	_, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)
	st.AssertExpectations(t)
}

func TestResolve_Idempotent(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	e1 := event("e1", "dinner", "u1", at("2025-01-01", 19))

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return([]models.Participation{}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{e1}, nil)

	first, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_ParticipationLookupFailureFailsWhole(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	st.On("AcceptedParticipations", mock.Anything, []string{"u1"}).Return(nil, errors.New("connection reset"))

	got, err := r.Resolve(context.Background(), []string{"u1"}, "2025-01-01")
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestResolve_PerUserFailureYieldsNoPartialMap(t *testing.T) {
	st := new(MockStore)
	r := NewResolver(st)

	e1 := event("e1", "ok", "u1", at("2025-01-01", 10))

	st.On("AcceptedParticipations", mock.Anything, []string{"u1", "u2"}).Return([]models.Participation{}, nil)
	st.On("EventsByCreator", mock.Anything, "u1", mock.Anything, mock.Anything).Return([]models.Event{e1}, nil)
	st.On("EventsByCreator", mock.Anything, "u2", mock.Anything, mock.Anything).Return(nil, errors.New("query timeout"))

	got, err := r.Resolve(context.Background(), []string{"u1", "u2"}, "2025-01-01")
	require.Error(t, err)
	assert.Nil(t, got)
}

func TestDayBounds(t *testing.T) {
	start, end, ok := dayBounds("2025-06-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local), end)

	// Half-open: midnight in, next midnight out.
	assert.False(t, start.After(at("2025-06-15", 0)))
	assert.True(t, at("2025-06-15", 23).Add(59*time.Minute+59*time.Second).Before(end))
	assert.False(t, end.After(at("2025-06-16", 0)))

	_, _, ok = dayBounds("15/06/2025")
	assert.False(t, ok)
}

func TestMergeDedupe_FirstOccurrenceWins(t *testing.T) {
	organizerSide := event("e1", "organizer copy", "u1", at("2025-01-01", 10))
	participantSide := event("e1", "participant copy", "u1", at("2025-01-01", 10))

	merged := mergeDedupe([]models.Event{organizerSide}, []models.Event{participantSide})
	require.Len(t, merged, 1)
	assert.Equal(t, "organizer copy", merged[0].Title)
}
