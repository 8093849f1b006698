//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"mesa-reservations/internal/domain/reservation"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchedule(t *testing.T) reservation.Schedule {
	t.Helper()
	date := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 1, 20, 20, 0, 0, 0, time.UTC)
	s, err := reservation.NewSchedule(date, at)
	require.NoError(t, err)
	return s
}

func TestNewReservation(t *testing.T) {
	userID := uuid.New()
	restaurantID := uuid.New()
	tableID := uuid.New()
	schedule := mustSchedule(t)
	guests, err := reservation.NewGuestCount(4)
	require.NoError(t, err)

	t.Run("starts pending with no id assigned", func(t *testing.T) {
		res, err := reservation.NewReservation(
			userID, restaurantID, tableID,
			schedule, guests,
			reservation.NewNote("Carlos"), reservation.NewNote("window seat"),
		)
		require.NoError(t, err)

		assert.Equal(t, uuid.Nil, res.ID())
		assert.Equal(t, reservation.StatusPending, res.Status())
		assert.True(t, res.IsLive())
		assert.Equal(t, 4, res.Guests().Int())
	})

	t.Run("rejects missing identifiers", func(t *testing.T) {
		cases := map[string]struct {
			user, restaurant, table uuid.UUID
			want                    error
		}{
			"missing user":       {uuid.Nil, restaurantID, tableID, reservation.ErrMissingUser},
			"missing restaurant": {userID, uuid.Nil, tableID, reservation.ErrMissingRestaurant},
			"missing table":      {userID, restaurantID, uuid.Nil, reservation.ErrMissingTable},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := reservation.NewReservation(
					tc.user, tc.restaurant, tc.table,
					schedule, guests,
					reservation.NewNote(""), reservation.NewNote(""),
				)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestGuestCountBounds(t *testing.T) {
	for _, n := range []int{1, 20} {
		_, err := reservation.NewGuestCount(n)
		assert.NoError(t, err, "guest count %d should be accepted", n)
	}
	for _, n := range []int{0, -1, 21} {
		_, err := reservation.NewGuestCount(n)
		assert.ErrorIs(t, err, reservation.ErrGuestCountOutOfRange, "guest count %d", n)
	}
}

func TestScheduleRejectsMismatchedDay(t *testing.T) {
	date := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	at := time.Date(2026, 1, 21, 1, 0, 0, 0, time.UTC)

	_, err := reservation.NewSchedule(date, at)
	assert.ErrorIs(t, err, reservation.ErrInvalidSchedule)
}

func TestStatusHelpers(t *testing.T) {
	live := []reservation.Status{
		reservation.StatusPending,
		reservation.StatusConfirmed,
		reservation.StatusCompleted,
		reservation.StatusNoShow,
		reservation.StatusCheckedIn,
	}
	notLive := []reservation.Status{
		reservation.StatusCancelled,
		reservation.StatusRejected,
	}

	for _, s := range live {
		assert.True(t, s.IsValid())
		assert.True(t, s.IsLive(), "status %s should count as live", s)
	}
	for _, s := range notLive {
		assert.True(t, s.IsValid())
		assert.False(t, s.IsLive(), "status %s should not count as live", s)
	}

	assert.False(t, reservation.Status("SOMETHING_ELSE").IsValid())

	releases := map[reservation.Status]bool{
		reservation.StatusCancelled: true,
		reservation.StatusCompleted: true,
		reservation.StatusConfirmed: false,
		reservation.StatusPending:   false,
	}
	got := map[reservation.Status]bool{}
	for s := range releases {
		got[s] = s.ReleasesTable()
	}
	if diff := cmp.Diff(releases, got); diff != "" {
		t.Errorf("ReleasesTable mismatch (-want +got):\n%s", diff)
	}
}
