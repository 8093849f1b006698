//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mesa-reservations/internal/infra"
	"mesa-reservations/internal/pkg/errs"
	"mesa-reservations/internal/usecase/queries"
	queriesmock "mesa-reservations/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newQueries(t *testing.T) (queries.ReservationQueries, *queriesmock.MockReservationReadStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockReservationReadStore(ctrl)
	return queries.NewReservationQueries(store), store
}

func TestGetReservation(t *testing.T) {
	ctx := context.Background()
	id, userID := uuid.New(), uuid.New()

	t.Run("found", func(t *testing.T) {
		q, store := newQueries(t)
		view := &queries.ReservationView{ID: id, UserID: userID}
		store.EXPECT().FindByIDForUser(gomock.Any(), id, userID).Return(view, nil)

		got, err := q.GetReservation(ctx, id, userID)
		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("not found maps to domain error", func(t *testing.T) {
		q, store := newQueries(t)
		store.EXPECT().FindByIDForUser(gomock.Any(), id, userID).
			Return(nil, infra.WrapRepoErr("not found", nil, infra.KindNotFound))

		_, err := q.GetReservation(ctx, id, userID)
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("store failure passes through wrapped", func(t *testing.T) {
		q, store := newQueries(t)
		store.EXPECT().FindByIDForUser(gomock.Any(), id, userID).
			Return(nil, errors.New("connection reset"))

		_, err := q.GetReservation(ctx, id, userID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestListUserReservations(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty history is fine", func(t *testing.T) {
		q, store := newQueries(t)
		store.EXPECT().FindByUser(gomock.Any(), userID).Return([]*queries.ReservationView{}, nil)

		views, err := q.ListUserReservations(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("returns store rows", func(t *testing.T) {
		q, store := newQueries(t)
		rows := []*queries.ReservationView{{ID: uuid.New()}, {ID: uuid.New()}}
		store.EXPECT().FindByUser(gomock.Any(), userID).Return(rows, nil)

		views, err := q.ListUserReservations(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, rows, views)
	})
}

func TestListTableReservations(t *testing.T) {
	ctx := context.Background()
	tableID := uuid.New()
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	q, store := newQueries(t)
	rows := []*queries.ReservationView{{ID: uuid.New(), TableID: tableID}}
	store.EXPECT().FindByTableAndDate(gomock.Any(), tableID, date).Return(rows, nil)

	views, err := q.ListTableReservations(ctx, tableID, date)
	require.NoError(t, err)
	assert.Equal(t, rows, views)
}
