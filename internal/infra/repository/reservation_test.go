//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mesa-reservations/internal/domain/reservation"
	"mesa-reservations/internal/infra"
	"mesa-reservations/internal/infra/repository"
	"mesa-reservations/migrations"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBUser     = "test"
	testDBPassword = "testpass"
	testDBName     = "reservations_test"
)

type ReservationRepositoryTestSuite struct {
	suite.Suite
	container testcontainers.Container
	pool      *pgxpool.Pool
	repo      *repository.ReservationRepository
}

func TestReservationRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReservationRepositoryTestSuite))
}

func (s *ReservationRepositoryTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     testDBUser,
			"POSTGRES_PASSWORD": testDBPassword,
			"POSTGRES_DB":       testDBName,
		},
		Cmd: []string{"postgres", "-c", "fsync=off", "-c", "synchronous_commit=off"},
		WaitingFor: wait.ForSQL("5432/tcp", "pgx", func(host string, port nat.Port) string {
			return testDSN(host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(ctx)
	require.NoError(s.T(), err)
	mappedPort, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(s.T(), err)

	dsn := testDSN(host, mappedPort.Port())
	require.NoError(s.T(), migrations.Apply(dsn))

	s.pool, err = pgxpool.New(ctx, dsn)
	require.NoError(s.T(), err)

	s.repo = repository.NewReservationRepository(s.pool)
}

func (s *ReservationRepositoryTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.container.Terminate(ctx)
	}
}

func (s *ReservationRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE reservations")
	require.NoError(s.T(), err)
}

func testDSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		testDBUser, testDBPassword, host, port, testDBName)
}

func buildReservation(t *testing.T, userID, tableID uuid.UUID, at time.Time) *reservation.Reservation {
	t.Helper()

	schedule, err := reservation.NewSchedule(at, at)
	require.NoError(t, err)
	guests, err := reservation.NewGuestCount(4)
	require.NoError(t, err)

	res, err := reservation.NewReservation(
		userID, uuid.New(), tableID,
		schedule, guests,
		reservation.NewNote("Ana Torres"), reservation.NewNote("window seat"),
	)
	require.NoError(t, err)
	return res
}

func (s *ReservationRepositoryTestSuite) TestInsert() {
	ctx := context.Background()
	userID := uuid.New()
	at := time.Date(2026, 10, 12, 19, 30, 0, 0, time.UTC)

	view, err := s.repo.Insert(ctx, buildReservation(s.T(), userID, uuid.New(), at))
	s.Require().NoError(err)

	s.NotEqual(uuid.Nil, view.ID)
	s.Equal(userID, view.UserID)
	s.Equal(string(reservation.StatusPending), view.Status)
	s.Equal(int32(4), view.NumberOfGuests)
	s.Require().NotNil(view.CustomerName)
	s.Equal("Ana Torres", *view.CustomerName)
	s.True(view.ReservationTime.Equal(at))
	s.False(view.CreatedAt.IsZero())
}

func (s *ReservationRepositoryTestSuite) TestInsertWithoutOptionalFields() {
	ctx := context.Background()
	at := time.Date(2026, 10, 12, 19, 30, 0, 0, time.UTC)

	schedule, err := reservation.NewSchedule(at, at)
	s.Require().NoError(err)
	guests, err := reservation.NewGuestCount(2)
	s.Require().NoError(err)
	res, err := reservation.NewReservation(
		uuid.New(), uuid.New(), uuid.New(),
		schedule, guests,
		reservation.NewNote(""), reservation.NewNote(""),
	)
	s.Require().NoError(err)

	view, err := s.repo.Insert(ctx, res)
	s.Require().NoError(err)
	s.Nil(view.CustomerName)
	s.Nil(view.Notes)
}

func (s *ReservationRepositoryTestSuite) TestFindByID() {
	ctx := context.Background()
	userID := uuid.New()
	at := time.Date(2026, 10, 12, 19, 30, 0, 0, time.UTC)

	inserted, err := s.repo.Insert(ctx, buildReservation(s.T(), userID, uuid.New(), at))
	s.Require().NoError(err)

	found, err := s.repo.FindByID(ctx, inserted.ID)
	s.Require().NoError(err)
	s.Equal(inserted.ID, found.ID)

	_, err = s.repo.FindByID(ctx, uuid.New())
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *ReservationRepositoryTestSuite) TestFindByIDForUser() {
	ctx := context.Background()
	userID := uuid.New()
	at := time.Date(2026, 10, 12, 19, 30, 0, 0, time.UTC)

	inserted, err := s.repo.Insert(ctx, buildReservation(s.T(), userID, uuid.New(), at))
	s.Require().NoError(err)

	found, err := s.repo.FindByIDForUser(ctx, inserted.ID, userID)
	s.Require().NoError(err)
	s.Equal(inserted.ID, found.ID)

	// Another user's id behaves exactly like a missing row.
	_, err = s.repo.FindByIDForUser(ctx, inserted.ID, uuid.New())
	s.True(infra.IsKind(err, infra.KindNotFound))
}

func (s *ReservationRepositoryTestSuite) TestFindByUserOrdersNewestFirst() {
	ctx := context.Background()
	userID := uuid.New()

	first, err := s.repo.Insert(ctx, buildReservation(s.T(), userID, uuid.New(),
		time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	second, err := s.repo.Insert(ctx, buildReservation(s.T(), userID, uuid.New(),
		time.Date(2026, 10, 13, 18, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	// Unrelated user's rows must not leak in.
	_, err = s.repo.Insert(ctx, buildReservation(s.T(), uuid.New(), uuid.New(),
		time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	views, err := s.repo.FindByUser(ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(second.ID, views[0].ID)
	s.Equal(first.ID, views[1].ID)
}

func (s *ReservationRepositoryTestSuite) TestFindByTableAndDateFiltersDeadRows() {
	ctx := context.Background()
	tableID := uuid.New()
	date := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

	live, err := s.repo.Insert(ctx, buildReservation(s.T(), uuid.New(), tableID,
		time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	cancelled, err := s.repo.Insert(ctx, buildReservation(s.T(), uuid.New(), tableID,
		time.Date(2026, 10, 12, 20, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	_, err = s.repo.UpdateStatus(ctx, cancelled.ID, reservation.StatusCancelled)
	s.Require().NoError(err)

	// Different day on the same table.
	_, err = s.repo.Insert(ctx, buildReservation(s.T(), uuid.New(), tableID,
		time.Date(2026, 10, 13, 19, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	views, err := s.repo.FindByTableAndDate(ctx, tableID, date)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal(live.ID, views[0].ID)
}

func (s *ReservationRepositoryTestSuite) TestUpdateStatus() {
	ctx := context.Background()
	at := time.Date(2026, 10, 12, 19, 30, 0, 0, time.UTC)

	inserted, err := s.repo.Insert(ctx, buildReservation(s.T(), uuid.New(), uuid.New(), at))
	s.Require().NoError(err)

	updated, err := s.repo.UpdateStatus(ctx, inserted.ID, reservation.StatusConfirmed)
	s.Require().NoError(err)
	s.Equal(string(reservation.StatusConfirmed), updated.Status)

	_, err = s.repo.UpdateStatus(ctx, uuid.New(), reservation.StatusConfirmed)
	s.True(infra.IsKind(err, infra.KindNotFound))
}
