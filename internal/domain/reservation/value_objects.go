package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrGuestCountOutOfRange = errors.New("number of guests must be between 1 and 20")
	ErrInvalidSchedule      = errors.New("reservation time does not fall on the reservation date")
)

const (
	minGuests = 1
	maxGuests = 20
)

type GuestCount struct {
	value int
}

func NewGuestCount(n int) (GuestCount, error) {
	if n < minGuests || n > maxGuests {
		return GuestCount{}, ErrGuestCountOutOfRange
	}
	return GuestCount{value: n}, nil
}

func (g GuestCount) Int() int {
	return g.value
}

// Schedule pairs the booked calendar date with the exact seating time.
type Schedule struct {
	date time.Time
	at   time.Time
}

func NewSchedule(date, at time.Time) (Schedule, error) {
	day := date.UTC()
	seat := at.UTC()
	if seat.Year() != day.Year() || seat.YearDay() != day.YearDay() {
		return Schedule{}, ErrInvalidSchedule
	}
	return Schedule{date: day.Truncate(24 * time.Hour), at: seat}, nil
}

func (s Schedule) Date() time.Time {
	return s.date
}

func (s Schedule) At() time.Time {
	return s.at
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: strings.TrimSpace(value)}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
