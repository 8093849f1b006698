package reservation

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusRejected  Status = "REJECTED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted,
		StatusNoShow, StatusCheckedIn, StatusRejected:
		return true
	default:
		return false
	}
}

// IsLive reports whether the reservation still counts toward table
// conflict checks.
func (s Status) IsLive() bool {
	return s != StatusCancelled && s != StatusRejected
}

// ReleasesTable reports whether entering this status frees the table.
func (s Status) ReleasesTable() bool {
	return s == StatusCancelled || s == StatusCompleted
}
