package booking

// Status follows the booking through its lifecycle. TO_CONFIRM, BOOKED and
// OCCUPIED all hold a car against capacity; the remaining statuses do not.
type Status string

const (
	StatusToConfirm Status = "TO_CONFIRM"
	StatusBooked    Status = "BOOKED"
	StatusOccupied  Status = "OCCUPIED"
	StatusFinished  Status = "FINISHED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

// ActiveStatuses are the statuses counted against a car type's capacity.
var ActiveStatuses = []Status{StatusToConfirm, StatusBooked, StatusOccupied}

func ActiveStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusToConfirm, StatusBooked, StatusOccupied, StatusFinished, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusFinished, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}
