package pagos

// Status is the closed vocabulary for payment lifecycle state. The zero
// value means "no status" and is what a mapping table must produce for a
// native status it does not recognize.
type Status string

const (
	StatusPending           Status = "pending"
	StatusAuthorized        Status = "authorized"
	StatusPaid              Status = "paid"
	StatusPartiallyPaid     Status = "partially_paid"
	StatusRefunded          Status = "refunded"
	StatusVoided            Status = "voided"
	StatusPartiallyRefunded Status = "partially_refunded"
	StatusUnpaid            Status = "unpaid"
	StatusFailed            Status = "failed"
	StatusActive            Status = "active"
	StatusCanceled          Status = "canceled"
	StatusTrial             Status = "trial"
	StatusDeclined          Status = "declined"
	StatusExpired           Status = "expired"
	StatusChargedBack       Status = "charged_back"
)

var validStatuses = map[Status]struct{}{
	StatusPending:           {},
	StatusAuthorized:        {},
	StatusPaid:              {},
	StatusPartiallyPaid:     {},
	StatusRefunded:          {},
	StatusVoided:            {},
	StatusPartiallyRefunded: {},
	StatusUnpaid:            {},
	StatusFailed:            {},
	StatusActive:            {},
	StatusCanceled:          {},
	StatusTrial:             {},
	StatusDeclined:          {},
	StatusExpired:           {},
	StatusChargedBack:       {},
}

// NewStatus validates a raw provider string against the closed set. Exact,
// case-sensitive match only.
func NewStatus(value string) (Status, error) {
	s := Status(value)
	if _, ok := validStatuses[s]; !ok {
		return "", &ValidationError{Msg: "invalid status provided"}
	}
	return s, nil
}

func (s Status) String() string {
	return string(s)
}
