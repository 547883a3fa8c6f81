package booking

import "github.com/shareloop/service-sharing/internal/domain/errs"

// StateFilter selects which subset of a user's booking history to list.
// Tokens are case-sensitive; anything else is rejected.
type StateFilter string

const (
	FilterAll      StateFilter = "ALL"
	FilterCurrent  StateFilter = "CURRENT"
	FilterPast     StateFilter = "PAST"
	FilterFuture   StateFilter = "FUTURE"
	FilterWaiting  StateFilter = "WAITING"
	FilterRejected StateFilter = "REJECTED"
)

// ParseStateFilter validates a raw state token.
func ParseStateFilter(raw string) (StateFilter, error) {
	switch f := StateFilter(raw); f {
	case FilterAll, FilterCurrent, FilterPast, FilterFuture, FilterWaiting, FilterRejected:
		return f, nil
	default:
		return "", errs.UnknownState(raw)
	}
}
