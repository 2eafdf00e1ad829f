package appointment

import "fmt"

// transitions is the global lifecycle table, before any role restriction.
// RESCHEDULED is transient: the reschedule operation re-enters APPROVED or
// REQUESTED within the same call.
var transitions = map[Status][]Status{
	StatusRequested:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:    {StatusInProgress, StatusCancelled, StatusCompleted, StatusRescheduled},
	StatusInProgress:  {StatusCompleted, StatusCancelled},
	StatusRescheduled: {StatusApproved, StatusRequested},
	StatusRejected:    {},
	StatusCancelled:   {},
	StatusCompleted:   {},
}

// roleTransitions restricts which transitions each role may perform. A
// transition must appear in both tables to be allowed for an actor.
var roleTransitions = map[Role]map[Status][]Status{
	RoleEndUser: {
		StatusRequested: {StatusCancelled},
		StatusApproved:  {StatusCancelled},
	},
	RoleServiceProvider: {
		StatusRequested:  {StatusApproved, StatusRejected},
		StatusApproved:   {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusCompleted},
	},
	RoleSystemAdmin: {
		StatusRequested:  {StatusApproved, StatusRejected, StatusCancelled},
		StatusApproved:   {StatusInProgress, StatusCancelled, StatusCompleted},
		StatusInProgress: {StatusCompleted, StatusCancelled},
	},
}

// TransitionError reports an invalid or role-forbidden status change.
type TransitionError struct {
	From Status
	To   Status
	Role Role // set when the transition is globally valid but denied for the role
}

func (e *TransitionError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("role %s may not transition appointment from %s to %s", e.Role, e.From, e.To)
	}
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

func contains(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ValidTransition reports whether from -> to is allowed by the global table.
func ValidTransition(from, to Status) bool {
	return contains(transitions[from], to)
}

// Allowed reports whether the role may perform from -> to. The transition
// must be globally valid and present in the role's table.
func Allowed(role Role, from, to Status) bool {
	if !ValidTransition(from, to) {
		return false
	}
	return contains(roleTransitions[role][from], to)
}

// CheckTransition validates from -> to for the role and returns a
// TransitionError naming what failed.
func CheckTransition(role Role, from, to Status) error {
	if !ValidTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	if !contains(roleTransitions[role][from], to) {
		return &TransitionError{From: from, To: to, Role: role}
	}
	return nil
}

// AllowedTransitions lists the targets the role may move the status to.
func AllowedTransitions(role Role, from Status) []Status {
	var out []Status
	for _, to := range roleTransitions[role][from] {
		if ValidTransition(from, to) {
			out = append(out, to)
		}
	}
	return out
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// Active reports whether the status occupies its time slot.
func (s Status) Active() bool {
	return contains(ActiveStatuses, s)
}
