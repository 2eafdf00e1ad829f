package appointment

import (
	"errors"
	"testing"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		want     bool
	}{
		{StatusRequested, StatusApproved, true},
		{StatusRequested, StatusRejected, true},
		{StatusRequested, StatusCancelled, true},
		{StatusRequested, StatusCompleted, false},
		{StatusApproved, StatusInProgress, true},
		{StatusApproved, StatusCompleted, true},
		{StatusApproved, StatusRescheduled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusApproved, false},
		{StatusRescheduled, StatusApproved, true},
		{StatusRescheduled, StatusRequested, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusRequested, false},
		{StatusRejected, StatusApproved, false},
	}

	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCheckTransitionRoleGating(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		from, to Status
		allowed  bool
		roleErr  bool
	}{
		{"end user cannot approve", RoleEndUser, StatusRequested, StatusApproved, false, true},
		{"end user cancels requested", RoleEndUser, StatusRequested, StatusCancelled, true, false},
		{"end user cancels approved", RoleEndUser, StatusApproved, StatusCancelled, true, false},
		{"end user cannot complete", RoleEndUser, StatusInProgress, StatusCompleted, false, true},
		{"provider approves", RoleServiceProvider, StatusRequested, StatusApproved, true, false},
		{"provider rejects", RoleServiceProvider, StatusRequested, StatusRejected, true, false},
		{"provider starts", RoleServiceProvider, StatusApproved, StatusInProgress, true, false},
		{"provider completes", RoleServiceProvider, StatusInProgress, StatusCompleted, true, false},
		{"provider cannot cancel requested", RoleServiceProvider, StatusRequested, StatusCancelled, false, true},
		{"admin cancels in progress", RoleSystemAdmin, StatusInProgress, StatusCancelled, true, false},
		{"admin completes approved", RoleSystemAdmin, StatusApproved, StatusCompleted, true, false},
		{"admin cannot revive terminal", RoleSystemAdmin, StatusCompleted, StatusApproved, false, false},
		{"admin cannot skip to completed", RoleSystemAdmin, StatusRequested, StatusCompleted, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.role, tt.from, tt.to)
			if tt.allowed {
				if err != nil {
					t.Fatalf("expected transition allowed, got %v", err)
				}
				return
			}

			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("expected TransitionError, got %v", err)
			}
			if tt.roleErr && te.Role == "" {
				t.Errorf("expected role-level denial, got global: %v", te)
			}
			if !tt.roleErr && te.Role != "" {
				t.Errorf("expected global denial, got role-level: %v", te)
			}
		})
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []Status{StatusRejected, StatusCancelled, StatusCompleted} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusRequested, StatusApproved, StatusInProgress, StatusRescheduled} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestActiveStatuses(t *testing.T) {
	for _, s := range []Status{StatusRequested, StatusApproved, StatusInProgress} {
		if !s.Active() {
			t.Errorf("%s should occupy its slot", s)
		}
	}
	for _, s := range []Status{StatusRejected, StatusCancelled, StatusCompleted, StatusRescheduled} {
		if s.Active() {
			t.Errorf("%s should free its slot", s)
		}
	}
}

func TestAllowedTransitions(t *testing.T) {
	got := AllowedTransitions(RoleEndUser, StatusApproved)
	if len(got) != 1 || got[0] != StatusCancelled {
		t.Errorf("end user on APPROVED: got %v, want [CANCELLED]", got)
	}

	if got := AllowedTransitions(RoleEndUser, StatusCompleted); got != nil {
		t.Errorf("terminal status should allow nothing, got %v", got)
	}
}
