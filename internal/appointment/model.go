package appointment

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/varunrevoori/harmony/internal/timeutil"
)

type Status string

const (
	StatusRequested   Status = "REQUESTED"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusCancelled   Status = "CANCELLED"
	StatusInProgress  Status = "IN_PROGRESS"
	StatusCompleted   Status = "COMPLETED"
	StatusRescheduled Status = "RESCHEDULED"
)

// ActiveStatuses are the statuses that occupy a provider's and a user's
// time. CANCELLED, REJECTED and COMPLETED appointments free their slot.
var ActiveStatuses = []Status{StatusRequested, StatusApproved, StatusInProgress}

type Role string

const (
	RoleEndUser         Role = "END_USER"
	RoleServiceProvider Role = "SERVICE_PROVIDER"
	RoleSystemAdmin     Role = "SYSTEM_ADMIN"
)

// Actor is the authenticated identity performing an operation, supplied by
// the auth layer and trusted as-is.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// StatusChange is one entry of the append-only status trail.
type StatusChange struct {
	Status    Status    `json:"status"`
	ChangedBy uuid.UUID `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
	Reason    string    `json:"reason,omitempty"`
}

// RescheduleRecord is one entry of the append-only reschedule trail.
type RescheduleRecord struct {
	PreviousDate      time.Time `json:"previous_date"`
	PreviousStartTime string    `json:"previous_start_time"`
	PreviousEndTime   string    `json:"previous_end_time"`
	NewDate           time.Time `json:"new_date"`
	NewStartTime      string    `json:"new_start_time"`
	NewEndTime        string    `json:"new_end_time"`
	RescheduledBy     uuid.UUID `json:"rescheduled_by"`
	RescheduledAt     time.Time `json:"rescheduled_at"`
	Reason            string    `json:"reason,omitempty"`
	IsLateReschedule  bool      `json:"is_late_reschedule"`
}

// ServiceDetails is a snapshot of the provider's offering captured at
// booking time, decoupled from later provider changes.
type ServiceDetails struct {
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

type Appointment struct {
	ID                 uuid.UUID
	Reference          string // human-readable id, APT-<ms>-<suffix>
	UserID             uuid.UUID
	ProviderID         uuid.UUID
	Date               time.Time // calendar day; time of day lives in Start/EndTime
	StartTime          string    // HH:mm, normalized
	EndTime            string
	Status             Status
	Notes              string
	CancellationReason string
	RejectionReason    string
	Service            ServiceDetails
	StatusHistory      []StatusChange
	RescheduleHistory  []RescheduleRecord
	RescheduleCount    int
	RescheduleLimit    int
	ReminderSent       bool
	ReminderSentAt     *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Provider configures slot generation and capacity limiting, and carries
// counters maintained transactionally alongside status changes.
type Provider struct {
	ID                               uuid.UUID
	UserID                           uuid.UUID
	BusinessName                     string
	ServiceType                      string
	BasePrice                        float64
	Currency                         string
	SlotDuration                     int // minutes
	MaxAppointmentsPerDay            int
	RequireApprovalForLateReschedule bool
	TotalAppointments                int
	CompletedAppointments            int
	CancelledAppointments            int
	IsVerified                       bool
	CreatedAt                        time.Time
	UpdatedAt                        time.Time
}

type User struct {
	ID                    uuid.UUID
	Name                  string
	Email                 string
	Role                  Role
	MaxAppointmentsPerDay int
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference builds a human-readable appointment id from the booking
// instant and a random suffix.
func NewReference(now time.Time) string {
	var b strings.Builder
	for i := 0; i < 9; i++ {
		b.WriteByte(referenceAlphabet[rand.Intn(len(referenceAlphabet))])
	}
	return fmt.Sprintf("APT-%d-%s", now.UnixMilli(), b.String())
}

// ApplyStatus records a transition the caller has already validated: it
// appends exactly one status-history entry, moves the status, and persists
// the reason into the dedicated field for cancellations and rejections.
func (a *Appointment) ApplyStatus(to Status, actor uuid.UUID, at time.Time, reason string) {
	a.StatusHistory = append(a.StatusHistory, StatusChange{
		Status:    to,
		ChangedBy: actor,
		ChangedAt: at,
		Reason:    reason,
	})
	a.Status = to

	if reason != "" {
		switch to {
		case StatusCancelled:
			a.CancellationReason = reason
		case StatusRejected:
			a.RejectionReason = reason
		}
	}
}

// StartsAt returns the appointment's starting instant.
func (a *Appointment) StartsAt() (time.Time, error) {
	return timeutil.CombineDateTime(a.Date, a.StartTime)
}

// CanReschedule checks reschedule eligibility: only APPROVED appointments,
// within the reschedule limit, whose start is still in the future.
func (a *Appointment) CanReschedule(now time.Time) error {
	if a.Status != StatusApproved {
		return ErrRescheduleState
	}
	if a.RescheduleCount >= a.RescheduleLimit {
		return ErrRescheduleLimit
	}
	start, err := a.StartsAt()
	if err != nil {
		return err
	}
	if start.Before(now) {
		return ErrReschedulePast
	}
	return nil
}

// IsLateReschedule reports whether the current start is closer than the
// late-reschedule window (typically 24h).
func (a *Appointment) IsLateReschedule(now time.Time, window time.Duration) bool {
	start, err := a.StartsAt()
	if err != nil {
		return false
	}
	return start.Before(now.Add(window))
}

// RemainingReschedules is how many reschedules the appointment has left.
func (a *Appointment) RemainingReschedules() int {
	if left := a.RescheduleLimit - a.RescheduleCount; left > 0 {
		return left
	}
	return 0
}
