package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrSubtaskNotFound     = errors.New("subtask not found")
	ErrDuplicateAssignment = errors.New("member is already assigned to task")
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidRole         = errors.New("invalid assignee role")
	ErrInvalidDateRange    = errors.New("end date is before start date")
	ErrInvalidRecurrence   = errors.New("recurring type does not match recurring flag")
)

// Enums and types
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusApproved   Status = "approved"
)

type RecurringType string

const (
	RecurringNone    RecurringType = "none"
	RecurringMonthly RecurringType = "monthly"
)

type AssigneeRole string

const (
	RoleMain     AssigneeRole = "main"
	RoleFollower AssigneeRole = "follower"
)

// Default workload ratios per assignee role. Stored per assignment,
// not used in any computation beyond storage.
const (
	WorkloadMain     = 1.0
	WorkloadFollower = 0.3
)

// Member represents a team member
type Member struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Avatar    *string   `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Task represents a tracked task with its checklist and assignees
type Task struct {
	ID                uuid.UUID     `json:"id" db:"id"`
	Title             string        `json:"title" db:"title"`
	Description       *string       `json:"description" db:"description"`
	Status            Status        `json:"status" db:"status"`
	Score             int           `json:"score" db:"score"`
	StartDate         Date          `json:"start_date" db:"start_date"`
	EndDate           Date          `json:"end_date" db:"end_date"`
	IsRecurring       bool          `json:"is_recurring" db:"is_recurring"`
	RecurringType     RecurringType `json:"recurring_type" db:"recurring_type"`
	Link              *string       `json:"link" db:"link"`
	CommunicationLink *string       `json:"communication_link" db:"communication_link"`
	Progress          int           `json:"progress" db:"progress"`
	Subtasks          []Subtask     `json:"subtasks"`
	Assignments       []Assignment  `json:"assignments"`
	CreatedAt         time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at" db:"updated_at"`
}

// Subtask is a checklist line item owned by a task
type Subtask struct {
	ID         uuid.UUID `json:"id" db:"id"`
	TaskID     uuid.UUID `json:"task_id" db:"task_id"`
	Text       string    `json:"text" db:"text"`
	Completed  bool      `json:"completed" db:"completed"`
	OrderIndex int       `json:"order_index" db:"order_index"`
}

// Assignment links a member to a task with a role and workload weight.
// Identity is the (task_id, member_id) pair.
type Assignment struct {
	TaskID        uuid.UUID    `json:"task_id" db:"task_id"`
	MemberID      uuid.UUID    `json:"member_id" db:"member_id"`
	Role          AssigneeRole `json:"role" db:"role"`
	WorkloadRatio float64      `json:"workload_ratio" db:"workload_ratio"`
	Member        *Member      `json:"member,omitempty"`
}

// Business logic methods for Task

// ValidateDates checks the start/end ordering invariant.
func (t *Task) ValidateDates() error {
	if t.EndDate.Before(t.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// ValidateRecurrence enforces recurring_type == none iff is_recurring == false.
func (t *Task) ValidateRecurrence() error {
	if t.IsRecurring && t.RecurringType == RecurringNone {
		return ErrInvalidRecurrence
	}
	if !t.IsRecurring && t.RecurringType != RecurringNone {
		return ErrInvalidRecurrence
	}
	return nil
}

// AssignedTo reports whether the task has an assignment for the member.
func (t *Task) AssignedTo(memberID uuid.UUID) bool {
	for _, a := range t.Assignments {
		if a.MemberID == memberID {
			return true
		}
	}
	return false
}

// DurationDays returns the inclusive number of calendar days the task spans.
func (t *Task) DurationDays() int {
	return t.StartDate.DaysUntil(t.EndDate) + 1
}

// DefaultWorkloadRatio returns the stored workload weight for a role.
func DefaultWorkloadRatio(role AssigneeRole) float64 {
	if role == RoleFollower {
		return WorkloadFollower
	}
	return WorkloadMain
}

// Utility methods
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusApproved:
		return true
	default:
		return false
	}
}

func (rt RecurringType) IsValid() bool {
	switch rt {
	case RecurringNone, RecurringMonthly:
		return true
	default:
		return false
	}
}

func (r AssigneeRole) IsValid() bool {
	switch r {
	case RoleMain, RoleFollower:
		return true
	default:
		return false
	}
}
