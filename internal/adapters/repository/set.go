package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// Set bundles the four entity repositories so the server can be wired with
// either the Postgres implementations or the connectivity fallback.
type Set struct {
	Members     ports.MemberRepository
	Tasks       ports.TaskRepository
	Subtasks    ports.SubtaskRepository
	Assignments ports.AssignmentRepository
}

// NewPostgresSet builds the sqlx-backed repositories.
func NewPostgresSet(db *sqlx.DB) Set {
	return Set{
		Members:     NewMemberRepository(db),
		Tasks:       NewTaskRepository(db),
		Subtasks:    NewSubtaskRepository(db),
		Assignments: NewAssignmentRepository(db),
	}
}

// NewFallbackSet builds the in-memory fallback repositories over a shared
// placeholder dataset.
func NewFallbackSet(data *Dataset) Set {
	return Set{
		Members:     NewFallbackMemberRepository(data),
		Tasks:       NewFallbackTaskRepository(data),
		Subtasks:    NewFallbackSubtaskRepository(data),
		Assignments: NewFallbackAssignmentRepository(data),
	}
}

// SeedDataset returns the placeholder members and tasks used when the
// backend is unreachable, anchored around today so the calendar view has
// something to show.
func SeedDataset() *Dataset {
	today := entities.DateOf(time.Now())
	now := time.Now().UTC()

	alice := &entities.Member{ID: uuid.New(), Name: "Alice Tanaka", CreatedAt: now.Add(-72 * time.Hour)}
	ben := &entities.Member{ID: uuid.New(), Name: "Ben Sato", CreatedAt: now.Add(-48 * time.Hour)}
	chika := &entities.Member{ID: uuid.New(), Name: "Chika Suzuki", CreatedAt: now.Add(-24 * time.Hour)}

	design := &entities.Task{
		ID:            uuid.New(),
		Title:         "Design review round",
		Description:   strPtr("Walk the team through the updated wireframes"),
		Status:        entities.StatusInProgress,
		Score:         5,
		StartDate:     today,
		EndDate:       today.AddDays(3),
		RecurringType: entities.RecurringNone,
		Progress:      50,
		CreatedAt:     now.Add(-20 * time.Hour),
		UpdatedAt:     now.Add(-2 * time.Hour),
	}
	design.Subtasks = []entities.Subtask{
		{ID: uuid.New(), TaskID: design.ID, Text: "Collect feedback", Completed: true, OrderIndex: 0},
		{ID: uuid.New(), TaskID: design.ID, Text: "Update mockups", Completed: false, OrderIndex: 1},
	}
	design.Assignments = []entities.Assignment{
		{TaskID: design.ID, MemberID: alice.ID, Role: entities.RoleMain, WorkloadRatio: entities.WorkloadMain, Member: alice},
	}

	report := &entities.Task{
		ID:            uuid.New(),
		Title:         "Monthly progress report",
		Status:        entities.StatusNotStarted,
		Score:         3,
		StartDate:     today.AddDays(2),
		EndDate:       today.AddDays(7),
		IsRecurring:   true,
		RecurringType: entities.RecurringMonthly,
		Progress:      0,
		CreatedAt:     now.Add(-10 * time.Hour),
		UpdatedAt:     now.Add(-10 * time.Hour),
	}
	report.Assignments = []entities.Assignment{
		{TaskID: report.ID, MemberID: ben.ID, Role: entities.RoleMain, WorkloadRatio: entities.WorkloadMain, Member: ben},
		{TaskID: report.ID, MemberID: chika.ID, Role: entities.RoleFollower, WorkloadRatio: entities.WorkloadFollower, Member: chika},
	}

	return &Dataset{
		Members: []*entities.Member{alice, ben, chika},
		Tasks:   []*entities.Task{design, report},
	}
}

func strPtr(s string) *string { return &s }
