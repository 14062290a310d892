package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-07-04")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-04", d.String())
	assert.Equal(t, time.Saturday, d.Weekday())

	_, err = ParseDate("04/07/2026")
	assert.Error(t, err)
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2026, time.January, 30)

	assert.Equal(t, "2026-02-01", d.AddDays(2).String())
	assert.Equal(t, "2026-01-28", d.AddDays(-2).String())
	assert.Equal(t, 2, d.DaysUntil(NewDate(2026, time.February, 1)))
	assert.Equal(t, -2, d.DaysUntil(NewDate(2026, time.January, 28)))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 9)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-09"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.True(t, parsed.Equal(d))

	var empty Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())
}

func TestTaskValidateDates(t *testing.T) {
	task := &Task{
		StartDate: NewDate(2026, time.June, 10),
		EndDate:   NewDate(2026, time.June, 10),
	}
	assert.NoError(t, task.ValidateDates())

	task.EndDate = NewDate(2026, time.June, 9)
	assert.ErrorIs(t, task.ValidateDates(), ErrInvalidDateRange)
}

func TestTaskValidateRecurrence(t *testing.T) {
	tests := []struct {
		name        string
		isRecurring bool
		recurring   RecurringType
		wantErr     bool
	}{
		{"not recurring with none", false, RecurringNone, false},
		{"recurring with monthly", true, RecurringMonthly, false},
		{"recurring with none", true, RecurringNone, true},
		{"not recurring with monthly", false, RecurringMonthly, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{IsRecurring: tt.isRecurring, RecurringType: tt.recurring}
			err := task.ValidateRecurrence()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRecurrence)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskDurationDays(t *testing.T) {
	task := &Task{
		StartDate: NewDate(2026, time.June, 10),
		EndDate:   NewDate(2026, time.June, 12),
	}
	assert.Equal(t, 3, task.DurationDays())

	task.EndDate = task.StartDate
	assert.Equal(t, 1, task.DurationDays())
}

func TestTaskAssignedTo(t *testing.T) {
	memberID := uuid.New()
	task := &Task{Assignments: []Assignment{{MemberID: memberID, Role: RoleMain}}}

	assert.True(t, task.AssignedTo(memberID))
	assert.False(t, task.AssignedTo(uuid.New()))
}

func TestDefaultWorkloadRatio(t *testing.T) {
	assert.Equal(t, 1.0, DefaultWorkloadRatio(RoleMain))
	assert.Equal(t, 0.3, DefaultWorkloadRatio(RoleFollower))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, StatusApproved.IsValid())
	assert.False(t, Status("done").IsValid())

	assert.True(t, RecurringMonthly.IsValid())
	assert.False(t, RecurringType("weekly").IsValid())

	assert.True(t, RoleFollower.IsValid())
	assert.False(t, AssigneeRole("owner").IsValid())
}
