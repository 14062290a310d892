// Package calendar computes the visible date window for the day/week/month
// views and lays tasks out within it as positioned bars. Everything here is
// stateless and recomputed per request.
package calendar

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
)

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

// ParseViewMode validates a view mode string. An empty string defaults to
// the week view.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case ViewDay, ViewWeek, ViewMonth:
		return ViewMode(s), nil
	case "":
		return ViewWeek, nil
	default:
		return "", fmt.Errorf("unknown view mode %q", s)
	}
}

// Range is the visible date window: inclusive start/end plus every day in
// between, in order.
type Range struct {
	Start entities.Date
	End   entities.Date
	Dates []entities.Date
}

// ComputeRange turns a reference date and view mode into a concrete window.
// Weeks start on Monday; the month window is the first through last day of
// the reference date's month.
func ComputeRange(ref entities.Date, mode ViewMode) Range {
	switch mode {
	case ViewDay:
		return Range{Start: ref, End: ref, Dates: []entities.Date{ref}}
	case ViewMonth:
		start := entities.NewDate(ref.Time().Year(), ref.Time().Month(), 1)
		// day 0 of the following month is the last day of this one
		end := entities.NewDate(ref.Time().Year(), ref.Time().Month()+1, 0)
		return Range{Start: start, End: end, Dates: daysBetween(start, end)}
	default: // week
		// Weekday is Sunday-based; shift so Monday is offset 0.
		offset := (int(ref.Weekday()) + 6) % 7
		start := ref.AddDays(-offset)
		end := start.AddDays(6)
		return Range{Start: start, End: end, Dates: daysBetween(start, end)}
	}
}

func daysBetween(start, end entities.Date) []entities.Date {
	n := start.DaysUntil(end) + 1
	dates := make([]entities.Date, 0, n)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// TaskVisible reports whether the task's [start,end] interval intersects
// the window.
func TaskVisible(t *entities.Task, r Range) bool {
	return !t.StartDate.After(r.End) && !t.EndDate.Before(r.Start)
}

// Bar is a task's horizontal position within the window, in percent of the
// window width. One continuous bar per task per render.
type Bar struct {
	LeftPercent  float64 `json:"left_percent"`
	WidthPercent float64 `json:"width_percent"`
}

// LayoutBar clips the task interval to the window and positions it over the
// window's day grid. Returns nil when the task lies fully outside the
// window.
func LayoutBar(t *entities.Task, r Range) *Bar {
	clippedStart := t.StartDate
	if clippedStart.Before(r.Start) {
		clippedStart = r.Start
	}
	clippedEnd := t.EndDate
	if clippedEnd.After(r.End) {
		clippedEnd = r.End
	}

	startIndex := indexOf(r.Dates, clippedStart)
	endIndex := indexOf(r.Dates, clippedEnd)
	if startIndex < 0 || endIndex < 0 {
		return nil
	}

	totalDays := float64(len(r.Dates))
	return &Bar{
		LeftPercent:  100 * float64(startIndex) / totalDays,
		WidthPercent: 100 * float64(endIndex-startIndex+1) / totalDays,
	}
}

func indexOf(dates []entities.Date, d entities.Date) int {
	for i, candidate := range dates {
		if candidate.Equal(d) {
			return i
		}
	}
	return -1
}

// GroupByMember maps each member to the tasks assigned to them. Every
// member gets a key even with zero tasks, and a task with several assignees
// appears under each of them.
func GroupByMember(tasks []*entities.Task, members []*entities.Member) map[uuid.UUID][]*entities.Task {
	grouped := make(map[uuid.UUID][]*entities.Task, len(members))
	for _, m := range members {
		grouped[m.ID] = []*entities.Task{}
	}
	for _, t := range tasks {
		for _, a := range t.Assignments {
			if _, ok := grouped[a.MemberID]; ok {
				grouped[a.MemberID] = append(grouped[a.MemberID], t)
			}
		}
	}
	return grouped
}

// ProgressBucket classifies a progress percentage for presentation.
type ProgressBucket string

const (
	BucketNotStarted     ProgressBucket = "not_started"
	BucketInProgressLow  ProgressBucket = "in_progress_low"
	BucketInProgressHigh ProgressBucket = "in_progress_high"
	BucketComplete       ProgressBucket = "complete"
)

// BucketForProgress maps a percentage to its display bucket. Exactly 50
// falls in the high bucket; only exactly 100 is complete.
func BucketForProgress(percent int) ProgressBucket {
	switch {
	case percent <= 0:
		return BucketNotStarted
	case percent < 50:
		return BucketInProgressLow
	case percent < 100:
		return BucketInProgressHigh
	default:
		return BucketComplete
	}
}
