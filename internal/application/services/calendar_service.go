package services

import (
	"context"
	"fmt"

	"github.com/siesta-zumi/teamtask/internal/domain/calendar"
	"github.com/siesta-zumi/teamtask/internal/domain/entities"
	"github.com/siesta-zumi/teamtask/internal/infrastructure/logger"
	"github.com/siesta-zumi/teamtask/internal/ports"
)

// CalendarService composes the range, grouping and layout engines into the
// Gantt-style calendar view.
type CalendarService struct {
	taskRepo   ports.TaskRepository
	memberRepo ports.MemberRepository
	logger     *logger.Logger
}

// NewCalendarService creates a new calendar service
func NewCalendarService(taskRepo ports.TaskRepository, memberRepo ports.MemberRepository, logger *logger.Logger) *CalendarService {
	return &CalendarService{
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
		logger:     logger,
	}
}

// BuildView computes the window for the reference date and lays every
// visible task out per member row. Members without visible tasks still get
// a row; a task with several assignees appears in each assignee's row.
func (s *CalendarService) BuildView(ctx context.Context, ref entities.Date, mode calendar.ViewMode) (*ports.CalendarView, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	window := calendar.ComputeRange(ref, mode)

	visible := make([]*entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if calendar.TaskVisible(t, window) {
			visible = append(visible, t)
		}
	}

	grouped := calendar.GroupByMember(visible, members)

	view := &ports.CalendarView{
		View:       mode,
		RangeStart: window.Start,
		RangeEnd:   window.End,
		Dates:      window.Dates,
		Rows:       make([]ports.CalendarRow, 0, len(members)),
	}

	for _, member := range members {
		row := ports.CalendarRow{Member: member, Bars: []ports.CalendarBar{}}
		for _, t := range grouped[member.ID] {
			bar := calendar.LayoutBar(t, window)
			if bar == nil {
				continue
			}
			row.Bars = append(row.Bars, ports.CalendarBar{
				TaskID:       t.ID,
				Title:        t.Title,
				Status:       t.Status,
				Progress:     t.Progress,
				Bucket:       calendar.BucketForProgress(t.Progress),
				LeftPercent:  bar.LeftPercent,
				WidthPercent: bar.WidthPercent,
			})
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}
