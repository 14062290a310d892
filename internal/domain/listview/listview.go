// Package listview holds the pure filter/sort/paginate pipeline applied to
// in-memory task and member collections. None of the functions mutate their
// input; list endpoints run filter, then sort, then paginate, in that order.
package listview

import (
	"sort"
	"strings"

	"github.com/siesta-zumi/teamtask/internal/domain/entities"
)

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// StatusAll matches every task status in FilterTasks.
const StatusAll = "all"

// Sortable task columns.
const (
	TaskColumnTitle     = "title"
	TaskColumnStatus    = "status"
	TaskColumnScore     = "score"
	TaskColumnStartDate = "start_date"
	TaskColumnEndDate   = "end_date"
	TaskColumnProgress  = "progress"
	TaskColumnCreatedAt = "created_at"
)

// Sortable member columns.
const (
	MemberColumnName      = "name"
	MemberColumnCreatedAt = "created_at"
)

// FilterTasks keeps tasks matching the status filter AND the search text.
// Status "all" (or empty) passes everything; search is a case-insensitive
// substring match against title or description.
func FilterTasks(tasks []*entities.Task, status string, search string) []*entities.Task {
	query := strings.ToLower(strings.TrimSpace(search))
	out := make([]*entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && status != StatusAll && string(t.Status) != status {
			continue
		}
		if query != "" && !taskMatches(t, query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func taskMatches(t *entities.Task, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	return t.Description != nil && strings.Contains(strings.ToLower(*t.Description), query)
}

// FilterMembers keeps members whose name contains the search text,
// case-insensitively.
func FilterMembers(members []*entities.Member, search string) []*entities.Member {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return append([]*entities.Member(nil), members...)
	}
	out := make([]*entities.Member, 0, len(members))
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), query) {
			out = append(out, m)
		}
	}
	return out
}

// SortTasks returns a sorted copy of tasks. The sort is stable: equal keys
// keep their original relative order. String columns compare
// case-insensitively. An unknown column leaves the order untouched.
func SortTasks(tasks []*entities.Task, column string, dir Direction) []*entities.Task {
	out := append([]*entities.Task(nil), tasks...)
	less := taskLess(column)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func taskLess(column string) func(a, b *entities.Task) bool {
	switch column {
	case TaskColumnTitle:
		return func(a, b *entities.Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case TaskColumnStatus:
		return func(a, b *entities.Task) bool {
			return strings.ToLower(string(a.Status)) < strings.ToLower(string(b.Status))
		}
	case TaskColumnScore:
		return func(a, b *entities.Task) bool { return a.Score < b.Score }
	case TaskColumnStartDate:
		return func(a, b *entities.Task) bool { return a.StartDate.Before(b.StartDate) }
	case TaskColumnEndDate:
		return func(a, b *entities.Task) bool { return a.EndDate.Before(b.EndDate) }
	case TaskColumnProgress:
		return func(a, b *entities.Task) bool { return a.Progress < b.Progress }
	case TaskColumnCreatedAt:
		return func(a, b *entities.Task) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return nil
	}
}

// SortMembers returns a stably sorted copy of members.
func SortMembers(members []*entities.Member, column string, dir Direction) []*entities.Member {
	out := append([]*entities.Member(nil), members...)
	var less func(a, b *entities.Member) bool
	switch column {
	case MemberColumnName:
		less = func(a, b *entities.Member) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case MemberColumnCreatedAt:
		less = func(a, b *entities.Member) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if dir == Descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Page is one slice of a paginated collection.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate slices items into 1-indexed pages. An out-of-range page returns
// an empty slice rather than clamping to the last page; the empty page
// still reports the true total and page count.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	result := Page[T]{
		Items:    []T{},
		Page:     page,
		PageSize: pageSize,
		Total:    len(items),
	}
	if pageSize < 1 {
		return result
	}
	result.TotalPages = (len(items) + pageSize - 1) / pageSize
	if page < 1 {
		return result
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return result
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	result.Items = append(result.Items, items[start:end]...)
	return result
}
