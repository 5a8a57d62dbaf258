// Package task holds the task list state machine: a pure reducer over a
// closed set of transitions, plus id generation for new tasks.
package task

import (
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// Transition is a request to change the task list.
// Reduce understands Add, Delete and UpdateTitle; any other
// implementation is a no-op.
type Transition interface {
	Kind() string
}

// Add prepends a new task. ID must be fresh; callers get one from IDGen.
type Add struct {
	ID    int64
	Title string
}

// Delete removes the task with ID.
type Delete struct {
	ID int64
}

// UpdateTitle replaces the title of the task with ID.
type UpdateTitle struct {
	ID    int64
	Title string
}

func (Add) Kind() string         { return "add" }
func (Delete) Kind() string      { return "delete" }
func (UpdateTitle) Kind() string { return "update" }

// Reduce applies t to l and returns the resulting list. It never modifies l.
// Transitions that do not apply (unknown id, blank title, id already taken,
// unrecognized kind) return l itself.
func Reduce(l model.List, t Transition) model.List {
	switch t := t.(type) {
	case Add:
		return add(l, t)
	case *Add:
		if t == nil {
			return l
		}
		return add(l, *t)
	case Delete:
		return remove(l, t.ID)
	case *Delete:
		if t == nil {
			return l
		}
		return remove(l, t.ID)
	case UpdateTitle:
		return updateTitle(l, t)
	case *UpdateTitle:
		if t == nil {
			return l
		}
		return updateTitle(l, *t)
	default:
		return l
	}
}

func add(l model.List, a Add) model.List {
	title := strings.TrimSpace(a.Title)
	if title == "" || l.Has(a.ID) {
		return l
	}
	out := make(model.List, 0, len(l)+1)
	out = append(out, model.Task{ID: a.ID, Title: title})
	return append(out, l...)
}

func remove(l model.List, id int64) model.List {
	i := l.Index(id)
	if i < 0 {
		return l
	}
	out := make(model.List, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...)
}

func updateTitle(l model.List, u UpdateTitle) model.List {
	title := strings.TrimSpace(u.Title)
	i := l.Index(u.ID)
	if i < 0 || title == "" {
		return l
	}
	out := l.Clone()
	out[i].Title = title
	return out
}
