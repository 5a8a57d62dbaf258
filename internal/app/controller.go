// Package app owns the canonical task list. Every change goes through
// Dispatch: commit the reduced list, then notify observers.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/task"
)

// ErrEmptyTitle rejects blank titles before they reach the reducer.
var ErrEmptyTitle = errors.New("title cannot be empty")

// Observer is told about every committed list, changed or not.
type Observer interface {
	Committed(model.List) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(model.List) error

func (f ObserverFunc) Committed(l model.List) error { return f(l) }

// Controller holds the list for one session. Not safe for concurrent use;
// callers run it on a single event loop.
type Controller struct {
	list      model.List
	ids       *task.IDGen
	observers []Observer
}

// New takes ownership of initial. ids may be nil for a wall-clock generator.
func New(initial model.List, ids *task.IDGen, observers ...Observer) *Controller {
	if ids == nil {
		ids = task.NewIDGen(nil)
	}
	list := initial.Clone()
	ids.Seed(list)
	return &Controller{list: list, ids: ids, observers: observers}
}

// Hydrator is the read half of a persistence bridge.
type Hydrator interface {
	Hydrate() (model.List, error)
}

// Bridge is what Open needs: load once, then observe commits.
type Bridge interface {
	Hydrator
	Observer
}

// Open hydrates from b and registers b as the first observer.
func Open(b Bridge, ids *task.IDGen, extra ...Observer) (*Controller, error) {
	l, err := b.Hydrate()
	if err != nil {
		return nil, err
	}
	return New(l, ids, append([]Observer{b}, extra...)...), nil
}

// Tasks returns a copy of the current list.
func (c *Controller) Tasks() model.List { return c.list.Clone() }

// Dispatch applies t and notifies every observer, even when t was a no-op.
// The commit stands if an observer fails; the first observer error is
// returned after all observers ran.
func (c *Controller) Dispatch(t task.Transition) error {
	c.list = task.Reduce(c.list, t)
	var first error
	for _, o := range c.observers {
		if err := o.Committed(c.list.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Add creates a task. Blank titles are rejected without a dispatch.
func (c *Controller) Add(title string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}
	id := c.ids.Next(c.list)
	err := c.Dispatch(task.Add{ID: id, Title: title})
	t, ok := c.list.Find(id)
	if !ok {
		return model.Task{}, fmt.Errorf("add %d: task missing after commit", id)
	}
	return t, err
}

// Delete removes the task with id. Unknown ids are a no-op (still
// dispatched, so still persisted).
func (c *Controller) Delete(id int64) error {
	return c.Dispatch(task.Delete{ID: id})
}

// UpdateTitle renames the task with id. Blank titles are rejected without
// a dispatch.
func (c *Controller) UpdateTitle(id int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	return c.Dispatch(task.UpdateTitle{ID: id, Title: title})
}
