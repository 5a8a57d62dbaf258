package model

// Task is the domain model for a todo entry.
// Field names are the on-disk format; do not rename the json tags.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// List is the ordered task list, newest first.
type List []Task

// Clone returns an independent copy. A nil list clones to an empty one.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (l List) Index(id int64) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given id.
func (l List) Find(id int64) (Task, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// Has reports whether a task with the given id exists.
func (l List) Has(id int64) bool { return l.Index(id) >= 0 }

// Equal compares element-wise, order included. Nil and empty are equal.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Stats counts completed and pending tasks; used by list headers.
func (l List) Stats() (done, pending int) {
	for _, t := range l {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// MaxID returns the largest id in the list, 0 when empty.
func (l List) MaxID() int64 {
	var m int64
	for _, t := range l {
		if t.ID > m {
			m = t.ID
		}
	}
	return m
}
