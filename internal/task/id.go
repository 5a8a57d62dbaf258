package task

import (
	"time"

	"github.com/Makepad-fr/tada/internal/model"
)

// IDGen hands out task ids derived from the wall clock in milliseconds.
// Two calls within the same millisecond (or a clock that steps back) still
// get distinct, increasing ids. Not safe for concurrent use.
type IDGen struct {
	now  func() time.Time
	last int64
}

// NewIDGen returns a generator reading time from now; nil means time.Now.
func NewIDGen(now func() time.Time) *IDGen {
	if now == nil {
		now = time.Now
	}
	return &IDGen{now: now}
}

// Seed makes sure future ids are greater than every id in l. Called after
// hydrating so ids from a previous session are never reused.
func (g *IDGen) Seed(l model.List) {
	if m := l.MaxID(); m > g.last {
		g.last = m
	}
}

// Next returns an id not present in l.
func (g *IDGen) Next(l model.List) int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	for l.Has(id) {
		id++
	}
	g.last = id
	return id
}
