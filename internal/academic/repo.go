package academic

import "context"

// Filter narrows gradebook listings. Empty fields match everything.
type Filter struct {
	Subject string
	Grade   string
	Group   string
	Period  string
}

// Repository is the record store the engine is injected with. The engine
// holds no module-level mutable state; everything flows through here.
//
// Put is a whole-record replace: implementations compare Version against
// the stored record (ErrVersionConflict on mismatch) and refuse to
// overwrite a locked record unless the write is the unlock transition
// itself (ErrLocked otherwise).
type Repository interface {
	Get(ctx context.Context, id string) (Gradebook, error)
	List(ctx context.Context, f Filter) ([]Gradebook, error)
	Put(ctx context.Context, gb Gradebook) (Gradebook, error)
}

func (f Filter) matches(g Gradebook) bool {
	if f.Subject != "" && f.Subject != g.Subject {
		return false
	}
	if f.Grade != "" && f.Grade != g.Grade {
		return false
	}
	if f.Group != "" && f.Group != g.Group {
		return false
	}
	if f.Period != "" && f.Period != g.Period {
		return false
	}
	return true
}
