package roster

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("person not found")

// Filter narrows student listings. Empty fields match everything.
type Filter struct {
	Grade   string
	Group   string
	Jornada string
}

type Repository interface {
	Get(ctx context.Context, id string) (Person, error)
	Put(ctx context.Context, p Person) error
	// ListStudents returns only persons of KindStudent, projected for the
	// reporting engine.
	ListStudents(ctx context.Context, f Filter) ([]Student, error)
}

func (f Filter) matches(s Student) bool {
	if f.Grade != "" && f.Grade != s.Grade {
		return false
	}
	if f.Group != "" && f.Group != s.Group {
		return false
	}
	if f.Jornada != "" && f.Jornada != s.Jornada {
		return false
	}
	return true
}
