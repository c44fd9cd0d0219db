package ledger

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateCategory = errors.New("duplicate category")
	ErrEmptyName         = errors.New("empty category name")
)

// Registry is an ordered, duplicate-free list of category names for
// one transaction type. It is a suggestion list for future entry, not
// a referential-integrity domain: removing a name never touches
// transactions that already reference it.
type Registry struct {
	names []string
}

func NewRegistry(names []string) *Registry {
	return &Registry{names: append([]string(nil), names...)}
}

// Add trims the name and appends it to the end of the list. It returns
// ErrEmptyName when nothing is left after trimming and
// ErrDuplicateCategory when the trimmed name is already present
// (case-sensitive exact match).
func (r *Registry) Add(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	for _, existing := range r.names {
		if existing == name {
			return name, ErrDuplicateCategory
		}
	}
	r.names = append(r.names, name)
	return name, nil
}

// Remove deletes the name if present and reports whether it did.
func (r *Registry) Remove(name string) bool {
	for i, existing := range r.names {
		if existing == name {
			r.names = append(r.names[:i], r.names[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns a copy in display order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
