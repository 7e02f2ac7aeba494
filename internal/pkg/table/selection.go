package table

import "fmt"

// Scope names the rows a bulk selection operation covers.
type Scope string

const (
	ScopeFiltered Scope = "filtered"
	ScopePage     Scope = "page"
)

// ParseScope defaults to ScopeFiltered.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeFiltered:
		return ScopeFiltered, nil
	case ScopePage:
		return ScopePage, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidSelectScope, s)
}

// ScopeKeys returns the row keys covered by scope for the given request.
func (t *Table[T]) ScopeKeys(items []T, scope Scope, req Request) ([]string, error) {
	page, all, _, err := t.Prepare(items, req)
	if err != nil {
		return nil, err
	}
	switch scope {
	case ScopePage:
		return t.Keys(page), nil
	case ScopeFiltered, "":
		return t.Keys(all), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidSelectScope, scope)
}

// Selection is an insertion-ordered set of row keys.
type Selection struct {
	order []string
	set   map[string]struct{}
}

func NewSelection(keys ...string) *Selection {
	s := &Selection{set: make(map[string]struct{})}
	s.Add(keys...)
	return s
}

func (s *Selection) Add(keys ...string) {
	for _, k := range keys {
		if _, ok := s.set[k]; ok {
			continue
		}
		s.set[k] = struct{}{}
		s.order = append(s.order, k)
	}
}

func (s *Selection) Remove(keys ...string) {
	if len(keys) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := s.set[k]; ok {
			drop[k] = struct{}{}
			delete(s.set, k)
		}
	}
	if len(drop) == 0 {
		return
	}
	kept := s.order[:0]
	for _, k := range s.order {
		if _, gone := drop[k]; !gone {
			kept = append(kept, k)
		}
	}
	s.order = kept
}

func (s *Selection) Toggle(key string) {
	if s.Has(key) {
		s.Remove(key)
		return
	}
	s.Add(key)
}

func (s *Selection) Has(key string) bool {
	_, ok := s.set[key]
	return ok
}

func (s *Selection) Len() int {
	return len(s.order)
}

func (s *Selection) Keys() []string {
	return append([]string(nil), s.order...)
}

func (s *Selection) Clear() {
	s.order = nil
	s.set = make(map[string]struct{})
}

// SelectAll adds every key in scope.
func (s *Selection) SelectAll(scope []string) {
	s.Add(scope...)
}

// Invert flips membership of every key in scope. Keys outside scope are
// left alone.
func (s *Selection) Invert(scope []string) {
	var add, remove []string
	for _, k := range scope {
		if s.Has(k) {
			remove = append(remove, k)
		} else {
			add = append(add, k)
		}
	}
	s.Remove(remove...)
	s.Add(add...)
}
