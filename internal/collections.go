package internal

// Set is a collection of unique items backed by a map.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet returns an empty Set sized for n items.
func NewSet[T comparable](n int) *Set[T] {
	return &Set[T]{items: make(map[T]struct{}, n)}
}

// Add inserts item and reports whether it was absent.
func (s *Set[T]) Add(item T) bool {
	if _, ok := s.items[item]; ok {
		return false
	}
	s.items[item] = struct{}{}
	return true
}

func (s *Set[T]) Contains(item T) bool {
	_, ok := s.items[item]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.items)
}
