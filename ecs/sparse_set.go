package ecs

// componentStore is the type-erased view the world needs for bookkeeping.
type componentStore interface {
	has(id entityID) bool
	remove(id entityID) bool
	ids() []entityID
}

// sparseSet is a cache-friendly storage for components keyed by entity id.
type sparseSet[T any] struct {
	dense  []entityID
	values []*T
	sparse []int
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) has(id entityID) bool {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.dense) && s.dense[idx] == id
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	if !s.has(id) {
		return nil, false
	}
	return s.values[s.sparse[id-1]], true
}

func (s *sparseSet[T]) set(id entityID, v *T) {
	if s == nil || id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		s.values[s.sparse[id-1]] = v
		return
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if s == nil || !s.has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.dense) - 1
	lastID := s.dense[last]

	s.dense[idx] = s.dense[last]
	s.values[idx] = s.values[last]
	s.sparse[lastID-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet[T]) ids() []entityID {
	if s == nil {
		return nil
	}
	return s.dense
}
