package ecs

import "github.com/milk9111/climbing/ecs/component"

// Add attaches value to e, replacing any existing component of the kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e.id(), value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return storeFor(w, kind, false).remove(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return storeFor(w, kind, false).has(e.id())
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	return storeFor(w, kind, false).get(e.id())
}

func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, e := range w.Query(ka) {
		a, _ := Get(w, e, ka)
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, _ := Get(w, e, ka)
		b, _ := Get(w, e, kb)
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, _ := Get(w, e, ka)
		b, _ := Get(w, e, kb)
		c, _ := Get(w, e, kc)
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.Query(ka, kb, kc, kd) {
		a, _ := Get(w, e, ka)
		b, _ := Get(w, e, kb)
		c, _ := Get(w, e, kc)
		d, _ := Get(w, e, kd)
		fn(e, a, b, c, d)
	}
}
