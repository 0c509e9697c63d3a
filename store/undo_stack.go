package store

import "salestrack/models"

// UndoStack is an unbounded LIFO of deleted sales supporting single-step
// restoration. Peek exists so a caller can authorize the restoration before
// committing the pop. Not safe for concurrent use on its own; the owning
// SaleStore guards it.
type UndoStack struct {
	items []models.Sale
}

// NewUndoStack creates an empty undo stack
func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// Push adds a deleted sale to the top of the stack
func (s *UndoStack) Push(sale models.Sale) {
	s.items = append(s.items, sale)
}

// Peek returns the most recently deleted sale without removing it
func (s *UndoStack) Peek() (models.Sale, bool) {
	if len(s.items) == 0 {
		return models.Sale{}, false
	}
	return s.items[len(s.items)-1], true
}

// Pop removes and returns the most recently deleted sale
func (s *UndoStack) Pop() (models.Sale, bool) {
	if len(s.items) == 0 {
		return models.Sale{}, false
	}
	sale := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return sale, true
}

// Empty reports whether the stack holds no sales
func (s *UndoStack) Empty() bool {
	return len(s.items) == 0
}
