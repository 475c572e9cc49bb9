package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBookNotFound      = errors.New("book not found")
)

// StockError aborts an order when a cart line cannot be fulfilled.
// Title is empty when the referenced book does not exist.
type StockError struct {
	BookID uint
	Title  string
}

func (e *StockError) Error() string {
	if e.Title == "" {
		return ErrBookNotFound.Error()
	}
	return fmt.Sprintf("Insufficient stock for %s", e.Title)
}

func (e *StockError) Unwrap() error {
	if e.Title == "" {
		return ErrBookNotFound
	}
	return ErrInsufficientStock
}
