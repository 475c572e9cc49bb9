package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"example.com/bookstore/internal/model"
)

type Customer struct {
	Name, Email, Phone, Address string
}

type CartLine struct {
	BookID   uint
	Quantity int
}

// PlaceOrderInput is a parsed cart. TotalCents is taken as given by the
// client and never recomputed from the lines.
type PlaceOrderInput struct {
	Customer   Customer
	TotalCents int64
	Lines      []CartLine
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (uint, error)
	GetOrder(ctx context.Context, id uint) (model.OrderDetail, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, id uint, status string) error
}

type orderService struct {
	db    *gorm.DB
	email EmailService
}

func NewOrderService(db *gorm.DB, email EmailService) OrderService {
	return &orderService{db: db, email: email}
}

// PlaceOrder commits the customer and the order header first, then applies
// every line in a single transaction. A failing line rolls back all items
// and stock changes, but the customer and the empty header stay behind.
func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (uint, error) {
	db := s.db.WithContext(ctx)

	u, err := s.customer(db, in.Customer)
	if err != nil {
		return 0, err
	}

	order := model.Order{UserID: u.ID, TotalCents: in.TotalCents, Status: model.StatusPending}
	if err := db.Create(&order).Error; err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, line := range in.Lines {
			if err := addLine(tx, order.ID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	// mail (best-effort)
	body := fmt.Sprintf("Thanks %s! Your order #%d total %.2f received.", u.Name, order.ID, float64(order.TotalCents)/100.0)
	if err := s.email.Send(u.Email, "Order confirmation", body); err != nil {
		log.Printf("order %d: confirmation mail to %s: %v", order.ID, u.Email, err)
	}

	return order.ID, nil
}

// customer returns the user registered under c.Email, creating it on first
// use. An existing user keeps its stored name and contact details.
func (s *orderService) customer(db *gorm.DB, c Customer) (model.User, error) {
	var u model.User
	err := db.Where("email = ?", c.Email).First(&u).Error
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}

	u = model.User{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
	if cerr := db.Create(&u).Error; cerr != nil {
		// lost a race against a concurrent first order for the same email
		var existing model.User
		if db.Where("email = ?", c.Email).First(&existing).Error == nil {
			return existing, nil
		}
		return model.User{}, fmt.Errorf("create user: %w", cerr)
	}
	return u, nil
}

func addLine(tx *gorm.DB, orderID uint, line CartLine) error {
	var b model.Book
	err := tx.First(&b, line.BookID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &StockError{BookID: line.BookID}
	} else if err != nil {
		return fmt.Errorf("load book %d: %w", line.BookID, err)
	}
	if b.Stock < line.Quantity {
		return &StockError{BookID: b.ID, Title: b.Title}
	}

	res := tx.Model(&model.Book{}).
		Where("id = ? AND stock >= ?", b.ID, line.Quantity).
		Update("stock", gorm.Expr("stock - ?", line.Quantity))
	if res.Error != nil {
		return fmt.Errorf("decrement stock of book %d: %w", b.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &StockError{BookID: b.ID, Title: b.Title}
	}

	item := model.OrderItem{OrderID: orderID, BookID: b.ID, Quantity: line.Quantity, PriceCents: b.PriceCents}
	if err := tx.Create(&item).Error; err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	return nil
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (model.OrderDetail, error) {
	db := s.db.WithContext(ctx)

	var o model.Order
	err := db.First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.OrderDetail{}, ErrNotFound
	} else if err != nil {
		return model.OrderDetail{}, fmt.Errorf("get order %d: %w", id, err)
	}

	var lines []model.OrderLine
	err = db.Table("order_items").
		Select("books.title AS book_title, order_items.quantity, order_items.price_cents").
		Joins("JOIN books ON books.id = order_items.book_id").
		Where("order_items.order_id = ?", id).
		Order("order_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return model.OrderDetail{}, fmt.Errorf("get items of order %d: %w", id, err)
	}
	return model.OrderDetail{Order: o, Lines: lines}, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := s.db.WithContext(ctx).Order("id asc").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// SetOrderStatus accepts any status string; there is no state machine.
func (s *orderService) SetOrderStatus(ctx context.Context, id uint, status string) error {
	res := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("set status of order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
