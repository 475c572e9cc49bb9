package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"example.com/bookstore/internal/app"
	"example.com/bookstore/internal/model"
	"example.com/bookstore/internal/service"
)

func tempDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := app.Config{DBDriver: "sqlite", DBDSN: filepath.Join(t.TempDir(), "test.db")}
	db, err := app.OpenDB(cfg, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() { app.CloseDB(db) })
	return db
}

func addBook(t *testing.T, db *gorm.DB, title string, priceCents int64, stock int) model.Book {
	t.Helper()
	b := model.Book{Title: title, Author: "Anon", PriceCents: priceCents, Description: "-", Genre: "Test", Stock: stock}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var b model.Book
	require.NoError(t, db.First(&b, id).Error)
	return b.Stock
}

type sentMail struct{ To, Subject, Body string }

type recordingEmail struct {
	mu   sync.Mutex
	sent []sentMail
}

func (r *recordingEmail) Send(to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentMail{to, subject, body})
	return nil
}

func cart(email string, lines ...service.CartLine) service.PlaceOrderInput {
	return service.PlaceOrderInput{
		Customer:   service.Customer{Name: "Alice", Email: email, Phone: "555-0100", Address: "1 Main St"},
		TotalCents: 4200,
		Lines:      lines,
	}
}

var ctx = context.Background()
