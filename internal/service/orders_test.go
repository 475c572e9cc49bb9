package service_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/bookstore/internal/model"
	"example.com/bookstore/internal/service"
)

func TestPlaceOrder_DecrementsStockAndCapturesPrice(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	orwell := addBook(t, db, "1984", 1199, 20)
	hobbit := addBook(t, db, "The Hobbit", 1699, 10)

	id, err := s.PlaceOrder(ctx, cart("alice@example.com",
		service.CartLine{BookID: orwell.ID, Quantity: 5},
		service.CartLine{BookID: hobbit.ID, Quantity: 2},
	))
	require.NoError(t, err)

	assert.Equal(t, 15, stockOf(t, db, orwell.ID))
	assert.Equal(t, 8, stockOf(t, db, hobbit.ID))

	// later price changes must not leak into the order
	require.NoError(t, db.Model(&model.Book{}).Where("id = ?", orwell.ID).Update("price_cents", 9999).Error)

	d, err := s.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, d.Status)
	assert.Equal(t, int64(4200), d.TotalCents)
	assert.Equal(t, []model.OrderLine{
		{BookTitle: "1984", Quantity: 5, PriceCents: 1199},
		{BookTitle: "The Hobbit", Quantity: 2, PriceCents: 1699},
	}, d.Lines)
}

func TestPlaceOrder_InsufficientStockRollsBackAllLines(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	plenty := addBook(t, db, "Plenty", 500, 10)
	scarce := addBook(t, db, "Scarce", 700, 3)

	_, err := s.PlaceOrder(ctx, cart("bob@example.com",
		service.CartLine{BookID: plenty.ID, Quantity: 4},
		service.CartLine{BookID: scarce.ID, Quantity: 10},
	))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.EqualError(t, err, "Insufficient stock for Scarce")

	var stockErr *service.StockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, scarce.ID, stockErr.BookID)

	assert.Equal(t, 10, stockOf(t, db, plenty.ID))
	assert.Equal(t, 3, stockOf(t, db, scarce.ID))

	var items int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, items)

	// the customer and the empty header are committed before the item loop
	var users, orders int64
	require.NoError(t, db.Model(&model.User{}).Where("email = ?", "bob@example.com").Count(&users).Error)
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), orders)
}

func TestPlaceOrder_UnknownBook(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Real", 500, 5)

	_, err := s.PlaceOrder(ctx, cart("carol@example.com",
		service.CartLine{BookID: b.ID, Quantity: 1},
		service.CartLine{BookID: 4242, Quantity: 1},
	))
	assert.ErrorIs(t, err, service.ErrBookNotFound)
	assert.EqualError(t, err, "book not found")
	assert.Equal(t, 5, stockOf(t, db, b.ID))
}

func TestPlaceOrder_ExactStockSucceeds(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Last Copies", 500, 3)

	_, err := s.PlaceOrder(ctx, cart("dan@example.com", service.CartLine{BookID: b.ID, Quantity: 3}))
	require.NoError(t, err)
	assert.Zero(t, stockOf(t, db, b.ID))
}

func TestPlaceOrder_SameBookOnTwoLines(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Twice", 500, 5)

	_, err := s.PlaceOrder(ctx, cart("erin@example.com",
		service.CartLine{BookID: b.ID, Quantity: 3},
		service.CartLine{BookID: b.ID, Quantity: 3},
	))
	assert.ErrorIs(t, err, service.ErrInsufficientStock)
	assert.Equal(t, 5, stockOf(t, db, b.ID))
}

func TestPlaceOrder_ReusesUserByEmail(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Repeat", 500, 10)

	first, err := s.PlaceOrder(ctx, cart("frank@example.com", service.CartLine{BookID: b.ID, Quantity: 1}))
	require.NoError(t, err)

	again := cart("frank@example.com", service.CartLine{BookID: b.ID, Quantity: 1})
	again.Customer.Name = "Frank Renamed"
	second, err := s.PlaceOrder(ctx, again)
	require.NoError(t, err)

	o1, err := s.GetOrder(ctx, first)
	require.NoError(t, err)
	o2, err := s.GetOrder(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, o1.UserID, o2.UserID)

	var u model.User
	require.NoError(t, db.First(&u, o1.UserID).Error)
	assert.Equal(t, "Alice", u.Name)
}

func TestPlaceOrder_ConcurrentOrdersCannotOversell(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Only One", 500, 1)

	const buyers = 5
	errs := make([]error, buyers)
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := string(rune('a'+i)) + "@example.com"
			_, errs[i] = s.PlaceOrder(ctx, cart(email, service.CartLine{BookID: b.ID, Quantity: 1}))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, service.ErrInsufficientStock)
	}
	assert.Equal(t, 1, ok)
	assert.Zero(t, stockOf(t, db, b.ID))
}

func TestPlaceOrder_SendsConfirmation(t *testing.T) {
	db := tempDB(t)
	mail := &recordingEmail{}
	s := service.NewOrderService(db, mail)
	b := addBook(t, db, "Mailed", 500, 2)

	_, err := s.PlaceOrder(ctx, cart("gina@example.com", service.CartLine{BookID: b.ID, Quantity: 1}))
	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "gina@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].Body, "42.00")

	_, err = s.PlaceOrder(ctx, cart("gina@example.com", service.CartLine{BookID: b.ID, Quantity: 5}))
	require.Error(t, err)
	assert.Len(t, mail.sent, 1)
}

func TestGetOrder_NotFound(t *testing.T) {
	s := service.NewOrderService(tempDB(t), service.NewEmailService(service.SMTPConfig{}))
	_, err := s.GetOrder(ctx, 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSetOrderStatus_AcceptsAnyString(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Status", 500, 2)
	id, err := s.PlaceOrder(ctx, cart("hank@example.com", service.CartLine{BookID: b.ID, Quantity: 1}))
	require.NoError(t, err)

	for _, status := range []string{"shipped", "lost in the mail ✉", ""} {
		require.NoError(t, s.SetOrderStatus(ctx, id, status))

		d, err := s.GetOrder(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, d.Status)

		all, err := s.ListOrders(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, status, all[0].Status)
	}

	assert.ErrorIs(t, s.SetOrderStatus(ctx, 999, "shipped"), service.ErrNotFound)
}

func TestSchema_EnforcesForeignKeys(t *testing.T) {
	db := tempDB(t)
	s := service.NewOrderService(db, service.NewEmailService(service.SMTPConfig{}))
	b := addBook(t, db, "Keyed", 500, 2)
	id, err := s.PlaceOrder(ctx, cart("ivy@example.com", service.CartLine{BookID: b.ID, Quantity: 1}))
	require.NoError(t, err)

	assert.Error(t, db.Create(&model.Order{UserID: 999, TotalCents: 1, Status: model.StatusPending}).Error)
	assert.Error(t, db.Create(&model.OrderItem{OrderID: 999, BookID: b.ID, Quantity: 1, PriceCents: 500}).Error)
	assert.Error(t, db.Create(&model.OrderItem{OrderID: id, BookID: 999, Quantity: 1, PriceCents: 500}).Error)
}
