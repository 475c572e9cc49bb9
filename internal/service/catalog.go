package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"example.com/bookstore/internal/model"
)

type CatalogService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	GetBook(ctx context.Context, id uint) (model.Book, error)
	SetBookStock(ctx context.Context, id uint, stock int) error
	SeedCatalog(ctx context.Context) (int, error)
}

type catalogService struct{ db *gorm.DB }

func NewCatalogService(db *gorm.DB) CatalogService { return &catalogService{db: db} }

func (s *catalogService) ListBooks(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	if err := s.db.WithContext(ctx).Order("id asc").Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (s *catalogService) GetBook(ctx context.Context, id uint) (model.Book, error) {
	var b model.Book
	err := s.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Book{}, ErrNotFound
	} else if err != nil {
		return model.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

// SetBookStock overwrites the stock count regardless of outstanding orders.
func (s *catalogService) SetBookStock(ctx context.Context, id uint, stock int) error {
	res := s.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", id).Update("stock", stock)
	if res.Error != nil {
		return fmt.Errorf("set stock for book %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SeedCatalog fills an empty catalog with the starter books and reports how
// many were inserted. A non-empty catalog is left alone.
func (s *catalogService) SeedCatalog(ctx context.Context) (int, error) {
	db := s.db.WithContext(ctx)
	var n int64
	if err := db.Model(&model.Book{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	books := starterBooks()
	if err := db.Create(&books).Error; err != nil {
		return 0, fmt.Errorf("seed books: %w", err)
	}
	return len(books), nil
}

func starterBooks() []model.Book {
	return []model.Book{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", PriceCents: 1299, Genre: "Fiction", Stock: 15,
			Description: "A classic American novel about the Jazz Age and the American Dream."},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", PriceCents: 1499, Genre: "Fiction", Stock: 12,
			Description: "A powerful story about racial injustice and the loss of innocence in the American South."},
		{Title: "1984", Author: "George Orwell", PriceCents: 1199, Genre: "Fiction", Stock: 20,
			Description: "A dystopian novel about totalitarianism and surveillance society."},
		{Title: "Pride and Prejudice", Author: "Jane Austen", PriceCents: 999, Genre: "Romance", Stock: 18,
			Description: "A romantic novel of manners about the relationship between Elizabeth Bennet and Mr. Darcy."},
		{Title: "The Hobbit", Author: "J.R.R. Tolkien", PriceCents: 1699, Genre: "Fantasy", Stock: 10,
			Description: "A fantasy novel about Bilbo Baggins' journey with thirteen dwarves to reclaim their homeland."},
		{Title: "The Catcher in the Rye", Author: "J.D. Salinger", PriceCents: 1399, Genre: "Fiction", Stock: 14,
			Description: "A coming-of-age story about teenage alienation and loss of innocence."},
		{Title: "Lord of the Flies", Author: "William Golding", PriceCents: 1099, Genre: "Fiction", Stock: 16,
			Description: "A novel about the dark side of human nature when civilization breaks down."},
		{Title: "Animal Farm", Author: "George Orwell", PriceCents: 899, Genre: "Political Fiction", Stock: 22,
			Description: "An allegorical novella about the Russian Revolution and the rise of Stalinism."},
	}
}
