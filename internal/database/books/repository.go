// Package books provides database operations for the book inventory.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByCatalogCode("BK-1A2B3C4D")
package books

import (
	"gorm.io/gorm"

	"github.com/shelflife/shelflife/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new book.
func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

// Save persists changes to an existing book. Availability is recomputed
// by the entity's BeforeSave hook.
func (r *Repository) Save(book *entities.Book) error {
	return r.db.Save(book).Error
}

// GetByID retrieves a book by its record ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByCatalogCode retrieves a book by its human-facing catalog code.
func (r *Repository) GetByCatalogCode(code string) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.Where("catalog_code = ?", code).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll returns every book in the inventory.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Order("title").Find(&books).Error
	return books, err
}

// CatalogCodeExists reports whether a catalog code is already taken.
func (r *Repository) CatalogCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("catalog_code = ?", code).Count(&count).Error
	return count > 0, err
}
