// Package transactions provides database operations for the lending ledger.
package transactions

import (
	"time"

	"gorm.io/gorm"

	"github.com/shelflife/shelflife/internal/entities"
)

// Repository handles all transaction database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new transactions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new transaction.
func (r *Repository) Create(tx *entities.Transaction) error {
	return r.db.Create(tx).Error
}

// Save persists changes to an existing transaction.
func (r *Repository) Save(tx *entities.Transaction) error {
	return r.db.Save(tx).Error
}

// GetByID retrieves a transaction by ID.
func (r *Repository) GetByID(id uint) (*entities.Transaction, error) {
	var tx entities.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetAll returns every transaction with its book and user populated.
func (r *Repository) GetAll() ([]entities.Transaction, error) {
	var txs []entities.Transaction
	err := r.db.Preload("Book").Preload("User").Order("created_at desc").Find(&txs).Error
	return txs, err
}

// GetByUserID returns a user's full lending history, book populated.
func (r *Repository) GetByUserID(userID uint) ([]entities.Transaction, error) {
	var txs []entities.Transaction
	err := r.db.Preload("Book").Preload("User").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&txs).Error
	return txs, err
}

// GetOverdue returns open transactions whose due date has passed.
func (r *Repository) GetOverdue(now time.Time) ([]entities.Transaction, error) {
	var txs []entities.Transaction
	err := r.db.Preload("Book").Preload("User").
		Where("status IN ?", []entities.TransactionStatus{
			entities.TransactionStatusIssued,
			entities.TransactionStatusRenewed,
		}).
		Where("due_date < ?", now).
		Order("due_date").
		Find(&txs).Error
	return txs, err
}
