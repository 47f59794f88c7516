// Package circulation implements the lending workflow: issuing,
// returning and renewing books while keeping the inventory's stock
// counters consistent with the transaction ledger.
package circulation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shelflife/shelflife/internal/config"
	"github.com/shelflife/shelflife/internal/database/books"
	"github.com/shelflife/shelflife/internal/database/transactions"
	"github.com/shelflife/shelflife/internal/database/users"
	"github.com/shelflife/shelflife/internal/entities"
)

// nextDueDate advances one calendar month per issue or renewal.
func nextDueDate(from time.Time) time.Time {
	return from.AddDate(0, 1, 0)
}

// Service applies the stock accounting rules. All mutations that touch
// both the ledger and a book's counters go through here.
type Service struct {
	db           *gorm.DB
	books        *books.Repository
	users        *users.Repository
	transactions *transactions.Repository
	cfg          config.Circulation
}

// NewService creates a circulation service on top of the shared DB handle.
func NewService(db *gorm.DB, cfg config.Circulation) *Service {
	return &Service{
		db:           db,
		books:        books.NewRepository(db),
		users:        users.NewRepository(db),
		transactions: transactions.NewRepository(db),
		cfg:          cfg,
	}
}

// Issue lends the book with the given catalog code to the user with the
// given admission number. The ledger insert and the stock decrement run
// in one database transaction, and the decrement is conditional on
// remaining stock, so concurrent issues can never drive the counter
// negative.
func (s *Service) Issue(catalogCode, admissionNumber string) (*entities.Transaction, error) {
	if catalogCode == "" || admissionNumber == "" {
		return nil, ErrMissingIssueInput
	}

	book, err := s.books.GetByCatalogCode(catalogCode)
	if err != nil {
		return nil, asNotFound(err, ErrBookNotFound)
	}
	user, err := s.users.GetByAdmissionNumber(admissionNumber)
	if err != nil {
		return nil, asNotFound(err, ErrUserNotFound)
	}
	if !book.IsAvailable {
		return nil, ErrBookUnavailable
	}

	now := time.Now()
	tx := &entities.Transaction{
		BookID:    book.ID,
		UserID:    user.ID,
		IssueDate: now,
		DueDate:   nextDueDate(now),
		Status:    entities.TransactionStatusIssued,
	}

	err = s.db.Transaction(func(dbtx *gorm.DB) error {
		if err := dbtx.Create(tx).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}
		res := dbtx.Model(&entities.Book{}).
			Where("id = ? AND current_stock > 0", book.ID).
			Updates(map[string]any{
				"current_stock": gorm.Expr("current_stock - 1"),
				"is_available":  gorm.Expr("current_stock - 1 > 0"),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update stock: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Lost the race to the last copy.
			return ErrBookUnavailable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tx, nil
}

// Return closes the transaction and puts the copy back into stock.
// Availability is recomputed from the counter on persist.
func (s *Service) Return(transactionID uint) (*entities.Transaction, error) {
	tx, err := s.transactions.GetByID(transactionID)
	if err != nil {
		return nil, asNotFound(err, ErrTransactionNotFound)
	}
	if s.cfg.StrictTransitions && tx.Status == entities.TransactionStatusReturned {
		return nil, ErrTransactionClosed
	}

	now := time.Now()
	tx.Status = entities.TransactionStatusReturned
	tx.ReturnDate = &now
	if err := s.transactions.Save(tx); err != nil {
		return nil, fmt.Errorf("failed to close transaction: %w", err)
	}

	book, err := s.books.GetByID(tx.BookID)
	if err != nil {
		return nil, asNotFound(err, ErrBookNotFound)
	}
	book.CurrentStock++
	if err := s.books.Save(book); err != nil {
		return nil, fmt.Errorf("failed to restock book: %w", err)
	}

	return tx, nil
}

// Renew pushes the due date out one month from its current value and
// marks the transaction renewed. Stock is untouched. When strict
// transitions are enabled a returned transaction cannot be renewed.
func (s *Service) Renew(transactionID uint) (*entities.Transaction, error) {
	tx, err := s.transactions.GetByID(transactionID)
	if err != nil {
		return nil, asNotFound(err, ErrTransactionNotFound)
	}
	if s.cfg.StrictTransitions && tx.Status == entities.TransactionStatusReturned {
		return nil, ErrTransactionClosed
	}

	tx.DueDate = nextDueDate(tx.DueDate)
	tx.Status = entities.TransactionStatusRenewed
	if err := s.transactions.Save(tx); err != nil {
		return nil, fmt.Errorf("failed to renew transaction: %w", err)
	}

	return tx, nil
}

// AddBook registers a new title with a freshly generated catalog code.
// All copies start in stock.
func (s *Service) AddBook(title string, totalStock int) (*entities.Book, error) {
	if title == "" {
		return nil, ErrMissingBookInput
	}
	if totalStock <= 0 {
		return nil, ErrInvalidStock
	}

	code, err := s.generateCatalogCode()
	if err != nil {
		return nil, err
	}

	book := &entities.Book{
		CatalogCode:  code,
		Title:        title,
		CurrentStock: totalStock,
		TotalStock:   totalStock,
	}
	if err := s.books.Create(book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return book, nil
}

// RestockBook adds copies to an existing title, raising both counters
// in lockstep.
func (s *Service) RestockBook(bookID uint, additionalUnits int) (*entities.Book, error) {
	if additionalUnits <= 0 {
		return nil, ErrInvalidStock
	}

	book, err := s.books.GetByID(bookID)
	if err != nil {
		return nil, asNotFound(err, ErrBookNotFound)
	}

	book.CurrentStock += additionalUnits
	book.TotalStock += additionalUnits
	if err := s.books.Save(book); err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}

	return book, nil
}

// Overdue lists open transactions past their due date.
func (s *Service) Overdue() ([]entities.Transaction, error) {
	return s.transactions.GetOverdue(time.Now())
}

func asNotFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
