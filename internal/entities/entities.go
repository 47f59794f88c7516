package entities

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type TransactionStatus string

const (
	TransactionStatusIssued   TransactionStatus = "issued"
	TransactionStatusReturned TransactionStatus = "returned"
	TransactionStatusRenewed  TransactionStatus = "renewed"
)

// User is a registered library member. The admission number is the
// human-facing identifier used when issuing books; it is distinct from
// the record ID.
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:100" json:"name"`
	Email           string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash    string    `gorm:"size:100" json:"-"`
	AdmissionNumber string    `gorm:"uniqueIndex;size:50" json:"admno"`
	Branch          string    `gorm:"size:100" json:"branch"`
	Semester        string    `gorm:"size:20" json:"semester"`
	Role            UserRole  `gorm:"size:20;default:'member'" json:"role"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Book holds a title's stock counters. CatalogCode is the generated
// human-facing identifier printed on the physical copies.
type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CatalogCode  string    `gorm:"uniqueIndex;size:20" json:"bookId"`
	Title        string    `gorm:"index;size:512" json:"title"`
	CurrentStock int       `json:"currentStock"`
	TotalStock   int       `json:"totalStock"`
	IsAvailable  bool      `json:"isAvailable"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeSave keeps IsAvailable derived from the stock counter on every
// persist. It must never be set independently of CurrentStock.
func (b *Book) BeforeSave(_ *gorm.DB) error {
	b.IsAvailable = b.CurrentStock > 0
	return nil
}

// Transaction is one lending record linking a Book and a User. It is
// created once when the book is issued and mutated in place on return
// or renewal; transactions are never deleted.
type Transaction struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	BookID     uint              `gorm:"index" json:"book_id"`
	UserID     uint              `gorm:"index" json:"user_id"`
	Book       *Book             `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User       *User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	IssueDate  time.Time         `json:"issue_date"`
	DueDate    time.Time         `json:"due_date"`
	ReturnDate *time.Time        `json:"return_date"`
	Status     TransactionStatus `gorm:"size:20;index" json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// IsOpen reports whether the book is still out with the user.
func (t *Transaction) IsOpen() bool {
	return t.Status == TransactionStatusIssued || t.Status == TransactionStatusRenewed
}

// IsOverdue reports whether an open transaction is past its due date.
func (t *Transaction) IsOverdue(now time.Time) bool {
	return t.IsOpen() && now.After(t.DueDate)
}
