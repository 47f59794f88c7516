package circulation

import "errors"

var (
	ErrMissingIssueInput    = errors.New("book ID and admission number are required")
	ErrMissingBookInput     = errors.New("title and total stock are required")
	ErrInvalidStock         = errors.New("stock amount must be positive")
	ErrBookNotFound         = errors.New("book not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrBookUnavailable      = errors.New("book is not available for issue")
	ErrTransactionClosed    = errors.New("transaction is already returned")
	ErrCatalogCodeExhausted = errors.New("could not allocate a unique catalog code")
)
