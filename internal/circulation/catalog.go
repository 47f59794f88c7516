package circulation

import (
	"strings"

	"github.com/google/uuid"
)

// catalogCodeAttempts bounds the collision retry loop so a pathological
// code space can't spin forever.
const catalogCodeAttempts = 10

func newCatalogCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK-" + raw[:8]
}

// generateCatalogCode returns a catalog code not used by any existing
// book, retrying on collision up to catalogCodeAttempts times.
func (s *Service) generateCatalogCode() (string, error) {
	for i := 0; i < catalogCodeAttempts; i++ {
		code := newCatalogCode()
		exists, err := s.books.CatalogCodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCatalogCodeExhausted
}
