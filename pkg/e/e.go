package e

import "fmt"

var (
	// Ошибки каталога
	ErrCatalogMalformed   = fmt.Errorf("catalog payload is malformed")
	ErrCatalogUnavailable = fmt.Errorf("catalog source unavailable")
	ErrCatalogTooLarge    = fmt.Errorf("catalog payload is too large")
	ErrCacheMiss          = fmt.Errorf("cache miss")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrInvalidQuantity  = fmt.Errorf("quantity delta must be a non-zero integer within ±1000")
	ErrInvalidDismissal = fmt.Errorf("unknown dismissal target")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
