package catalog

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// productRecord — запись каталога в формате data.json.
type productRecord struct {
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    json.RawMessage `json:"price"`
	Image    struct {
		Thumbnail string `json:"thumbnail"`
		Mobile    string `json:"mobile"`
		Tablet    string `json:"tablet"`
		Desktop   string `json:"desktop"`
	} `json:"image"`
}

// Decode разбирает JSON-массив товаров. Нечитаемая или отрицательная цена
// превращается в ноль, всё остальное, кроме массива объектов, — ошибка.
func Decode(payload []byte) ([]domain.Product, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrCatalogMalformed)
	}

	var records []productRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.Wrap(err.Error(), e.ErrCatalogMalformed))
	}

	products := make([]domain.Product, 0, len(records))
	for _, r := range records {
		image := domain.NewImage(r.Image.Thumbnail, r.Image.Mobile, r.Image.Tablet, r.Image.Desktop)
		products = append(products, *domain.NewProduct(r.Name, r.Category, parsePrice(r.Price), image))
	}

	return products, nil
}

// parsePrice принимает число или строку с числом.
func parsePrice(raw json.RawMessage) decimal.Decimal {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return decimal.Zero
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return decimal.Zero
		}
		s = strings.TrimPrefix(strings.TrimSpace(str), "$")
	}

	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}

	return d
}
