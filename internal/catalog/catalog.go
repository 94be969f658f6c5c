package catalog

import (
	"slices"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// Catalog — загруженный список товаров. После создания не изменяется.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(products []domain.Product) *Catalog {
	return &Catalog{products: slices.Clone(products)}
}

// Products возвращает товары в исходном порядке.
func (c *Catalog) Products() []domain.Product {
	if c == nil {
		return nil
	}

	return slices.Clone(c.products)
}

// Lookup ищет товар по имени. При совпадении имён возвращается первый товар:
// корзина всё равно не различает такие товары.
func (c *Catalog) Lookup(name string) (domain.Product, bool) {
	if c == nil {
		return domain.Product{}, false
	}

	idx := slices.IndexFunc(c.products, func(p domain.Product) bool { return p.Name == name })
	if idx < 0 {
		return domain.Product{}, false
	}

	return c.products[idx], true
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.products)
}
