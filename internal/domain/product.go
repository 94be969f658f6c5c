package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога. Имя товара служит его идентификатором.
type Product struct {
	Name     string
	Category string
	Price    decimal.Decimal
	Image    Image
}

func NewProduct(name string, category string, price decimal.Decimal, image Image) *Product {
	return &Product{
		Name:     name,
		Category: category,
		Price:    price,
		Image:    image,
	}
}
