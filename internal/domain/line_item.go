package domain

import "github.com/shopspring/decimal"

// LineItem — позиция корзины, агрегирующая все единицы одного товара.
// Цена и миниатюра копируются в момент добавления и не следят за каталогом.
type LineItem struct {
	Name      string
	Price     decimal.Decimal
	Thumbnail string
	Quantity  int
}

// NewLineItem создаёт позицию с количеством 1 из товара каталога.
func NewLineItem(product Product) LineItem {
	return LineItem{
		Name:      product.Name,
		Price:     product.Price,
		Thumbnail: product.Image.Thumbnail,
		Quantity:  1,
	}
}

// Subtotal возвращает стоимость позиции: цена × количество.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
