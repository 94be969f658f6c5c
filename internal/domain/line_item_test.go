package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewLineItem_CopiesProductFields(t *testing.T) {
	product := NewProduct("Waffle", "Waffle", decimal.RequireFromString("6.50"),
		NewImage("thumb.jpg", "mobile.jpg", "tablet.jpg", "desktop.jpg"))

	item := NewLineItem(*product)
	product.Price = decimal.RequireFromString("9.99")
	product.Image.Thumbnail = "changed.jpg"

	assert.Equal(t, "Waffle", item.Name)
	assert.Equal(t, "6.5", item.Price.String())
	assert.Equal(t, "thumb.jpg", item.Thumbnail)
	assert.Equal(t, 1, item.Quantity)
}

func TestLineItem_Subtotal(t *testing.T) {
	item := LineItem{Name: "Macaron", Price: decimal.RequireFromString("8.00"), Quantity: 3}
	assert.Equal(t, "$24.00", FormatMoney(item.Subtotal()))
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":      "$0.00",
		"6.5":    "$6.50",
		"7":      "$7.00",
		"4.005":  "$4.01",
		"20.004": "$20.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}
