package catalog

import (
	"testing"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `[
  {
    "image": {
      "thumbnail": "./assets/images/image-waffle-thumbnail.jpg",
      "mobile": "./assets/images/image-waffle-mobile.jpg",
      "tablet": "./assets/images/image-waffle-tablet.jpg",
      "desktop": "./assets/images/image-waffle-desktop.jpg"
    },
    "name": "Waffle with Berries",
    "category": "Waffle",
    "price": 6.50
  },
  {
    "image": {
      "thumbnail": "./assets/images/image-creme-brulee-thumbnail.jpg",
      "desktop": "./assets/images/image-creme-brulee-desktop.jpg"
    },
    "name": "Vanilla Bean Crème Brûlée",
    "category": "Crème Brûlée",
    "price": "7.00"
  }
]`

func TestDecode_Sample(t *testing.T) {
	products, err := Decode([]byte(samplePayload))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "Waffle with Berries", products[0].Name)
	assert.Equal(t, "Waffle", products[0].Category)
	assert.Equal(t, "6.5", products[0].Price.String())
	assert.Equal(t, "./assets/images/image-waffle-thumbnail.jpg", products[0].Image.Thumbnail)
	assert.Equal(t, "./assets/images/image-waffle-desktop.jpg", products[0].Image.Desktop)

	assert.Equal(t, "7", products[1].Price.String())
	assert.Empty(t, products[1].Image.Mobile)
}

func TestDecode_UnparseablePriceBecomesZero(t *testing.T) {
	payload := `[
		{"name": "A", "price": "free"},
		{"name": "B", "price": -3},
		{"name": "C"},
		{"name": "D", "price": null},
		{"name": "E", "price": "$4.25"},
		{"name": "F", "price": true}
	]`

	products, err := Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, products, 6)

	for _, p := range products[:4] {
		assert.True(t, p.Price.IsZero(), p.Name)
	}
	assert.Equal(t, "4.25", products[4].Price.String())
	assert.True(t, products[5].Price.IsZero())
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"object":      `{"name": "Waffle"}`,
		"truncated":   `[{"name": "Waffle"`,
		"not objects": `[1, 2, 3]`,
		"html":        `<html>404</html>`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(payload))
			require.ErrorIs(t, err, e.ErrCatalogMalformed)
		})
	}
}

func TestCatalog_Lookup(t *testing.T) {
	products, err := Decode([]byte(`[
		{"name": "Macaron", "price": 8},
		{"name": "Macaron", "price": 9},
		{"name": "Baklava", "price": 4}
	]`))
	require.NoError(t, err)

	c := NewCatalog(products)
	assert.Equal(t, 3, c.Len())

	p, ok := c.Lookup("Macaron")
	require.True(t, ok)
	assert.Equal(t, "8", p.Price.String())

	_, ok = c.Lookup("Cake")
	assert.False(t, ok)

	var empty *Catalog
	assert.Zero(t, empty.Len())
	assert.Nil(t, empty.Products())
}
