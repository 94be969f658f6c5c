package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/order"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func products() []domain.Product {
	return []domain.Product{
		*domain.NewProduct("Waffle", "Waffle", decimal.RequireFromString("6.50"),
			domain.NewImage("waffle-thumb.jpg", "", "", "waffle-desktop.jpg")),
		*domain.NewProduct("Crème Brûlée", "Crème Brûlée", decimal.RequireFromString("7"),
			domain.NewImage("creme-thumb.jpg", "", "", "creme-desktop.jpg")),
	}
}

func lineItem(p domain.Product) domain.LineItem {
	return domain.NewLineItem(p)
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)

	return r
}

func TestCartView_RefreshesOnEveryMutation(t *testing.T) {
	store := cart.NewStore()
	v := NewCartView()
	detach := v.Attach(store)
	defer detach()

	start := v.Generation()
	ps := products()

	store.Add(lineItem(ps[0]))
	store.Add(lineItem(ps[0]))
	store.Add(lineItem(ps[1]))

	assert.Equal(t, start+3, v.Generation())

	panel := v.Panel()
	assert.Equal(t, 3, panel.TotalQuantity)
	assert.False(t, panel.Empty)
	assert.Equal(t, "$20.00", panel.GrandTotal)
	require.Len(t, panel.Lines, 2)
	assert.Equal(t, CartLine{Name: "Waffle", Quantity: 2, UnitPrice: "$6.50", Subtotal: "$13.00", Thumbnail: "waffle-thumb.jpg"}, panel.Lines[0])

	store.Remove("Waffle")
	panel = v.Panel()
	assert.Equal(t, 1, panel.TotalQuantity)
	assert.Equal(t, "$7.00", panel.GrandTotal)
}

func TestCartView_ResyncsAffordances(t *testing.T) {
	store := cart.NewStore()
	v := NewCartView()
	v.Attach(store)
	ps := products()

	store.Add(lineItem(ps[0]))
	store.ChangeQuantity("Waffle", 2)

	cards := v.Cards(ps)
	require.Len(t, cards, 2)
	assert.Equal(t, Affordance{Name: "Waffle", InCart: true, Quantity: 3}, cards[0].Affordance)
	assert.Equal(t, Affordance{Name: "Crème Brûlée"}, cards[1].Affordance)

	store.ChangeQuantity("Waffle", -3)
	assert.False(t, v.Affordance("Waffle").InCart)
}

func TestRenderer_CartEmptyState(t *testing.T) {
	r := newRenderer(t)
	v := NewCartView()

	var buf bytes.Buffer
	require.NoError(t, r.Cart(&buf, v.Panel()))
	html := buf.String()

	assert.Contains(t, html, "Your Cart (0)")
	assert.Contains(t, html, "Your added items will appear here")
	assert.NotContains(t, html, "Order Total")
	assert.NotContains(t, html, "confirm-order-btn")
}

func TestRenderer_CartWithItems(t *testing.T) {
	r := newRenderer(t)
	store := cart.NewStore()
	v := NewCartView()
	v.Attach(store)
	ps := products()
	store.Add(lineItem(ps[0]))
	store.Add(lineItem(ps[0]))

	var buf bytes.Buffer
	require.NoError(t, r.Cart(&buf, v.Panel()))
	html := buf.String()

	assert.Contains(t, html, "Your Cart (2)")
	assert.Contains(t, html, "2x</span> @ $6.50 = $13.00")
	assert.Contains(t, html, "Order Total")
	assert.Contains(t, html, "$13.00")
	assert.Contains(t, html, `class="confirm-btn confirm-order-btn"`)
	assert.Contains(t, html, `aria-label="Remove Waffle"`)
	assert.NotContains(t, html, "Your added items will appear here")
	assert.Equal(t, 1, strings.Count(html, `class="remove-btn"`))
}

func TestRenderer_GridAffordances(t *testing.T) {
	r := newRenderer(t)
	store := cart.NewStore()
	v := NewCartView()
	v.Attach(store)
	ps := products()
	store.Add(lineItem(ps[1]))

	var buf bytes.Buffer
	require.NoError(t, r.Grid(&buf, v.Cards(ps)))
	html := buf.String()

	assert.Equal(t, 2, strings.Count(html, `<article class="card">`))
	assert.Contains(t, html, `aria-label="Add Waffle to cart"`)
	assert.Contains(t, html, `action="/cart/items"`)
	assert.Contains(t, html, `<span class="quantity">1</span>`)
	assert.Contains(t, html, `aria-label="Decrease quantity"`)
	assert.Contains(t, html, "$6.50")
	assert.NotContains(t, html, "Add Crème Brûlée to cart")
}

func TestRenderer_EscapesProductText(t *testing.T) {
	r := newRenderer(t)
	evil := *domain.NewProduct(`<script>alert("x")</script>`, `"><img src=x>`, decimal.Zero,
		domain.NewImage("", "", "", "a.jpg"))

	var buf bytes.Buffer
	require.NoError(t, r.Grid(&buf, NewCartView().Cards([]domain.Product{evil})))
	html := buf.String()

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, `"><img`)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderer_OrderPanel(t *testing.T) {
	r := newRenderer(t)
	ps := products()
	items := []domain.LineItem{lineItem(ps[0]), lineItem(ps[1])}
	items[0].Quantity = 2

	var buf bytes.Buffer
	require.NoError(t, r.Order(&buf, OrderPanel{
		State:   "show",
		Visible: true,
		Open:    true,
		OrderID: "order-1",
		Lines:   BuildLines(items),
		Total:   "$20.00",
	}))
	html := buf.String()

	assert.Contains(t, html, `class="order-confirmation show"`)
	assert.Contains(t, html, "x2")
	assert.Contains(t, html, "@$6.50")
	assert.Contains(t, html, `<span class="modal-total">$20.00</span>`)
	assert.Equal(t, 1, strings.Count(html, "Start New Order"))
	assert.Contains(t, html, `name="target" value="overlay"`)

	buf.Reset()
	require.NoError(t, r.Order(&buf, OrderPanel{State: "hidden"}))
	assert.Contains(t, buf.String(), `hidden="hidden"`)
	assert.NotContains(t, buf.String(), "Start New Order")
}

func TestRenderer_Page(t *testing.T) {
	r := newRenderer(t)
	v := NewCartView()

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, Page{
		Cards: v.Cards(products()),
		Cart:  v.Panel(),
		Order: OrderPanel{State: "hidden"},
	}))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `class="desserts-grid"`)
	assert.Contains(t, html, `class="cart"`)
	assert.NotContains(t, html, "no-scroll")
}

func TestBuildOrderPanel(t *testing.T) {
	store := cart.NewStore()
	ps := products()
	store.Add(lineItem(ps[0]))
	store.Add(lineItem(ps[0]))
	store.Add(lineItem(ps[1]))

	o := order.NewOverlay(time.Second, nil)
	summary, ok := o.Confirm(store)
	require.True(t, ok)

	panel := BuildOrderPanel(o.State(), o.Summary())
	assert.True(t, panel.Visible)
	assert.True(t, panel.Open)
	assert.Equal(t, summary.ID, panel.OrderID)
	assert.Equal(t, "$20.00", panel.Total)
	// строки сводки совпадают со строками корзины
	if diff := cmp.Diff(BuildPanel(store.Snapshot(), 0).Lines, panel.Lines); diff != "" {
		t.Errorf("order lines mismatch (-cart +order):\n%s", diff)
	}

	want := []CartLine{
		{Name: "Waffle", Quantity: 2, UnitPrice: "$6.50", Subtotal: "$13.00", Thumbnail: "waffle-thumb.jpg"},
		{Name: "Crème Brûlée", Quantity: 1, UnitPrice: "$7.00", Subtotal: "$7.00", Thumbnail: "creme-thumb.jpg"},
	}
	if diff := cmp.Diff(want, panel.Lines); diff != "" {
		t.Errorf("unexpected order lines (-want +got):\n%s", diff)
	}

	hidden := BuildOrderPanel(order.Hidden, summary)
	assert.False(t, hidden.Visible)
	assert.Empty(t, hidden.Lines)
}
