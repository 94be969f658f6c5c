package view

import (
	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/order"
)

// Affordance — элемент управления на карточке товара: кнопка добавления
// или степпер количества, если товар уже в корзине.
type Affordance struct {
	Name     string
	InCart   bool
	Quantity int
}

// Card — карточка товара в сетке каталога.
type Card struct {
	Name       string
	Category   string
	Price      string
	Image      string
	Affordance Affordance
}

// CartLine — строка корзины или сводки заказа.
type CartLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	Subtotal  string
	Thumbnail string
}

// CartPanel — модель панели корзины.
type CartPanel struct {
	Generation    uint64
	TotalQuantity int
	Lines         []CartLine
	GrandTotal    string
	Empty         bool
}

// OrderPanel — модель окна подтверждения заказа.
type OrderPanel struct {
	State   string
	Visible bool
	Open    bool
	OrderID string
	Lines   []CartLine
	Total   string
}

// Page — модель всей страницы витрины.
type Page struct {
	Cards []Card
	Cart  CartPanel
	Order OrderPanel
}

// BuildLines считает строки корзины. Окно подтверждения заказа использует
// ту же функцию, поэтому суммы в обоих местах совпадают.
func BuildLines(items []domain.LineItem) []CartLine {
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, CartLine{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: domain.FormatMoney(item.Price),
			Subtotal:  domain.FormatMoney(item.Subtotal()),
			Thumbnail: item.Thumbnail,
		})
	}

	return lines
}

// BuildPanel строит панель корзины из снимка с нуля.
func BuildPanel(snap cart.Snapshot, generation uint64) CartPanel {
	return CartPanel{
		Generation:    generation,
		TotalQuantity: snap.TotalQuantity(),
		Lines:         BuildLines(snap.Items),
		GrandTotal:    domain.FormatMoney(snap.Total()),
		Empty:         snap.Empty(),
	}
}

// BuildAffordances сопоставляет каждому товару из корзины степпер.
func BuildAffordances(snap cart.Snapshot) map[string]Affordance {
	affordances := make(map[string]Affordance, len(snap.Items))
	for _, item := range snap.Items {
		affordances[item.Name] = Affordance{Name: item.Name, InCart: true, Quantity: item.Quantity}
	}

	return affordances
}

// BuildOrderPanel строит окно подтверждения по состоянию и снимку заказа.
func BuildOrderPanel(state order.State, summary *order.Summary) OrderPanel {
	panel := OrderPanel{
		State:   state.String(),
		Visible: state != order.Hidden,
		Open:    state == order.Shown,
	}
	if summary == nil || !panel.Visible {
		return panel
	}

	panel.OrderID = summary.ID
	panel.Lines = BuildLines(summary.Items)
	panel.Total = domain.FormatMoney(summary.Total)

	return panel
}
