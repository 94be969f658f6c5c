package view

import (
	"sync"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/domain"
)

// CartView хранит последнюю сгенерированную панель корзины и состояние
// карточек. Каждое изменение корзины перестраивает оба с нуля.
type CartView struct {
	mu          sync.RWMutex
	panel       CartPanel
	affordances map[string]Affordance
	generation  uint64
}

func NewCartView() *CartView {
	v := &CartView{}
	v.Refresh(cart.Snapshot{})

	return v
}

// Attach подписывает представление на корзину и сразу синхронизирует его.
func (v *CartView) Attach(store *cart.Store) (detach func()) {
	detach = store.Subscribe(v.Refresh)
	v.Refresh(store.Snapshot())

	return detach
}

// Refresh перестраивает панель корзины и затем состояние всех карточек.
func (v *CartView) Refresh(snap cart.Snapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.generation++
	v.panel = BuildPanel(snap, v.generation)
	v.affordances = BuildAffordances(snap)
}

// Panel возвращает текущую панель корзины.
func (v *CartView) Panel() CartPanel {
	v.mu.RLock()
	defer v.mu.RUnlock()

	panel := v.panel
	panel.Lines = append([]CartLine(nil), v.panel.Lines...)

	return panel
}

// Affordance возвращает элемент управления карточки товара.
func (v *CartView) Affordance(name string) Affordance {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if a, ok := v.affordances[name]; ok {
		return a
	}

	return Affordance{Name: name}
}

// Cards строит карточки каталога с актуальными элементами управления.
func (v *CartView) Cards(products []domain.Product) []Card {
	v.mu.RLock()
	defer v.mu.RUnlock()

	cards := make([]Card, 0, len(products))
	for _, p := range products {
		affordance, ok := v.affordances[p.Name]
		if !ok {
			affordance = Affordance{Name: p.Name}
		}

		cards = append(cards, Card{
			Name:       p.Name,
			Category:   p.Category,
			Price:      domain.FormatMoney(p.Price),
			Image:      p.Image.Desktop,
			Affordance: affordance,
		})
	}

	return cards
}

// Generation возвращает номер последней генерации.
func (v *CartView) Generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.generation
}
