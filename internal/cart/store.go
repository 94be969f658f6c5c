// Package cart хранит корзину покупателя: упорядоченный набор позиций,
// уникальных по имени товара, и оповещает подписчиков о каждом изменении.
package cart

import (
	"math"
	"slices"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Listener получает снимок корзины после каждого изменения.
type Listener func(Snapshot)

// Snapshot — неизменяемая копия содержимого корзины.
type Snapshot struct {
	Items []domain.LineItem
}

// Empty сообщает, пуста ли корзина.
func (s Snapshot) Empty() bool {
	return len(s.Items) == 0
}

// TotalQuantity возвращает суммарное количество единиц товара.
func (s Snapshot) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}

	return total
}

// Total возвращает сумму цена × количество по всем позициям.
// Значение вычисляется при каждом вызове.
func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal())
	}

	return total
}

// Find возвращает позицию по имени товара.
func (s Snapshot) Find(name string) (domain.LineItem, bool) {
	idx := slices.IndexFunc(s.Items, func(item domain.LineItem) bool { return item.Name == name })
	if idx < 0 {
		return domain.LineItem{}, false
	}

	return s.Items[idx], true
}

// Store — корзина в памяти. Количество каждой позиции всегда не меньше 1,
// имена позиций не повторяются.
type Store struct {
	mu        sync.RWMutex
	items     []domain.LineItem
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{
		listeners: make(map[int]Listener),
	}
}

// Add добавляет товар. Для уже добавленного имени увеличивает количество на 1,
// сохраняя цену и миниатюру первого добавления.
func (s *Store) Add(item domain.LineItem) {
	s.mu.Lock()
	if idx := s.indexOf(item.Name); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		s.items = append(s.items, domain.LineItem{
			Name:      item.Name,
			Price:     item.Price,
			Thumbnail: item.Thumbnail,
			Quantity:  1,
		})
	}
	s.mu.Unlock()

	s.notify()
}

// Remove удаляет позицию и сообщает, была ли она в корзине. Подписчики
// уведомляются в любом случае.
func (s *Store) Remove(name string) bool {
	s.mu.Lock()
	removed := s.indexOf(name) >= 0
	s.removeLocked(name)
	s.mu.Unlock()

	s.notify()

	return removed
}

// ChangeQuantity прибавляет delta к количеству позиции. Позиция с
// количеством ≤ 0 удаляется, при росте количество упирается в math.MaxInt.
// Для отсутствующего имени ничего не происходит и возвращается false.
func (s *Store) ChangeQuantity(name string, delta int) bool {
	s.mu.Lock()
	idx := s.indexOf(name)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	q := s.items[idx].Quantity
	switch {
	case delta > 0 && q > math.MaxInt-delta:
		q = math.MaxInt
	default:
		q += delta
	}

	if q <= 0 {
		s.removeLocked(name)
	} else {
		s.items[idx].Quantity = q
	}
	s.mu.Unlock()

	s.notify()

	return true
}

// Clear очищает корзину.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// Snapshot возвращает копию текущего содержимого.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Items: s.Items()}
}

// Items возвращает копию позиций в порядке добавления.
func (s *Store) Items() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

// Quantity возвращает количество товара в корзине.
func (s *Store) Quantity(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(name)
	if idx < 0 {
		return 0, false
	}

	return s.items[idx].Quantity, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *Store) TotalQuantity() int {
	return s.Snapshot().TotalQuantity()
}

func (s *Store) Total() decimal.Decimal {
	return s.Snapshot().Total()
}

// Subscribe регистрирует слушателя изменений и возвращает функцию отписки.
// Слушатели вызываются синхронно, вне блокировки корзины.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.RLock()
	snapshot := Snapshot{Items: slices.Clone(s.items)}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(snapshot)
	}
}

func (s *Store) removeLocked(name string) {
	s.items = slices.DeleteFunc(s.items, func(item domain.LineItem) bool { return item.Name == name })
}

func (s *Store) indexOf(name string) int {
	return slices.IndexFunc(s.items, func(item domain.LineItem) bool { return item.Name == name })
}
