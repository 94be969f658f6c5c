// Package order реализует подтверждение заказа: снимок корзины и окно
// подтверждения с единственным действием «Start New Order».
package order

import (
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/pkg/e"
)

type State int

const (
	Hidden State = iota
	Shown
	Closing
)

func (s State) String() string {
	switch s {
	case Shown:
		return "show"
	case Closing:
		return "closing"
	default:
		return "hidden"
	}
}

// Target — место клика при попытке закрыть окно.
type Target string

const (
	TargetOverlay Target = "overlay"
	TargetContent Target = "content"
)

func ParseTarget(s string) (Target, error) {
	switch t := Target(s); t {
	case TargetOverlay, TargetContent:
		return t, nil
	default:
		return "", e.Wrap(fmt.Sprintf("target %q", s), e.ErrInvalidDismissal)
	}
}

// Overlay — окно подтверждения заказа одной сессии. Скрытие откладывается на
// transition, но состояние корзины меняется сразу. Состояние вычисляется по
// времени, таймеров нет. Не потокобезопасен: вызовы сериализует сессия.
type Overlay struct {
	transition time.Duration
	now        func() time.Time
	summary    *Summary
	shown      bool
	closingAt  time.Time
}

func NewOverlay(transition time.Duration, now func() time.Time) *Overlay {
	if now == nil {
		now = time.Now
	}

	return &Overlay{transition: transition, now: now}
}

// Confirm снимает копию корзины и показывает окно. Пустую корзину
// подтвердить нельзя.
func (o *Overlay) Confirm(store *cart.Store) (*Summary, bool) {
	snap := store.Snapshot()
	if snap.Empty() {
		return nil, false
	}

	o.summary = NewSummary(snap, o.now())
	o.shown = true
	o.closingAt = time.Time{}

	return o.summary, true
}

// Acknowledge — «Start New Order»: очищает корзину немедленно и начинает
// скрытие окна. Работает только при открытом окне.
func (o *Overlay) Acknowledge(store *cart.Store) bool {
	if o.State() != Shown {
		return false
	}

	store.Clear()
	o.startClosing()

	return true
}

// Dismiss закрывает окно кликом по фону. Клик внутри окна игнорируется,
// корзина не меняется.
func (o *Overlay) Dismiss(target Target) bool {
	if target != TargetOverlay || o.State() != Shown {
		return false
	}

	o.startClosing()

	return true
}

func (o *Overlay) State() State {
	switch {
	case o.shown:
		return Shown
	case o.closingAt.IsZero():
		return Hidden
	case o.now().Sub(o.closingAt) < o.transition:
		return Closing
	default:
		return Hidden
	}
}

// Summary возвращает показанный заказ, пока окно видно.
func (o *Overlay) Summary() *Summary {
	if o.State() == Hidden {
		return nil
	}

	return o.summary
}

func (o *Overlay) startClosing() {
	o.shown = false
	o.closingAt = o.now()
}
