// Package session хранит корзины покупателей в памяти процесса.
// Каждая сессия обслуживает свои события строго по одному.
package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/storefront/internal/cart"
	"github.com/DRSN-tech/storefront/internal/order"
	"github.com/DRSN-tech/storefront/internal/view"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

// Session — корзина, её представление и окно подтверждения одного покупателя.
type Session struct {
	ID      string
	Store   *cart.Store
	View    *view.CartView
	Overlay *order.Overlay

	mu       sync.Mutex
	now      func() time.Time
	lastSeen atomic.Int64
	detach   func()
}

// Do выполняет fn под блокировкой сессии. Завершение fn считается
// активностью покупателя.
func (s *Session) Do(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.touch()
	fn(s)
}

func (s *Session) touch() {
	s.lastSeen.Store(s.now().UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

type Registry struct {
	mu          sync.Mutex
	sessions    map[string]*Session
	transition  time.Duration
	idleTimeout time.Duration
	now         func() time.Time
	logger      logger.Logger
}

func NewRegistry(transition, idleTimeout time.Duration, now func() time.Time, logger logger.Logger) *Registry {
	if now == nil {
		now = time.Now
	}

	return &Registry{
		sessions:    make(map[string]*Session),
		transition:  transition,
		idleTimeout: idleTimeout,
		now:         now,
		logger:      logger,
	}
}

// Acquire возвращает сессию по идентификатору или создаёт новую, если
// идентификатор пуст, некорректен или неизвестен.
func (r *Registry) Acquire(id string) (s *Session, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		s.touch()
		return s, false
	}

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s = r.newSession(id)
	r.sessions[id] = s
	r.logger.Debugf("Session created: %s", id)

	return s, true
}

// Sweep удаляет сессии, простаивающие дольше idleTimeout. Сессия, занятая
// запросом, пропускается до следующего прохода.
func (r *Registry) Sweep() int {
	if r.idleTimeout <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for id, s := range r.sessions {
		if s.idleSince(now) < r.idleTimeout || !s.mu.TryLock() {
			continue
		}
		if s.idleSince(now) < r.idleTimeout {
			s.mu.Unlock()
			continue
		}
		s.detach()
		s.mu.Unlock()
		delete(r.sessions, id)
		evicted++
	}

	if evicted > 0 {
		r.logger.Infof("Evicted %d idle sessions", evicted)
	}

	return evicted
}

// Run периодически вызывает Sweep до отмены ctx.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *Registry) newSession(id string) *Session {
	store := cart.NewStore()
	cartView := view.NewCartView()

	s := &Session{
		ID:      id,
		Store:   store,
		View:    cartView,
		Overlay: order.NewOverlay(r.transition, r.now),
		now:     r.now,
		detach:  cartView.Attach(store),
	}
	s.touch()

	return s
}
