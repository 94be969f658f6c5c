// Package catalog загружает каталог товаров один раз при старте приложения.
package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// Source отдаёт сырой JSON каталога.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Name() string
}

// Cache хранит сырой JSON каталога между перезапусками.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	Delete(ctx context.Context, key string) error
}

// Loader выполняет одну попытку загрузки каталога. Повторов и отмены нет:
// при ошибке каталог остаётся пустым.
type Loader struct {
	source       Source
	cache        Cache
	logger       logger.Logger
	fetchTimeout time.Duration
	onLoaded     func([]domain.Product)

	once    sync.Once
	done    chan struct{}
	catalog atomic.Pointer[Catalog]
	err     error
}

// Option настраивает Loader.
type Option func(*Loader)

// WithCache включает кэш сырого каталога.
func WithCache(cache Cache) Option {
	return func(l *Loader) {
		l.cache = cache
	}
}

// WithOnLoaded задаёт обработчик, получающий товары ровно один раз после
// успешной загрузки.
func WithOnLoaded(fn func([]domain.Product)) Option {
	return func(l *Loader) {
		l.onLoaded = fn
	}
}

func NewLoader(source Source, fetchTimeout time.Duration, logger logger.Logger, opts ...Option) *Loader {
	l := &Loader{
		source:       source,
		logger:       logger,
		fetchTimeout: fetchTimeout,
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Start запускает загрузку в фоне. Повторные вызовы ничего не делают.
func (l *Loader) Start() {
	l.once.Do(func() {
		go l.run()
	})
}

// Done закрывается, когда попытка загрузки завершилась.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Err возвращает ошибку загрузки. Имеет смысл только после Done.
func (l *Loader) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// Catalog возвращает загруженный каталог или пустой, пока загрузки не было.
func (l *Loader) Catalog() *Catalog {
	if c := l.catalog.Load(); c != nil {
		return c
	}

	return NewCatalog(nil)
}

func (l *Loader) run() {
	const op = "Loader.run"
	defer close(l.done)

	products, err := l.load()
	if err != nil {
		l.err = e.Wrap(op, err)
		l.logger.Errorf(l.err, "Error loading catalog from %s", l.source.Name())
		return
	}

	l.catalog.Store(NewCatalog(products))
	l.logger.Infof("Catalog loaded from %s: %d products", l.source.Name(), len(products))

	if l.onLoaded != nil {
		l.onLoaded(products)
	}
}

func (l *Loader) load() ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.fetchTimeout)
	defer cancel()

	key := l.cacheKey()
	if l.cache != nil {
		payload, err := l.cache.Get(ctx, key)
		switch {
		case err == nil:
			products, decodeErr := Decode(payload)
			if decodeErr == nil {
				l.logger.Debugf("Catalog served from cache, key: %s", key)
				return products, nil
			}
			l.logger.Warnf("Cached catalog is malformed, fetching from source: %v", decodeErr)
			if err := l.cache.Delete(ctx, key); err != nil {
				l.logger.Warnf("Failed to evict malformed catalog, key: %s: %v", key, err)
			}
		case errors.Is(err, e.ErrCacheMiss):
			l.logger.Debugf("Catalog cache miss, key: %s", key)
		default:
			l.logger.Warnf("Catalog cache lookup failed: %v", err)
		}
	}

	payload, err := l.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	products, err := Decode(payload)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Set(ctx, key, payload); err != nil {
			l.logger.Warnf("Failed to cache catalog: %v", err)
		}
	}

	return products, nil
}

func (l *Loader) cacheKey() string {
	return "catalog:" + l.source.Name()
}
