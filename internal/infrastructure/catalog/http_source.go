package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

// maxPayloadSize ограничивает размер каталога, читаемого из сети или с диска.
const maxPayloadSize = 8 << 20

// HTTPSource получает каталог GET-запросом.
type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) Name() string {
	return s.url
}

// Fetch выполняет один запрос без повторов. Ответ не из диапазона 2xx — ошибка.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, e.Wrap(fmt.Sprintf("GET %s: status %d", s.url, resp.StatusCode), e.ErrCatalogUnavailable)
	}

	return readPayload(resp.Body, s.url)
}

// readPayload читает не больше maxPayloadSize байт. Более длинный каталог
// не обрезается, а отклоняется.
func readPayload(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxPayloadSize+1))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if len(data) > maxPayloadSize {
		return nil, e.Wrap(fmt.Sprintf("%s: more than %d bytes", name, maxPayloadSize), e.ErrCatalogTooLarge)
	}

	return data, nil
}
