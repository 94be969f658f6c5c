package catalog

import (
	"context"
	"os"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

// FileSource читает каталог с локального диска.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file://" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer f.Close()

	return readPayload(f, s.Name())
}
