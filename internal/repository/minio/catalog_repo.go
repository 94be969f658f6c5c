package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/minio/minio-go/v7"
)

// maxObjectSize ограничивает размер объекта каталога.
const maxObjectSize = 8 << 20

// CatalogRepo читает JSON каталога из объекта MinIO (S3).
type CatalogRepo struct {
	mc     *minio.Client
	bucket string
	key    string
}

func NewCatalogRepo(mc *minio.Client, bucket string, key string) *CatalogRepo {
	return &CatalogRepo{
		mc:     mc,
		bucket: bucket,
		key:    key,
	}
}

func (c *CatalogRepo) Name() string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, c.key)
}

// Fetch скачивает объект каталога целиком.
func (c *CatalogRepo) Fetch(ctx context.Context) ([]byte, error) {
	obj, err := c.mc.GetObject(ctx, c.bucket, c.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer obj.Close()

	return readObject(obj, c.Name())
}

// readObject отклоняет объект больше maxObjectSize вместо обрезки.
func readObject(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxObjectSize+1))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if len(data) > maxObjectSize {
		return nil, e.Wrap(fmt.Sprintf("%s: more than %d bytes", name, maxObjectSize), e.ErrCatalogTooLarge)
	}

	return data, nil
}

// ParseS3URI разбирает адрес вида s3://bucket/path/to/key.
func ParseS3URI(uri string) (bucket string, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", "", e.Wrap(whereami.WhereAmI(), err)
	}

	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("%s: invalid s3 uri %q", whereami.WhereAmI(), uri)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("%s: s3 uri %q has no object key", whereami.WhereAmI(), uri)
	}

	return u.Host, key, nil
}
