package minio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3URI(t *testing.T) {
	bucket, key, err := ParseS3URI("s3://storefront/catalog/data.json")
	require.NoError(t, err)
	assert.Equal(t, "storefront", bucket)
	assert.Equal(t, "catalog/data.json", key)

	for _, bad := range []string{"s3://storefront", "s3:///data.json", "http://storefront/data.json", "s3://storefront/"} {
		_, _, err := ParseS3URI(bad)
		assert.Error(t, err, bad)
	}
}

func TestCatalogRepo_Name(t *testing.T) {
	repo := NewCatalogRepo(nil, "storefront", "catalog/data.json")
	assert.Equal(t, "s3://storefront/catalog/data.json", repo.Name())
}

func TestReadObject_RejectsOversizedObject(t *testing.T) {
	data, err := readObject(strings.NewReader(`[]`), "s3://storefront/data.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	exact := bytes.Repeat([]byte(" "), maxObjectSize)
	data, err = readObject(bytes.NewReader(exact), "s3://storefront/data.json")
	require.NoError(t, err)
	assert.Len(t, data, maxObjectSize)

	_, err = readObject(bytes.NewReader(append(exact, ' ')), "s3://storefront/data.json")
	require.ErrorIs(t, err, e.ErrCatalogTooLarge)
}
