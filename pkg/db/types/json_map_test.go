package dbtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapScan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"grade":"304","finish":"2B"}`)))
	assert.Equal(t, "304", m["grade"])
	assert.Equal(t, "2B", m["finish"])

	require.NoError(t, m.Scan(nil))
	assert.Nil(t, m)

	require.Error(t, m.Scan(42))
}

func TestJSONMapValue(t *testing.T) {
	var nilMap JSONMap
	v, err := nilMap.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	m := JSONMap{"thickness_mm": 1.5}
	v, err = m.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"thickness_mm":1.5}`, v.(string))
}
