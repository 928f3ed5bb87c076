package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	pg, err := New(nil, DriverPostgres)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 FROM restaurants WHERE id = $1 AND name = $2", pg.rebind("SELECT 1 FROM restaurants WHERE id = ? AND name = ?"))

	my, err := New(nil, DriverMySQL)
	require.NoError(t, err)
	assert.Equal(t, "WHERE id = ?", my.rebind("WHERE id = ?"))
}

func TestNew_UnknownDriver(t *testing.T) {
	_, err := New(nil, "sqlite")
	assert.Error(t, err)
}

func TestTagsJSON(t *testing.T) {
	assert.Equal(t, "[]", tagsJSON(nil))
	assert.Equal(t, `["Sichuan","spicy"]`, tagsJSON([]string{"Sichuan", "spicy"}))
}
