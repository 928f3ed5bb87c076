package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"menu_agent/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	out, err := run(t, "--store", "memory", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded sample catalog")
	assert.Nil(t, sess, "session must be closed after the command")
}

func TestItemsCommand_RejectsBadFilter(t *testing.T) {
	_, err := run(t, "--store", "memory", "items", "--max-price", "-1")
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, "max_price", ve.Fields[0].Field)
}

func TestRecommendCommand_EmptyStoreNote(t *testing.T) {
	out, err := run(t, "--store", "memory", "recommend", "--region", "sichuan")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching items")
}

func TestResetCommand_RequiresConfirm(t *testing.T) {
	_, err := run(t, "--store", "memory", "reset")
	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve), "got %v", err)
}

func TestChangedValues(t *testing.T) {
	require.NoError(t, itemsCmd.Flags().Set("restaurant-id", "3"))
	v := changedValues(itemsCmd, criteriaNames()...)
	assert.Equal(t, "3", v.Get("restaurant_id"))
	assert.NotContains(t, v, "q")
}

func TestDescribeLockError(t *testing.T) {
	msg := describe(errors.New("bbolt open: timeout"))
	assert.Contains(t, msg, "--bolt-path")
}
