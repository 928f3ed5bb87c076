package cmd

import (
	"errors"
	"strings"

	"menu_agent/internal/domain"
)

// describe turns known failures into actionable messages.
func describe(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return "invalid input: " + ve.Error()
	case errors.Is(err, domain.ErrNotFound):
		return err.Error()
	case isDBLockError(err):
		return err.Error() + "\n" +
			"  → the bolt file is held by another process (is the API running?)\n" +
			"  → stop it or point --bolt-path at a different file"
	}
	return err.Error()
}

// bbolt reports "timeout" when it cannot take the file lock in time.
func isDBLockError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "timeout")
}
