package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateSlot means another writer inserted the same slot key
	// first.
	ErrDuplicateSlot = errors.New("slot already exists")

	// ErrStaleSlot means a guarded update matched no row: the slot was
	// modified (or removed) since it was read.
	ErrStaleSlot = errors.New("slot was modified by another transaction")
)

// isDuplicateKey detects a unique-constraint violation on either
// backend. Postgres reports SQLSTATE 23505; the sqlite driver only
// gives us the message text.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
