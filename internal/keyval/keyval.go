// Package keyval defines the outbound persistence port: a string key-value
// store holding the serialized entity collections and bookkeeping scalars.
package keyval

import (
	"context"
	"errors"
)

// Store keys. The names match the original persisted layout so existing
// data survives a backend swap.
const (
	KeyGroups     = "gts_chits_groups"
	KeyMembers    = "gts_chits_members"
	KeyPayments   = "gts_chits_payments"
	KeyLastBackup = "gts_chits_last_backup"
	KeyLastChange = "gts_chits_last_change"
	KeyUPI        = "gts_chits_upi"
	KeyWAWeb      = "gts_chits_wa_web"
)

// ErrQuotaExceeded reports that the underlying store refused a write for
// lack of space. Callers surface it to the operator with a prompt to export
// data; it is never fatal.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KV is the persistence port. All values are strings; collections are stored
// as JSON arrays, timestamps as RFC 3339.
type KV interface {
	// Get returns the value for key. The boolean is false when the key has
	// never been written.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
