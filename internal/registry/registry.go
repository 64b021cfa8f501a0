// Package registry holds the in-memory entity collections and their
// persistence bookkeeping. It is the single owner of the backing key-value
// store: every collection write goes through it and stamps the last-change
// timestamp, which drives the backup-staleness signal.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
	"github.com/madhuerpdirect-droid/gts-chits/internal/keyval"
)

// Registry is an explicit store passed to the engines and services; there is
// no hidden process-wide state. The running instance owns the backing store
// exclusively, so no locking discipline is needed beyond the adapter's own.
type Registry struct {
	kv keyval.KV

	groups   []core.Group
	members  []core.Member
	payments []core.Payment

	lastBackup time.Time
	lastChange time.Time

	now func() time.Time
}

// Load builds a registry from the backing store. Missing or malformed
// collections degrade to empty with a warning; load never fails on bad data,
// only on adapter errors.
func Load(ctx context.Context, kv keyval.KV) (*Registry, error) {
	r := &Registry{kv: kv, now: time.Now}

	if err := loadCollection(ctx, kv, keyval.KeyGroups, &r.groups); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, kv, keyval.KeyMembers, &r.members); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, kv, keyval.KeyPayments, &r.payments); err != nil {
		return nil, err
	}
	r.lastBackup = loadTimestamp(ctx, kv, keyval.KeyLastBackup)
	r.lastChange = loadTimestamp(ctx, kv, keyval.KeyLastChange)

	slog.InfoContext(ctx, "Registry loaded",
		"groups", len(r.groups),
		"members", len(r.members),
		"payments", len(r.payments),
		"needs_backup", r.NeedsBackup())
	return r, nil
}

func loadCollection[T any](ctx context.Context, kv keyval.KV, key string, dst *[]T) error {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		slog.WarnContext(ctx, "Stored collection is malformed, starting empty",
			"key", key, "error", err)
		*dst = nil
	}
	return nil
}

func loadTimestamp(ctx context.Context, kv keyval.KV, key string) time.Time {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		slog.WarnContext(ctx, "Stored timestamp is malformed", "key", key, "value", raw)
		return time.Time{}
	}
	return t
}

// Groups returns a copy of the group collection.
func (r *Registry) Groups() []core.Group {
	return append([]core.Group(nil), r.groups...)
}

// Members returns a copy of the member collection.
func (r *Registry) Members() []core.Member {
	return append([]core.Member(nil), r.members...)
}

// Payments returns a copy of the payment collection.
func (r *Registry) Payments() []core.Payment {
	return append([]core.Payment(nil), r.payments...)
}

// SetGroups replaces the group collection and persists it.
func (r *Registry) SetGroups(ctx context.Context, groups []core.Group) error {
	if err := r.persist(ctx, keyval.KeyGroups, groups); err != nil {
		return err
	}
	r.groups = groups
	return nil
}

// SetMembers replaces the member collection and persists it.
func (r *Registry) SetMembers(ctx context.Context, members []core.Member) error {
	if err := r.persist(ctx, keyval.KeyMembers, members); err != nil {
		return err
	}
	r.members = members
	return nil
}

// SetPayments replaces the payment collection and persists it.
func (r *Registry) SetPayments(ctx context.Context, payments []core.Payment) error {
	if err := r.persist(ctx, keyval.KeyPayments, payments); err != nil {
		return err
	}
	r.payments = payments
	return nil
}

// AddGroup validates and appends a new group.
func (r *Registry) AddGroup(ctx context.Context, g core.Group) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return r.SetGroups(ctx, append(r.Groups(), g))
}

// SetGroupStatus toggles a group's lifecycle status. Groups referenced by
// payments are otherwise immutable.
func (r *Registry) SetGroupStatus(ctx context.Context, groupID string, status core.GroupStatus) error {
	groups := r.Groups()
	for i := range groups {
		if groups[i].ID == groupID {
			groups[i].Status = status
			return r.SetGroups(ctx, groups)
		}
	}
	return core.ErrGroupNotFound
}

// DeleteGroup removes a group. Members and payments referencing it are left
// in place and show as unassigned; cascading deletion is deliberately not
// performed.
func (r *Registry) DeleteGroup(ctx context.Context, groupID string) error {
	groups := r.Groups()
	kept := groups[:0]
	found := false
	for _, g := range groups {
		if g.ID == groupID {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return core.ErrGroupNotFound
	}
	if orphans := core.MembersOfGroup(r.members, groupID); orphans > 0 {
		slog.WarnContext(ctx, "Deleting group leaves members unassigned",
			"group_id", groupID, "orphaned_members", orphans)
	}
	return r.SetGroups(ctx, kept)
}

// DeleteMember removes a subscriber. Their payments remain for the audit
// trail.
func (r *Registry) DeleteMember(ctx context.Context, memberID string) error {
	members := r.Members()
	kept := members[:0]
	found := false
	for _, m := range members {
		if m.ID == memberID {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return core.ErrMemberNotFound
	}
	return r.SetMembers(ctx, kept)
}

// persist writes a collection and stamps lastChange. The two writes are as
// atomic as the underlying adapter allows.
func (r *Registry) persist(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	now := r.now().UTC()
	if err := r.kv.Set(ctx, keyval.KeyLastChange, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("stamp last change: %w", err)
	}
	r.lastChange = now
	return nil
}

// MarkBackedUp stamps the backup timestamp, clearing staleness until the
// next mutation.
func (r *Registry) MarkBackedUp(ctx context.Context) error {
	now := r.now().UTC()
	if err := r.kv.Set(ctx, keyval.KeyLastBackup, now.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("stamp last backup: %w", err)
	}
	r.lastBackup = now
	return nil
}

// NeedsBackup recomputes the staleness signal from the two timestamps. It is
// never stored: unset backup with any data present, or a change newer than
// the last backup.
func (r *Registry) NeedsBackup() bool {
	empty := len(r.groups) == 0 && len(r.members) == 0 && len(r.payments) == 0
	if r.lastBackup.IsZero() {
		return !empty
	}
	return r.lastChange.After(r.lastBackup)
}

// LastBackup returns the last backup time; zero when never backed up.
func (r *Registry) LastBackup() time.Time { return r.lastBackup }

// LastChange returns the last mutation time; zero when never changed.
func (r *Registry) LastChange() time.Time { return r.lastChange }

// CollectionVPA returns the configured collection address preference.
func (r *Registry) CollectionVPA(ctx context.Context) string {
	v, _, _ := r.kv.Get(ctx, keyval.KeyUPI)
	return v
}

// SetCollectionVPA stores the collection address preference. Preferences do
// not count as data mutations for staleness purposes.
func (r *Registry) SetCollectionVPA(ctx context.Context, vpa string) error {
	return r.kv.Set(ctx, keyval.KeyUPI, vpa)
}

// WhatsAppUseWeb returns the messaging-channel preference.
func (r *Registry) WhatsAppUseWeb(ctx context.Context) bool {
	v, _, _ := r.kv.Get(ctx, keyval.KeyWAWeb)
	return v == "true"
}

// SetWhatsAppUseWeb stores the messaging-channel preference.
func (r *Registry) SetWhatsAppUseWeb(ctx context.Context, useWeb bool) error {
	return r.kv.Set(ctx, keyval.KeyWAWeb, fmt.Sprintf("%t", useWeb))
}
