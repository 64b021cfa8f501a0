package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/madhuerpdirect-droid/gts-chits/internal/core"
	"github.com/madhuerpdirect-droid/gts-chits/internal/registry"
)

// ErrMalformedImport is returned when a restore file is missing one of
// the three collections.
var ErrMalformedImport = errors.New("malformed database file: groups, members and payments are all required")

// Snapshot is the portable on-disk database format.
type Snapshot struct {
	Groups   []core.Group   `json:"groups"`
	Members  []core.Member  `json:"members"`
	Payments []core.Payment `json:"payments"`
}

// BackupService exports and restores the whole database as one JSON file.
type BackupService struct {
	reg *registry.Registry
	dir string
}

func NewBackupService(reg *registry.Registry, dir string) *BackupService {
	if dir == "" {
		dir = "."
	}
	return &BackupService{reg: reg, dir: dir}
}

// BackupFileName returns the canonical backup file name for the date.
func BackupFileName(t time.Time) string {
	return fmt.Sprintf("GTS_DATABASE_%s.json", t.Format("2006-01-02"))
}

// Export writes all three collections to a dated JSON file in the backup
// directory and stamps the backup timestamp. Returns the file path.
func (s *BackupService) Export(ctx context.Context) (string, error) {
	snap := Snapshot{
		Groups:   s.reg.Groups(),
		Members:  s.reg.Members(),
		Payments: s.reg.Payments(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	path := filepath.Join(s.dir, BackupFileName(time.Now()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	if err := s.reg.MarkBackedUp(ctx); err != nil {
		return "", fmt.Errorf("stamp backup: %w", err)
	}

	slog.InfoContext(ctx, "Database exported",
		"path", path,
		"groups", len(snap.Groups),
		"members", len(snap.Members),
		"payments", len(snap.Payments))
	return path, nil
}

// Restore replaces all three collections with the contents of the file.
// The file must carry groups, members and payments. Partial files are
// rejected without touching the current data.
func (s *BackupService) Restore(ctx context.Context, path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read backup: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("parse backup: %w", err)
	}
	for _, key := range []string{"groups", "members", "payments"} {
		if _, ok := raw[key]; !ok {
			return Snapshot{}, ErrMalformedImport
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse backup: %w", err)
	}

	if err := s.reg.SetGroups(ctx, snap.Groups); err != nil {
		return Snapshot{}, fmt.Errorf("restore groups: %w", err)
	}
	if err := s.reg.SetMembers(ctx, snap.Members); err != nil {
		return Snapshot{}, fmt.Errorf("restore members: %w", err)
	}
	if err := s.reg.SetPayments(ctx, snap.Payments); err != nil {
		return Snapshot{}, fmt.Errorf("restore payments: %w", err)
	}

	slog.InfoContext(ctx, "Database restored",
		"path", path,
		"groups", len(snap.Groups),
		"members", len(snap.Members),
		"payments", len(snap.Payments))
	return snap, nil
}
