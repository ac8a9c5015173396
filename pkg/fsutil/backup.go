package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

// Backup modes.
const (
	// BackupModeSidecar writes path + BackupSuffix next to the original.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the original path for sidecar backups.
const BackupSuffix = ".ditaspace.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: sidecar mode, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath returns where the backup of path is written, or "" for none.
// Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup saves the original bytes of a file before it is overwritten.
// An existing backup is never replaced, so repeated runs keep the oldest
// original. Returns true if a backup was written.
func CreateBackup(ctx context.Context, info *FileInfo, original []byte, cfg BackupConfig) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	backupPath := ""
	if cfg.Enabled {
		backupPath = BackupPath(info.Path, cfg.Mode)
	}
	if backupPath == "" {
		return false, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, original, info.Mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}
