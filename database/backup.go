package database

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Backups are vacuumed snapshots of the reference data (tariff tables,
// contracts, operator ranges). They are taken before every schema
// migration and nightly by the maintenance task, so a bad tariff import
// can be rolled back to the previous day's tables.

const (
	backupPrefix     = "energiekompas-"
	backupSuffix     = ".db.zip"
	backupTimeLayout = "20060102T150405"
)

func (d *Database) resolveBackupDir() string {
	if d.backupDir != "" {
		return d.backupDir
	}
	return filepath.Join(filepath.Dir(d.path), "backups")
}

// Backup vacuums the database into a timestamped zip archive. The
// uncompressed snapshot is always cleaned up, even when compression
// fails halfway.
func (d *Database) Backup(ctx context.Context) error {
	dir := d.resolveBackupDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create backup directory %s: %w", dir, err)
	}

	stamp := time.Now().UTC().Format(backupTimeLayout)
	snapshot := filepath.Join(dir, backupPrefix+stamp+".db")

	if _, err := d.write.ExecContext(ctx, "VACUUM INTO ?", snapshot); err != nil {
		return fmt.Errorf("vacuum into %s: %w", snapshot, err)
	}
	defer func() {
		if err := os.Remove(snapshot); err != nil && !os.IsNotExist(err) {
			d.logger.Warn("leaving uncompressed snapshot behind", slog.String("path", snapshot), slog.Any("error", err))
		}
	}()

	archive := filepath.Join(dir, backupPrefix+stamp+backupSuffix)
	if err := compressSnapshot(snapshot, archive, filepath.Base(d.path)); err != nil {
		return fmt.Errorf("compress backup %s: %w", archive, err)
	}

	d.logger.Info("database backup complete", slog.String("archive", archive))
	return nil
}

func compressSnapshot(snapshot, archive, entryName string) error {
	src, err := os.Open(snapshot)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(archive)
	if err != nil {
		return err
	}
	defer dst.Close()

	zw := zip.NewWriter(dst)
	entry, err := zw.Create(entryName)
	if err != nil {
		zw.Close()
		return err
	}
	if _, err := io.Copy(entry, src); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	return dst.Close()
}

// PurgeBackups removes archives older than the retention window. Age is
// taken from the timestamp in the filename, not file metadata, so copied
// or restored archives age correctly.
func (d *Database) PurgeBackups(ctx context.Context, retentionDays int) error {
	if retentionDays < 1 {
		return nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	dir := d.resolveBackupDir()
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read backup directory %s: %w", dir, err)
	}

	removed := 0
	for _, file := range files {
		taken, ok := backupTimestamp(file.Name())
		if !ok {
			continue
		}
		if !taken.Before(cutoff) {
			continue
		}

		path := filepath.Join(dir, file.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove expired backup %s: %w", path, err)
		}
		removed++
	}

	if removed > 0 {
		d.logger.Info("expired backups removed", slog.Int("count", removed), slog.Int("retentionDays", retentionDays))
	}
	return nil
}

func backupTimestamp(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, backupPrefix), backupSuffix)
	taken, err := time.Parse(backupTimeLayout, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return taken, true
}
