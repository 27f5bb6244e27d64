package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func countBackups(t *testing.T, dir string) int {
	t.Helper()
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatal(err)
	}
	n := 0
	for _, f := range files {
		if _, ok := backupTimestamp(f.Name()); ok {
			n++
		}
	}
	return n
}

func TestBackupWritesTimestampedArchive(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "snapshots")

	// Opening a fresh database applies the initial migration, which takes
	// a backup first.
	db, err := New(context.Background(), filepath.Join(dir, "test.db"), backupDir)
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, 1, countBackups(t, backupDir))

	files, err := os.ReadDir(backupDir)
	require.NoError(t, err)
	for _, f := range files {
		taken, ok := backupTimestamp(f.Name())
		require.True(t, ok, "unexpected file %s in backup dir", f.Name())
		require.WithinDuration(t, time.Now().UTC(), taken, time.Minute)
	}
}

func TestBackupDirDefaultsNextToDatabase(t *testing.T) {
	dir := t.TempDir()

	db, err := New(context.Background(), filepath.Join(dir, "test.db"), "")
	require.NoError(t, err)
	defer db.Close()

	require.Equal(t, 1, countBackups(t, filepath.Join(dir, "backups")))
}

func TestPurgeBackupsUsesFilenameAge(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "snapshots")

	db, err := New(context.Background(), filepath.Join(dir, "test.db"), backupDir)
	require.NoError(t, err)
	defer db.Close()

	expired := filepath.Join(backupDir, backupPrefix+"20200101T030000"+backupSuffix)
	require.NoError(t, os.WriteFile(expired, []byte("old"), 0644))
	unrelated := filepath.Join(backupDir, "notes.txt")
	require.NoError(t, os.WriteFile(unrelated, []byte("keep"), 0644))

	require.NoError(t, db.PurgeBackups(context.Background(), 90))

	_, err = os.Stat(expired)
	require.True(t, os.IsNotExist(err), "expired archive should be removed")
	_, err = os.Stat(unrelated)
	require.NoError(t, err, "non-backup files must be left alone")
	// The fresh pre-migration archive is within retention.
	require.Equal(t, 1, countBackups(t, backupDir))
}

func TestPurgeBackupsZeroRetentionIsNoop(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, "snapshots")

	db, err := New(context.Background(), filepath.Join(dir, "test.db"), backupDir)
	require.NoError(t, err)
	defer db.Close()

	before := countBackups(t, backupDir)
	require.NoError(t, db.PurgeBackups(context.Background(), 0))
	require.Equal(t, before, countBackups(t, backupDir))
}
