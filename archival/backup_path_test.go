package archival

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackupPath(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 5, 0, time.UTC)

	assert.Equal(t, "stream_metadata/2024-01-01_10-00-05", NewBackupPath("stream_metadata", now, true))
	assert.Equal(t, "stream_metadata/2024-01-01_10-00", NewBackupPath("stream_metadata", now, false))
	assert.Equal(t, "stream_metadata/2024-01-01_10-00-05", NewBackupPath("", now, true))
	assert.Equal(t, "/srv/backups/2024-01-01_10-00-05", NewBackupPath("/srv/backups", now, true))
}

func TestNewBackupPathPadding(t *testing.T) {
	early := time.Date(987, time.March, 4, 5, 6, 7, 0, time.UTC)
	assert.Equal(t, "stream_metadata/0987-03-04_05-06-07", NewBackupPath(DefaultBackupsRoot, early, true))

	far := time.Date(123456, time.December, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "stream_metadata/123456-12-31_23-59-59", NewBackupPath(DefaultBackupsRoot, far, true))
}

func TestNewBackupPathSortsChronologically(t *testing.T) {
	a := NewBackupPath(DefaultBackupsRoot, time.Date(2024, 1, 1, 9, 59, 59, 0, time.UTC), true)
	b := NewBackupPath(DefaultBackupsRoot, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), true)
	c := NewBackupPath(DefaultBackupsRoot, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), true)
	assert.True(t, a < b)
	assert.True(t, b < c)
}

func TestReserveBackupPath(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	first, err := ReserveBackupPath(root, now, true)
	require.NoError(t, err)
	assert.Equal(t, path.Join(root, "2024-01-01_10-00-00"), first)
	_, err = os.Stat(first)
	assert.True(t, os.IsNotExist(err), "reserving should not create the directory")

	require.NoError(t, os.MkdirAll(first, 0755))
	second, err := ReserveBackupPath(root, now, true)
	require.NoError(t, err)
	assert.Equal(t, first+"_1", second)

	require.NoError(t, os.MkdirAll(second, 0755))
	third, err := ReserveBackupPath(root, now, true)
	require.NoError(t, err)
	assert.Equal(t, first+"_2", third)
}

func TestPersistAssignmentsToDirectoryOverwrite(t *testing.T) {
	dir := path.Join(t.TempDir(), "backup", AssignmentDirectory)
	persist := PersistAssignmentsToDirectory(dir)

	fname, err := persist("sales_cube.json", []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, path.Join(dir, "sales_cube.json"), fname)

	_, err = persist("sales_cube.json", []byte("two"))
	require.NoError(t, err)

	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))
}
