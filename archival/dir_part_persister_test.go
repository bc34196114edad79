package archival

import (
	"errors"
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t2bot/stream-metadata-backup/common"
)

func TestPersistAssignmentsToDirectory(t *testing.T) {
	dir := path.Join(t.TempDir(), "2024-01-01_10-00-00", AssignmentDirectory)
	persist := PersistAssignmentsToDirectory(dir)

	fname, err := persist("sales_cube.json", []byte("{}\n"))
	require.NoError(t, err)
	assert.Equal(t, path.Join(dir, "sales_cube.json"), fname)

	b, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(b))
}

func TestPersistAssignmentsOverwritesAndTouches(t *testing.T) {
	dir := t.TempDir()
	fname := path.Join(dir, "sales_cube.json")
	require.NoError(t, os.WriteFile(fname, []byte("old contents"), 0644))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(fname, old, old))

	before := time.Now().Add(-time.Second)
	_, err := PersistAssignmentsToDirectory(dir)("sales_cube.json", []byte("{}\n"))
	require.NoError(t, err)

	info, err := os.Stat(fname)
	require.NoError(t, err)
	assert.Equal(t, int64(3), info.Size())
	assert.True(t, info.ModTime().After(before), "mtime %s", info.ModTime())
}

func TestPersistAssignmentsDirectoryBlocked(t *testing.T) {
	root := t.TempDir()
	blocker := path.Join(root, "2024-01-01_10-00-00")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	_, err := PersistAssignmentsToDirectory(path.Join(blocker, AssignmentDirectory))("sales_cube.json", []byte("{}\n"))
	assert.True(t, errors.Is(err, common.ErrIOFailure), "got %v", err)
}
