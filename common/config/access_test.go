package config

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGeneratesDefaults(t *testing.T) {
	p := path.Join(t.TempDir(), "stream-backup.yaml")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultMainConfig(), *c)

	_, err = os.Stat(p)
	assert.NoError(t, err, "expected a default config to be written")
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := path.Join(t.TempDir(), "stream-backup.yaml")
	err := os.WriteFile(p, []byte("store:\n  kind: bolt\nbolt:\n  path: /var/lib/assignments.db\nbackups:\n  includeSeconds: false\n"), 0644)
	require.NoError(t, err)

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, StoreKindBolt, c.Store.Kind)
	assert.Equal(t, "/var/lib/assignments.db", c.Bolt.Path)
	assert.False(t, c.Backups.IncludeSeconds)
	assert.Equal(t, "stream_metadata", c.Backups.Root)
}

func TestLoadDirectoryAppliesFilesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(path.Join(dir, "01-store.yaml"), []byte("store:\n  kind: redis\nredis:\n  addr: redis-a:6379\n"), 0644))
	require.NoError(t, os.WriteFile(path.Join(dir, "02-override.yaml"), []byte("redis:\n  addr: redis-b:6379\n"), 0644))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, StoreKindRedis, c.Store.Kind)
	assert.Equal(t, "redis-b:6379", c.Redis.Address)
}

func TestLoadRejectsInvalidYaml(t *testing.T) {
	p := path.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(p, []byte("store: [unterminated"), 0644))

	_, err := Load(p)
	assert.Error(t, err)
}
