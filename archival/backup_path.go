package archival

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
)

const DefaultBackupsRoot = "stream_metadata"
const AssignmentDirectory = "cubeAssignment"

// NewBackupPath returns root/YYYY-MM-DD_HH-MM-SS for the given time. Years
// shorter than 4 digits are zero padded. Seconds are left off when
// includeSeconds is false, matching older backups.
func NewBackupPath(root string, now time.Time, includeSeconds bool) string {
	if root == "" {
		root = DefaultBackupsRoot
	}
	name := fmt.Sprintf("%04d-%02d-%02d_%02d-%02d", now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute())
	if includeSeconds {
		name = fmt.Sprintf("%s-%02d", name, now.Second())
	}
	return path.Join(root, name)
}

// ReserveBackupPath is NewBackupPath, with a numeric suffix appended when a
// backup already occupies the generated directory. Nothing is created on disk.
func ReserveBackupPath(root string, now time.Time, includeSeconds bool) (string, error) {
	base := NewBackupPath(root, now, includeSeconds)
	candidate := base
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", errors.Wrap(common.ErrIOFailure, err.Error())
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}
