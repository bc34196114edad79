package archival

import (
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
)

// AssignmentPersister writes one encoded assignment, returning where it went.
type AssignmentPersister func(fileName string, data []byte) (string, error)

// PersistAssignmentsToDirectory writes files into directory, creating it on
// the first write. Existing files of the same name are overwritten and their
// modification time is set to the time of the write.
func PersistAssignmentsToDirectory(directory string) AssignmentPersister {
	return func(fileName string, data []byte) (string, error) {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return "", errors.Wrap(common.ErrIOFailure, err.Error())
		}
		fname := path.Join(directory, fileName)
		if err := os.WriteFile(fname, data, 0644); err != nil {
			return "", errors.Wrap(common.ErrIOFailure, err.Error())
		}
		now := time.Now()
		if err := os.Chtimes(fname, now, now); err != nil {
			return "", errors.Wrap(common.ErrIOFailure, err.Error())
		}
		return fname, nil
	}
}
