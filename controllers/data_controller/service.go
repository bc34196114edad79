package data_controller

import (
	"github.com/t2bot/stream-metadata-backup/storage"
)

// BackupRestoreService copies cube assignments between the metadata store and
// backup directories. The two operations share nothing but the store.
type BackupRestoreService struct {
	store storage.AssignmentStore
}

func NewBackupRestoreService(store storage.AssignmentStore) *BackupRestoreService {
	return &BackupRestoreService{store: store}
}
