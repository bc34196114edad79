package data_controller

import (
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/t2bot/stream-metadata-backup/archival"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/metrics"
)

// Restore reads sourceDir/<cubeName>.json and saves it to the store. A missing
// file is logged and reported as common.ErrFileNotFound without touching the
// store. Store errors are returned unchanged.
func (s *BackupRestoreService) Restore(ctx rcontext.RequestContext, sourceDir string, cubeName string) error {
	fileName, err := archival.AssignmentFileName(cubeName)
	if err != nil {
		recordFailure("restore", err)
		return err
	}
	fname := path.Join(sourceDir, fileName)
	ctx = ctx.LogWithFields(logrus.Fields{"file": fname})

	b, err := os.ReadFile(fname)
	if err != nil {
		if os.IsNotExist(err) {
			ctx.Log.Warnf("%s not found", fname)
			recordFailure("restore", common.ErrFileNotFound)
			return errors.Wrap(common.ErrFileNotFound, fname)
		}
		recordFailure("restore", common.ErrIOFailure)
		return errors.Wrap(common.ErrIOFailure, err.Error())
	}

	assignment, err := archival.DecodeAssignment(b)
	if err != nil {
		recordFailure("restore", err)
		return errors.Wrapf(err, "error reading %s", fname)
	}
	if assignment.CubeName != cubeName {
		ctx.Log.Warnf("File for %s holds the assignment of %s", cubeName, assignment.CubeName)
	}

	ctx.Log.WithFields(logrus.Fields{
		"cube":         assignment.CubeName,
		"replica_sets": assignment.ReplicaSetIds(),
	}).Info("Found assignment, saving to store")
	if err = s.store.SaveAssignment(ctx, assignment); err != nil {
		recordFailure("restore", err)
		return err
	}

	metrics.AssignmentsRestored.Inc()
	metrics.LastSuccessTimestamp.WithLabelValues("restore").Set(float64(time.Now().Unix()))
	return nil
}
