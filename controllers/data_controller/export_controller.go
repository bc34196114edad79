package data_controller

import (
	"path"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/t2bot/stream-metadata-backup/archival"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/metrics"
)

// Backup writes every assignment in the store to
// destinationRoot/cubeAssignment/<cubeName>.json. The first failure stops the
// run; files written before it are left in place. The number of files written
// is returned either way.
func (s *BackupRestoreService) Backup(ctx rcontext.RequestContext, destinationRoot string) (int, error) {
	ctx = ctx.LogWithFields(logrus.Fields{"destination": destinationRoot})

	assignments, err := s.store.ListAssignments(ctx)
	if err != nil {
		recordFailure("backup", err)
		return 0, err
	}
	ctx.Log.Infof("Found %d assignments", len(assignments))

	persist := archival.PersistAssignmentsToDirectory(path.Join(destinationRoot, archival.AssignmentDirectory))
	written := 0
	for _, assignment := range assignments {
		fileName, err := archival.AssignmentFileName(assignment.CubeName)
		if err != nil {
			recordFailure("backup", err)
			return written, err
		}
		b, err := archival.EncodeAssignment(assignment)
		if err != nil {
			recordFailure("backup", err)
			return written, err
		}
		fname, err := persist(fileName, b)
		if err != nil {
			recordFailure("backup", err)
			return written, err
		}

		if abs, err := filepath.Abs(fname); err == nil {
			fname = abs
		}
		ctx.Log.Infof("Saved %s (%s) to %s", assignment.CubeName, humanize.Bytes(uint64(len(b))), fname)
		written++
		metrics.AssignmentsBackedUp.Inc()
		metrics.BackupBytesWritten.Add(float64(len(b)))
	}

	metrics.LastSuccessTimestamp.WithLabelValues("backup").Set(float64(time.Now().Unix()))
	return written, nil
}
