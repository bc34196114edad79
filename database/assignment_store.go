package database

import (
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/types"
)

func (d *Database) ListAssignments(ctx rcontext.RequestContext) ([]*types.CubeAssignment, error) {
	records, err := d.CubeAssignments.Prepare(ctx).GetAll()
	if err != nil {
		return nil, classifyError(err)
	}
	assignments := make([]*types.CubeAssignment, 0, len(records))
	for _, r := range records {
		assignments = append(assignments, &types.CubeAssignment{
			CubeName:    r.CubeName,
			Assignments: r.Assignments,
		})
	}
	return assignments, nil
}

func (d *Database) SaveAssignment(ctx rcontext.RequestContext, assignment *types.CubeAssignment) error {
	if assignment == nil || assignment.CubeName == "" {
		return errors.Wrap(common.ErrStoreRejected, "cube name is required")
	}
	return classifyError(d.CubeAssignments.Prepare(ctx).Upsert(&DbCubeAssignment{
		CubeName:    assignment.CubeName,
		Assignments: assignment.Assignments,
	}))
}

// classifyError maps data exceptions (class 22) and integrity constraint
// violations (class 23) to ErrStoreRejected. Everything else means the store
// could not do its job.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "22", "23":
			return errors.Wrap(common.ErrStoreRejected, pqErr.Message)
		}
		return errors.Wrap(common.ErrStoreUnavailable, pqErr.Message)
	}
	return errors.Wrap(common.ErrStoreUnavailable, err.Error())
}
