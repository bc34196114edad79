package database

import (
	"database/sql"
	"errors"

	"github.com/t2bot/stream-metadata-backup/common/rcontext"
)

type DbCubeAssignment struct {
	CubeName    string
	Assignments PartitionsJson
}

const selectAllCubeAssignments = "SELECT cube_name, assignments FROM cube_assignments ORDER BY cube_name;"
const upsertCubeAssignment = "INSERT INTO cube_assignments (cube_name, assignments) VALUES ($1, $2) ON CONFLICT (cube_name) DO UPDATE SET assignments = EXCLUDED.assignments;"

type cubeAssignmentsTableStatements struct {
	selectAllCubeAssignments *sql.Stmt
	upsertCubeAssignment     *sql.Stmt
}

type cubeAssignmentsTableWithContext struct {
	statements *cubeAssignmentsTableStatements
	ctx        rcontext.RequestContext
}

func prepareCubeAssignmentsTables(db *sql.DB) (*cubeAssignmentsTableStatements, error) {
	var err error
	var stmts = &cubeAssignmentsTableStatements{}

	if stmts.selectAllCubeAssignments, err = db.Prepare(selectAllCubeAssignments); err != nil {
		return nil, errors.New("error preparing selectAllCubeAssignments: " + err.Error())
	}
	if stmts.upsertCubeAssignment, err = db.Prepare(upsertCubeAssignment); err != nil {
		return nil, errors.New("error preparing upsertCubeAssignment: " + err.Error())
	}

	return stmts, nil
}

func (s *cubeAssignmentsTableStatements) Prepare(ctx rcontext.RequestContext) *cubeAssignmentsTableWithContext {
	return &cubeAssignmentsTableWithContext{
		statements: s,
		ctx:        ctx,
	}
}

func (s *cubeAssignmentsTableWithContext) GetAll() ([]*DbCubeAssignment, error) {
	results := make([]*DbCubeAssignment, 0)
	rows, err := s.statements.selectAllCubeAssignments.QueryContext(s.ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return results, nil
		}
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		val := &DbCubeAssignment{}
		if err = rows.Scan(&val.CubeName, &val.Assignments); err != nil {
			return nil, err
		}
		results = append(results, val)
	}
	return results, rows.Err()
}

func (s *cubeAssignmentsTableWithContext) Upsert(record *DbCubeAssignment) error {
	_, err := s.statements.upsertCubeAssignment.ExecContext(s.ctx, record.CubeName, record.Assignments)
	return err
}
