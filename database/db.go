package database

import (
	"database/sql"

	"github.com/DavidHuie/gomigrate"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/logging"
)

type Database struct {
	conn            *sql.DB
	CubeAssignments *cubeAssignmentsTableStatements
}

func OpenDatabase(conf config.DatabaseConfig, migrationsPath string) (*Database, error) {
	conn, err := sql.Open("postgres", conf.Postgres)
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, "error connecting to db: "+err.Error())
	}
	if conf.Pool != nil {
		conn.SetMaxOpenConns(conf.Pool.MaxConnections)
		conn.SetMaxIdleConns(conf.Pool.MaxIdle)
	}
	return setupDatabase(conn, migrationsPath)
}

// setupDatabase checks the connection, migrates the schema and prepares the
// table accessors. The connection is closed on failure.
func setupDatabase(conn *sql.DB, migrationsPath string) (*Database, error) {
	d := &Database{conn: conn}
	var err error

	if err = d.conn.Ping(); err != nil {
		_ = d.conn.Close()
		return nil, classifyError(err)
	}

	// Run migrations
	migrationLog := &logging.MigrationLogger{}
	var migrator *gomigrate.Migrator
	if migrator, err = gomigrate.NewMigratorWithLogger(d.conn, gomigrate.Postgres{}, migrationsPath, migrationLog); err == nil {
		err = migrationLog.Err()
	}
	if err != nil {
		_ = d.conn.Close()
		return nil, errors.Wrap(common.ErrStoreUnavailable, "error setting up migrator: "+err.Error())
	}
	if err = migrator.Migrate(); err != nil {
		_ = d.conn.Close()
		return nil, errors.Wrap(common.ErrStoreUnavailable, "error running migrations: "+err.Error())
	}

	// Prepare the table accessors
	if d.CubeAssignments, err = prepareCubeAssignmentsTables(d.conn); err != nil {
		_ = d.conn.Close()
		return nil, errors.Wrap(common.ErrStoreUnavailable, "failed to create cube assignments table accessor: "+err.Error())
	}

	return d, nil
}

func (d *Database) Close() error {
	return d.conn.Close()
}
