package storage

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/database"
	"github.com/t2bot/stream-metadata-backup/redislib"
	"github.com/t2bot/stream-metadata-backup/types"
)

// AssignmentStore is the authoritative home of cube assignments. Saving
// upserts by cube name; the store resolves any conflicts.
type AssignmentStore interface {
	ListAssignments(ctx rcontext.RequestContext) ([]*types.CubeAssignment, error)
	SaveAssignment(ctx rcontext.RequestContext, assignment *types.CubeAssignment) error
	Close() error
}

func OpenAssignmentStore(ctx rcontext.RequestContext, conf *config.MainConfig) (AssignmentStore, error) {
	ctx = ctx.LogWithFields(logrus.Fields{"store": conf.Store.Kind})

	var store AssignmentStore
	var err error
	switch conf.Store.Kind {
	case config.StoreKindPostgres:
		ctx.Log.Info("Connecting to postgres...")
		var db *database.Database
		if db, err = database.OpenDatabase(conf.Database, config.Runtime.MigrationsPath); err == nil {
			store = db
		}
	case config.StoreKindRedis:
		ctx.Log.Infof("Using redis at %s", conf.Redis.Address)
		store = redislib.NewAssignmentStore(conf.Redis)
	case config.StoreKindBolt:
		ctx.Log.Infof("Opening bolt database %s", conf.Bolt.Path)
		var bs *boltStore
		if bs, err = openBoltStore(conf.Bolt); err == nil {
			store = bs
		}
	case config.StoreKindNats:
		ctx.Log.Infof("Connecting to NATS at %s", conf.Nats.Url)
		var ns *natsStore
		if ns, err = openNatsStore(ctx, conf.Nats); err == nil {
			store = ns
		}
	default:
		err = fmt.Errorf("unknown store kind %q", conf.Store.Kind)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
