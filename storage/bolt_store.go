package storage

import (
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/types"
)

var boltBucketName = []byte("cube_assignments")

type boltStore struct {
	db *bolt.DB
}

func openBoltStore(conf config.BoltConfig) (*boltStore, error) {
	db, err := bolt.Open(conf.Path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) ListAssignments(ctx rcontext.RequestContext) ([]*types.CubeAssignment, error) {
	assignments := make([]*types.CubeAssignment, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(boltBucketName)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			a := &types.CubeAssignment{}
			if err := a.UnmarshalBinary(v); err != nil {
				return errors.Wrapf(common.ErrMalformedAssignment, "stored value for %s: %v", string(k), err)
			}
			assignments = append(assignments, a)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrMalformedAssignment) {
			return nil, err
		}
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	return assignments, nil
}

func (s *boltStore) SaveAssignment(ctx rcontext.RequestContext, assignment *types.CubeAssignment) error {
	if assignment == nil || assignment.CubeName == "" {
		return errors.Wrap(common.ErrStoreRejected, "cube name is required")
	}
	value, err := assignment.MarshalBinary()
	if err != nil {
		return errors.Wrap(common.ErrStoreRejected, err.Error())
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(boltBucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(assignment.CubeName), value)
	})
	if err != nil {
		if errors.Is(err, bolt.ErrKeyTooLarge) || errors.Is(err, bolt.ErrValueTooLarge) {
			return errors.Wrap(common.ErrStoreRejected, err.Error())
		}
		return errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
