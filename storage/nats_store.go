package storage

import (
	"context"
	"sort"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/types"
)

// natsStore keeps one JetStream key/value entry per cube.
type natsStore struct {
	nc      *nats.Conn
	kv      jetstream.KeyValue
	timeout time.Duration
}

func openNatsStore(ctx rcontext.RequestContext, conf config.NatsConfig) (*natsStore, error) {
	timeout := time.Duration(conf.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	nc, err := nats.Connect(conf.Url, nats.Timeout(timeout), nats.NoReconnect())
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	s, err := newNatsStore(ctx, nc, conf.Bucket, timeout)
	if err != nil {
		nc.Close()
		return nil, err
	}
	return s, nil
}

func newNatsStore(ctx rcontext.RequestContext, nc *nats.Conn, bucket string, timeout time.Duration) (*natsStore, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}

	opCtx, cancel := ctx.WithTimeout(timeout)
	defer cancel()

	kv, err := js.CreateKeyValue(opCtx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "Cube assignments",
	})
	if errors.Is(err, jetstream.ErrBucketExists) {
		kv, err = js.KeyValue(opCtx, bucket)
	}
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}

	return &natsStore{nc: nc, kv: kv, timeout: timeout}, nil
}

func (s *natsStore) ListAssignments(ctx rcontext.RequestContext) ([]*types.CubeAssignment, error) {
	opCtx, cancel := ctx.WithTimeout(s.timeout)
	defer cancel()

	keys, err := s.kv.Keys(opCtx)
	if errors.Is(err, jetstream.ErrNoKeysFound) {
		return make([]*types.CubeAssignment, 0), nil
	}
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	sort.Strings(keys)

	assignments := make([]*types.CubeAssignment, 0, len(keys))
	for _, key := range keys {
		a, err := s.getAssignment(opCtx, key)
		if err != nil {
			return nil, err
		}
		if a != nil {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (s *natsStore) getAssignment(ctx context.Context, key string) (*types.CubeAssignment, error) {
	entry, err := s.kv.Get(ctx, key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		// deleted between listing and reading
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	a := &types.CubeAssignment{}
	if err = a.UnmarshalBinary(entry.Value()); err != nil {
		return nil, errors.Wrapf(common.ErrMalformedAssignment, "stored value for %s: %v", key, err)
	}
	return a, nil
}

func (s *natsStore) SaveAssignment(ctx rcontext.RequestContext, assignment *types.CubeAssignment) error {
	if assignment == nil || assignment.CubeName == "" {
		return errors.Wrap(common.ErrStoreRejected, "cube name is required")
	}
	value, err := assignment.MarshalBinary()
	if err != nil {
		return errors.Wrap(common.ErrStoreRejected, err.Error())
	}

	opCtx, cancel := ctx.WithTimeout(s.timeout)
	defer cancel()

	if _, err = s.kv.Put(opCtx, assignment.CubeName, value); err != nil {
		if errors.Is(err, jetstream.ErrInvalidKey) {
			return errors.Wrap(common.ErrStoreRejected, err.Error())
		}
		return errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	return nil
}

func (s *natsStore) Close() error {
	s.nc.Close()
	return nil
}
