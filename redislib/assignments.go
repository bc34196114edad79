package redislib

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/types"
)

const assignmentsHash = "cube_assignments"

// AssignmentStore keeps every assignment in a single hash, one field per cube.
type AssignmentStore struct {
	client *redis.Client
	key    string
}

func NewAssignmentStore(conf config.RedisConfig) *AssignmentStore {
	return &AssignmentStore{
		client: makeConnection(conf),
		key:    conf.KeyPrefix + assignmentsHash,
	}
}

func (s *AssignmentStore) ListAssignments(ctx rcontext.RequestContext) ([]*types.CubeAssignment, error) {
	values, err := s.client.HGetAll(ctx.Context, s.key).Result()
	if err != nil {
		return nil, errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}

	cubeNames := make([]string, 0, len(values))
	for cubeName := range values {
		cubeNames = append(cubeNames, cubeName)
	}
	sort.Strings(cubeNames)

	assignments := make([]*types.CubeAssignment, 0, len(cubeNames))
	for _, cubeName := range cubeNames {
		a := &types.CubeAssignment{}
		if err = a.UnmarshalBinary([]byte(values[cubeName])); err != nil {
			return nil, errors.Wrapf(common.ErrMalformedAssignment, "stored value for %s: %v", cubeName, err)
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (s *AssignmentStore) SaveAssignment(ctx rcontext.RequestContext, assignment *types.CubeAssignment) error {
	if assignment == nil || assignment.CubeName == "" {
		return errors.Wrap(common.ErrStoreRejected, "cube name is required")
	}
	if err := s.client.HSet(ctx.Context, s.key, assignment.CubeName, assignment).Err(); err != nil {
		return errors.Wrap(common.ErrStoreUnavailable, err.Error())
	}
	ctx.Log.Debugf("Stored assignment for %s in %s", assignment.CubeName, s.key)
	return nil
}

func (s *AssignmentStore) Close() error {
	return s.client.Close()
}
