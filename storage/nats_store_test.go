package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/types"
)

// startEmbeddedNATS runs a JetStream enabled server on a random port for the
// duration of the test.
func startEmbeddedNATS(t *testing.T) *server.Server {
	t.Helper()

	ns, err := server.NewServer(&server.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
	})
	require.NoError(t, err)

	go ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("embedded NATS server not ready")
	}

	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns
}

func openTestNatsStore(t *testing.T, ns *server.Server) *natsStore {
	s, err := openNatsStore(rcontext.Initial(), config.NatsConfig{
		Url:            ns.ClientURL(),
		Bucket:         "test_assignments",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestNatsStoreSaveAndList(t *testing.T) {
	ns := startEmbeddedNATS(t)
	s := openTestNatsStore(t, ns)
	ctx := rcontext.Initial()

	assignments, err := s.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Empty(t, assignments)

	web := &types.CubeAssignment{CubeName: "web_cube", Assignments: map[int][]types.Partition{1: {{PartitionId: 0}}}}
	sales := &types.CubeAssignment{CubeName: "sales_cube", Assignments: map[int][]types.Partition{2: {{PartitionId: 1, PartitionInfo: "offset=3"}}}}
	require.NoError(t, s.SaveAssignment(ctx, web))
	require.NoError(t, s.SaveAssignment(ctx, sales))

	assignments, err = s.ListAssignments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*types.CubeAssignment{sales, web}, assignments)
}

func TestNatsStoreReopensExistingBucket(t *testing.T) {
	ns := startEmbeddedNATS(t)
	ctx := rcontext.Initial()

	first := openTestNatsStore(t, ns)
	require.NoError(t, first.SaveAssignment(ctx, &types.CubeAssignment{CubeName: "sales_cube"}))

	second := openTestNatsStore(t, ns)
	assignments, err := second.ListAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "sales_cube", assignments[0].CubeName)
}

func TestNatsStoreRejectsInvalidKey(t *testing.T) {
	ns := startEmbeddedNATS(t)
	s := openTestNatsStore(t, ns)

	err := s.SaveAssignment(rcontext.Initial(), &types.CubeAssignment{CubeName: "sales cube*"})
	assert.True(t, errors.Is(err, common.ErrStoreRejected), "got %v", err)

	err = s.SaveAssignment(rcontext.Initial(), &types.CubeAssignment{})
	assert.True(t, errors.Is(err, common.ErrStoreRejected), "got %v", err)
}

func TestNatsStoreUnavailable(t *testing.T) {
	_, err := openNatsStore(rcontext.Initial(), config.NatsConfig{
		Url:            "nats://127.0.0.1:1",
		Bucket:         "test_assignments",
		TimeoutSeconds: 1,
	})
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable), "got %v", err)
}

func TestNatsStoreWithoutJetStream(t *testing.T) {
	ns, err := server.NewServer(&server.Options{Host: "127.0.0.1", Port: -1, NoLog: true})
	require.NoError(t, err)
	go ns.Start()
	require.True(t, ns.ReadyForConnections(5*time.Second))
	defer ns.Shutdown()

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer nc.Close()

	_, err = newNatsStore(rcontext.Initial(), nc, "test_assignments", time.Second)
	assert.True(t, errors.Is(err, common.ErrStoreUnavailable), "got %v", err)
}
