package types

import (
	"encoding/json"
	"sort"
)

// CubeAssignment binds one cube to the replica sets consuming its stream
// partitions. Assignments is keyed by replica set ID.
type CubeAssignment struct {
	CubeName    string              `json:"cube_name"`
	Assignments map[int][]Partition `json:"assignments"`
}

type Partition struct {
	PartitionId   int    `json:"partition_id"`
	PartitionInfo string `json:"partition_info,omitempty"`
}

func (a CubeAssignment) MarshalBinary() ([]byte, error) {
	return json.Marshal(a)
}

func (a *CubeAssignment) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, a)
}

func (a *CubeAssignment) ReplicaSetIds() []int {
	ids := make([]int, 0, len(a.Assignments))
	for id := range a.Assignments {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
