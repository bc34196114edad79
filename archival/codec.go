package archival

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/types"
)

const AssignmentFileExtension = ".json"

// EncodeAssignment renders the assignment as indented JSON. Map keys are
// sorted by the encoder, so equal assignments always produce equal bytes.
func EncodeAssignment(assignment *types.CubeAssignment) ([]byte, error) {
	if assignment == nil {
		return nil, errors.Wrap(common.ErrMalformedAssignment, "nil assignment")
	}
	if assignment.CubeName == "" {
		return nil, errors.Wrap(common.ErrMalformedAssignment, "missing cube_name")
	}
	if err := checkUtf8(assignment); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(assignment); err != nil {
		return nil, errors.Wrap(err, "error encoding assignment for "+assignment.CubeName)
	}
	return buf.Bytes(), nil
}

func DecodeAssignment(b []byte) (*types.CubeAssignment, error) {
	if !utf8.Valid(b) {
		return nil, errors.Wrap(common.ErrMalformedAssignment, "file is not valid UTF-8")
	}
	assignment := &types.CubeAssignment{}
	if err := json.Unmarshal(b, assignment); err != nil {
		return nil, errors.Wrap(common.ErrMalformedAssignment, err.Error())
	}
	if assignment.CubeName == "" {
		return nil, errors.Wrap(common.ErrMalformedAssignment, "missing cube_name")
	}
	return assignment, nil
}

// checkUtf8 refuses strings the JSON encoder would silently rewrite with
// U+FFFD.
func checkUtf8(assignment *types.CubeAssignment) error {
	if !utf8.ValidString(assignment.CubeName) {
		return errors.Wrapf(common.ErrMalformedAssignment, "cube name %q is not valid UTF-8", assignment.CubeName)
	}
	for replicaSetId, partitions := range assignment.Assignments {
		for _, p := range partitions {
			if !utf8.ValidString(p.PartitionInfo) {
				return errors.Wrapf(common.ErrMalformedAssignment, "partition %d of replica set %d in %s has invalid UTF-8 info", p.PartitionId, replicaSetId, assignment.CubeName)
			}
		}
	}
	return nil
}

// AssignmentFileName returns "<cubeName>.json", refusing names that would
// escape the directory they are written to.
func AssignmentFileName(cubeName string) (string, error) {
	if cubeName == "" || cubeName == "." || cubeName == ".." || strings.ContainsAny(cubeName, "/\\\x00") {
		return "", errors.Wrapf(common.ErrMalformedAssignment, "invalid cube name %q", cubeName)
	}
	return cubeName + AssignmentFileExtension, nil
}
