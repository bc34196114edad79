package data_controller

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/metrics"
)

// ErrorKind names the error class of err for metrics and exit codes.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, common.ErrStoreRejected):
		return "store_rejected"
	case errors.Is(err, common.ErrMalformedAssignment):
		return "malformed_assignment"
	case errors.Is(err, common.ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, common.ErrIOFailure):
		return "io_failure"
	default:
		return "unknown"
	}
}

func recordFailure(operation string, err error) {
	metrics.OperationFailures.With(prometheus.Labels{"operation": operation, "kind": ErrorKind(err)}).Inc()
}
