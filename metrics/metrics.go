package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var AssignmentsBackedUp = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "stream_metadata_assignments_backed_up_total",
})
var AssignmentsRestored = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "stream_metadata_assignments_restored_total",
})
var BackupBytesWritten = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "stream_metadata_backup_bytes_written_total",
})
var OperationFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "stream_metadata_operation_failures_total",
}, []string{"operation", "kind"})
var LastSuccessTimestamp = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "stream_metadata_last_success_timestamp_seconds",
}, []string{"operation"})
var S3Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "stream_metadata_s3_operations_total",
}, []string{"operation"})

func init() {
	prometheus.MustRegister(AssignmentsBackedUp)
	prometheus.MustRegister(AssignmentsRestored)
	prometheus.MustRegister(BackupBytesWritten)
	prometheus.MustRegister(OperationFailures)
	prometheus.MustRegister(LastSuccessTimestamp)
	prometheus.MustRegister(S3Operations)
}
