package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"
	"github.com/t2bot/stream-metadata-backup/common/config"
)

// Push sends everything registered with the default registry to the
// configured Pushgateway. It does nothing when no gateway is configured.
func Push(conf config.MetricsConfig) error {
	if conf.PushgatewayUrl == "" {
		logrus.Debug("Metrics push disabled")
		return nil
	}
	job := conf.Job
	if job == "" {
		job = "stream_metadata_backup"
	}
	logrus.WithField("gateway", conf.PushgatewayUrl).Info("Pushing metrics")
	return push.New(conf.PushgatewayUrl, job).Gatherer(prometheus.DefaultGatherer).Push()
}
