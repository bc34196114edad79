package datastores

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/metrics"
)

type s3 struct {
	client *minio.Client
	bucket string
	prefix string
}

func getS3(conf config.S3MirrorConfig) (*s3, error) {
	if conf.Endpoint == "" || conf.BucketName == "" {
		return nil, errors.New("invalid configuration: missing s3 endpoint or bucket")
	}
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Region: conf.Region,
		Secure: conf.Ssl,
		Creds:  credentials.NewStaticV4(conf.AccessKeyId, conf.AccessSecret, ""),
	})
	if err != nil {
		return nil, err
	}
	return &s3{
		client: client,
		bucket: conf.BucketName,
		prefix: conf.Prefix,
	}, nil
}

// objectName places a file of a backup directory under the configured prefix,
// keeping the backup's own directory name so runs never collide.
func objectName(prefix string, backupPath string, relative string) string {
	return prefix + path.Join(path.Base(filepath.ToSlash(backupPath)), filepath.ToSlash(relative))
}

// MirrorDirectory uploads every file beneath backupPath to the configured S3
// bucket, returning the number of objects written.
func MirrorDirectory(ctx rcontext.RequestContext, conf config.S3MirrorConfig, backupPath string) (int, error) {
	s3c, err := getS3(conf)
	if err != nil {
		return 0, errors.Wrap(common.ErrIOFailure, err.Error())
	}

	uploaded := 0
	err = filepath.WalkDir(backupPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(backupPath, p)
		if err != nil {
			return err
		}
		name := objectName(s3c.prefix, backupPath, rel)
		contentType := "application/octet-stream"
		if strings.HasSuffix(name, ".json") {
			contentType = "application/json"
		}

		metrics.S3Operations.With(prometheus.Labels{"operation": "PutObject"}).Inc()
		info, err := s3c.client.FPutObject(ctx.Context, s3c.bucket, name, p, minio.PutObjectOptions{ContentType: contentType})
		if err != nil {
			return err
		}
		ctx.Log.WithFields(logrus.Fields{"object": name, "size": info.Size}).Debug("Uploaded to S3")
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, errors.Wrap(common.ErrIOFailure, err.Error())
	}
	return uploaded, nil
}
