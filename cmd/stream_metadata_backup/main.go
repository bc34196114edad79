package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/t2bot/stream-metadata-backup/archival"
	"github.com/t2bot/stream-metadata-backup/common"
	"github.com/t2bot/stream-metadata-backup/common/config"
	"github.com/t2bot/stream-metadata-backup/common/logging"
	"github.com/t2bot/stream-metadata-backup/common/rcontext"
	"github.com/t2bot/stream-metadata-backup/common/version"
	"github.com/t2bot/stream-metadata-backup/controllers/data_controller"
	"github.com/t2bot/stream-metadata-backup/datastores"
	"github.com/t2bot/stream-metadata-backup/metrics"
	"github.com/t2bot/stream-metadata-backup/storage"
)

const (
	opBackupAssignment  = "backup_assignment"
	opRestoreAssignment = "restore_assignment"
)

const (
	exitOk        = 0
	exitUsage     = 1
	exitOperation = 2
)

var openStore = storage.OpenAssignmentStore

func printUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Usage: stream_metadata_backup [-config path] backup_assignment")
	_, _ = fmt.Fprintln(w, "Usage: stream_metadata_backup [-config path] restore_assignment /path/to/backup cube")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("stream_metadata_backup", flag.ContinueOnError)
	configPath := flags.String("config", config.Path, "The path to the configuration")
	migrationsPath := flags.String("migrations", config.DefaultMigrationsPath, "The absolute path for the migrations folder")
	flags.Usage = func() {
		printUsage(flags.Output())
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOk
		}
		return exitUsage
	}

	// Override config path with config for Docker users
	configEnv := os.Getenv("STREAM_BACKUP_CONFIG")
	if configEnv != "" {
		configPath = &configEnv
	}

	positional := flags.Args()
	if len(positional) == 0 {
		printUsage(os.Stdout)
		return exitOk
	}
	operation := positional[0]
	switch operation {
	case opBackupAssignment:
	case opRestoreAssignment:
		if len(positional) < 3 {
			_, _ = fmt.Fprintln(os.Stderr, "Error: restore_assignment needs a path and a cube name.")
			printUsage(os.Stderr)
			return exitUsage
		}
	default:
		_, _ = fmt.Fprintln(os.Stderr, "Error: please use correct options.")
		printUsage(os.Stderr)
		return exitUsage
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error loading configuration: ", err)
		return exitUsage
	}
	config.Runtime.MigrationsPath = *migrationsPath

	if err = logging.Setup(conf.General.LogDirectory, conf.General.LogColors, conf.General.JsonLogs, conf.General.LogLevel); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error setting up logging: ", err)
		return exitUsage
	}
	version.Print()

	if conf.Sentry.Enabled {
		if err = sentry.Init(sentry.ClientOptions{
			Dsn:         conf.Sentry.Dsn,
			Environment: conf.Sentry.Environment,
			Debug:       conf.Sentry.Debug,
			Release:     version.Version,
		}); err != nil {
			logrus.Warn("Failed to set up Sentry: ", err)
		}
		defer sentry.Flush(5 * time.Second)
	}

	ctx := rcontext.Initial().LogWithFields(logrus.Fields{"operation": operation})

	store, err := openStore(ctx, conf)
	if err != nil {
		ctx.Log.Error("Failed to open metadata store: ", err)
		sentry.CaptureException(err)
		return exitOperation
	}
	defer func() {
		if err := store.Close(); err != nil {
			ctx.Log.Warn("Error closing metadata store: ", err)
		}
	}()

	svc := data_controller.NewBackupRestoreService(store)
	switch operation {
	case opBackupAssignment:
		err = backupAssignments(ctx, conf, svc)
	case opRestoreAssignment:
		err = svc.Restore(ctx.LogWithFields(logrus.Fields{"cube": positional[2]}), positional[1], positional[2])
	}

	if pushErr := metrics.Push(conf.Metrics); pushErr != nil {
		ctx.Log.Warn("Failed to push metrics: ", pushErr)
	}

	if err != nil {
		if errors.Is(err, common.ErrFileNotFound) {
			ctx.Log.Warn("Nothing restored: ", err)
			return exitOk
		}
		ctx.Log.WithField("kind", data_controller.ErrorKind(err)).Error(err)
		sentry.CaptureException(err)
		return exitOperation
	}

	ctx.Log.Infof("Completed %s!", operation)
	return exitOk
}

func backupAssignments(ctx rcontext.RequestContext, conf *config.MainConfig, svc *data_controller.BackupRestoreService) error {
	backupPath, err := archival.ReserveBackupPath(conf.Backups.Root, time.Now(), conf.Backups.IncludeSeconds)
	if err != nil {
		return err
	}
	ctx = ctx.LogWithFields(logrus.Fields{"backup": backupPath})

	count, err := svc.Backup(ctx, backupPath)
	if err != nil {
		return err
	}
	ctx.Log.Infof("Backed up %d assignments to %s", count, backupPath)

	if conf.Backups.S3.Enabled && count > 0 {
		uploaded, err := datastores.MirrorDirectory(ctx, conf.Backups.S3, backupPath)
		if err != nil {
			return errors.Wrapf(err, "backup written to %s but not mirrored", backupPath)
		}
		ctx.Log.Infof("Mirrored %d files to bucket %s", uploaded, conf.Backups.S3.BucketName)
	}
	return nil
}
