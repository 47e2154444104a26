package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/codops/backend/internal/infrastructure/backup"
	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/codops/backend/internal/infrastructure/logger"
	"github.com/codops/backend/internal/infrastructure/persistence"
	"github.com/codops/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel string
		noUpload bool
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&noUpload, "no-upload", false, "Skip the S3 upload even when a bucket is configured")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Database.Driver != config.DriverSQLite || cfg.Database.Path == persistence.MemoryPath {
		log.Fatal("Backups need a file-backed sqlite database",
			zap.String("driver", cfg.Database.Driver),
			zap.String("path", cfg.Database.Path),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "create":
		tag := ""
		if len(args) > 1 {
			tag = args[1]
		}
		if err := create(ctx, cfg, tag, !noUpload, log); err != nil {
			log.Fatal("Backup failed", zap.Error(err))
		}

	case "list":
		m := backup.NewManager(cfg.Database.Path, cfg.Backup.Dir, log)
		snaps, err := m.List()
		if err != nil {
			log.Fatal("Failed to list backups", zap.Error(err))
		}
		if len(snaps) == 0 {
			log.Info("No backups found", zap.String("dir", cfg.Backup.Dir))
			return
		}
		for _, s := range snaps {
			fmt.Printf("%s\t%s\t%d\n", s.Name, s.TakenAt.Format(time.RFC3339), s.Size)
		}

	case "list-remote":
		uploader, err := newUploader(ctx, cfg, log)
		if err != nil {
			log.Fatal("Failed to create storage client", zap.Error(err))
		}
		if uploader == nil {
			log.Fatal("backup.s3.bucket is not configured")
		}
		keys, err := uploader.ListKeys(ctx)
		if err != nil {
			log.Fatal("Failed to list remote backups", zap.Error(err))
		}
		for _, k := range keys {
			fmt.Println(k)
		}

	case "restore-nearest":
		if len(args) < 2 {
			log.Fatal("Minutes required. Usage: backup restore-nearest <minutes>")
		}
		minutes, err := strconv.Atoi(args[1])
		if err != nil || minutes < 0 {
			log.Fatal("Invalid minutes", zap.String("value", args[1]))
		}
		m := backup.NewManager(cfg.Database.Path, cfg.Backup.Dir, log)
		snap, err := m.RestoreNearest(time.Duration(minutes) * time.Minute)
		if errors.Is(err, backup.ErrNoSnapshot) {
			log.Fatal("No backup old enough", zap.Int("minutes", minutes))
		}
		if err != nil {
			log.Fatal("Restore failed", zap.Error(err))
		}
		fmt.Println(snap.Name)

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func create(ctx context.Context, cfg *config.Config, tag string, upload bool, log *zap.Logger) error {
	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	opts := []backup.Option{backup.WithCheckpointer(db.Checkpoint)}
	if upload {
		uploader, err := newUploader(ctx, cfg, log)
		if err != nil {
			return err
		}
		if uploader != nil {
			opts = append(opts, backup.WithUploader(uploader))
		}
	}

	snap, err := backup.NewManager(cfg.Database.Path, cfg.Backup.Dir, log, opts...).Create(ctx, tag)
	if snap != nil {
		fmt.Println(snap.Path)
	}
	return err
}

// newUploader returns nil when no bucket is configured
func newUploader(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage.S3ObjectStorage, error) {
	if cfg.Backup.S3.Bucket == "" {
		return nil, nil
	}
	s, err := storage.NewS3ObjectStorage(ctx, &cfg.Backup.S3, storage.WithLogger(log.Named("s3")))
	if err != nil {
		return nil, err
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func printUsage() {
	fmt.Fprint(os.Stderr, `Usage: backup [flags] <command> [args]

Commands:
  create [tag]               Snapshot the database into backup.dir, uploading it when backup.s3.bucket is set
  list                       List local snapshots, newest first
  list-remote                List snapshots in the configured bucket
  restore-nearest <minutes>  Replace the database with the newest snapshot at least <minutes> old

Stop the server before restoring.

Flags:
`)
	flag.PrintDefaults()
}
