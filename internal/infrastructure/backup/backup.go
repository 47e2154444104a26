// Package backup takes and restores file-level snapshots of the SQLite
// database. Snapshots are named YYYYMMDD-HHMMSS[-tag].sqlite in UTC.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/codops/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

const (
	// TimestampLayout is the time part of a snapshot name
	TimestampLayout = "20060102-150405"
	// Extension is the snapshot file extension
	Extension = ".sqlite"
)

var (
	// ErrNoSnapshot is returned when no snapshot is old enough to restore
	ErrNoSnapshot = errors.New("no snapshot at or before the cutoff")
	// ErrDatabaseMissing is returned when the database file does not exist
	ErrDatabaseMissing = errors.New("database file does not exist")
	// ErrInvalidTag is returned for tags outside [A-Za-z0-9_-]
	ErrInvalidTag = errors.New("tag may only contain letters, digits, '-' and '_'")
)

var tagPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Snapshot is one backup file
type Snapshot struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Tag       string    `json:"tag,omitempty"`
	TakenAt   time.Time `json:"taken_at"`
	Size      int64     `json:"size"`
	ObjectKey string    `json:"object_key,omitempty"`
}

// Checkpointer flushes the write-ahead log into the main database file
type Checkpointer func(ctx context.Context) error

// Manager creates, lists and restores snapshots of one database file
type Manager struct {
	dbPath     string
	dir        string
	uploader   storage.ObjectUploader
	checkpoint Checkpointer
	now        func() time.Time
	logger     *zap.Logger
}

// Option configures a Manager
type Option func(*Manager)

// WithUploader uploads each new snapshot
func WithUploader(u storage.ObjectUploader) Option {
	return func(m *Manager) {
		m.uploader = u
	}
}

// WithCheckpointer runs cp before each copy
func WithCheckpointer(cp Checkpointer) Option {
	return func(m *Manager) {
		m.checkpoint = cp
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager for the database at dbPath writing into dir
func NewManager(dbPath, dir string, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		dbPath: dbPath,
		dir:    dir,
		now:    time.Now,
		logger: logger.Named("backup"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SnapshotName builds the file name for a snapshot taken at t
func SnapshotName(t time.Time, tag string) string {
	name := t.UTC().Format(TimestampLayout)
	if tag != "" {
		name += "-" + tag
	}
	return name + Extension
}

// ParseSnapshotName splits a snapshot file name into its time and tag
func ParseSnapshotName(name string) (time.Time, string, bool) {
	base, ok := strings.CutSuffix(name, Extension)
	if !ok || len(base) < len(TimestampLayout) {
		return time.Time{}, "", false
	}
	ts, err := time.ParseInLocation(TimestampLayout, base[:len(TimestampLayout)], time.UTC)
	if err != nil {
		return time.Time{}, "", false
	}
	rest := base[len(TimestampLayout):]
	if rest == "" {
		return ts, "", true
	}
	tag, ok := strings.CutPrefix(rest, "-")
	if !ok || !tagPattern.MatchString(tag) {
		return time.Time{}, "", false
	}
	return ts, tag, true
}

// Create copies the database into a new snapshot. When an uploader is
// configured and the upload fails, the local snapshot is still returned
// together with the error.
func (m *Manager) Create(ctx context.Context, tag string) (*Snapshot, error) {
	if tag != "" && !tagPattern.MatchString(tag) {
		return nil, ErrInvalidTag
	}
	if _, err := os.Stat(m.dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseMissing, m.dbPath)
		}
		return nil, err
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}
	if m.checkpoint != nil {
		if err := m.checkpoint(ctx); err != nil {
			return nil, fmt.Errorf("checkpoint database: %w", err)
		}
	}

	takenAt := m.now().UTC().Truncate(time.Second)
	name := SnapshotName(takenAt, tag)
	dst := filepath.Join(m.dir, name)
	size, err := copyFile(m.dbPath, dst)
	if err != nil {
		return nil, fmt.Errorf("copy database: %w", err)
	}

	snap := &Snapshot{Name: name, Path: dst, Tag: tag, TakenAt: takenAt, Size: size}
	m.logger.Info("Snapshot created",
		zap.String("name", name),
		zap.Int64("bytes", size),
	)

	if m.uploader == nil {
		return snap, nil
	}
	key, err := m.upload(ctx, snap)
	if err != nil {
		m.logger.Warn("Snapshot upload failed", zap.String("name", name), zap.Error(err))
		return snap, fmt.Errorf("upload snapshot %s: %w", name, err)
	}
	snap.ObjectKey = key
	return snap, nil
}

func (m *Manager) upload(ctx context.Context, snap *Snapshot) (string, error) {
	f, err := os.Open(snap.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := m.uploader.Key(snap.Name)
	if err := m.uploader.Upload(ctx, key, f, snap.Size, storage.SnapshotContentType); err != nil {
		return "", err
	}
	return key, nil
}

// List returns the snapshots in the backup dir, newest first. Files that
// do not follow the naming scheme are skipped.
func (m *Manager) List() ([]Snapshot, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var snaps []Snapshot
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ts, tag, ok := ParseSnapshotName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, Snapshot{
			Name:    e.Name(),
			Path:    filepath.Join(m.dir, e.Name()),
			Tag:     tag,
			TakenAt: ts,
			Size:    info.Size(),
		})
	}

	slices.SortFunc(snaps, func(a, b Snapshot) int {
		if c := b.TakenAt.Compare(a.TakenAt); c != 0 {
			return c
		}
		return strings.Compare(b.Name, a.Name)
	})
	return snaps, nil
}

// Nearest returns the newest snapshot taken at or before now minus age
func (m *Manager) Nearest(age time.Duration) (*Snapshot, error) {
	snaps, err := m.List()
	if err != nil {
		return nil, err
	}
	cutoff := m.now().UTC().Add(-age)
	for i := range snaps {
		if !snaps[i].TakenAt.After(cutoff) {
			return &snaps[i], nil
		}
	}
	return nil, ErrNoSnapshot
}

// RestoreNearest copies the Nearest snapshot over the database file. The
// database must not be open while this runs. Stale -wal and -shm files are
// removed so SQLite does not replay them over the restored file.
func (m *Manager) RestoreNearest(age time.Duration) (*Snapshot, error) {
	snap, err := m.Nearest(age)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(m.dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	tmp := m.dbPath + ".restore"
	if _, err := copyFile(snap.Path, tmp); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("copy snapshot: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		_ = os.Remove(tmp)
		return nil, fmt.Errorf("replace database: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(m.dbPath + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	m.logger.Info("Database restored",
		zap.String("snapshot", snap.Name),
		zap.Time("taken_at", snap.TakenAt),
	)
	return snap, nil
}

// copyFile copies src to dst, keeping the source modification time
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return 0, err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return n, os.Chtimes(dst, info.ModTime(), info.ModTime())
}
