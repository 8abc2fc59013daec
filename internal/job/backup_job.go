package job

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/storage"
)

// snapshotLayout is the UTC timestamp embedded in snapshot names. Milliseconds
// keep a scheduled run and an on-demand backup in the same second apart.
const snapshotLayout = "20060102T150405.000Z"

// legacySnapshotLayout names snapshots written before millisecond stamps; they are still pruned
const legacySnapshotLayout = "20060102T150405Z"

const (
	targetLocal = "local"
	targetS3    = "s3"
)

// Snapshot describes one written collection snapshot
type Snapshot struct {
	Collection string
	Path       string
	Key        string // object key when uploaded
}

// BackupJob copies every collection document to timestamped snapshot files,
// prunes old snapshots and optionally uploads them to object storage
type BackupJob struct {
	backend     storage.Backend
	collections []string
	dir         string
	retain      int
	store       client.BackupStore
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewBackupJob creates a new BackupJob instance. store may be nil to keep snapshots local only.
func NewBackupJob(
	backend storage.Backend,
	collections []string,
	dir string,
	retain int,
	store client.BackupStore,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BackupJob {
	return &BackupJob{
		backend:     backend,
		collections: collections,
		dir:         dir,
		retain:      retain,
		store:       store,
		metrics:     m,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Run executes the backup job; it satisfies cron.Job
func (j *BackupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	j.logger.Info("Starting backup job", zap.Int("collections", len(j.collections)))

	snapshots, err := j.Snapshot(ctx)
	if err != nil {
		j.logger.Error("Backup job failed", zap.Int("written", len(snapshots)), zap.Error(err))
		return
	}

	j.logger.Info("Backup job completed", zap.Int("written", len(snapshots)))
}

// Snapshot backs up every collection once. Collections without a document are skipped.
func (j *BackupJob) Snapshot(ctx context.Context) ([]Snapshot, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	stamp := j.now().Format(snapshotLayout)
	var snapshots []Snapshot
	var errs []error

	for _, name := range j.collections {
		snap, err := j.snapshotCollection(ctx, name, stamp)
		if errors.Is(err, storage.ErrNoDocument) {
			j.logger.Debug("Collection has no document, skipping backup", zap.String("collection", name))
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		snapshots = append(snapshots, snap)

		if err := j.pruneLocal(name); err != nil {
			j.logger.Warn("Failed to prune local snapshots", zap.String("collection", name), zap.Error(err))
		}
		if j.store != nil {
			if err := j.pruneRemote(ctx, name); err != nil {
				j.logger.Warn("Failed to prune remote snapshots", zap.String("collection", name), zap.Error(err))
			}
		}
	}

	return snapshots, errors.Join(errs...)
}

func (j *BackupJob) snapshotCollection(ctx context.Context, name, stamp string) (Snapshot, error) {
	data, err := j.backend.Load(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNoDocument) {
			return Snapshot{}, err
		}
		j.record(targetLocal, err)
		return Snapshot{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	file := snapshotName(name, stamp)
	snap := Snapshot{Collection: name, Path: filepath.Join(j.dir, file)}

	err = os.WriteFile(snap.Path, data, 0o644)
	j.record(targetLocal, err)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to write snapshot %s: %w", snap.Path, err)
	}
	j.logger.Info("Snapshot written", zap.String("collection", name), zap.String("path", snap.Path))

	if j.store == nil {
		return snap, nil
	}

	snap.Key = path.Join(j.store.Prefix(), file)
	err = j.store.Upload(ctx, snap.Key, data)
	j.record(targetS3, err)
	if err != nil {
		return snap, fmt.Errorf("failed to upload snapshot %s: %w", snap.Key, err)
	}
	j.logger.Info("Snapshot uploaded", zap.String("collection", name), zap.String("key", snap.Key))
	return snap, nil
}

// pruneLocal keeps the newest retain snapshots of the collection; retain 0 keeps all
func (j *BackupJob) pruneLocal(name string) error {
	if j.retain <= 0 {
		return nil
	}
	matches, err := filepath.Glob(filepath.Join(j.dir, name+"-*.json"))
	if err != nil {
		return err
	}
	for _, old := range expired(filterSnapshots(matches, name), j.retain) {
		if err := os.Remove(old); err != nil {
			return err
		}
		j.logger.Debug("Removed old snapshot", zap.String("path", old))
	}
	return nil
}

func (j *BackupJob) pruneRemote(ctx context.Context, name string) error {
	if j.retain <= 0 {
		return nil
	}
	keys, err := j.store.List(ctx, path.Join(j.store.Prefix(), name+"-"))
	if err != nil {
		return err
	}
	for _, old := range expired(filterSnapshots(keys, name), j.retain) {
		if err := j.store.Delete(ctx, old); err != nil {
			return err
		}
		j.logger.Debug("Removed old remote snapshot", zap.String("key", old))
	}
	return nil
}

func (j *BackupJob) record(target string, err error) {
	if j.metrics != nil {
		j.metrics.IncrementBackup(target, err)
	}
}

func snapshotName(collection, stamp string) string {
	return collection + "-" + stamp + ".json"
}

// filterSnapshots keeps paths whose base name is exactly <collection>-<timestamp>.json,
// so "projects" never matches "projects-archive-..."
func filterSnapshots(paths []string, collection string) []string {
	var out []string
	for _, p := range paths {
		base := path.Base(filepath.ToSlash(p))
		stamp, ok := strings.CutPrefix(base, collection+"-")
		if !ok {
			continue
		}
		stamp, ok = strings.CutSuffix(stamp, ".json")
		if !ok {
			continue
		}
		if isSnapshotStamp(stamp) {
			out = append(out, p)
		}
	}
	return out
}

func isSnapshotStamp(stamp string) bool {
	for _, layout := range []string{snapshotLayout, legacySnapshotLayout} {
		if _, err := time.Parse(layout, stamp); err == nil {
			return true
		}
	}
	return false
}

// expired returns all but the newest keep entries. The timestamp layout sorts lexically.
func expired(paths []string, keep int) []string {
	if len(paths) <= keep {
		return nil
	}
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	return sorted[:len(sorted)-keep]
}

// Schedule registers the job on a new UTC cron scheduler. The caller starts and stops it.
func Schedule(spec string, job cron.Job, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger{logger})))
	if _, err := c.AddJob(spec, job); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	return c, nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
