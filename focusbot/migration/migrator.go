package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disgoorg/focus-bot/focusbot/config"
	"github.com/disgoorg/focus-bot/focusbot/database/models"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

const (
	kindSessions = "sessions"
	kindStats    = "stats"
)

// Migrator imports the legacy MongoDB data set, either from a live database
// or from a mongodump directory, into the relational store.
type Migrator struct {
	db        *bun.DB
	mongoDB   *mongo.Database
	dataDir   string
	batchSize int
	collNames map[string]string
	now       func() time.Time

	mu    sync.Mutex
	stats MigrationStats
}

func NewMigrator(db *bun.DB) *Migrator {
	return &Migrator{
		db:        db,
		batchSize: config.DefaultBatchSize,
		collNames: map[string]string{
			kindSessions: "sessions",
			kindStats:    "stats",
		},
		now: time.Now,
		stats: MigrationStats{
			Tables: make(map[string]*TableStats),
		},
	}
}

// UseMongo enables direct-from-Mongo migration mode
func (m *Migrator) UseMongo(client *mongo.Client, dbName string) {
	if client != nil && dbName != "" {
		m.mongoDB = client.Database(dbName)
	}
}

// UseDump reads <dir>/<collection>.bson files instead of a live database.
func (m *Migrator) UseDump(dir string) {
	m.dataDir = dir
}

// SetBatchSize overrides the default batch size for inserts (useful for poolers/timeouts)
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// SetMongoCollectionName overrides the collection name for a given kind ("sessions" or "stats").
func (m *Migrator) SetMongoCollectionName(kind, name string) {
	if kind != "" && name != "" {
		m.collNames[kind] = name
	}
}

// MigrateAll imports sessions and stats concurrently and returns the final report.
func (m *Migrator) MigrateAll(ctx context.Context) (MigrationStats, error) {
	if m.mongoDB == nil && m.dataDir == "" {
		return MigrationStats{}, errors.New("no migration source configured; call UseMongo or UseDump first")
	}

	logProgress("Starting legacy migration")
	m.mu.Lock()
	m.stats.StartTime = m.now()
	m.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return m.MigrateSessions(gctx)
	})
	g.Go(func() error {
		return m.MigrateStats(gctx)
	})
	if err := g.Wait(); err != nil {
		return m.Report(), err
	}

	m.mu.Lock()
	m.stats.EndTime = m.now()
	m.mu.Unlock()

	report := m.Report()
	logFinalStats(report)
	return report, nil
}

// MigrateSessions imports the completed session log. Existing completion ids are kept.
func (m *Migrator) MigrateSessions(ctx context.Context) error {
	src, err := m.open(ctx, kindSessions)
	if err != nil || src == nil {
		return err
	}
	defer src.Close(ctx)

	batch := make([]*models.CompletedSession, 0, m.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		res, err := m.db.NewInsert().Model(&batch).Ignore().Exec(ctx)
		if err != nil {
			m.recordError(kindSessions, "batch", err)
			return fmt.Errorf("failed to insert sessions batch: %w", err)
		}
		inserted, _ := res.RowsAffected()
		m.recordSuccess(kindSessions, int(inserted))
		if dup := len(batch) - int(inserted); dup > 0 {
			m.recordSkip(kindSessions, "batch", fmt.Sprintf("%d already imported", dup))
		}
		batch = batch[:0]
		return nil
	}

	now := m.now().UTC()
	for src.Next(ctx) {
		var ls LegacySession
		if err := src.Decode(&ls); err != nil {
			m.recordError(kindSessions, "decode", err)
			continue
		}
		m.recordProcessed(kindSessions)

		session, err := convertSession(ls, now)
		if err != nil {
			m.recordSkip(kindSessions, ls.ID.Hex(), err.Error())
			continue
		}
		batch = append(batch, session)
		if len(batch) >= m.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("failed to read sessions: %w", err)
	}
	return flush()
}

// MigrateStats imports progression documents, overwriting rows of the same user.
func (m *Migrator) MigrateStats(ctx context.Context) error {
	src, err := m.open(ctx, kindStats)
	if err != nil || src == nil {
		return err
	}
	defer src.Close(ctx)

	// a user can appear twice in a dirty dump; the last document wins
	pending := make(map[string]*models.UserStats)
	batch := make([]*models.UserStats, 0, m.batchSize)
	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		batch = batch[:0]
		for _, s := range pending {
			batch = append(batch, s)
		}
		if _, err := m.db.NewInsert().Model(&batch).On("CONFLICT (user_id) DO UPDATE").Exec(ctx); err != nil {
			m.recordError(kindStats, "batch", err)
			return fmt.Errorf("failed to upsert stats batch: %w", err)
		}
		m.recordSuccess(kindStats, len(batch))
		clear(pending)
		return nil
	}

	now := m.now().UTC()
	for src.Next(ctx) {
		var ls LegacyStats
		if err := src.Decode(&ls); err != nil {
			m.recordError(kindStats, "decode", err)
			continue
		}
		m.recordProcessed(kindStats)

		stats, err := convertStats(ls, now)
		if err != nil {
			m.recordSkip(kindStats, ls.ID.Hex(), err.Error())
			continue
		}
		pending[stats.UserID] = stats
		if len(pending) >= m.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := src.Err(); err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}
	return flush()
}

func (m *Migrator) open(ctx context.Context, kind string) (documentSource, error) {
	name := m.collNames[kind]

	if m.mongoDB != nil {
		cur, err := m.mongoDB.Collection(name).Find(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("failed to query %s collection: %w", name, err)
		}
		return cur, nil
	}

	path := filepath.Join(m.dataDir, name+".bson")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logProgress(fmt.Sprintf("BSON file not found, skipping: %s", path))
		return nil, nil
	}
	logProgress(fmt.Sprintf("Processing BSON file: %s", path))
	return openDump(path)
}

// Report returns a snapshot of the counters with totals filled in.
func (m *Migrator) Report() MigrationStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.stats
	out.Tables = make(map[string]*TableStats, len(m.stats.Tables))
	out.TotalProcessed, out.TotalSkipped, out.TotalErrors = 0, 0, 0
	for name, t := range m.stats.Tables {
		c := *t
		out.Tables[name] = &c
		out.TotalProcessed += t.Processed
		out.TotalSkipped += t.Skipped
		out.TotalErrors += t.Errors
	}
	return out
}

// WriteReport stores the report as indented JSON in dir and returns the file path.
func WriteReport(dir string, report MigrationStats) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("migration_report_%s.json", report.StartTime.Format("20060102_150405")))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create migration report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("failed to write migration report: %w", err)
	}
	return path, nil
}

func (m *Migrator) table(name string) *TableStats {
	t, ok := m.stats.Tables[name]
	if !ok {
		t = &TableStats{TableName: name}
		m.stats.Tables[name] = t
	}
	return t
}

func (m *Migrator) recordProcessed(name string) {
	m.mu.Lock()
	m.table(name).Processed++
	m.mu.Unlock()
}

func (m *Migrator) recordSuccess(name string, n int) {
	m.mu.Lock()
	m.table(name).Successful += n
	m.mu.Unlock()
}

func (m *Migrator) recordSkip(name, id, reason string) {
	m.mu.Lock()
	t := m.table(name)
	t.Skipped++
	t.SkippedRecords = append(t.SkippedRecords, SkippedRecord{Reason: reason, RecordID: id})
	m.mu.Unlock()
}

func (m *Migrator) recordError(name, id string, err error) {
	m.mu.Lock()
	t := m.table(name)
	t.Errors++
	t.ErrorRecords = append(t.ErrorRecords, ErrorRecord{Error: err.Error(), RecordID: id})
	m.mu.Unlock()
	slog.Error("Migration record failed", slog.String("table", name), slog.String("record_id", id), slog.Any("error", err))
}

func logProgress(message string) {
	slog.Info(message, slog.String("service", "Focus Migration"))
}

func logFinalStats(report MigrationStats) {
	slog.Info("Migration completed",
		slog.Duration("duration", report.EndTime.Sub(report.StartTime)),
		slog.Int("total_processed", report.TotalProcessed),
		slog.Int("total_skipped", report.TotalSkipped),
		slog.Int("total_errors", report.TotalErrors))

	for name, t := range report.Tables {
		slog.Info("Table migration stats",
			slog.String("table", name),
			slog.Int("processed", t.Processed),
			slog.Int("successful", t.Successful),
			slog.Int("skipped", t.Skipped),
			slog.Int("errors", t.Errors))
	}
}
