package main

import (
	"fmt"
	"log/slog"

	"github.com/disgoorg/focus-bot/focusbot/migration"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var migrateFlags struct {
	mongoURI  string
	mongoDB   string
	dumpDir   string
	batchSize int
	reportDir string
	sessions  string
	stats     string
}

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "Import sessions and stats from the legacy MongoDB database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if migrateFlags.mongoURI == "" && migrateFlags.dumpDir == "" {
			return fmt.Errorf("either --mongo-uri or --dump is required")
		}

		_, db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		migrator := migration.NewMigrator(db.BunDB())
		migrator.SetBatchSize(migrateFlags.batchSize)
		migrator.SetMongoCollectionName("sessions", migrateFlags.sessions)
		migrator.SetMongoCollectionName("stats", migrateFlags.stats)

		if migrateFlags.mongoURI != "" {
			client, err := mongo.Connect(ctx, options.Client().ApplyURI(migrateFlags.mongoURI))
			if err != nil {
				return fmt.Errorf("failed to connect to MongoDB: %w", err)
			}
			defer func() {
				if err := client.Disconnect(ctx); err != nil {
					slog.Error("Failed to disconnect from MongoDB", slog.Any("error", err))
				}
			}()
			if err := client.Ping(ctx, nil); err != nil {
				return fmt.Errorf("failed to ping MongoDB: %w", err)
			}
			migrator.UseMongo(client, migrateFlags.mongoDB)
		} else {
			migrator.UseDump(migrateFlags.dumpDir)
		}

		report, err := migrator.MigrateAll(ctx)
		if migrateFlags.reportDir != "" {
			path, werr := migration.WriteReport(migrateFlags.reportDir, report)
			if werr != nil {
				slog.Error("Failed to generate migration report", slog.Any("error", werr))
			} else {
				slog.Info("Migration report written", slog.String("path", path))
			}
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		slog.Info("Migration completed successfully!")
		return nil
	},
}

func init() {
	f := migrateCMD.Flags()
	f.StringVar(&migrateFlags.mongoURI, "mongo-uri", "", "legacy MongoDB connection string")
	f.StringVar(&migrateFlags.mongoDB, "mongo-db", "focus", "legacy MongoDB database name")
	f.StringVar(&migrateFlags.dumpDir, "dump", "", "mongodump directory with sessions.bson and stats.bson")
	f.IntVar(&migrateFlags.batchSize, "batch-size", 500, "rows per insert")
	f.StringVar(&migrateFlags.reportDir, "report-dir", ".", "where to write the JSON report, empty to skip")
	f.StringVar(&migrateFlags.sessions, "sessions-collection", "sessions", "legacy sessions collection")
	f.StringVar(&migrateFlags.stats, "stats-collection", "stats", "legacy stats collection")
	rootCmd.AddCommand(migrateCMD)
}
