package main

import (
	"os"
	"path/filepath"

	"sst-warehouse/internal/config"
	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/repository"
	"sst-warehouse/internal/service"
	"sst-warehouse/pkg/holidays"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetLoaderConfig()
	logrus.Info("Config initialized...")

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	repos, err := repository.NewSet(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create repositories")
	}

	holidaySet := map[string]bool{}
	if cfg.HolidaysFile != "" {
		holidayList, err := holidays.ParseCalendarJSON(cfg.HolidaysFile)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to parse holidays file")
		}
		holidaySet = holidays.DateSet(holidayList)
	}

	batches := service.Batches{
		TimeStart: cfg.TimeDimStart,
		TimeEnd:   cfg.TimeDimEnd,
		Holidays:  holidaySet,

		Companies: readFeed(cfg.DataDir, "companies.json"),
		Units:     readFeed(cfg.DataDir, "units.json"),
		Sectors:   readFeed(cfg.DataDir, "sectors.json"),
		Roles:     readFeed(cfg.DataDir, "roles.json"),
		ExamTypes: readFeed(cfg.DataDir, "exam_types.json"),
		Employees: readFeed(cfg.DataDir, "employees.json"),

		Absences:    readFeed(cfg.DataDir, "absences.json"),
		Summonses:   readFeed(cfg.DataDir, "summons.json"),
		Accidents:   readFeed(cfg.DataDir, "accidents.json"),
		Expirations: readFeed(cfg.DataDir, "expirations.json"),
	}

	orchestrator := service.NewOrchestrator(db, repos)

	summary, err := orchestrator.Run(batches)
	if err != nil {
		logrus.WithError(err).Fatal("Warehouse refresh aborted")
	}

	for _, report := range summary.Entities {
		entry := logrus.WithFields(logrus.Fields{
			"entity": report.Entity,
			"input":  report.Input,
			"loaded": report.Loaded,
			"errors": len(report.Errors),
		})
		if len(report.Errors) > 0 {
			entry.Warn("Entity loaded with row errors")
		} else {
			entry.Info("Entity loaded")
		}
	}

	logrus.WithField("row_errors", summary.TotalErrors()).Info("Warehouse refresh complete")
}

// readFeed loads one feed file; a missing file is an empty batch, not an
// error, so partial refreshes stay possible.
func readFeed(dir, name string) []etl.Row {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logrus.WithField("file", path).Warn("Feed file missing, skipping entity")
		return nil
	}

	rows, err := etl.ReadRows(path)
	if err != nil {
		logrus.WithError(err).WithField("file", path).Fatal("Failed to read feed file")
	}

	logrus.WithFields(logrus.Fields{
		"file": path,
		"rows": len(rows),
	}).Info("Feed file read")

	return rows
}
