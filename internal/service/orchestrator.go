package service

import (
	"time"

	"sst-warehouse/internal/etl"
	"sst-warehouse/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Batches carries one full-refresh run: raw feed rows per entity, the
// calendar range to materialize and the holiday set applied to it.
type Batches struct {
	TimeStart time.Time
	TimeEnd   time.Time
	Holidays  map[string]bool

	Companies []etl.Row
	Units     []etl.Row
	Sectors   []etl.Row
	Roles     []etl.Row
	ExamTypes []etl.Row
	Employees []etl.Row

	Absences    []etl.Row
	Summonses   []etl.Row
	Accidents   []etl.Row
	Expirations []etl.Row
}

// Orchestrator drives a full warehouse refresh in fixed order: reset, time
// dimension, reference dimensions, employees, facts. Each load unit runs in
// its own transaction; a unit failure rolls that unit back and aborts the
// run, while row-level failures only feed the summary. Readers between unit
// transactions can observe a partially refreshed warehouse; the run is
// consistent once Run returns.
type Orchestrator struct {
	db    *gorm.DB
	repos *repository.Set

	timeDim     *TimeDimensionService
	dimensions  *DimensionLoader
	absences    *AbsenceService
	summonses   *SummonsService
	accidents   *AccidentService
	expirations *ExpirationService

	logger *logrus.Logger

	// Now bounds employee versions rotated by this run.
	Now func() time.Time
}

func NewOrchestrator(db *gorm.DB, repos *repository.Set) *Orchestrator {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	resolver := NewDimensionResolver(repos)

	return &Orchestrator{
		db:          db,
		repos:       repos,
		timeDim:     NewTimeDimensionService(repos.TimeDays),
		dimensions:  NewDimensionLoader(resolver),
		absences:    NewAbsenceService(repos, resolver),
		summonses:   NewSummonsService(repos, resolver),
		accidents:   NewAccidentService(repos, resolver),
		expirations: NewExpirationService(repos, resolver),
		logger:      logger,
		Now:         time.Now,
	}
}

// Run executes one full refresh and returns the per-entity summary. The
// returned error is a unit-level failure; its unit was rolled back.
func (o *Orchestrator) Run(batches Batches) (*etl.LoadSummary, error) {
	summary := etl.NewLoadSummary()
	asOf := truncateToDay(o.Now())

	o.logger.Info("Warehouse refresh started")

	if err := o.reset(); err != nil {
		return summary, err
	}

	err := o.db.Transaction(func(tx *gorm.DB) error {
		days, err := o.timeDim.LoadRange(tx, batches.TimeStart, batches.TimeEnd, batches.Holidays)
		if err != nil {
			return err
		}
		o.logger.WithField("days", days).Info("Time dimension unit committed")
		return nil
	})
	if err != nil {
		return summary, err
	}

	units := []struct {
		name string
		load func(tx *gorm.DB) (*etl.EntityReport, error)
	}{
		{"companies", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.dimensions.LoadCompanies(tx, batches.Companies)
		}},
		{"units", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.dimensions.LoadUnits(tx, batches.Units)
		}},
		{"sectors", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.dimensions.LoadSectors(tx, batches.Sectors)
		}},
		{"roles", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.dimensions.LoadRoles(tx, batches.Roles)
		}},
		{"exam_types", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.dimensions.LoadExamTypes(tx, batches.ExamTypes)
		}},
		{"employees", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.dimensions.LoadEmployees(tx, batches.Employees, asOf)
		}},
		{"absences", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.absences.LoadBatch(tx, batches.Absences)
		}},
		{"summonses", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.summonses.LoadBatch(tx, batches.Summonses)
		}},
		{"accidents", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.accidents.LoadBatch(tx, batches.Accidents)
		}},
		{"expirations", func(tx *gorm.DB) (*etl.EntityReport, error) {
			return o.expirations.LoadBatch(tx, batches.Expirations)
		}},
	}

	for _, unit := range units {
		var report *etl.EntityReport
		err := o.db.Transaction(func(tx *gorm.DB) error {
			var err error
			report, err = unit.load(tx)
			return err
		})
		if err != nil {
			o.logger.WithError(err).WithField("unit", unit.name).Error("Load unit failed, rolled back")
			return summary, err
		}

		summary.Add(report)
		o.logger.WithFields(logrus.Fields{
			"unit":   unit.name,
			"input":  report.Input,
			"loaded": report.Loaded,
			"errors": len(report.Errors),
		}).Info("Load unit committed")
	}

	o.logger.WithField("row_errors", summary.TotalErrors()).Info("Warehouse refresh finished")

	return summary, nil
}

// reset clears every table, facts before the dimensions they reference.
func (o *Orchestrator) reset() error {
	return o.db.Transaction(func(tx *gorm.DB) error {
		if err := o.repos.Absences.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Summonses.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Accidents.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Expirations.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Employees.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.ExamTypes.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.TimeDays.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Sectors.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Roles.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		if err := o.repos.Units.WithTx(tx).DeleteAll(); err != nil {
			return err
		}
		return o.repos.Companies.WithTx(tx).DeleteAll()
	})
}
