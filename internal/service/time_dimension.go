package service

import (
	"fmt"
	"time"

	"sst-warehouse/internal/models"
	"sst-warehouse/internal/repository"
	"sst-warehouse/pkg/holidays"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TimeDimensionService fills the calendar dimension. Every fact load depends
// on full date coverage, so LoadRange runs before any fact unit and is
// idempotent: re-running an overlapping range refreshes rows in place.
type TimeDimensionService struct {
	repo   repository.TimeDayRepository
	logger *logrus.Logger
}

func NewTimeDimensionService(repo repository.TimeDayRepository) *TimeDimensionService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &TimeDimensionService{repo: repo, logger: logger}
}

// LoadRange upserts one TimeDay per calendar date in [start, end]. Dates in
// holidaySet get the holiday flag.
func (s *TimeDimensionService) LoadRange(tx *gorm.DB, start, end time.Time, holidaySet map[string]bool) (int, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)

	if end.Before(start) {
		return 0, fmt.Errorf("invalid time dimension range: %s after %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	repo := s.repo.WithTx(tx)
	count := 0

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := models.NewTimeDay(date, holidays.IsHoliday(holidaySet, date))
		if err := repo.UpsertByDate(&day); err != nil {
			s.logger.WithError(err).WithField("date", date.Format("2006-01-02")).
				Error("Failed to upsert time dimension row")
			return count, err
		}
		count++
	}

	s.logger.WithFields(logrus.Fields{
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
		"days":  count,
	}).Info("Time dimension loaded")

	return count, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
