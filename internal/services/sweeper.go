package services

import (
	"context"
	"fmt"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet_vendor/internal/apperr"
	"fleet_vendor/internal/models"
)

// Notification is the expiry notice handed to the dispatch collaborator.
type Notification struct {
	DriverID uint   `json:"driver_id"`
	Email    string `json:"email"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
}

// Notifier delivers a notification. Fire-and-forget from the sweeper's
// perspective: a failed delivery is logged, never retried inline.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// SweepReport summarizes one sweep run.
type SweepReport struct {
	Scanned  int
	Demoted  int
	Notified int
	Failed   int
}

// Sweeper is the daily batch that demotes drivers whose license or any
// document has expired, and emits a notification per affected driver.
type Sweeper struct {
	db       *gorm.DB
	notifier Notifier
	now      func() time.Time
}

func NewSweeper(db *gorm.DB, notifier Notifier) *Sweeper {
	return &Sweeper{db: db, notifier: notifier, now: time.Now}
}

// Run scans all drivers with an expired license or document. A failure on
// one driver is logged and the sweep moves on; only a failure of the
// initial scan aborts the run, to be retried on the next scheduled tick.
// The sweep tolerates racing request-driven mutations: a driver verified a
// moment ago simply no longer matches the expiry predicate next read.
func (s *Sweeper) Run(ctx context.Context) (SweepReport, error) {
	now := s.now()
	var report SweepReport

	var expired []models.Driver
	err := s.db.WithContext(ctx).
		Where("license_expiry_date < ?", now).
		Or("id IN (?)", s.db.Model(&models.DriverDocument{}).Select("driver_id").Where("expiry_date < ?", now)).
		Find(&expired).Error
	if err != nil {
		return report, apperr.Dependency("expiry scan failed", err)
	}

	report.Scanned = len(expired)
	for i := range expired {
		driver := &expired[i]

		if driver.Status != models.DriverInactive {
			driver.Status = models.DriverInactive
			if err := s.db.WithContext(ctx).Model(&models.Driver{}).
				Where("id = ?", driver.ID).
				Update("status", models.DriverInactive).Error; err != nil {
				report.Failed++
				logrus.WithError(err).WithField("driver_id", driver.ID).Warn("expiry sweep: could not demote driver")
				continue
			}
			report.Demoted++
		}

		n := Notification{
			DriverID: driver.ID,
			Email:    driver.Email,
			Reason:   "document_expired",
			Message: fmt.Sprintf(
				"Hello %s, your license or other documents have expired. Please update them as soon as possible to avoid any disruptions.",
				driver.FullName,
			),
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			report.Failed++
			logrus.WithError(err).WithField("driver_id", driver.ID).Warn("expiry sweep: could not notify driver")
			continue
		}
		report.Notified++
	}

	logrus.WithFields(logrus.Fields{
		"scanned":  report.Scanned,
		"demoted":  report.Demoted,
		"notified": report.Notified,
		"failed":   report.Failed,
	}).Info("expiry sweep completed")
	return report, nil
}
