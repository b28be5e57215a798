package tracker

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/auth"
	"github.com/balkashynov/horas/internal/models"
	"github.com/balkashynov/horas/internal/report"
)

// GetConfig returns the owner's config, creating it on first access
func (t *Tracker) GetConfig(ctx context.Context, owner auth.Owner) (*models.Config, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	return t.store.GetConfig(ctx, owner.ID())
}

// SetHourlyRate stores the owner's hourly rate. Last write wins.
func (t *Tracker) SetHourlyRate(ctx context.Context, owner auth.Owner, rate float64) (*models.Config, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}
	if math.IsNaN(rate) || rate < 0 || rate > models.MaxHourlyRate {
		return nil, models.NewValidationError("hourly_rate", "must be between 0 and %d", models.MaxHourlyRate)
	}

	cfg, err := t.store.UpsertConfig(ctx, owner.ID(), rate)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{
		"owner": owner.ID(),
		"rate":  rate,
	}).Info("hourly rate updated")
	return cfg, nil
}

// Dashboard aggregates the owner's work items for the period of the given
// kind, offset periods away from the current one.
func (t *Tracker) Dashboard(ctx context.Context, owner auth.Owner, kind report.Kind, offset int) (*report.Dashboard, error) {
	if err := owner.Verify(); err != nil {
		return nil, err
	}

	now := t.Now()
	p := report.Resolve(kind, offset, now.In(t.loc))

	items, err := t.store.ListWorkItemsInRange(ctx, owner.ID(), p.Start, p.Last())
	if err != nil {
		return nil, err
	}
	cfg, err := t.store.GetConfig(ctx, owner.ID())
	if err != nil {
		return nil, err
	}

	d := report.Build(p, items, cfg.HourlyRate, now)
	return &d, nil
}
