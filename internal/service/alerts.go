package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/couchcryptid/disaster-helper/internal/store"
)

// Alerts manages each session's alert list and announces changes.
type Alerts struct {
	alerts    *store.Collection[domain.Alert]
	dismissed *store.Collection[string]
	publisher domain.AlertPublisher
	metrics   *observability.Metrics
	logger    *slog.Logger
}

// NewAlerts creates the alert service. publisher may be nil.
func NewAlerts(backend store.Backend, publisher domain.AlertPublisher, metrics *observability.Metrics, logger *slog.Logger) *Alerts {
	return &Alerts{
		alerts:    store.NewCollection(backend, store.KeyAlerts, domain.SeedAlerts),
		dismissed: store.NewCollection[string](backend, store.KeyDismissedAdvisories, nil),
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// List returns the session's alerts, newest first.
func (s *Alerts) List(ctx context.Context, session string) ([]domain.Alert, error) {
	return s.alerts.GetAll(ctx, session)
}

// Create validates in and puts the new alert at the top of the list.
func (s *Alerts) Create(ctx context.Context, session string, in domain.AlertInput) (domain.Alert, error) {
	alert, err := domain.NewAlert(in)
	if err != nil {
		return domain.Alert{}, err
	}
	alerts, err := s.alerts.GetAll(ctx, session)
	if err != nil {
		return domain.Alert{}, err
	}
	if err := s.alerts.SaveAll(ctx, session, append([]domain.Alert{alert}, alerts...)); err != nil {
		return domain.Alert{}, err
	}
	s.publish(ctx, domain.NewAlertEvent(domain.AlertCreated, session, alert))
	return alert, nil
}

// Update replaces the editable fields of alert id.
func (s *Alerts) Update(ctx context.Context, session, id string, in domain.AlertInput) (domain.Alert, error) {
	alerts, err := s.alerts.GetAll(ctx, session)
	if err != nil {
		return domain.Alert{}, err
	}
	i := indexOf(alerts, func(a domain.Alert) bool { return a.ID == id })
	if i < 0 {
		return domain.Alert{}, fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
	}
	updated, err := alerts[i].WithInput(in)
	if err != nil {
		return domain.Alert{}, err
	}
	alerts[i] = updated
	if err := s.alerts.SaveAll(ctx, session, alerts); err != nil {
		return domain.Alert{}, err
	}
	s.publish(ctx, domain.NewAlertEvent(domain.AlertUpdated, session, updated))
	return updated, nil
}

// Delete removes alert id. Deleted advisory alerts are remembered so the
// advisory sync does not restore them.
func (s *Alerts) Delete(ctx context.Context, session, id string) error {
	alerts, err := s.alerts.GetAll(ctx, session)
	if err != nil {
		return err
	}
	i := indexOf(alerts, func(a domain.Alert) bool { return a.ID == id })
	if i < 0 {
		return fmt.Errorf("alert %s: %w", id, domain.ErrNotFound)
	}
	removed := alerts[i]
	if domain.IsAdvisoryAlert(removed.ID) {
		if err := s.dismiss(ctx, session, removed.ID); err != nil {
			return err
		}
	}
	if err := s.alerts.SaveAll(ctx, session, append(alerts[:i], alerts[i+1:]...)); err != nil {
		return err
	}
	s.publish(ctx, domain.NewAlertEvent(domain.AlertDeleted, session, removed))
	return nil
}

func (s *Alerts) dismiss(ctx context.Context, session, id string) error {
	ids, err := s.dismissed.GetAll(ctx, session)
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return s.dismissed.SaveAll(ctx, session, append(ids, id))
}

// Merge prepends the incoming alerts whose ids the session neither has nor
// dismissed, keeping their relative order. It returns the alerts added.
func (s *Alerts) Merge(ctx context.Context, session string, incoming []domain.Alert) ([]domain.Alert, error) {
	alerts, err := s.alerts.GetAll(ctx, session)
	if err != nil {
		return nil, err
	}
	dismissed, err := s.dismissed.GetAll(ctx, session)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(alerts)+len(dismissed)+len(incoming))
	for _, a := range alerts {
		seen[a.ID] = true
	}
	for _, id := range dismissed {
		seen[id] = true
	}
	var added []domain.Alert
	for _, a := range incoming {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		added = append(added, a)
	}
	if len(added) == 0 {
		return nil, nil
	}
	if err := s.alerts.SaveAll(ctx, session, append(append([]domain.Alert{}, added...), alerts...)); err != nil {
		return nil, err
	}

	events := make([]domain.AlertEvent, len(added))
	for i, a := range added {
		events[i] = domain.NewAlertEvent(domain.AlertCreated, session, a)
	}
	s.publish(ctx, events...)
	return added, nil
}

// publish announces events. Failures are logged and counted; they never
// undo the change that was already saved.
func (s *Alerts) publish(ctx context.Context, events ...domain.AlertEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	outcome := "success"
	if err := s.publisher.PublishAlertEvents(ctx, events); err != nil {
		outcome = "error"
		s.logger.Error("publish alert events failed", "error", err, "count", len(events))
	}
	for _, e := range events {
		s.metrics.AlertEvents.WithLabelValues(string(e.Action), outcome).Inc()
	}
}

// indexOf returns the index of the first element matching pred, or -1.
func indexOf[T any](items []T, pred func(T) bool) int {
	for i, it := range items {
		if pred(it) {
			return i
		}
	}
	return -1
}
