package pipeline

import "github.com/couchcryptid/disaster-helper/internal/domain"

const defaultLocation = "Your area"

// ToAlerts classifies raw advisories and converts each into an alert
// labelled with location. Advisories without an event name are skipped.
func ToAlerts(raw []domain.RawAdvisory, location string) []domain.Alert {
	alerts := make([]domain.Alert, 0, len(raw))
	for _, adv := range domain.ClassifyAdvisories(raw) {
		if adv.Type == "" {
			continue
		}
		alerts = append(alerts, domain.AlertFromAdvisory(adv, location))
	}
	return alerts
}
