package dtos

import (
	"time"

	"mediguard-backend/internal/domain/entities"
)

// HistoryEntry is one row of a patient's assessment history.
type HistoryEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RiskLevel  string    `json:"risk_level"`
	AlertColor string    `json:"alert_color"`
	NEWSScore  int       `json:"news_score"`
}

// NewHistoryEntries maps stored assessments to history rows.
func NewHistoryEntries(assessments []*entities.Assessment) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(assessments))
	for _, a := range assessments {
		entries = append(entries, HistoryEntry{
			Timestamp:  a.CreatedAt,
			RiskLevel:  a.RiskLevel,
			AlertColor: a.AlertColor,
			NEWSScore:  a.NEWSScore,
		})
	}
	return entries
}
