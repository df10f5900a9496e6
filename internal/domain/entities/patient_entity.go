package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Patient represents a monitored patient in the system.
// Code is the external identifier used by devices and the frontend
// (the "patient_id" on the wire); ID is the internal primary key.
type Patient struct {
	ID                uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Code              string          `json:"patient_id" db:"code" gorm:"uniqueIndex;not null"`
	Name              string          `json:"name" db:"name"`
	Age               int             `json:"age" db:"age"`
	Gender            string          `json:"gender" db:"gender"` // normalized to male | female | unspecified
	ChronicConditions json.RawMessage `json:"chronic_conditions" db:"chronic_conditions" gorm:"type:jsonb"`
	Notes             string          `json:"notes" db:"notes"`
	Vitals            json.RawMessage `json:"vitals" db:"vitals" gorm:"type:jsonb"`               // last raw vitals payload as received
	LastAnalysis      json.RawMessage `json:"last_analysis" db:"last_analysis" gorm:"type:jsonb"` // full document of the latest analysis
	CreatedAt         time.Time       `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// ChronicConditionList decodes the JSONB conditions column. A missing or
// malformed column yields an empty list rather than an error.
func (p *Patient) ChronicConditionList() []string {
	if len(p.ChronicConditions) == 0 {
		return nil
	}
	var conditions []string
	if err := json.Unmarshal(p.ChronicConditions, &conditions); err != nil {
		return nil
	}
	return conditions
}
