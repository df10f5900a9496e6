package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Assessment is one stored analysis run for a patient.
// ResultData holds the full analysis document as JSONB; the risk level,
// alert color and NEWS total are denormalized for history queries.
type Assessment struct {
	ID         uuid.UUID       `json:"id" db:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	PatientID  uuid.UUID       `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	ResultData json.RawMessage `json:"result_data" db:"result_data" gorm:"type:jsonb;not null"`
	RiskLevel  string          `json:"risk_level" db:"risk_level" gorm:"not null"`
	AlertColor string          `json:"alert_color" db:"alert_color" gorm:"not null"`
	NEWSScore  int             `json:"news_score" db:"news_score"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at" gorm:"not null"`
}
