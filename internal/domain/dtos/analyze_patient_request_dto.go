package dtos

import "mediguard-backend/internal/scoring"

// Measurement is one device reading in the nested wire format.
type Measurement struct {
	Value *float64 `json:"value"`
}

// BloodPressure is the paired cuff reading.
type BloodPressure struct {
	Systolic  *float64 `json:"systolic"`
	Diastolic *float64 `json:"diastolic"`
}

// VitalsPayload is the nested vitals document produced by the devices and
// the frontend. Absent sections mean the device sent nothing.
type VitalsPayload struct {
	HR              *Measurement   `json:"hr,omitempty"`
	BP              *BloodPressure `json:"bp,omitempty"`
	SpO2            *Measurement   `json:"spo2,omitempty"`
	Temp            *Measurement   `json:"temp,omitempty"`
	RespiratoryRate *Measurement   `json:"respiratory_rate,omitempty"`
}

// AnalyzePatientRequest is the payload for a full integrated analysis.
type AnalyzePatientRequest struct {
	PatientID         string        `json:"patient_id" validate:"required"`
	Name              string        `json:"name"`
	Age               int           `json:"age"`
	Gender            string        `json:"gender"`
	ChronicConditions []string      `json:"chronic_conditions"`
	Notes             string        `json:"notes"`
	Language          string        `json:"language" validate:"omitempty,oneof=en ar"`
	ECGSignal         []float64     `json:"ecg_signal"`
	Vitals            VitalsPayload `json:"vitals"`
}

// FlattenVitals converts the nested wire shape into the flat form the
// scoring rules consume.
func (r AnalyzePatientRequest) FlattenVitals() scoring.VitalSigns {
	var vitals scoring.VitalSigns
	if r.Vitals.HR != nil {
		vitals.Pulse = r.Vitals.HR.Value
	}
	if r.Vitals.BP != nil {
		vitals.SystolicBP = r.Vitals.BP.Systolic
		vitals.DiastolicBP = r.Vitals.BP.Diastolic
	}
	if r.Vitals.SpO2 != nil {
		vitals.SpO2 = r.Vitals.SpO2.Value
	}
	if r.Vitals.Temp != nil {
		vitals.Temperature = r.Vitals.Temp.Value
	}
	if r.Vitals.RespiratoryRate != nil {
		vitals.RespiratoryRate = r.Vitals.RespiratoryRate.Value
	}
	return vitals
}
