package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/domain/entities"
)

// FHIRHumanName represents a FHIR HumanName data type.
type FHIRHumanName struct {
	Use  string `json:"use,omitempty"` // usual | official | temp | nickname | anonymous | old | maiden
	Text string `json:"text,omitempty"`
}

// FHIRPatientGender represents the administrative gender of a patient.
// FHIR values: male | female | other | unknown
type FHIRPatientGender string

const (
	GenderMale    FHIRPatientGender = "male"
	GenderFemale  FHIRPatientGender = "female"
	GenderOther   FHIRPatientGender = "other"
	GenderUnknown FHIRPatientGender = "unknown"
)

// FHIRIdentifier is a business identifier for the resource.
type FHIRIdentifier struct {
	System string `json:"system,omitempty"`
	Value  string `json:"value,omitempty"`
}

// FHIRPatientResource is a simplified FHIR Patient resource carrying the
// demographics this system stores.
type FHIRPatientResource struct {
	ResourceType string            `json:"resourceType"` // "Patient"
	ID           string            `json:"id,omitempty"`
	Identifier   []FHIRIdentifier  `json:"identifier,omitempty"`
	Name         []FHIRHumanName   `json:"name,omitempty"`
	Gender       FHIRPatientGender `json:"gender,omitempty"`
}

// FHIRCoding is one code from a terminology system.
type FHIRCoding struct {
	System  string `json:"system,omitempty"`
	Code    string `json:"code,omitempty"`
	Display string `json:"display,omitempty"`
}

// FHIRCodeableConcept wraps a coding list.
type FHIRCodeableConcept struct {
	Coding []FHIRCoding `json:"coding,omitempty"`
	Text   string       `json:"text,omitempty"`
}

// FHIRQuantity is a measured value with its UCUM unit.
type FHIRQuantity struct {
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
	System string  `json:"system,omitempty"`
	Code   string  `json:"code,omitempty"`
}

// FHIRReference points at another resource.
type FHIRReference struct {
	Reference string `json:"reference,omitempty"`
}

// FHIRObservationComponent is one component of a multi-part observation,
// used for the blood pressure panel.
type FHIRObservationComponent struct {
	Code          FHIRCodeableConcept `json:"code"`
	ValueQuantity *FHIRQuantity       `json:"valueQuantity,omitempty"`
}

// FHIRObservation is a simplified FHIR Observation in the vital-signs
// category.
type FHIRObservation struct {
	ResourceType      string                     `json:"resourceType"` // "Observation"
	Status            string                     `json:"status"`       // registered | preliminary | final | amended
	Category          []FHIRCodeableConcept      `json:"category,omitempty"`
	Code              FHIRCodeableConcept        `json:"code"`
	Subject           *FHIRReference             `json:"subject,omitempty"`
	EffectiveDateTime string                     `json:"effectiveDateTime,omitempty"`
	ValueQuantity     *FHIRQuantity              `json:"valueQuantity,omitempty"`
	Component         []FHIRObservationComponent `json:"component,omitempty"`
}

// FHIRBundleEntry wraps one resource inside a bundle.
type FHIRBundleEntry struct {
	Resource interface{} `json:"resource"`
}

// FHIRBundle is a collection bundle of the patient and their vital-sign
// observations.
type FHIRBundle struct {
	ResourceType string            `json:"resourceType"` // "Bundle"
	Type         string            `json:"type"`         // "collection"
	Entry        []FHIRBundleEntry `json:"entry"`
}

const (
	loincSystem       = "http://loinc.org"
	ucumSystem        = "http://unitsofmeasure.org"
	observationCatURL = "http://terminology.hl7.org/CodeSystem/observation-category"
	patientCodeSystem = "urn:mediguard:patient-code"
)

var vitalSignsCategory = []FHIRCodeableConcept{{
	Coding: []FHIRCoding{{System: observationCatURL, Code: "vital-signs", Display: "Vital Signs"}},
}}

// MapPatientToFHIR converts a stored patient and their last vitals
// snapshot into a FHIR collection bundle.
func MapPatientToFHIR(patient entities.Patient) (json.RawMessage, error) {
	if patient.Code == "" {
		return nil, fmt.Errorf("patient code is required for FHIR mapping")
	}

	fhirPatient := FHIRPatientResource{
		ResourceType: "Patient",
		ID:           patient.ID.String(),
		Identifier:   []FHIRIdentifier{{System: patientCodeSystem, Value: patient.Code}},
		Gender:       mapGender(patient.Gender),
	}
	if patient.Name != "" {
		fhirPatient.Name = []FHIRHumanName{{Use: "official", Text: patient.Name}}
	}

	bundle := FHIRBundle{
		ResourceType: "Bundle",
		Type:         "collection",
		Entry:        []FHIRBundleEntry{{Resource: fhirPatient}},
	}

	var payload dtos.VitalsPayload
	if len(patient.Vitals) > 0 {
		if err := json.Unmarshal(patient.Vitals, &payload); err != nil {
			return nil, fmt.Errorf("decoding stored vitals: %w", err)
		}
	}

	subject := &FHIRReference{Reference: "Patient/" + patient.ID.String()}
	effective := patient.UpdatedAt
	if effective.IsZero() {
		effective = time.Now()
	}
	effectiveStr := effective.UTC().Format(time.RFC3339)

	for _, obs := range vitalObservations(payload, subject, effectiveStr) {
		bundle.Entry = append(bundle.Entry, FHIRBundleEntry{Resource: obs})
	}

	rawJSON, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling FHIR bundle: %w", err)
	}
	return rawJSON, nil
}

// vitalObservations builds one Observation per present reading, LOINC
// coded, plus the two-component blood pressure panel.
func vitalObservations(payload dtos.VitalsPayload, subject *FHIRReference, effective string) []FHIRObservation {
	var observations []FHIRObservation

	simple := func(code, display string, value float64, unit, ucum string) FHIRObservation {
		return FHIRObservation{
			ResourceType:      "Observation",
			Status:            "final",
			Category:          vitalSignsCategory,
			Code:              FHIRCodeableConcept{Coding: []FHIRCoding{{System: loincSystem, Code: code, Display: display}}},
			Subject:           subject,
			EffectiveDateTime: effective,
			ValueQuantity:     &FHIRQuantity{Value: value, Unit: unit, System: ucumSystem, Code: ucum},
		}
	}

	if payload.HR != nil && payload.HR.Value != nil {
		observations = append(observations, simple("8867-4", "Heart rate", *payload.HR.Value, "beats/minute", "/min"))
	}
	if payload.SpO2 != nil && payload.SpO2.Value != nil {
		observations = append(observations, simple("59408-5", "Oxygen saturation in Arterial blood by Pulse oximetry", *payload.SpO2.Value, "%", "%"))
	}
	if payload.Temp != nil && payload.Temp.Value != nil {
		observations = append(observations, simple("8310-5", "Body temperature", *payload.Temp.Value, "degrees Celsius", "Cel"))
	}
	if payload.RespiratoryRate != nil && payload.RespiratoryRate.Value != nil {
		observations = append(observations, simple("9279-1", "Respiratory rate", *payload.RespiratoryRate.Value, "breaths/minute", "/min"))
	}

	if payload.BP != nil && (payload.BP.Systolic != nil || payload.BP.Diastolic != nil) {
		panel := FHIRObservation{
			ResourceType:      "Observation",
			Status:            "final",
			Category:          vitalSignsCategory,
			Code:              FHIRCodeableConcept{Coding: []FHIRCoding{{System: loincSystem, Code: "85354-9", Display: "Blood pressure panel with all children optional"}}},
			Subject:           subject,
			EffectiveDateTime: effective,
		}
		if payload.BP.Systolic != nil {
			panel.Component = append(panel.Component, FHIRObservationComponent{
				Code:          FHIRCodeableConcept{Coding: []FHIRCoding{{System: loincSystem, Code: "8480-6", Display: "Systolic blood pressure"}}},
				ValueQuantity: &FHIRQuantity{Value: *payload.BP.Systolic, Unit: "mmHg", System: ucumSystem, Code: "mm[Hg]"},
			})
		}
		if payload.BP.Diastolic != nil {
			panel.Component = append(panel.Component, FHIRObservationComponent{
				Code:          FHIRCodeableConcept{Coding: []FHIRCoding{{System: loincSystem, Code: "8462-4", Display: "Diastolic blood pressure"}}},
				ValueQuantity: &FHIRQuantity{Value: *payload.BP.Diastolic, Unit: "mmHg", System: ucumSystem, Code: "mm[Hg]"},
			})
		}
		observations = append(observations, panel)
	}

	return observations
}

func mapGender(gender string) FHIRPatientGender {
	switch gender {
	case "male", "m", "ذكر":
		return GenderMale
	case "female", "f", "أنثى":
		return GenderFemale
	case "", "unknown":
		return GenderUnknown
	default:
		return GenderOther
	}
}
