package scoring

import "fmt"

// Plausible measurement windows. Readings outside these ranges are treated
// as sensor faults, not clinical values.
const (
	minPlausibleHR   = 30
	maxPlausibleHR   = 220
	minPlausibleSpO2 = 50
	maxPlausibleSpO2 = 100
	minPlausibleTemp = 30
	maxPlausibleTemp = 43
	minPlausibleSBP  = 60
	maxPlausibleSBP  = 250
	minPlausibleDBP  = 30
	maxPlausibleDBP  = 150
	minPlausibleRR   = 5
	maxPlausibleRR   = 60
)

const errDeviceDisconnected = "device_disconnected"

// CheckSensorIntegrity reports disconnected devices (missing readings) and
// implausible values. Blood pressure is one device: either half missing or
// implausible faults the pair.
func CheckSensorIntegrity(vitals VitalSigns) []SensorError {
	var errors []SensorError

	if vitals.Pulse == nil {
		errors = append(errors, SensorError{Sensor: "Heart Rate", Error: errDeviceDisconnected})
	} else if *vitals.Pulse < minPlausibleHR || *vitals.Pulse > maxPlausibleHR {
		errors = append(errors, SensorError{Sensor: "Heart Rate", Error: implausible(*vitals.Pulse)})
	}

	if vitals.SpO2 == nil {
		errors = append(errors, SensorError{Sensor: "SpO2", Error: errDeviceDisconnected})
	} else if *vitals.SpO2 < minPlausibleSpO2 || *vitals.SpO2 > maxPlausibleSpO2 {
		errors = append(errors, SensorError{Sensor: "SpO2", Error: implausible(*vitals.SpO2)})
	}

	if vitals.Temperature == nil {
		errors = append(errors, SensorError{Sensor: "Temperature", Error: errDeviceDisconnected})
	} else if *vitals.Temperature < minPlausibleTemp || *vitals.Temperature > maxPlausibleTemp {
		errors = append(errors, SensorError{Sensor: "Temperature", Error: implausible(*vitals.Temperature)})
	}

	if vitals.SystolicBP == nil || vitals.DiastolicBP == nil {
		errors = append(errors, SensorError{Sensor: "Blood Pressure", Error: errDeviceDisconnected})
	} else if *vitals.SystolicBP < minPlausibleSBP || *vitals.SystolicBP > maxPlausibleSBP ||
		*vitals.DiastolicBP < minPlausibleDBP || *vitals.DiastolicBP > maxPlausibleDBP {
		errors = append(errors, SensorError{
			Sensor: "Blood Pressure",
			Error:  fmt.Sprintf("implausible_value: %g/%g", *vitals.SystolicBP, *vitals.DiastolicBP),
		})
	}

	if vitals.RespiratoryRate == nil {
		errors = append(errors, SensorError{Sensor: "Respiratory Rate", Error: errDeviceDisconnected})
	} else if *vitals.RespiratoryRate < minPlausibleRR || *vitals.RespiratoryRate > maxPlausibleRR {
		errors = append(errors, SensorError{Sensor: "Respiratory Rate", Error: implausible(*vitals.RespiratoryRate)})
	}

	return errors
}

func implausible(value float64) string {
	return fmt.Sprintf("implausible_value: %g", value)
}

// cleanVitals nulls every vital implicated by a sensor error so that
// faulty readings never reach the scoring rules.
func cleanVitals(vitals VitalSigns, errors []SensorError) VitalSigns {
	cleaned := vitals
	for _, err := range errors {
		switch err.Sensor {
		case "Blood Pressure":
			cleaned.SystolicBP = nil
			cleaned.DiastolicBP = nil
		case "SpO2":
			cleaned.SpO2 = nil
		case "Heart Rate":
			cleaned.Pulse = nil
		case "Temperature":
			cleaned.Temperature = nil
		case "Respiratory Rate":
			cleaned.RespiratoryRate = nil
		}
	}
	return cleaned
}
