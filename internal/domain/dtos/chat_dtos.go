package dtos

// ChatRequest is a message to the medical assistant about one patient.
type ChatRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
