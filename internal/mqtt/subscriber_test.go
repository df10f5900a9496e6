package mqtt

import (
	"context"
	"log"
	"os"
	"testing"

	"mediguard-backend/internal/config"
	"mediguard-backend/internal/domain/dtos"

	"github.com/stretchr/testify/assert"
)

type mockIngestService struct {
	submitted []dtos.AnalyzePatientRequest
	submitErr error
}

func (m *mockIngestService) Start(ctx context.Context) error { return nil }
func (m *mockIngestService) Stop(ctx context.Context) error  { return nil }
func (m *mockIngestService) Submit(ctx context.Context, request dtos.AnalyzePatientRequest) error {
	m.submitted = append(m.submitted, request)
	return m.submitErr
}

// fakeMessage implements the paho Message interface for handler tests.
type fakeMessage struct {
	topic   string
	payload []byte
}

func (f *fakeMessage) Duplicate() bool   { return false }
func (f *fakeMessage) Qos() byte         { return 1 }
func (f *fakeMessage) Retained() bool    { return false }
func (f *fakeMessage) Topic() string     { return f.topic }
func (f *fakeMessage) MessageID() uint16 { return 0 }
func (f *fakeMessage) Payload() []byte   { return f.payload }
func (f *fakeMessage) Ack()              {}

func newTestSubscriber(ingest *mockIngestService) *Subscriber {
	logger := log.New(os.Stdout, "TestMQTT: ", log.LstdFlags)
	cfg := config.MQTTConfig{
		Broker:   "tcp://localhost:1883",
		ClientID: "test-client",
		Topic:    "mediguard/vitals/#",
		QoS:      1,
	}
	return NewSubscriber(cfg, ingest, logger)
}

func TestHandleMessage_SubmitsRequest(t *testing.T) {
	ingest := &mockIngestService{}
	sub := newTestSubscriber(ingest)

	payload := []byte(`{"patient_id":"p800","vitals":{"hr":{"value":80}}}`)
	sub.handleMessage(nil, &fakeMessage{topic: "mediguard/vitals/p800", payload: payload})

	assert.Len(t, ingest.submitted, 1)
	assert.Equal(t, "p800", ingest.submitted[0].PatientID)
	assert.NotNil(t, ingest.submitted[0].Vitals.HR)
}

func TestHandleMessage_PatientCodeFromTopic(t *testing.T) {
	ingest := &mockIngestService{}
	sub := newTestSubscriber(ingest)

	payload := []byte(`{"vitals":{"spo2":{"value":97}}}`)
	sub.handleMessage(nil, &fakeMessage{topic: "mediguard/vitals/p801", payload: payload})

	assert.Len(t, ingest.submitted, 1)
	assert.Equal(t, "p801", ingest.submitted[0].PatientID)
}

func TestHandleMessage_DropsMalformedPayload(t *testing.T) {
	ingest := &mockIngestService{}
	sub := newTestSubscriber(ingest)

	sub.handleMessage(nil, &fakeMessage{topic: "mediguard/vitals/p802", payload: []byte("not json")})
	assert.Empty(t, ingest.submitted)
}

func TestHandleMessage_DropsCodelessMessage(t *testing.T) {
	ingest := &mockIngestService{}
	sub := newTestSubscriber(ingest)

	sub.handleMessage(nil, &fakeMessage{topic: "mediguard/vitals", payload: []byte(`{}`)})
	assert.Empty(t, ingest.submitted)
}

func TestPatientCodeFromTopic(t *testing.T) {
	assert.Equal(t, "p1", patientCodeFromTopic("mediguard/vitals/p1"))
	assert.Equal(t, "", patientCodeFromTopic("mediguard/vitals"))
	assert.Equal(t, "", patientCodeFromTopic("vitals"))
}
