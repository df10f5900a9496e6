package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"mediguard-backend/internal/config"
	"mediguard-backend/internal/domain/dtos"
	"mediguard-backend/internal/services"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Subscriber feeds vitals readings published by bedside devices into the
// ingest pipeline. Messages are AnalyzePatientRequest JSON; the patient
// code may also ride on the topic suffix (mediguard/vitals/<code>).
type Subscriber struct {
	cfg           config.MQTTConfig
	ingestService services.IngestServiceContract
	logger        *log.Logger
	client        mqtt.Client
}

func NewSubscriber(cfg config.MQTTConfig, ingestService services.IngestServiceContract, logger *log.Logger) *Subscriber {
	return &Subscriber{
		cfg:           cfg,
		ingestService: ingestService,
		logger:        logger,
	}
}

// Start connects to the broker and subscribes to the vitals topic.
func (s *Subscriber) Start() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.cfg.Broker)
	opts.SetClientID(s.cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		s.logger.Printf("Connected to MQTT broker %s", s.cfg.Broker)
		token := client.Subscribe(s.cfg.Topic, byte(s.cfg.QoS), s.handleMessage)
		token.Wait()
		if err := token.Error(); err != nil {
			s.logger.Printf("Failed to subscribe to %s: %v", s.cfg.Topic, err)
			return
		}
		s.logger.Printf("Subscribed to topic %s", s.cfg.Topic)
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		s.logger.Printf("MQTT connection lost: %v", err)
	}

	s.client = mqtt.NewClient(opts)
	if token := s.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connecting to MQTT broker %s: %w", s.cfg.Broker, token.Error())
	}
	return nil
}

// Stop disconnects from the broker.
func (s *Subscriber) Stop() {
	if s.client != nil && s.client.IsConnected() {
		s.client.Disconnect(250)
		s.logger.Println("MQTT subscriber disconnected")
	}
}

func (s *Subscriber) handleMessage(client mqtt.Client, msg mqtt.Message) {
	var request dtos.AnalyzePatientRequest
	if err := json.Unmarshal(msg.Payload(), &request); err != nil {
		s.logger.Printf("Dropping malformed vitals message on %s: %v", msg.Topic(), err)
		return
	}

	if request.PatientID == "" {
		request.PatientID = patientCodeFromTopic(msg.Topic())
	}
	if request.PatientID == "" {
		s.logger.Printf("Dropping vitals message on %s: no patient code", msg.Topic())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.ingestService.Submit(ctx, request); err != nil {
		s.logger.Printf("Failed to queue vitals for patient %s: %v", request.PatientID, err)
	}
}

// patientCodeFromTopic returns the last topic segment, or empty when the
// topic has no per-patient suffix.
func patientCodeFromTopic(topic string) string {
	segments := strings.Split(topic, "/")
	if len(segments) < 3 {
		return ""
	}
	return segments[len(segments)-1]
}
