package ws

import (
	"encoding/json"
	"time"
)

type PredictionCompletedEvent struct {
	Type      string `json:"type"`
	DatasetID string `json:"dataset_id"`
	Roles     int    `json:"roles"`
	Timestamp string `json:"timestamp"`
}

type ModelsInvalidatedEvent struct {
	Type      string `json:"type"`
	Scope     string `json:"scope"`
	Timestamp string `json:"timestamp"`
}

// EventNotifier publishes engine lifecycle events on the hub.
type EventNotifier struct {
	hub *Hub
}

func NewEventNotifier(hub *Hub) *EventNotifier {
	return &EventNotifier{hub: hub}
}

func (n *EventNotifier) PredictionCompleted(datasetID string, roles int) {
	if n == nil || n.hub == nil {
		return
	}
	n.publish(PredictionCompletedEvent{
		Type:      "prediction_completed",
		DatasetID: datasetID,
		Roles:     roles,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *EventNotifier) ModelsInvalidated(role string) {
	if n == nil || n.hub == nil {
		return
	}
	scope := role
	if scope == "" {
		scope = "all"
	}
	n.publish(ModelsInvalidatedEvent{
		Type:      "models_invalidated",
		Scope:     scope,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *EventNotifier) publish(evt any) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
