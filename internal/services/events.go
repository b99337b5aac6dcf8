package services

import (
	"encoding/json"
	"time"

	"mechadex/internal/logger"
)

// CatalogExchange is the topic exchange catalogue events are published to.
const CatalogExchange = "catalog"

// Routing keys for catalogue events.
const (
	EventMechCreated   = "mech.created"
	EventMechUpdated   = "mech.updated"
	EventAttackCreated = "attack.created"
	EventAttackUpdated = "attack.updated"
	EventAttackDeleted = "attack.deleted"
)

// EventPublisher delivers a message to a broker exchange.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CatalogEvent is the JSON body of every catalogue event.
type CatalogEvent struct {
	Type     string    `json:"type"`
	MechID   uint      `json:"mech_id"`
	AttackID uint      `json:"attack_id,omitempty"`
	Name     string    `json:"name,omitempty"`
	At       time.Time `json:"at"`
}

// publish never fails the caller; the write it reports is already committed.
func publish(p EventPublisher, event CatalogEvent) {
	if p == nil {
		return
	}
	event.At = time.Now().UTC()
	body, err := json.Marshal(event)
	if err != nil {
		logger.Warningf("failed to marshal %s event: %v", event.Type, err)
		return
	}
	if err := p.Publish(CatalogExchange, event.Type, body); err != nil {
		logger.Warningf("failed to publish %s event for mech %d: %v", event.Type, event.MechID, err)
		return
	}
	logger.Debugf("published %s event for mech %d", event.Type, event.MechID)
}
