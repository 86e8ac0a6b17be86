// Package notifier publishes import events for downstream consumers.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vinsync-io/vinsync/internal/importd/core"
	"github.com/vinsync-io/vinsync/internal/importd/core/model"
	"github.com/vinsync-io/vinsync/pkg/mqtt"
)

var _ core.EventNotifier = (*MQTTNotifier)(nil)

// MQTTNotifier publishes import events to {topicRoot}/events/import.
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
}

// NewMQTTNotifier wraps a connected MQTT client as an event notifier.
func NewMQTTNotifier(client mqtt.Client, topicRoot string) *MQTTNotifier {
	return &MQTTNotifier{
		client: client,
		topic:  topicRoot + "/events/import",
	}
}

// Notify publishes one import event as JSON at QoS 1.
func (n *MQTTNotifier) Notify(ctx context.Context, event *model.ImportEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal import event: %w", err)
	}
	return n.client.Publish(ctx, n.topic, 1, false, payload)
}
