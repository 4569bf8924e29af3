package events

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Taxonomy event subjects
const (
	CategoryCreated = "taxonomy.category.created"
	CategoryRenamed = "taxonomy.category.renamed"
	CategoryDeleted = "taxonomy.category.deleted"
	SKUGenerated    = "taxonomy.sku.generated"
	SKUTrashed      = "taxonomy.sku.trashed"
	SKURestored     = "taxonomy.sku.restored"
	SKUPurged       = "taxonomy.sku.purged"
)

const streamName = "TAXONOMY_EVENTS"

// TaxonomyEvent is the audit payload published for taxonomy and SKU mutations
type TaxonomyEvent struct {
	EventType  string                 `json:"eventType"`
	EntityID   string                 `json:"entityId,omitempty"`
	EntityName string                 `json:"entityName,omitempty"`
	ActorID    string                 `json:"actorId,omitempty"`
	Count      int                    `json:"count,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// Publisher publishes taxonomy audit events to NATS JetStream. A nil
// Publisher is safe to call; events are simply dropped.
type Publisher struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Entry
}

// NewPublisher connects to NATS and ensures the taxonomy event stream exists
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	nc, err := nats.Connect(natsURL,
		nats.Name("taxonomy-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	entry := logger.WithField("component", "events.publisher")

	if _, err := js.StreamInfo(streamName); err != nil {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:     streamName,
			Subjects: []string{"taxonomy.>"},
			Storage:  nats.FileStorage,
		})
		if err != nil {
			entry.WithError(err).Warn("Failed to ensure TAXONOMY_EVENTS stream")
		}
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		logger: entry,
	}, nil
}

func (p *Publisher) publish(subject string, event *TaxonomyEvent) {
	if p == nil {
		return
	}
	event.EventType = subject
	event.Timestamp = time.Now().UTC()

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.WithError(err).WithField("subject", subject).Error("Failed to marshal event")
		return
	}
	if _, err := p.js.Publish(subject, data); err != nil {
		// Audit events are best effort; mutations never fail over publishing
		p.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish event")
	}
}

// PublishCategoryCreated publishes a category created event
func (p *Publisher) PublishCategoryCreated(categoryID, name, actorID string) {
	p.publish(CategoryCreated, &TaxonomyEvent{EntityID: categoryID, EntityName: name, ActorID: actorID})
}

// PublishCategoryRenamed publishes a category renamed event
func (p *Publisher) PublishCategoryRenamed(categoryID, name, actorID string) {
	p.publish(CategoryRenamed, &TaxonomyEvent{EntityID: categoryID, EntityName: name, ActorID: actorID})
}

// PublishCategoryDeleted publishes a category deleted event
func (p *Publisher) PublishCategoryDeleted(categoryID, actorID string) {
	p.publish(CategoryDeleted, &TaxonomyEvent{EntityID: categoryID, ActorID: actorID})
}

// PublishSKUGenerated publishes a batch generation event with the created count
func (p *Publisher) PublishSKUGenerated(brandID string, count int, actorID string) {
	p.publish(SKUGenerated, &TaxonomyEvent{
		ActorID: actorID,
		Count:   count,
		Metadata: map[string]interface{}{
			"brandId": brandID,
		},
	})
}

// PublishSKUTrashed publishes a SKU soft-delete event
func (p *Publisher) PublishSKUTrashed(skuID, actorID string) {
	p.publish(SKUTrashed, &TaxonomyEvent{EntityID: skuID, ActorID: actorID})
}

// PublishSKURestored publishes a SKU restore event
func (p *Publisher) PublishSKURestored(skuID, actorID string) {
	p.publish(SKURestored, &TaxonomyEvent{EntityID: skuID, ActorID: actorID})
}

// PublishSKUPurged publishes a SKU permanent-delete event
func (p *Publisher) PublishSKUPurged(skuID, actorID string) {
	p.publish(SKUPurged, &TaxonomyEvent{EntityID: skuID, ActorID: actorID})
}

// Close drains the NATS connection
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Close()
}
