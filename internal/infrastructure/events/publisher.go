// Package events publishes case lifecycle notifications to EventBridge so
// downstream consumers (UI push, document generation) can react to graph
// changes. Publishing is best-effort: a failed publish never fails the
// originating request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const eventSource = "claimgraph.backend"

// Publisher emits graph-updated events. A nil client disables publishing,
// which is how local and test runs operate.
type Publisher struct {
	client  *eventbridge.Client
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a publisher for the given event bus.
func NewPublisher(client *eventbridge.Client, busName string, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, busName: busName, logger: logger}
}

// GraphUpdated describes one persisted change to a case graph.
type GraphUpdated struct {
	ClaimID    string `json:"claimId"`
	Action     string `json:"action"`
	DocVersion int    `json:"docVersion"`
	Timestamp  int64  `json:"timestamp"`
}

// PublishGraphUpdated emits a graphUpdated event. Errors are logged, not
// returned.
func (p *Publisher) PublishGraphUpdated(ctx context.Context, claimID, action string, docVersion int) {
	if p == nil || p.client == nil {
		return
	}

	detail, err := json.Marshal(GraphUpdated{
		ClaimID:    claimID,
		Action:     action,
		DocVersion: docVersion,
		Timestamp:  time.Now().UnixMilli(),
	})
	if err != nil {
		p.logger.Error("marshal graphUpdated event", zap.Error(err))
		return
	}

	_, err = p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.busName),
				Source:       aws.String(eventSource),
				DetailType:   aws.String("graphUpdated"),
				Detail:       aws.String(string(detail)),
			},
		},
	})
	if err != nil {
		p.logger.Error("publish graphUpdated event",
			zap.String("claim_id", claimID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
