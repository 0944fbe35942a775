// Package eventbridge publishes view invalidation signals to AWS
// EventBridge, where rules fan them out to the CDN and page-cache
// consumers.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"snipvault/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

const eventSource = "snipvault.api"

// InvalidationPublisher implements ports.ViewInvalidator using EventBridge
type InvalidationPublisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewInvalidationPublisher creates an EventBridge-backed view invalidator
func NewInvalidationPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) *InvalidationPublisher {
	return &InvalidationPublisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

var _ ports.ViewInvalidator = (*InvalidationPublisher)(nil)

type invalidationEvent struct {
	View      string `json:"view"`
	FileID    string `json:"fileId,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Invalidate publishes an invalidation signal. Failures are logged and
// swallowed: a stale view is acceptable, a failed write is not, so this
// never propagates errors into the mutation path.
func (p *InvalidationPublisher) Invalidate(ctx context.Context, view ports.View, fileID string) {
	detail, err := json.Marshal(invalidationEvent{
		View:      string(view),
		FileID:    fileID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Error("Failed to marshal invalidation event", zap.Error(err))
		return
	}

	entry := types.PutEventsRequestEntry{
		EventBusName: aws.String(p.eventBusName),
		Source:       aws.String(eventSource),
		DetailType:   aws.String("ViewInvalidated"),
		Detail:       aws.String(string(detail)),
		Time:         aws.Time(time.Now()),
	}
	if fileID != "" {
		entry.Resources = []string{fmt.Sprintf("arn:aws:snipvault::file/%s", fileID)}
	}

	result, err := p.client.PutEvents(ctx, &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{entry},
	})
	if err != nil {
		p.logger.Warn("Failed to publish view invalidation",
			zap.String("view", string(view)),
			zap.String("fileID", fileID),
			zap.Error(err),
		)
		return
	}

	if result.FailedEntryCount > 0 {
		for _, e := range result.Entries {
			if e.ErrorCode != nil {
				p.logger.Warn("View invalidation entry rejected",
					zap.String("view", string(view)),
					zap.String("errorCode", aws.ToString(e.ErrorCode)),
					zap.String("errorMessage", aws.ToString(e.ErrorMessage)),
				)
			}
		}
		return
	}

	p.logger.Debug("View invalidation published",
		zap.String("view", string(view)),
		zap.String("fileID", fileID),
	)
}
