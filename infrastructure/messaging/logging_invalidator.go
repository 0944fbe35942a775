// Package messaging holds the view invalidation adapters shared by the
// concrete publishers.
package messaging

import (
	"context"

	"snipvault/application/ports"

	"go.uber.org/zap"
)

// LoggingInvalidator logs invalidation signals instead of publishing
// them. Used in development and wherever no event bus is configured.
type LoggingInvalidator struct {
	logger *zap.Logger
}

// NewLoggingInvalidator creates a log-only view invalidator
func NewLoggingInvalidator(logger *zap.Logger) *LoggingInvalidator {
	return &LoggingInvalidator{logger: logger}
}

var _ ports.ViewInvalidator = (*LoggingInvalidator)(nil)

// Invalidate logs the signal and returns
func (i *LoggingInvalidator) Invalidate(ctx context.Context, view ports.View, fileID string) {
	i.logger.Debug("View invalidated",
		zap.String("view", string(view)),
		zap.String("fileID", fileID),
	)
}
