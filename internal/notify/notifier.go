// Package notify delivers profile lifecycle notifications. Delivery is
// best-effort: callers log failures and never roll a state transition back
// because an email could not be sent.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Kind identifies the notification template.
type Kind string

const (
	KindApproved    Kind = "profile_approved"
	KindRejected    Kind = "profile_rejected"
	KindSuspended   Kind = "profile_suspended"
	KindReactivated Kind = "profile_reactivated"
	KindRegistered  Kind = "profile_registered"
)

// Notifier sends a templated notification to a recipient.
type Notifier interface {
	Notify(ctx context.Context, kind Kind, recipient string, context map[string]interface{}) error
}

// LogNotifier writes notifications to the service log. It stands in for a
// real mail provider integration.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a Notifier backed by the given logger.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(ctx context.Context, kind Kind, recipient string, fields map[string]interface{}) error {
	n.log.Info("Sending notification",
		zap.String("kind", string(kind)),
		zap.String("recipient", recipient),
		zap.Any("context", fields))
	return nil
}
