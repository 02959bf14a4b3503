// posthog_client.go wraps posthog.Client so product analytics stay optional.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Analytics event names emitted by the document lifecycle.
const (
	EventInvoiceSent      = "invoice_sent"
	EventInvoiceApproved  = "invoice_approved"
	EventInvoiceRejected  = "invoice_rejected"
	EventInvoicePaid      = "invoice_paid"
	EventContractSent     = "contract_sent"
	EventContractAccepted = "contract_accepted"
	EventContractRejected = "contract_rejected"
	EventUserSignedUp     = "user_signed_up"
)

// PosthogClientWrapper is a nil-safe analytics sink. A wrapper built without an
// API key drops every event.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

func InitializePosthogClient(apiKey string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, product analytics disabled.")
		return &PosthogClientWrapper{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized")
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

// Enqueue records an event against the owner's user ID.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	w.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	w.posthogClient.Close()
}
