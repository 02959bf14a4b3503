package services

import (
	"context"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/dto"
)

// PaymentCaptureSvc records checkout widget callbacks.
type PaymentCaptureSvc interface {
	CheckoutConfig(ctx context.Context, shareToken string) (*domain.CheckoutDetails, error)
	RecordPaymentSuccess(ctx context.Context, shareToken string, req dto.PaymentSuccessRequest) (*domain.Payment, error)
	RecordPaymentFailure(ctx context.Context, shareToken string, req dto.PaymentFailureRequest) (*domain.Payment, error)
}

// PaymentReaderSvc lists recorded payment attempts.
type PaymentReaderSvc interface {
	ListPayments(ctx context.Context, ownerID string, invoiceID string) ([]domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentCaptureSvc
	PaymentReaderSvc
}
