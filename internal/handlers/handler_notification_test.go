package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dustbill/dustbill_backend/internal/apperrors"
	"github.com/dustbill/dustbill_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type NotificationHandlerTestSuite struct {
	handlerSuite
	userID string
}

func (s *NotificationHandlerTestSuite) SetupTest() {
	s.handlerSuite.SetupTest()
	s.userID = uuid.NewString()
}

func (s *NotificationHandlerTestSuite) TestDispatch_RecordSent() {
	recordID := uuid.NewString()
	req := dto.DispatchRequest{NotificationRecordID: recordID}
	s.mockNotification.On("Dispatch", mock.AnythingOfType("*context.valueCtx"), req).Return(map[string]any{"id": "re_123"}, nil).Once()

	w := s.serve(http.MethodPost, "/api/v1/notifications/dispatch", req, s.userID)

	s.Equal(http.StatusOK, w.Code)
	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
		Error   string         `json:"error"`
	}
	s.decode(w, &body)
	s.True(body.Success)
	s.Equal("re_123", body.Data["id"])
	s.Empty(body.Error)
}

func (s *NotificationHandlerTestSuite) TestDispatch_NoRecipient() {
	req := dto.DispatchRequest{Subject: "Hello", HTML: "<p>Hi</p>"}
	s.mockNotification.On("Dispatch", mock.Anything, req).
		Return(nil, apperrors.NewDeliveryError("No recipient email address provided")).Once()

	w := s.serve(http.MethodPost, "/api/v1/notifications/dispatch", req, s.userID)

	s.Equal(http.StatusBadGateway, w.Code)
	var body dto.DispatchResponse
	s.decode(w, &body)
	s.False(body.Success)
	s.Equal("No recipient email address provided", body.Error)
}

func (s *NotificationHandlerTestSuite) TestDispatch_ForeignSender() {
	req := dto.DispatchRequest{To: "client@example.com", HTML: "<p>Pay now</p>", From: "billing@bank.example"}
	s.mockNotification.On("Dispatch", mock.Anything, req).
		Return(nil, apperrors.ValidationError("Sender address must be the configured sender")).Once()

	w := s.serve(http.MethodPost, "/api/v1/notifications/dispatch", req, s.userID)

	s.Equal(http.StatusBadRequest, w.Code)
	var body dto.DispatchResponse
	s.decode(w, &body)
	s.False(body.Success)
	s.Equal("Sender address must be the configured sender", body.Error)
}

func (s *NotificationHandlerTestSuite) TestDispatch_UnknownRecord() {
	recordID := uuid.NewString()
	req := dto.DispatchRequest{NotificationRecordID: recordID}
	s.mockNotification.On("Dispatch", mock.Anything, req).
		Return(nil, fmt.Errorf("notification record %s: %w", recordID, apperrors.ErrNotFound)).Once()

	w := s.serve(http.MethodPost, "/api/v1/notifications/dispatch", req, s.userID)

	s.Equal(http.StatusNotFound, w.Code)
	var body dto.DispatchResponse
	s.decode(w, &body)
	s.False(body.Success)
	s.Equal("Notification not found", body.Error)
}

func (s *NotificationHandlerTestSuite) TestDispatch_RejectsMalformedRecordID() {
	w := s.serve(http.MethodPost, "/api/v1/notifications/dispatch", map[string]string{"notificationRecordId": "not-a-uuid"}, s.userID)

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockNotification.AssertNotCalled(s.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (s *NotificationHandlerTestSuite) TestDispatch_RequiresToken() {
	w := s.serve(http.MethodPost, "/api/v1/notifications/dispatch", dto.DispatchRequest{To: "a@b.test"}, "")

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *NotificationHandlerTestSuite) TestResend_ProviderFailure() {
	recordID := uuid.NewString()
	s.mockNotification.On("Resend", mock.Anything, s.userID, recordID).
		Return(nil, apperrors.NewDeliveryError("resend: rate limited")).Once()

	w := s.serve(http.MethodPost, "/api/v1/notifications/"+recordID+"/resend", nil, s.userID)

	s.Equal(http.StatusBadGateway, w.Code)
	var body dto.DispatchResponse
	s.decode(w, &body)
	s.False(body.Success)
}

func TestNotificationHandler(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}
