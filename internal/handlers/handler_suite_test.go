package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	portssvc "github.com/dustbill/dustbill_backend/internal/core/ports/services"
	"github.com/dustbill/dustbill_backend/internal/handlers"
	"github.com/dustbill/dustbill_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

// handlerSuite wires the real router to mocked services. Handler suites embed it.
type handlerSuite struct {
	suite.Suite
	router    *gin.Engine
	cfg       *config.Config
	jwtSecret string

	mockProfile      *MockProfileService
	mockToken        *MockTokenService
	mockGoogle       *MockGoogleOAuthService
	mockClient       *MockClientService
	mockInvoice      *MockInvoiceService
	mockContract     *MockContractService
	mockPublic       *MockPublicDocumentService
	mockPayment      *MockPaymentService
	mockNotification *MockNotificationService
	mockDashboard    *MockDashboardService
}

func (s *handlerSuite) SetupSuite() {
	s.Require().NoError(handlers.RegisterValidators())
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.jwtSecret = "test-secret-key-that-is-long-enough"
	s.cfg = &config.Config{
		IsProduction:           true,
		JWTSecret:              s.jwtSecret,
		RefreshTokenCookieName: "rtid",
		RefreshTokenCookiePath: "/api/v1/auth",
		PublicURL:              "https://dust-bill.test",
		RateLimit:              "1000-M",
		PublicRateLimit:        "1000-M",
	}

	s.mockProfile = new(MockProfileService)
	s.mockToken = new(MockTokenService)
	s.mockGoogle = new(MockGoogleOAuthService)
	s.mockClient = new(MockClientService)
	s.mockInvoice = new(MockInvoiceService)
	s.mockContract = new(MockContractService)
	s.mockPublic = new(MockPublicDocumentService)
	s.mockPayment = new(MockPaymentService)
	s.mockNotification = new(MockNotificationService)
	s.mockDashboard = new(MockDashboardService)

	services := &portssvc.ServiceContainer{
		Profile:        s.mockProfile,
		Token:          s.mockToken,
		GoogleOAuth:    s.mockGoogle,
		Client:         s.mockClient,
		Invoice:        s.mockInvoice,
		Contract:       s.mockContract,
		PublicDocument: s.mockPublic,
		Payment:        s.mockPayment,
		Notification:   s.mockNotification,
		Dashboard:      s.mockDashboard,
	}

	s.router = gin.New()
	s.Require().NoError(handlers.RegisterRoutes(s.router, s.cfg, services, handlers.RouterDeps{}))
}

func (s *handlerSuite) TearDownTest() {
	s.mockProfile.AssertExpectations(s.T())
	s.mockToken.AssertExpectations(s.T())
	s.mockClient.AssertExpectations(s.T())
	s.mockInvoice.AssertExpectations(s.T())
	s.mockContract.AssertExpectations(s.T())
	s.mockPublic.AssertExpectations(s.T())
	s.mockPayment.AssertExpectations(s.T())
	s.mockNotification.AssertExpectations(s.T())
	s.mockDashboard.AssertExpectations(s.T())
}

// generateTestToken creates a dummy JWT for testing.
func (s *handlerSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "dustbill-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// serve sends a request through the router. body is JSON encoded unless nil;
// userID, when set, is sent as a bearer token.
func (s *handlerSuite) serve(method, path string, body any, userID string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.generateTestToken(userID))
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *handlerSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "Failed to unmarshal response body: %s", w.Body.String())
}

func (s *handlerSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body handlers.ErrorResponse
	s.decode(w, &body)
	return body.Error
}
