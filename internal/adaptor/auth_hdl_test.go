package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"course-platform/internal/dto/request"
	"course-platform/internal/dto/response"
	"course-platform/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubAuthService struct {
	registerResp *response.AuthResponse
	registerErr  error
	loginResp    *response.AuthResponse
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error { return nil }

func (s *stubAuthService) ForgotPassword(ctx context.Context, req *request.ForgotPasswordRequest) error {
	return nil
}

func (s *stubAuthService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	return nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()

	var envelope utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope
}

func TestRegisterHandler(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		registerResp: &response.AuthResponse{
			UserID: "u-1",
			Email:  "ada@example.com",
			Token:  "t-1",
		},
	}, zaptest.NewLogger(t))

	body := `{"name":"Ada Lovelace","email":"ada@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Status)
	assert.Equal(t, "Registration successful", envelope.Message)
	assert.NotNil(t, envelope.Data)
}

func TestRegisterHandlerInvalidBody(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
}

func TestRegisterHandlerValidation(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, zaptest.NewLogger(t))

	// Missing password, bad email
	body := `{"name":"Ada","email":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
	assert.Equal(t, "Validation failed", envelope.Message)
	assert.NotNil(t, envelope.Errors)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{
		loginErr: fmt.Errorf("invalid credentials"),
	}, zaptest.NewLogger(t))

	body := `{"email":"ada@example.com","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Status)
	assert.Contains(t, envelope.Message, "invalid credentials")
}

func TestHandleServiceErrorMapping(t *testing.T) {
	log := zaptest.NewLogger(t)

	cases := []struct {
		err  string
		code int
	}{
		{"course abc not found", http.StatusNotFound},
		{"email already registered", http.StatusBadRequest},
		{"invalid credentials", http.StatusUnauthorized},
		{"not allowed to manage this course", http.StatusForbidden},
		{"not enrolled in this course", http.StatusForbidden},
		{"invalid payment signature", http.StatusBadRequest},
		{"invalid webhook signature", http.StatusBadRequest},
		{"something exploded", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handleServiceError(rec, log, fmt.Errorf("%s", tc.err), "test")
		assert.Equal(t, tc.code, rec.Code, "error %q", tc.err)
	}
}
