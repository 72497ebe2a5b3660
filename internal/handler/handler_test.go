package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"codeforge/internal/auth"
	"codeforge/internal/config"
	apperrors "codeforge/internal/errors"
	"codeforge/internal/model"
	"codeforge/internal/service"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

// authenticate plants verified claims on the context the way the JWT
// middleware does.
func authenticate(c echo.Context, userID uint, email string) {
	claims := &auth.Claims{UserID: userID, Email: email}
	c.Set("user", &jwt.Token{Claims: claims, Valid: true})
}

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, password, name string) (*model.User, string, error) {
	args := m.Called(ctx, email, password, name)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*model.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockGenerationService is a mock implementation of service.GenerationService.
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, userID uint, prompt string, languageID uint) (*service.GenerationView, error) {
	args := m.Called(ctx, userID, prompt, languageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerationView), args.Error(1)
}

func (m *MockGenerationService) GetHistory(ctx context.Context, userID uint, page, limit int) (*service.PaginatedHistory, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PaginatedHistory), args.Error(1)
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockAuthService)
		expectedStatus int
		expectCookie   bool
	}{
		{
			name: "successful signup sets the token cookie",
			body: `{"email":"a@x.com","password":"secret1","name":"Ana"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "a@x.com", "secret1", "Ana").
					Return(&model.User{ID: 1, Email: "a@x.com", Name: "Ana"}, "signed-token", nil)
			},
			expectedStatus: http.StatusCreated,
			expectCookie:   true,
		},
		{
			name: "duplicate email",
			body: `{"email":"a@x.com","password":"secret1","name":"Ana"}`,
			setupMock: func(m *MockAuthService) {
				m.On("Signup", mock.Anything, "a@x.com", "secret1", "Ana").
					Return(nil, "", apperrors.ErrUserAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid email rejected at the boundary",
			body:           `{"email":"not-an-email","password":"secret1","name":"Ana"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password rejected at the boundary",
			body:           `{"email":"a@x.com","password":"abc","name":"Ana"}`,
			setupMock:      func(m *MockAuthService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAuth := new(MockAuthService)
			tt.setupMock(mockAuth)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := NewAuthHandler(mockAuth, &config.Config{Environment: "development"})
			assert.NoError(t, h.Signup(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectCookie {
				cookies := rec.Result().Cookies()
				var tokenCookie *http.Cookie
				for _, cookie := range cookies {
					if cookie.Name == TokenCookieName {
						tokenCookie = cookie
					}
				}
				assert.NotNil(t, tokenCookie)
				assert.Equal(t, "signed-token", tokenCookie.Value)
				assert.True(t, tokenCookie.HttpOnly)
				assert.True(t, tokenCookie.Secure)
				assert.Equal(t, http.SameSiteLaxMode, tokenCookie.SameSite)
			}

			mockAuth.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(MockAuthService)
	mockAuth.On("Login", mock.Anything, "a@x.com", "wrong").Return(nil, "", apperrors.ErrInvalidCredentials)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"a@x.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewAuthHandler(mockAuth, &config.Config{})
	assert.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body apperrors.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, 7, "a@x.com")

	h := NewAuthHandler(new(MockAuthService), &config.Config{})
	assert.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, TokenCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestGenerationHandler_Generate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		authenticated  bool
		setupMock      func(*MockGenerationService)
		expectedStatus int
	}{
		{
			name:          "successful generation",
			body:          `{"prompt":"write a function that adds two numbers","languageId":1}`,
			authenticated: true,
			setupMock: func(m *MockGenerationService) {
				m.On("Generate", mock.Anything, uint(7), "write a function that adds two numbers", uint(1)).
					Return(&service.GenerationView{ID: 1, Language: "python", Code: "def add(a,b): return a+b"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:          "invalid language",
			body:          `{"prompt":"write a function that adds two numbers","languageId":99}`,
			authenticated: true,
			setupMock: func(m *MockGenerationService) {
				m.On("Generate", mock.Anything, uint(7), "write a function that adds two numbers", uint(99)).
					Return(nil, apperrors.ErrInvalidLanguage)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:          "rate limited provider",
			body:          `{"prompt":"write a function that adds two numbers","languageId":1}`,
			authenticated: true,
			setupMock: func(m *MockGenerationService) {
				m.On("Generate", mock.Anything, uint(7), "write a function that adds two numbers", uint(1)).
					Return(nil, &apperrors.RateLimitError{RetryAfter: "30s"})
			},
			expectedStatus: http.StatusTooManyRequests,
		},
		{
			name:           "prompt too short",
			body:           `{"prompt":"too short","languageId":1}`,
			authenticated:  true,
			setupMock:      func(m *MockGenerationService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing language id",
			body:           `{"prompt":"write a function that adds two numbers"}`,
			authenticated:  true,
			setupMock:      func(m *MockGenerationService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGenerationService)
			tt.setupMock(mockService)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.authenticated {
				authenticate(c, 7, "a@x.com")
			}

			h := NewGenerationHandler(mockService, 10)
			assert.NoError(t, h.Generate(c))
			assert.Equal(t, tt.expectedStatus, rec.Code)

			mockService.AssertExpectations(t)
		})
	}
}

func TestGenerationHandler_Generate_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"prompt":"write a function that adds two numbers","languageId":1}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewGenerationHandler(new(MockGenerationService), 10)
	err := h.Generate(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestGenerationHandler_GetHistory_QueryParams(t *testing.T) {
	empty := &service.PaginatedHistory{Data: []service.GenerationView{}}

	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults when absent", "", 1, 10},
		{"explicit values pass through", "page=3&limit=25", 3, 25},
		{"non-numeric page falls back", "page=abc&limit=25", 1, 25},
		{"non-numeric limit falls back", "page=3&limit=xyz", 3, 10},
		{"out-of-range values left for the service to clamp", "page=-2&limit=999", -2, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockGenerationService)
			mockService.On("GetHistory", mock.Anything, uint(7), tt.expectedPage, tt.expectedLimit).Return(empty, nil)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodGet, "/api/history?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			authenticate(c, 7, "a@x.com")

			h := NewGenerationHandler(mockService, 10)
			assert.NoError(t, h.GetHistory(c))
			assert.Equal(t, http.StatusOK, rec.Code)

			mockService.AssertExpectations(t)
		})
	}
}
