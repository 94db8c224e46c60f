package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"daybook/internal/config"
	"daybook/internal/models"
	"daybook/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test_secret",
		TokenTTLMinutes: 30,
		UploadDir:       "uploads",
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "testuser").Return(nil, nil)
				repo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Username",
			body: map[string]string{
				"username": "taken",
				"email":    "new@example.com",
				"password": "password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "taken").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   models.CodeUsernameTaken,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"username": "freshuser",
				"email":    "exists@example.com",
				"password": "password123",
			},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "freshuser").Return(nil, nil)
				repo.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   models.CodeEmailTaken,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeWeakPassword,
		},
		{
			name: "Bad Username Format",
			body: map[string]string{
				"username": "-bad-",
				"email":    "test@example.com",
				"password": "password123",
			},
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeValidation,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "testuser",
			},
			mockSetup:      func(_ *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{config: testConfig(), userRepo: mockRepo}
			app.Post("/register", s.Register)

			tt.mockSetup(mockRepo)

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedCode != "" {
				var body models.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.expectedCode, body.Code)
			}
		})
	}
}

func TestRegister_NicknameDefaultsToUsername(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: mockRepo}
	app.Post("/register", s.Register)

	var created *models.User
	mockRepo.On("GetByUsername", mock.Anything, "plain").Return(nil, nil)
	mockRepo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*models.User)
	}).Return(nil)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "plain",
		"email":    "plain@example.com",
		"password": "password123",
	}))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, created)
	assert.Equal(t, "plain", created.Nickname)
	assert.NotEqual(t, "password123", created.Password, "password must be stored hashed")
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{ID: 1, Username: "alice", Password: string(hashed)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"username": "alice", "password": "password123"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Wrong Password",
			body: map[string]string{"username": "alice", "password": "nope"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Unknown User",
			body: map[string]string{"username": "ghost", "password": "password123"},
			mockSetup: func(repo *MockUserRepository) {
				repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			s := &Server{config: testConfig(), userRepo: mockRepo}
			app.Post("/login", s.Login)

			tt.mockSetup(mockRepo)

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/login", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body struct {
					Token string      `json:"token"`
					User  models.User `json:"user"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotEmpty(t, body.Token)
				assert.Equal(t, "alice", body.User.Username)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	mockRepo := new(MockUserRepository)
	s := &Server{config: testConfig(), userRepo: mockRepo}
	s.userService = service.NewUserService(mockRepo)

	app := fiber.New()
	app.Get("/me", s.AuthRequired(), s.Me)

	t.Run("Missing Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Token", func(t *testing.T) {
		mockRepo.On("GetByID", mock.Anything, uint(7)).
			Return(&models.User{ID: 7, Username: "alice"}, nil)

		token, err := s.generateToken(7, "alice")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var user models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Wrong Issuer Rejected", func(t *testing.T) {
		// signed with the right secret but the wrong issuer
		claims := jwt.MapClaims{
			"sub": "7",
			"iss": "someone-else",
			"aud": "daybook-client",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte("test_secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
