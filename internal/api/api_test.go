package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/mocks"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/types"
)

const testUserID = "uid-123"

type testServer struct {
	router      *gin.Engine
	auth        *mocks.MockAuthService
	profiles    *mocks.MockProfileService
	ledger      *mocks.MockLedgerService
	leaderboard *mocks.MockLeaderboardService
	forum       *mocks.MockForumService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &testServer{
		router:      gin.New(),
		auth:        new(mocks.MockAuthService),
		profiles:    new(mocks.MockProfileService),
		ledger:      new(mocks.MockLedgerService),
		leaderboard: new(mocks.MockLeaderboardService),
		forum:       new(mocks.MockForumService),
	}
	s.auth.On("ValidateToken", "valid-token").Return(&types.TokenClaims{
		UserID:   testUserID,
		Username: "Asha",
		Email:    "asha@example.com",
	}, nil)

	RegisterRoutes(s.router, Dependencies{
		Auth:        s.auth,
		Profiles:    s.profiles,
		Ledger:      s.ledger,
		Leaderboard: s.leaderboard,
		Forum:       s.forum,
		Foods: food.NewResolver([]models.FoodItem{
			{Name: "Rice", Calories: 130, Carbs: 28.2, Protein: 2.7, Fat: 0.3, Sugar: 0.1, Fiber: 0.4, Sodium: 1},
			{Name: "Roasted Chana", Calories: 369, Carbs: 58, Protein: 22.5, Fat: 5.2, Sugar: 1.5, Fiber: 16.8, Sodium: 29},
		}),
	})

	t.Cleanup(func() {
		s.profiles.AssertExpectations(t)
		s.ledger.AssertExpectations(t)
		s.leaderboard.AssertExpectations(t)
		s.forum.AssertExpectations(t)
	})
	return s
}

// do sends an authenticated request; body is JSON-encoded unless nil.
func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer valid-token")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthCheckWithoutDatabase(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", decode(t, w)["status"])
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))

	require.Equal(t, http.StatusUnauthorized, w.Code)
	s.profiles.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestRateLimitStatusWithoutLimiter(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/rate-limits/meals", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, false, decode(t, w)["limited"])
}
