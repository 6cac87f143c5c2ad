package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/mocks"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const testToken = "test-token"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	recipes  *mocks.MockRecommendationService
	plans    *mocks.MockMealPlanService
	shopping *mocks.MockShoppingListService
	userID   uuid.UUID
}

// newTestServer wires the routes to mock services. testToken authenticates as
// userID.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		router:   gin.New(),
		recipes:  new(mocks.MockRecommendationService),
		plans:    new(mocks.MockMealPlanService),
		shopping: new(mocks.MockShoppingListService),
		userID:   uuid.New(),
	}
	tokens := new(mocks.MockTokenService)
	tokens.On("ValidateToken", testToken).Return(&types.TokenClaims{UserID: ts.userID, Username: "cook"}, nil).Maybe()

	RegisterRoutes(ts.router, Services{
		Recipes:       ts.recipes,
		MealPlans:     ts.plans,
		ShoppingLists: ts.shopping,
		Tokens:        tokens,
	})
	t.Cleanup(func() {
		ts.recipes.AssertExpectations(t)
		ts.plans.AssertExpectations(t)
		ts.shopping.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// anyCtx matches the request context passed to services.
var anyCtx = mock.Anything
