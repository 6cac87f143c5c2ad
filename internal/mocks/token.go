package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// MockTokenService is a mock implementation of the token service
type MockTokenService struct {
	mock.Mock
}

var _ service.ITokenService = (*MockTokenService)(nil)

func (m *MockTokenService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
