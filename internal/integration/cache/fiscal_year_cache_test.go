package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalYear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FiscalYear), args.Error(1)
}

func TestFiscalYearCache_LoadsOncePerID(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	fy := &entity.FiscalYear{ID: uuid.New(), Code: "FY2024", Currency: "JPY"}
	repo := new(MockFiscalYearRepository)
	repo.On("GetByID", ctx, fy.ID).Return(fy, nil).Once()

	cached := NewFiscalYearCache(repo, client, time.Minute)

	first, err := cached.GetByID(ctx, fy.ID)
	require.NoError(t, err)
	second, err := cached.GetByID(ctx, fy.ID)
	require.NoError(t, err)

	assert.Equal(t, fy, first)
	assert.Equal(t, fy, second)
	assert.True(t, server.Exists(FiscalYearKey(fy.ID)))
	repo.AssertExpectations(t)
}

func TestFiscalYearCache_NotFoundIsNotCached(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	id := uuid.New()
	repo := new(MockFiscalYearRepository)
	repo.On("GetByID", ctx, id).Return(nil, domainerror.ErrFiscalYearNotFound).Twice()

	cached := NewFiscalYearCache(repo, client, time.Minute)

	_, err := cached.GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrFiscalYearNotFound)
	_, err = cached.GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrFiscalYearNotFound)

	assert.False(t, server.Exists(FiscalYearKey(id)))
	repo.AssertExpectations(t)
}

func TestFiscalYearCache_RedisDownFallsThrough(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	fy := &entity.FiscalYear{ID: uuid.New(), Currency: "USD"}
	repo := new(MockFiscalYearRepository)
	repo.On("GetByID", ctx, fy.ID).Return(fy, nil)
	server.Close()

	got, err := NewFiscalYearCache(repo, client, time.Minute).GetByID(ctx, fy.ID)

	require.NoError(t, err)
	assert.Equal(t, "USD", got.Currency)
}
