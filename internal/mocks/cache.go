package mocks

import (
	"context"
	"time"

	"github.com/segyhp/cuota-engine/pkg/cuota"
	"github.com/stretchr/testify/mock"
)

type MockQuoteCache struct {
	mock.Mock
}

func (m *MockQuoteCache) GetQuote(ctx context.Context, start, end *time.Time) (*cuota.Info, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cuota.Info), args.Error(1)
}

func (m *MockQuoteCache) SetQuote(ctx context.Context, start, end *time.Time, info cuota.Info) error {
	args := m.Called(ctx, start, end, info)
	return args.Error(0)
}
