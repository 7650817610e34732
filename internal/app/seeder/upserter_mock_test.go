package seeder

import (
	"context"
	"sync"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

var _ CategoryUpserter = &CategoryUpserterMock{}

type CategoryUpserterMock struct {
	UpsertBySlugFunc func(ctx context.Context, c *domain.Category) (bool, error)

	calls struct {
		UpsertBySlug []struct {
			Ctx context.Context
			C   *domain.Category
		}
	}
	lockUpsertBySlug sync.RWMutex
}

func (mock *CategoryUpserterMock) UpsertBySlug(ctx context.Context, c *domain.Category) (bool, error) {
	if mock.UpsertBySlugFunc == nil {
		panic("CategoryUpserterMock.UpsertBySlugFunc: method is nil but CategoryUpserter.UpsertBySlug was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Category
	}{Ctx: ctx, C: c}
	mock.lockUpsertBySlug.Lock()
	mock.calls.UpsertBySlug = append(mock.calls.UpsertBySlug, callInfo)
	mock.lockUpsertBySlug.Unlock()
	return mock.UpsertBySlugFunc(ctx, c)
}

func (mock *CategoryUpserterMock) UpsertBySlugCalls() []struct {
	Ctx context.Context
	C   *domain.Category
} {
	var calls []struct {
		Ctx context.Context
		C   *domain.Category
	}
	mock.lockUpsertBySlug.RLock()
	calls = mock.calls.UpsertBySlug
	mock.lockUpsertBySlug.RUnlock()
	return calls
}
