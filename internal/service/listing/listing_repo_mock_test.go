package listing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

var _ listingRepo = &listingRepoMock{}

type listingRepoMock struct {
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListByUserFunc     func(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	FindFunc           func(ctx context.Context, plan domain.QueryPlan) ([]domain.Listing, error)
	CountFunc          func(ctx context.Context, plan domain.QueryPlan) (int, error)
	CreateFunc         func(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	UpdateFunc         func(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	IncrementViewsFunc func(ctx context.Context, id uuid.UUID) (int64, error)
	ExpireBeforeFunc   func(ctx context.Context, now time.Time) (int64, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListByUser []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		Find []struct {
			Ctx  context.Context
			Plan domain.QueryPlan
		}
		Count []struct {
			Ctx  context.Context
			Plan domain.QueryPlan
		}
		Create []struct {
			Ctx context.Context
			L   *domain.Listing
		}
		Update []struct {
			Ctx context.Context
			L   *domain.Listing
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		IncrementViews []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ExpireBefore []struct {
			Ctx context.Context
			Now time.Time
		}
	}
	lockGetByID        sync.RWMutex
	lockListByUser     sync.RWMutex
	lockFind           sync.RWMutex
	lockCount          sync.RWMutex
	lockCreate         sync.RWMutex
	lockUpdate         sync.RWMutex
	lockDelete         sync.RWMutex
	lockIncrementViews sync.RWMutex
	lockExpireBefore   sync.RWMutex
}

func (mock *listingRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	if mock.GetByIDFunc == nil {
		panic("listingRepoMock.GetByIDFunc: method is nil but listingRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *listingRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *listingRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	if mock.ListByUserFunc == nil {
		panic("listingRepoMock.ListByUserFunc: method is nil but listingRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

func (mock *listingRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockListByUser.RLock()
	calls := mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

func (mock *listingRepoMock) Find(ctx context.Context, plan domain.QueryPlan) ([]domain.Listing, error) {
	if mock.FindFunc == nil {
		panic("listingRepoMock.FindFunc: method is nil but listingRepo.Find was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Plan domain.QueryPlan
	}{Ctx: ctx, Plan: plan}
	mock.lockFind.Lock()
	mock.calls.Find = append(mock.calls.Find, callInfo)
	mock.lockFind.Unlock()
	return mock.FindFunc(ctx, plan)
}

func (mock *listingRepoMock) FindCalls() []struct {
	Ctx  context.Context
	Plan domain.QueryPlan
} {
	mock.lockFind.RLock()
	calls := mock.calls.Find
	mock.lockFind.RUnlock()
	return calls
}

func (mock *listingRepoMock) Count(ctx context.Context, plan domain.QueryPlan) (int, error) {
	if mock.CountFunc == nil {
		panic("listingRepoMock.CountFunc: method is nil but listingRepo.Count was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Plan domain.QueryPlan
	}{Ctx: ctx, Plan: plan}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx, plan)
}

func (mock *listingRepoMock) CountCalls() []struct {
	Ctx  context.Context
	Plan domain.QueryPlan
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

func (mock *listingRepoMock) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	if mock.CreateFunc == nil {
		panic("listingRepoMock.CreateFunc: method is nil but listingRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Listing
	}{Ctx: ctx, L: l}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, l)
}

func (mock *listingRepoMock) CreateCalls() []struct {
	Ctx context.Context
	L   *domain.Listing
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *listingRepoMock) Update(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	if mock.UpdateFunc == nil {
		panic("listingRepoMock.UpdateFunc: method is nil but listingRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Listing
	}{Ctx: ctx, L: l}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, l)
}

func (mock *listingRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	L   *domain.Listing
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *listingRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("listingRepoMock.DeleteFunc: method is nil but listingRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *listingRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *listingRepoMock) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	if mock.IncrementViewsFunc == nil {
		panic("listingRepoMock.IncrementViewsFunc: method is nil but listingRepo.IncrementViews was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockIncrementViews.Lock()
	mock.calls.IncrementViews = append(mock.calls.IncrementViews, callInfo)
	mock.lockIncrementViews.Unlock()
	return mock.IncrementViewsFunc(ctx, id)
}

func (mock *listingRepoMock) IncrementViewsCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockIncrementViews.RLock()
	calls := mock.calls.IncrementViews
	mock.lockIncrementViews.RUnlock()
	return calls
}

func (mock *listingRepoMock) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	if mock.ExpireBeforeFunc == nil {
		panic("listingRepoMock.ExpireBeforeFunc: method is nil but listingRepo.ExpireBefore was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Now time.Time
	}{Ctx: ctx, Now: now}
	mock.lockExpireBefore.Lock()
	mock.calls.ExpireBefore = append(mock.calls.ExpireBefore, callInfo)
	mock.lockExpireBefore.Unlock()
	return mock.ExpireBeforeFunc(ctx, now)
}

func (mock *listingRepoMock) ExpireBeforeCalls() []struct {
	Ctx context.Context
	Now time.Time
} {
	mock.lockExpireBefore.RLock()
	calls := mock.calls.ExpireBefore
	mock.lockExpireBefore.RUnlock()
	return calls
}
