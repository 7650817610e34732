package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/service/listing"
)

var _ listingService = &listingServiceMock{}

type listingServiceMock struct {
	CreateFunc     func(ctx context.Context, input listing.CreateInput) (*domain.Listing, error)
	UpdateFunc     func(ctx context.Context, input listing.UpdateInput) (*domain.Listing, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ViewFunc       func(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	MyListingsFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error)
	ListFunc       func(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error)
	SearchFunc     func(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input listing.CreateInput
		}
		Update []struct {
			Ctx   context.Context
			Input listing.UpdateInput
		}
		Delete []struct {
			Ctx    context.Context
			ID     uuid.UUID
			UserID uuid.UUID
		}
		View []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		MyListings []struct {
			Ctx    context.Context
			UserID uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Filter domain.ListingFilter
		}
		Search []struct {
			Ctx    context.Context
			Filter domain.ListingFilter
		}
	}
	lockCreate     sync.RWMutex
	lockUpdate     sync.RWMutex
	lockDelete     sync.RWMutex
	lockView       sync.RWMutex
	lockMyListings sync.RWMutex
	lockList       sync.RWMutex
	lockSearch     sync.RWMutex
}

func (mock *listingServiceMock) Create(ctx context.Context, input listing.CreateInput) (*domain.Listing, error) {
	if mock.CreateFunc == nil {
		panic("listingServiceMock.CreateFunc: method is nil but listingService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input listing.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *listingServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input listing.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *listingServiceMock) Update(ctx context.Context, input listing.UpdateInput) (*domain.Listing, error) {
	if mock.UpdateFunc == nil {
		panic("listingServiceMock.UpdateFunc: method is nil but listingService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input listing.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *listingServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input listing.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *listingServiceMock) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("listingServiceMock.DeleteFunc: method is nil but listingService.Delete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		ID     uuid.UUID
		UserID uuid.UUID
	}{Ctx: ctx, ID: id, UserID: userID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id, userID)
}

func (mock *listingServiceMock) DeleteCalls() []struct {
	Ctx    context.Context
	ID     uuid.UUID
	UserID uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *listingServiceMock) View(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	if mock.ViewFunc == nil {
		panic("listingServiceMock.ViewFunc: method is nil but listingService.View was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockView.Lock()
	mock.calls.View = append(mock.calls.View, callInfo)
	mock.lockView.Unlock()
	return mock.ViewFunc(ctx, id)
}

func (mock *listingServiceMock) ViewCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockView.RLock()
	calls := mock.calls.View
	mock.lockView.RUnlock()
	return calls
}

func (mock *listingServiceMock) MyListings(ctx context.Context, userID uuid.UUID) ([]domain.Listing, error) {
	if mock.MyListingsFunc == nil {
		panic("listingServiceMock.MyListingsFunc: method is nil but listingService.MyListings was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{Ctx: ctx, UserID: userID}
	mock.lockMyListings.Lock()
	mock.calls.MyListings = append(mock.calls.MyListings, callInfo)
	mock.lockMyListings.Unlock()
	return mock.MyListingsFunc(ctx, userID)
}

func (mock *listingServiceMock) MyListingsCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	mock.lockMyListings.RLock()
	calls := mock.calls.MyListings
	mock.lockMyListings.RUnlock()
	return calls
}

func (mock *listingServiceMock) List(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error) {
	if mock.ListFunc == nil {
		panic("listingServiceMock.ListFunc: method is nil but listingService.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.ListingFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, filter)
}

func (mock *listingServiceMock) ListCalls() []struct {
	Ctx    context.Context
	Filter domain.ListingFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *listingServiceMock) Search(ctx context.Context, filter domain.ListingFilter) (domain.ListingPage, error) {
	if mock.SearchFunc == nil {
		panic("listingServiceMock.SearchFunc: method is nil but listingService.Search was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Filter domain.ListingFilter
	}{Ctx: ctx, Filter: filter}
	mock.lockSearch.Lock()
	mock.calls.Search = append(mock.calls.Search, callInfo)
	mock.lockSearch.Unlock()
	return mock.SearchFunc(ctx, filter)
}

func (mock *listingServiceMock) SearchCalls() []struct {
	Ctx    context.Context
	Filter domain.ListingFilter
} {
	mock.lockSearch.RLock()
	calls := mock.calls.Search
	mock.lockSearch.RUnlock()
	return calls
}
