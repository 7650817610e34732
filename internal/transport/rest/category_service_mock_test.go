package rest

import (
	"context"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/google/uuid"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
	"github.com/heartmarshall/classifieds-backend/internal/schema"
	"github.com/heartmarshall/classifieds-backend/internal/service/category"
)

var _ categoryService = &categoryServiceMock{}

type categoryServiceMock struct {
	CreateFunc  func(ctx context.Context, input category.CreateInput) (*domain.Category, error)
	UpdateFunc  func(ctx context.Context, input category.UpdateInput) (*domain.Category, error)
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	GetFunc     func(ctx context.Context, id uuid.UUID) (*category.Details, error)
	ListFunc    func(ctx context.Context, parentID *uuid.UUID, activeOnly bool) ([]domain.Category, error)
	SchemaFunc  func(ctx context.Context, id uuid.UUID) (*jsonschema.Schema, error)
	PreviewFunc func(ctx context.Context, input category.PreviewInput) (schema.PreviewResult, error)

	calls struct {
		Create []struct {
			Ctx   context.Context
			Input category.CreateInput
		}
		Update []struct {
			Ctx   context.Context
			Input category.UpdateInput
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx        context.Context
			ParentID   *uuid.UUID
			ActiveOnly bool
		}
		Schema []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Preview []struct {
			Ctx   context.Context
			Input category.PreviewInput
		}
	}
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockDelete  sync.RWMutex
	lockGet     sync.RWMutex
	lockList    sync.RWMutex
	lockSchema  sync.RWMutex
	lockPreview sync.RWMutex
}

func (mock *categoryServiceMock) Create(ctx context.Context, input category.CreateInput) (*domain.Category, error) {
	if mock.CreateFunc == nil {
		panic("categoryServiceMock.CreateFunc: method is nil but categoryService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input category.CreateInput
	}{Ctx: ctx, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, input)
}

func (mock *categoryServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Input category.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *categoryServiceMock) Update(ctx context.Context, input category.UpdateInput) (*domain.Category, error) {
	if mock.UpdateFunc == nil {
		panic("categoryServiceMock.UpdateFunc: method is nil but categoryService.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input category.UpdateInput
	}{Ctx: ctx, Input: input}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, input)
}

func (mock *categoryServiceMock) UpdateCalls() []struct {
	Ctx   context.Context
	Input category.UpdateInput
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *categoryServiceMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("categoryServiceMock.DeleteFunc: method is nil but categoryService.Delete was just called")
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

func (mock *categoryServiceMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *categoryServiceMock) Get(ctx context.Context, id uuid.UUID) (*category.Details, error) {
	if mock.GetFunc == nil {
		panic("categoryServiceMock.GetFunc: method is nil but categoryService.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *categoryServiceMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *categoryServiceMock) List(ctx context.Context, parentID *uuid.UUID, activeOnly bool) ([]domain.Category, error) {
	if mock.ListFunc == nil {
		panic("categoryServiceMock.ListFunc: method is nil but categoryService.List was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		ParentID   *uuid.UUID
		ActiveOnly bool
	}{Ctx: ctx, ParentID: parentID, ActiveOnly: activeOnly}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, parentID, activeOnly)
}

func (mock *categoryServiceMock) ListCalls() []struct {
	Ctx        context.Context
	ParentID   *uuid.UUID
	ActiveOnly bool
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *categoryServiceMock) Schema(ctx context.Context, id uuid.UUID) (*jsonschema.Schema, error) {
	if mock.SchemaFunc == nil {
		panic("categoryServiceMock.SchemaFunc: method is nil but categoryService.Schema was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockSchema.Lock()
	mock.calls.Schema = append(mock.calls.Schema, callInfo)
	mock.lockSchema.Unlock()
	return mock.SchemaFunc(ctx, id)
}

func (mock *categoryServiceMock) SchemaCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockSchema.RLock()
	calls := mock.calls.Schema
	mock.lockSchema.RUnlock()
	return calls
}

func (mock *categoryServiceMock) Preview(ctx context.Context, input category.PreviewInput) (schema.PreviewResult, error) {
	if mock.PreviewFunc == nil {
		panic("categoryServiceMock.PreviewFunc: method is nil but categoryService.Preview was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input category.PreviewInput
	}{Ctx: ctx, Input: input}
	mock.lockPreview.Lock()
	mock.calls.Preview = append(mock.calls.Preview, callInfo)
	mock.lockPreview.Unlock()
	return mock.PreviewFunc(ctx, input)
}

func (mock *categoryServiceMock) PreviewCalls() []struct {
	Ctx   context.Context
	Input category.PreviewInput
} {
	mock.lockPreview.RLock()
	calls := mock.calls.Preview
	mock.lockPreview.RUnlock()
	return calls
}
