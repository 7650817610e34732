package listing

import (
	"context"
	"io"
	"sync"

	"github.com/heartmarshall/classifieds-backend/internal/domain"
)

var _ imageStore = &imageStoreMock{}

type imageStoreMock struct {
	UploadFunc func(ctx context.Context, filename string, contentType string, body io.Reader) (domain.Image, error)
	DeleteFunc func(ctx context.Context, publicID string) error

	calls struct {
		Upload []struct {
			Ctx         context.Context
			Filename    string
			ContentType string
			Body        io.Reader
		}
		Delete []struct {
			Ctx      context.Context
			PublicID string
		}
	}
	lockUpload sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *imageStoreMock) Upload(ctx context.Context, filename string, contentType string, body io.Reader) (domain.Image, error) {
	if mock.UploadFunc == nil {
		panic("imageStoreMock.UploadFunc: method is nil but imageStore.Upload was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Filename    string
		ContentType string
		Body        io.Reader
	}{Ctx: ctx, Filename: filename, ContentType: contentType, Body: body}
	mock.lockUpload.Lock()
	mock.calls.Upload = append(mock.calls.Upload, callInfo)
	mock.lockUpload.Unlock()
	return mock.UploadFunc(ctx, filename, contentType, body)
}

func (mock *imageStoreMock) UploadCalls() []struct {
	Ctx         context.Context
	Filename    string
	ContentType string
	Body        io.Reader
} {
	mock.lockUpload.RLock()
	calls := mock.calls.Upload
	mock.lockUpload.RUnlock()
	return calls
}

func (mock *imageStoreMock) Delete(ctx context.Context, publicID string) error {
	if mock.DeleteFunc == nil {
		panic("imageStoreMock.DeleteFunc: method is nil but imageStore.Delete was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		PublicID string
	}{Ctx: ctx, PublicID: publicID}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, publicID)
}

func (mock *imageStoreMock) DeleteCalls() []struct {
	Ctx      context.Context
	PublicID string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
