package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
)

type photoServiceStub struct {
	getOrderPhotosFn  func(ctx context.Context, orderID uint64) ([]dto.PhotoResponseDTO, error)
	getPhotoContentFn func(ctx context.Context, photoID uint64) (*services.PhotoContent, error)
	uploadPhotosFn    func(ctx context.Context, orderID uint64, files []*multipart.FileHeader) ([]dto.PhotoResponseDTO, error)
	deletePhotoFn     func(ctx context.Context, photoID uint64) error
}

func (s *photoServiceStub) GetOrderPhotos(ctx context.Context, orderID uint64) ([]dto.PhotoResponseDTO, error) {
	return s.getOrderPhotosFn(ctx, orderID)
}

func (s *photoServiceStub) GetPhotoContent(ctx context.Context, photoID uint64) (*services.PhotoContent, error) {
	return s.getPhotoContentFn(ctx, photoID)
}

func (s *photoServiceStub) UploadPhotos(ctx context.Context, orderID uint64, files []*multipart.FileHeader) ([]dto.PhotoResponseDTO, error) {
	return s.uploadPhotosFn(ctx, orderID, files)
}

func (s *photoServiceStub) DeletePhoto(ctx context.Context, photoID uint64) error {
	return s.deletePhotoFn(ctx, photoID)
}

func TestGetPhotoContentSetsCacheHeader(t *testing.T) {
	e := echo.New()
	svc := &photoServiceStub{
		getPhotoContentFn: func(_ context.Context, _ uint64) (*services.PhotoContent, error) {
			return &services.PhotoContent{MimeType: "image/jpeg", Data: []byte{0xFF, 0xD8}}, nil
		},
	}
	e.GET("/api/photos/:photoId/content", NewPhotoController(svc, zap.NewNop()).GetPhotoContent)

	rec := doRequest(e, http.MethodGet, "/api/photos/3/content", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "image/jpeg", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{0xFF, 0xD8}, rec.Body.Bytes())
}

func TestGetPhotoContentNotFound(t *testing.T) {
	e := echo.New()
	svc := &photoServiceStub{
		getPhotoContentFn: func(_ context.Context, _ uint64) (*services.PhotoContent, error) {
			return nil, apperrors.NotFound("Photo not found", "No photo found with ID 3")
		},
	}
	e.GET("/api/photos/:photoId/content", NewPhotoController(svc, zap.NewNop()).GetPhotoContent)

	rec := doRequest(e, http.MethodGet, "/api/photos/3/content", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "Photo not found", body.Error)
}

func TestGetPhotoContentInvalidID(t *testing.T) {
	e := echo.New()
	e.GET("/api/photos/:photoId/content", NewPhotoController(&photoServiceStub{}, zap.NewNop()).GetPhotoContent)

	rec := doRequest(e, http.MethodGet, "/api/photos/oops/content", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "Invalid photo ID", body.Error)
}

func TestUploadPhotosPassesFormFiles(t *testing.T) {
	e := echo.New()
	var gotOrderID uint64
	var gotFiles int
	svc := &photoServiceStub{
		uploadPhotosFn: func(_ context.Context, orderID uint64, files []*multipart.FileHeader) ([]dto.PhotoResponseDTO, error) {
			gotOrderID = orderID
			gotFiles = len(files)
			return []dto.PhotoResponseDTO{{ID: 1, OrderID: orderID}}, nil
		},
	}
	e.POST("/api/orders/:orderId/photos", NewPhotoController(svc, zap.NewNop()).UploadPhotos)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range []string{"a.jpg", "b.jpg"} {
		part, err := w.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("stub"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/12/photos", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint64(12), gotOrderID)
	assert.Equal(t, 2, gotFiles)
}

func TestUploadPhotosTooLarge(t *testing.T) {
	e := echo.New()
	svc := &photoServiceStub{
		uploadPhotosFn: func(_ context.Context, _ uint64, _ []*multipart.FileHeader) ([]dto.PhotoResponseDTO, error) {
			return nil, apperrors.NewHttpError(http.StatusRequestEntityTooLarge, "File too large", apperrors.ErrFileTooLarge, "")
		},
	}
	e.POST("/api/orders/:orderId/photos", NewPhotoController(svc, zap.NewNop()).UploadPhotos)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photos", "huge.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("stub"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/orders/12/photos", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	body := decodeErrorBody(t, rec)
	assert.Equal(t, "File too large", body.Error)
}

func TestDeletePhotoSuccessBody(t *testing.T) {
	e := echo.New()
	svc := &photoServiceStub{
		deletePhotoFn: func(_ context.Context, photoID uint64) error {
			assert.Equal(t, uint64(9), photoID)
			return nil
		},
	}
	e.DELETE("/api/photos/:photoId", NewPhotoController(svc, zap.NewNop()).DeletePhoto)

	rec := doRequest(e, http.MethodDelete, "/api/photos/9", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Photo deleted successfully"}`, rec.Body.String())
}

func TestGetOrderPhotosEmptyList(t *testing.T) {
	e := echo.New()
	svc := &photoServiceStub{
		getOrderPhotosFn: func(_ context.Context, orderID uint64) ([]dto.PhotoResponseDTO, error) {
			return []dto.PhotoResponseDTO{}, nil
		},
	}
	e.GET("/api/orders/:orderId/photos", NewPhotoController(svc, zap.NewNop()).GetOrderPhotos)

	rec := doRequest(e, http.MethodGet, "/api/orders/4/photos", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func decodePhotoList(t *testing.T, rec *httptest.ResponseRecorder) []dto.PhotoResponseDTO {
	t.Helper()
	var list []dto.PhotoResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	return list
}

func TestGetOrderPhotosReturnsURLs(t *testing.T) {
	e := echo.New()
	svc := &photoServiceStub{
		getOrderPhotosFn: func(_ context.Context, orderID uint64) ([]dto.PhotoResponseDTO, error) {
			return []dto.PhotoResponseDTO{
				{ID: 1, OrderID: orderID, URL: "/api/photos/1/content", MimeType: "image/jpeg"},
			}, nil
		},
	}
	e.GET("/api/orders/:orderId/photos", NewPhotoController(svc, zap.NewNop()).GetOrderPhotos)

	rec := doRequest(e, http.MethodGet, "/api/orders/4/photos", "")

	require.Equal(t, http.StatusOK, rec.Code)
	list := decodePhotoList(t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "/api/photos/1/content", list[0].URL)
}
