package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Nabin-web/startrace/internal/api/middleware"
	"github.com/Nabin-web/startrace/internal/core/domain"
)

type stubFileService struct {
	uploadFn  func(ctx context.Context, uploader *domain.User, filename string, data io.Reader) (*domain.FileRecord, error)
	deleteFn  func(ctx context.Context, id string) error
	listFn    func(ctx context.Context) ([]*domain.FileRecord, error)
	getFn     func(ctx context.Context, id string) (*domain.FileRecord, error)
	contentFn func(ctx context.Context, id string) (*domain.FileContent, error)
}

func (s *stubFileService) List(ctx context.Context) ([]*domain.FileRecord, error) {
	return s.listFn(ctx)
}

func (s *stubFileService) Get(ctx context.Context, id string) (*domain.FileRecord, error) {
	return s.getFn(ctx, id)
}

func (s *stubFileService) Content(ctx context.Context, id string) (*domain.FileContent, error) {
	return s.contentFn(ctx, id)
}

func (s *stubFileService) Upload(ctx context.Context, uploader *domain.User, filename string, data io.Reader) (*domain.FileRecord, error) {
	return s.uploadFn(ctx, uploader, filename, data)
}

func (s *stubFileService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubUserRepo struct {
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context) ([]*domain.User, error)
}

func (r *stubUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (r *stubUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	panic("not used")
}

func (r *stubUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	panic("not used")
}

func (r *stubUserRepo) Delete(ctx context.Context, id string) error {
	return r.deleteFn(ctx, id)
}

func (r *stubUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return r.listFn(ctx)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func TestAdminHandler_Upload_Success(t *testing.T) {
	e := newTestEcho()
	files := &stubFileService{
		uploadFn: func(_ context.Context, uploader *domain.User, filename string, data io.Reader) (*domain.FileRecord, error) {
			if uploader == nil || uploader.Username != "root" {
				t.Fatalf("uploader not passed: %+v", uploader)
			}
			if filename != "data.csv" {
				t.Fatalf("unexpected filename: %s", filename)
			}
			raw, _ := io.ReadAll(data)
			return &domain.FileRecord{ID: "f1", Name: filename, Size: int64(len(raw)), UploaderUsername: uploader.Username}, nil
		},
	}
	handler := NewAdminHandler(files, &stubUserRepo{})

	body, contentType := multipartBody(t, "file", "data.csv", []byte("a,b\n1,2\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/files/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCurrentUser(c, &domain.User{ID: "u1", Username: "root", Role: domain.RoleAdmin})

	if err := handler.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["name"] != "data.csv" || resp["uploader_username"] != "root" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_Upload_MissingFileField(t *testing.T) {
	e := newTestEcho()
	handler := NewAdminHandler(&stubFileService{}, &stubUserRepo{})

	body, contentType := multipartBody(t, "wrong_field", "data.csv", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/files/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Upload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestAdminHandler_Upload_NonCSVPropagates(t *testing.T) {
	e := newTestEcho()
	files := &stubFileService{
		uploadFn: func(context.Context, *domain.User, string, io.Reader) (*domain.FileRecord, error) {
			return nil, domain.ErrNotCSV
		},
	}
	handler := NewAdminHandler(files, &stubUserRepo{})

	body, contentType := multipartBody(t, "file", "data.txt", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/admin/files/upload", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetCurrentUser(c, &domain.User{ID: "u1", Username: "root", Role: domain.RoleAdmin})

	if err := handler.Upload(c); !errors.Is(err, domain.ErrNotCSV) {
		t.Fatalf("expected ErrNotCSV, got %v", err)
	}
}

func TestAdminHandler_DeleteFile(t *testing.T) {
	e := newTestEcho()
	files := &stubFileService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "f1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewAdminHandler(files, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/files/f1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("f1")

	if err := handler.DeleteFile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_DeleteFile_NotFound(t *testing.T) {
	e := newTestEcho()
	files := &stubFileService{
		deleteFn: func(context.Context, string) error {
			return domain.ErrFileNotFound
		},
	}
	handler := NewAdminHandler(files, &stubUserRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/files/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.DeleteFile(c); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestAdminHandler_DeleteUser_Self(t *testing.T) {
	e := newTestEcho()
	users := &stubUserRepo{
		deleteFn: func(context.Context, string) error {
			t.Fatalf("repository delete must not run for self-delete")
			return nil
		},
	}
	handler := NewAdminHandler(&stubFileService{}, users)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u1")
	middleware.SetCurrentUser(c, &domain.User{ID: "u1", Username: "root", Role: domain.RoleAdmin})

	if err := handler.DeleteUser(c); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
}

func TestAdminHandler_DeleteUser_Other(t *testing.T) {
	e := newTestEcho()
	users := &stubUserRepo{
		deleteFn: func(_ context.Context, id string) error {
			if id != "u2" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewAdminHandler(&stubFileService{}, users)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/u2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("u2")
	middleware.SetCurrentUser(c, &domain.User{ID: "u1", Username: "root", Role: domain.RoleAdmin})

	if err := handler.DeleteUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_ListUsers(t *testing.T) {
	e := newTestEcho()
	users := &stubUserRepo{
		listFn: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "u1", Username: "root", Role: domain.RoleAdmin},
				{ID: "u2", Username: "alice", Role: domain.RoleUser},
			}, nil
		},
	}
	handler := NewAdminHandler(&stubFileService{}, users)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
}
