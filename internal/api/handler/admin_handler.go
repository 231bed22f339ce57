package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nabin-web/startrace/internal/api/metrics"
	"github.com/Nabin-web/startrace/internal/api/middleware"
	"github.com/Nabin-web/startrace/internal/core/domain"
	"github.com/Nabin-web/startrace/internal/core/ports"
)

// AdminHandler groups the admin-only mutations: file upload/delete and user
// management. Routes mounting it must be gated by Auth + RBAC(admin).
type AdminHandler struct {
	files ports.FileService
	users ports.UserRepository
}

func NewAdminHandler(files ports.FileService, users ports.UserRepository) *AdminHandler {
	return &AdminHandler{files: files, users: users}
}

// Upload accepts a multipart CSV upload and broadcasts the change.
//
// @Summary      Upload a CSV file
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV file"
// @Success      201   {object}  domain.FileRecord
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/admin/files/upload [post]
func (h *AdminHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file field")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	record, err := h.files.Upload(c.Request().Context(), middleware.CurrentUser(c), fileHeader.Filename, src)
	if err != nil {
		return err
	}

	metrics.FileUploadsTotal.Inc()
	return c.JSON(http.StatusCreated, record)
}

// DeleteFile removes a file record and its blob and broadcasts the change.
//
// @Summary      Delete a file
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/files/{id} [delete]
func (h *AdminHandler) DeleteFile(c echo.Context) error {
	if err := h.files.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.FileDeletesTotal.Inc()
	return c.JSON(http.StatusOK, map[string]string{"message": "file deleted"})
}

// ListUsers returns every registered account.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser removes an account. Admins cannot delete themselves while
// authenticated as that account.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id := c.Param("id")
	if current := middleware.CurrentUser(c); current != nil && current.ID == id {
		return domain.ErrSelfDelete
	}

	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
