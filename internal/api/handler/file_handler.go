package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Nabin-web/startrace/internal/core/ports"
)

// FileHandler serves the read side of the file catalogue, available to every
// authenticated user.
type FileHandler struct {
	files ports.FileService
	blobs ports.BlobStore
}

func NewFileHandler(files ports.FileService, blobs ports.BlobStore) *FileHandler {
	return &FileHandler{files: files, blobs: blobs}
}

// List returns every file record.
//
// @Summary      List files
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.FileRecord
// @Router       /api/files [get]
func (h *FileHandler) List(c echo.Context) error {
	records, err := h.files.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Download streams the raw CSV blob.
//
// @Summary      Download a file
// @Tags         files
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id   path      string  true  "File id"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /api/files/{id} [get]
func (h *FileHandler) Download(c echo.Context) error {
	record, err := h.files.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	blob, err := h.blobs.Open(record.Path)
	if err != nil {
		return err
	}
	defer blob.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+record.Name+`"`)
	return c.Stream(http.StatusOK, "text/csv", blob)
}

// Content returns the parsed CSV as headers plus rows.
//
// @Summary      View parsed file contents
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File id"
// @Success      200  {object}  domain.FileContent
// @Failure      404  {object}  map[string]string
// @Router       /api/files/{id}/content [get]
func (h *FileHandler) Content(c echo.Context) error {
	content, err := h.files.Content(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}
