package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"agentdesk/internal/errors"
	"agentdesk/internal/service"
)

// FileHandler handles the blob storage endpoints.
type FileHandler struct {
	fileService service.FileService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(fileService service.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// FileURLResponse carries a presigned download URL.
type FileURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ListFiles godoc
// @Summary List uploaded files
// @Tags files
// @Produce json
// @Success 200 {array} storage.Object
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files [get]
func (h *FileHandler) ListFiles(c echo.Context) error {
	files, err := h.fileService.ListFiles(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, files)
}

// UploadFile godoc
// @Summary Upload a file (multipart, max 10MB)
// @Tags files
// @Accept mpfd
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} service.UploadResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/upload [post]
func (h *FileHandler) UploadFile(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "no file provided",
			Code:  "NO_FILE",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to read upload",
			Code:  "UPLOAD_READ_FAILED",
		})
	}
	defer src.Close()

	result, err := h.fileService.Upload(
		c.Request().Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, result)
}

// GetFileURL godoc
// @Summary Get a presigned download URL
// @Tags files
// @Produce json
// @Param key query string true "Object key"
// @Success 200 {object} FileURLResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/url [get]
func (h *FileHandler) GetFileURL(c echo.Context) error {
	key := c.QueryParam("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "key is required",
			Code:  "MISSING_KEY",
		})
	}

	fileURL, err := h.fileService.FileURL(c.Request().Context(), key)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, FileURLResponse{Key: key, URL: fileURL})
}

// DeleteFile godoc
// @Summary Delete an uploaded file
// @Tags files
// @Produce json
// @Param key path string true "URL-encoded object key"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files/{key} [delete]
func (h *FileHandler) DeleteFile(c echo.Context) error {
	key, err := url.PathUnescape(c.Param("key"))
	if err != nil || key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid key",
			Code:  "INVALID_KEY",
		})
	}

	if err := h.fileService.DeleteFile(c.Request().Context(), key); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
