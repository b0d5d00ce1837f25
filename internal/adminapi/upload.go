package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/mobileriadardania/storefront/internal/webserver"
)

func registerUploadRoutes(s *webserver.Server) {
	s.ApiPOST("/upload", uploadFiles)
	s.GET("/uploads/:filename", serveUpload)
}

// uploadFiles stores the multipart "files" field. Stored files are not
// linked to any product.
//
// @Summary upload product images
// @Tags Uploads
// @Accept multipart/form-data
// @Param files formData file true "Up to 10 files"
// @Success 200 {object} uploadResponse
// @Failure 400 {object} webserver.ErrorResponse
// @Router /api/upload [post]
func uploadFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fail(c, http.StatusBadRequest, "NO_FILES", MsgNoFiles, err)
	}
	defer form.RemoveAll()

	names, err := GetAppContext(c).Uploader().Save(c.Request().Context(), form.File["files"])
	if err != nil {
		return failWith(c, err, "Failed to upload files")
	}
	return ok(c, http.StatusOK, uploadResponse{Filenames: names})
}

// @Summary download an uploaded file
// @Tags Uploads
// @Param filename path string true "Stored file name"
// @Success 200 {file} file
// @Failure 404 {object} webserver.ErrorResponse
// @Router /uploads/{filename} [get]
func serveUpload(c echo.Context) error {
	obj, err := GetAppContext(c).Storage().Open(c.Request().Context(), c.Param("filename"))
	if err != nil {
		return failWith(c, err, "Failed to read file")
	}
	defer obj.Body.Close()

	h := c.Response().Header()
	if obj.Size > 0 {
		h.Set(echo.HeaderContentLength, strconv.FormatInt(obj.Size, 10))
	}
	if !obj.ModTime.IsZero() {
		h.Set(echo.HeaderLastModified, obj.ModTime.UTC().Format(http.TimeFormat))
	}
	h.Set("Cache-Control", "public, max-age=86400")
	contentType := obj.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, obj.Body)
}

