package handlers

import (
	"errors"
	"net/http"

	"bookshare/internal/storage"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errUserExists     = "this user already exists"
	errPasswordBlank  = "password must not be blank"
	errRegisterFailed = "account creation disabled, please retry later"
	errBadCredentials = "invalid credentials"
	errUserNotFound   = "user not found"
	errGetUser        = "failed to load user"
	errBookNotFound   = "book not found"
	errBookExists     = "this book already exists"
	errFetchBook      = "failed to load book"
	errUploadBook     = "failed to store book"
	errFileRequired   = "multipart field 'file' is required"
	errNotPDF         = "only PDF uploads are accepted"

	pdfContentType = "application/pdf"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Download a book
// @Tags         books
// @Produce      application/pdf
// @Param        file  path  string  true  "stored filename, e.g. my-book.pdf"
// @Success      200  {file}  file
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /book/{file} [get]
// @Security     BearerAuth
func (h *Handler) getBook(c *gin.Context) {
	name := c.Param("file")

	rc, size, err := h.services.Books.Fetch(name)
	if err != nil {
		if errors.Is(err, storage.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errBookNotFound})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errFetchBook, "book_fetch_failed", err, "file", name)
		return
	}
	defer func() { _ = rc.Close() }()

	c.DataFromReader(http.StatusOK, size, pdfContentType, rc, nil)
}

// @Summary      Upload a PDF book (teachers only)
// @Description  Accepts a multipart form with field "file". The part must declare Content-Type application/pdf; this is a self-declared check, the payload bytes are not sniffed.
// @Tags         books
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF payload"
// @Success      200  {object}  map[string]string  "file"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /upload [post]
// @Security     BearerAuth
func (h *Handler) uploadBook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errFileRequired})
		return
	}

	// Weak content-type restriction: trust the declared mimetype, no
	// magic-byte sniff.
	if fileHeader.Header.Get("Content-Type") != pdfContentType {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNotPDF})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errUploadBook, "book_upload_open_failed", err)
		return
	}
	defer func() { _ = src.Close() }()

	claims := getClaims(c)
	stored, err := h.services.Books.Upload(c.Request.Context(), claims.Email, fileHeader.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrBookExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": errBookExists})
		case errors.Is(err, storage.ErrBadFilename):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errUploadBook, "book_upload_failed", err, "name", fileHeader.Filename)
		}
		return
	}

	if h.log != nil {
		h.log.Infow("book_uploaded", "file", stored, "by", claims.Email)
	}
	c.JSON(http.StatusOK, gin.H{"file": stored})
}
