package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projeto-bia/bia-be/database"
	"github.com/projeto-bia/bia-be/service"
)

func newUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := database.NewLocalStore(filepath.Join(t.TempDir(), "index.bin"))
	require.NoError(t, err)
	index := service.NewIndexService(store, stubEmbedder{},
		service.NewPDFService(service.DefaultDocumentServiceConfig), t.TempDir())
	files := service.NewFileService(filepath.Join(t.TempDir(), "uploads"), index)

	router := gin.New()
	router.POST("/upload", NewUploadHandler(files).UploadDocumentHandler)
	return router
}

func multipartBody(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestUploadMissingFileField(t *testing.T) {
	router := newUploadRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsNonPDF(t *testing.T) {
	router := newUploadRouter(t)

	body, contentType := multipartBody(t, "file", "notas.txt", []byte("texto"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported file type")
}
