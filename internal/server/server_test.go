package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spendsense/statement-csv/internal/pdfextract"
)

func newTestServer(t *testing.T, doc pdfextract.Document) *Server {
	t.Helper()
	dir := t.TempDir()
	srv, err := New(nil,
		filepath.Join(dir, "uploads"),
		filepath.Join(dir, "exports"),
		WithExtractor(&pdfextract.MockExtractor{Doc: doc}))
	require.NoError(t, err)
	return srv
}

func uploadPDF(t *testing.T, router http.Handler, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-stub"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("page"))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestUploadRejectsNonPDF(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("page"))

	rec := uploadPDF(t, srv.Router(), "statement.txt")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only PDF files are allowed")
}

func TestUploadProcessExportFlow(t *testing.T) {
	doc := pdfextract.NewMockDocument(
		"Cardmember statement\n" +
			"15 Jan 2024 STARBUCKS COFFEE #123 JASON DIMAND 12.45\n" +
			"16 Jan 2024 GROCERY MART 88.20",
	)
	srv := newTestServer(t, doc)
	router := srv.Router()

	// Upload.
	rec := uploadPDF(t, router, "statement.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	var uploaded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	sessionID := uploaded["session_id"]
	require.NotEmpty(t, sessionID)

	// Process.
	req := httptest.NewRequest(http.MethodPost, "/api/process/"+sessionID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var processed processResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &processed))
	assert.Equal(t, "original", processed.FormatType)
	assert.Equal(t, 2, processed.TransactionCount)
	assert.InDelta(t, 100.65, processed.TotalAmount, 0.001)
	assert.Equal(t, "2024-01-15", processed.DateRange.MinDate)
	assert.Equal(t, "2024-01-16", processed.DateRange.MaxDate)
	assert.InDelta(t, 12.45, processed.Totals["JASON DIMAND"], 0.001)
	require.Len(t, processed.Transactions, 2)

	// Export as CSV.
	form := url.Values{"export_type": {"csv"}}
	req = httptest.NewRequest(http.MethodPost, "/api/export/"+sessionID,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "STARBUCKS COFFEE #123")
}

func TestProcessUnknownSession(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("page"))

	req := httptest.NewRequest(http.MethodPost,
		"/api/process/6f1f7c68-1fd9-4e2c-9d6b-111111111111", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProcessInvalidSessionID(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("page"))

	req := httptest.NewRequest(http.MethodPost, "/api/process/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessUnparseableStatement(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("nothing resembling a statement"))
	router := srv.Router()

	rec := uploadPDF(t, router, "statement.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	var uploaded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))

	req := httptest.NewRequest(http.MethodPost, "/api/process/"+uploaded["session_id"], nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportUnknownSession(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("page"))

	form := url.Values{"export_type": {"csv"}}
	req := httptest.NewRequest(http.MethodPost,
		"/api/export/6f1f7c68-1fd9-4e2c-9d6b-111111111111",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportInvalidType(t *testing.T) {
	doc := pdfextract.NewMockDocument(
		"Cardmember statement\n15 Jan 2024 STARBUCKS COFFEE #123 12.45",
	)
	srv := newTestServer(t, doc)
	router := srv.Router()

	rec := uploadPDF(t, router, "statement.pdf")
	var uploaded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	sessionID := uploaded["session_id"]

	req := httptest.NewRequest(http.MethodPost, "/api/process/"+sessionID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	form := url.Values{"export_type": {"pdf"}}
	req = httptest.NewRequest(http.MethodPost, "/api/export/"+sessionID,
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, pdfextract.NewMockDocument("page"))

	req := httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCleanupOldFiles(t *testing.T) {
	dir := t.TempDir()
	uploadDir := filepath.Join(dir, "uploads")
	exportDir := filepath.Join(dir, "exports")
	srv, err := New(nil, uploadDir, exportDir)
	require.NoError(t, err)

	stale := filepath.Join(uploadDir, "stale.pdf")
	fresh := filepath.Join(uploadDir, "fresh.pdf")
	require.NoError(t, os.WriteFile(stale, []byte("x"), 0600))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0600))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	srv.CleanupOldFiles(24 * time.Hour)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}
