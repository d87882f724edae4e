package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/bridgeworks/internal/predict"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdata = "../predict/testdata"

type fixture struct {
	server   Server
	registry predict.Registry
	model    *predict.Model
	path     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f, err := os.Open(filepath.Join(testdata, "beams_labelled.csv"))
	require.NoError(t, err)
	defer f.Close()
	table, err := predict.ReadTable(f)
	require.NoError(t, err)
	m, _, err := predict.Fit(table, 7, predict.WithVersion("test"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "models.toml")
	require.NoError(t, m.Save(path))
	reg, err := predict.NewRegistry(path)
	require.NoError(t, err)

	s, err := NewServer(reg, WithTitle("Beams"))
	require.NoError(t, err)
	return &fixture{server: s, registry: reg, model: m, path: path}
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func post(t *testing.T, h http.Handler, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func readFile(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(testdata, name))
	require.NoError(t, err)
	return b
}

func TestIndexPage(t *testing.T) {
	fx := newFixture(t)
	rec := httptest.NewRecorder()
	fx.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Beams</title>")
	assert.Contains(t, body, `name="file"`)
	assert.Contains(t, body, `action="/upload"`)
	assert.Contains(t, body, "Model test loaded")
}

func TestUploadWithoutFile(t *testing.T) {
	fx := newFixture(t)

	rec := post(t, fx.server.Handler(), strings.NewReader("beam_width\n1\n"), "text/csv")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", rec.Body.String())

	body, ct := multipartBody(t, "other", "beams.csv", readFile(t, "beams.csv"))
	rec = post(t, fx.server.Handler(), body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file uploaded", rec.Body.String())
}

func TestUploadWithEmptyFilename(t *testing.T) {
	fx := newFixture(t)

	body, ct := multipartBody(t, FormField, "", nil)
	rec := post(t, fx.server.Handler(), body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No selected file", rec.Body.String())

	var plain bytes.Buffer
	w := multipart.NewWriter(&plain)
	require.NoError(t, w.WriteField(FormField, ""))
	require.NoError(t, w.Close())
	rec = post(t, fx.server.Handler(), &plain, w.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No selected file", rec.Body.String())
}

func TestUploadRejectsBinary(t *testing.T) {
	fx := newFixture(t)
	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

	body, ct := multipartBody(t, FormField, "beams.csv", png)
	rec := post(t, fx.server.Handler(), body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "image/png")
}

func TestUploadMissingColumns(t *testing.T) {
	fx := newFixture(t)

	body, ct := multipartBody(t, FormField, "partial.csv", readFile(t, "missing_columns.csv"))
	rec := post(t, fx.server.Handler(), body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Uploaded CSV is missing required columns: [axial_load, bond_condition]", rec.Body.String())
}

func TestUploadReturnsPredictions(t *testing.T) {
	fx := newFixture(t)

	body, ct := multipartBody(t, FormField, "beams.csv", readFile(t, "beams.csv"))
	rec := post(t, fx.server.Handler(), body, ct)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename="predictions.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))

	out, err := predict.ReadTable(rec.Body)
	require.NoError(t, err)
	assert.Len(t, out.Rows, 5)
	for _, target := range predict.Targets {
		assert.GreaterOrEqual(t, out.Column(target), 0, target)
	}
	assert.GreaterOrEqual(t, out.Column(predict.ColumnHeightToWidth), 0)
}

func TestHealthz(t *testing.T) {
	fx := newFixture(t)
	rec := httptest.NewRecorder()
	fx.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var info predict.Info
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, fx.path, info.Path)
}

func TestEventsPushReloads(t *testing.T) {
	fx := newFixture(t)
	ts := httptest.NewServer(fx.server.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	fx.model.Version = "v2"
	require.NoError(t, fx.model.Save(fx.path))
	require.NoError(t, fx.registry.Reload())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev ReloadEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "model_reloaded", ev.Type)
	assert.Equal(t, "v2", ev.Model.Version)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	fx := newFixture(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() { errs <- fx.server.Serve(ctx, l) }()

	url := "http://" + l.Addr().String() + "/healthz"
	assert.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, l.Addr().String(), fx.server.Addr().String())

	cancel()
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
