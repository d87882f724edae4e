package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSubmitterPostsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile(FormField)
		if err != nil {
			http.Error(w, "No file uploaded", http.StatusBadRequest)
			return
		}
		defer f.Close()
		body, _ := io.ReadAll(f)
		w.Header().Set("Content-Disposition", `attachment; filename="predictions.csv"`)
		_, _ = w.Write([]byte(hdr.Filename + ":" + string(body)))
	}))
	defer srv.Close()

	dir := t.TempDir()
	in := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(in, []byte("a,b\n1,2\n"), 0o644))
	out := filepath.Join(dir, "predictions.csv")

	s := NewHTTPSubmitter(srv.URL, out)
	require.NoError(t, s.Submit(context.Background(), in))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "data.csv:a,b\n1,2\n", string(got))
}

func TestHTTPSubmitterReportsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Uploaded CSV is missing required columns", http.StatusBadRequest)
	}))
	defer srv.Close()

	in := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(in, []byte("a\n"), 0o644))

	err := NewHTTPSubmitter(srv.URL, "").Submit(context.Background(), in)
	assert.ErrorContains(t, err, "missing required columns")
}

func TestHTTPSubmitterRemovesTruncatedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, _, err := r.FormFile(FormField); err != nil {
			http.Error(w, "No file uploaded", http.StatusBadRequest)
			return
		}
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 200 OK\r\nContent-Type: text/csv\r\nContent-Length: 100\r\n\r\nbeam_width,")
		_ = buf.Flush()
	}))
	defer srv.Close()

	dir := t.TempDir()
	in := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(in, []byte("a,b\n1,2\n"), 0o644))
	out := filepath.Join(dir, "predictions.csv")

	err := NewHTTPSubmitter(srv.URL, out).Submit(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.NoFileExists(t, out)
}

func TestHTTPSubmitterNoAction(t *testing.T) {
	assert.ErrorIs(t, NewHTTPSubmitter("", "").Submit(context.Background(), "x.csv"), ErrNoAction)
}
