package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoAction is returned when no form action URL is configured.
var ErrNoAction = errors.New("no form action configured")

// FormField is the multipart field carrying the file.
const FormField = "file"

// HTTPSubmitter posts a file as a multipart form and writes the response body to Output.
type HTTPSubmitter struct {
	Action string
	Output string
	Client *http.Client
}

var _ Submitter = &HTTPSubmitter{}

// NewHTTPSubmitter creates a submitter using http.DefaultClient.
//
// Parameters:
//   - action: the form action URL
//   - output: where the response is written
//
// Returns:
//   - *HTTPSubmitter: the submitter
func NewHTTPSubmitter(action, output string) *HTTPSubmitter {
	return &HTTPSubmitter{Action: action, Output: output, Client: http.DefaultClient}
}

// Submit streams the file to the action and saves a successful response.
//
// Parameters:
//   - ctx: bounds the request
//   - path: the file to send
//
// Returns:
//   - error: ErrNoAction, an I/O error, or the server's message for a non-2xx status
func (s *HTTPSubmitter) Submit(ctx context.Context, path string) error {
	if s.Action == "" {
		return ErrNoAction
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer f.Close()

	body, ctype := multipartBody(f, filepath.Base(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Action, body)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	req.Header.Set("Content-Type", ctype)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("submit: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	if s.Output == "" {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}

	out, err := os.Create(s.Output)
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// A truncated predictions file must not look like a finished one.
		_ = os.Remove(s.Output)
		return fmt.Errorf("submit: write %s: %w", s.Output, err)
	}
	return nil
}

// multipartBody streams r as the FormField part through a pipe.
func multipartBody(r io.Reader, name string) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(FormField, name)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()
	return pr, mw.FormDataContentType()
}
