package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Carmen-Shannon/bridgeworks/internal/predict"
	"github.com/gorilla/websocket"
	"github.com/h2non/filetype"
	"github.com/labstack/echo/v4"
)

const (
	// sniffLen is how much of an upload filetype needs to recognise binary formats.
	sniffLen = 262

	acceptSuffix = ".csv"
)

type indexPage struct {
	Title  string
	Action string
	Field  string
	Accept string
	Model  predict.Info
}

// ReloadEvent is the websocket message sent after each model reload.
type ReloadEvent struct {
	Type  string       `json:"type"`
	Model predict.Info `json:"model"`
}

func (s *server) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", indexPage{
		Title:  s.title,
		Action: "/upload",
		Field:  FormField,
		Accept: acceptSuffix,
		Model:  s.registry.Info(),
	})
}

func (s *server) upload(c echo.Context) error {
	fh, err := c.FormFile(FormField)
	if err != nil {
		// Browsers send an empty filename when nothing was chosen, which net/http stores as a value.
		if form := c.Request().MultipartForm; errors.Is(err, http.ErrMissingFile) && form != nil {
			if _, ok := form.Value[FormField]; ok {
				return c.String(http.StatusBadRequest, "No selected file")
			}
		}
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return c.String(http.StatusBadRequest, "No file uploaded")
		}
		return c.String(http.StatusBadRequest, fmt.Sprintf("Invalid upload: %v", err))
	}
	if fh.Filename == "" {
		return c.String(http.StatusBadRequest, "No selected file")
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		return c.String(http.StatusBadRequest, fmt.Sprintf("Uploaded file is %s, not CSV", kind.MIME.Value))
	}

	table, err := predict.ReadTable(io.MultiReader(bytes.NewReader(head), f))
	if err != nil {
		var missing *predict.MissingColumnsError
		if errors.As(err, &missing) {
			return c.String(http.StatusBadRequest,
				fmt.Sprintf("Uploaded CSV is missing required columns: [%s]", strings.Join(missing.Columns, ", ")))
		}
		return c.String(http.StatusBadRequest, fmt.Sprintf("Invalid CSV: %v", err))
	}

	model := s.registry.Model()
	out, err := model.Predict(table)
	if err != nil {
		if errors.Is(err, predict.ErrInvalidValue) || errors.Is(err, predict.ErrEmptyTable) {
			return c.String(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "prediction failed").SetInternal(err)
	}

	var buf bytes.Buffer
	if err := out.WriteTable(&buf); err != nil {
		return fmt.Errorf("write predictions: %w", err)
	}
	s.logger.Info("predictions served",
		slog.String("upload", fh.Filename),
		slog.Int("rows", len(out.Rows)),
		slog.String("model", model.Version),
	)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", s.output))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (s *server) healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, s.registry.Info())
}

func (s *server) events(c echo.Context) error {
	// Subscribe before the handshake completes so no reload after it is missed.
	updates, cancel := s.registry.Subscribe()
	defer cancel()

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already replied with an HTTP error.
		s.logger.Debug("websocket upgrade failed", slog.Any("error", err))
		return nil
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	for {
		select {
		case <-closed:
			return nil
		case <-ctx.Done():
			return nil
		case info, ok := <-updates:
			if !ok {
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			if err := conn.WriteJSON(ReloadEvent{Type: "model_reloaded", Model: info}); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					s.logger.Warn("websocket write failed", slog.Any("error", err))
				}
				return nil
			}
		}
	}
}
