package upload

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	mu    sync.Mutex
	paths []string
	err   error
}

func (s *recordingSubmitter) Submit(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return s.err
}

func (s *recordingSubmitter) calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.paths...)
}

type fixedPicker []string

func (p fixedPicker) Pick(context.Context) ([]string, error) {
	return p, nil
}

func TestDragStates(t *testing.T) {
	w := NewWidget(&recordingSubmitter{})
	assert.Equal(t, StateIdle, w.State())

	assert.True(t, w.Handle(Event{Type: EventDragEnter}))
	assert.Equal(t, StateDragActive, w.State())
	assert.True(t, w.Handle(Event{Type: EventDragOver}))
	assert.Equal(t, StateDragActive, w.State())
	assert.True(t, w.Handle(Event{Type: EventDragLeave}))
	assert.Equal(t, StateIdle, w.State())

	w.Handle(Event{Type: EventDragEnter})
	assert.True(t, w.Handle(Event{Type: EventDrop}))
	assert.Equal(t, StateIdle, w.State())
}

func TestDropCSVSubmitsOnce(t *testing.T) {
	s := &recordingSubmitter{}
	w := NewWidget(s)
	w.Handle(Event{Type: EventDrop, Files: []string{"data.csv"}})
	require.NoError(t, w.Wait())
	assert.Equal(t, []string{"data.csv"}, s.calls())
	assert.Equal(t, 1, w.Submitted())
}

func TestDropOtherFileIsIgnored(t *testing.T) {
	s := &recordingSubmitter{}
	w := NewWidget(s)
	w.Handle(Event{Type: EventDrop, Files: []string{"data.txt"}})
	w.Handle(Event{Type: EventDrop, Files: []string{"DATA.CSV"}})
	w.Handle(Event{Type: EventDrop})
	require.NoError(t, w.Wait())
	assert.Empty(t, s.calls())
	assert.Equal(t, StateIdle, w.State())
}

func TestOnlyFirstFileIsChecked(t *testing.T) {
	s := &recordingSubmitter{}
	w := NewWidget(s)
	w.Handle(Event{Type: EventDrop, Files: []string{"notes.txt", "data.csv"}})
	w.Handle(Event{Type: EventDrop, Files: []string{"a.csv", "b.txt"}})
	require.NoError(t, w.Wait())
	assert.Equal(t, []string{"a.csv"}, s.calls())
}

func TestClickOpensPicker(t *testing.T) {
	s := &recordingSubmitter{}
	w := NewWidget(s, WithPicker(fixedPicker{"picked.csv"}))
	w.Handle(Event{Type: EventClick})
	require.NoError(t, w.Wait())
	assert.Equal(t, []string{"picked.csv"}, s.calls())

	none := NewWidget(s)
	none.Handle(Event{Type: EventClick})
	require.NoError(t, none.Wait())
	assert.Len(t, s.calls(), 1)
}

func TestSubmissionErrorIsReported(t *testing.T) {
	boom := errors.New("boom")
	var gotPath string
	var gotErr error
	w := NewWidget(&recordingSubmitter{err: boom}, WithResultCallback(func(path string, err error) {
		gotPath, gotErr = path, err
	}))
	w.Handle(Event{Type: EventDrop, Files: []string{"data.csv"}})
	assert.NoError(t, w.Wait())
	assert.Equal(t, "data.csv", gotPath)
	assert.ErrorIs(t, gotErr, boom)
}

func TestSubmissionErrorWithoutCallbackIsReturnedByWait(t *testing.T) {
	boom := errors.New("boom")
	w := NewWidget(&recordingSubmitter{err: boom})
	w.Handle(Event{Type: EventDrop, Files: []string{"data.csv"}})
	assert.ErrorIs(t, w.Wait(), boom)
}
