package convert

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web2pdf/internal/domain"
)

// recorder is an in-memory Controls that keeps every interaction in order.
type recorder struct {
	events   []string
	statuses []Status
	saved    map[string][]byte
	saveErr  error
	loading  bool
	// loadingAtSave records whether the indicator was on when Save ran.
	loadingAtSave bool
}

func newRecorder() *recorder {
	return &recorder{saved: map[string][]byte{}}
}

func (r *recorder) SetLoading(on bool) {
	r.loading = on
	if on {
		r.events = append(r.events, "loading:on")
	} else {
		r.events = append(r.events, "loading:off")
	}
}

func (r *recorder) ShowStatus(s Status) {
	r.statuses = append(r.statuses, s)
	r.events = append(r.events, "status:"+string(s.Level))
}

func (r *recorder) Save(filename string, pdf []byte) error {
	r.loadingAtSave = r.loading
	r.events = append(r.events, "save:"+filename)
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved[filename] = pdf
	return nil
}

func (r *recorder) last() Status {
	return r.statuses[len(r.statuses)-1]
}

func TestSubmit_SuccessDownloadsExactBytesOnce(t *testing.T) {
	pdf := []byte{0x25, 0x50, 0x44, 0x46, 0x00, 0xff}
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(pdf)
	}))
	defer srv.Close()

	ui := newRecorder()
	res := Submit(context.Background(), NewHandler(NewClient(srv.URL)), ui, domain.ConversionRequest{
		URL: "https://example.com", PageSize: "A4", Orientation: "portrait",
	})

	require.True(t, res.OK())
	assert.Equal(t, int32(1), requests.Load())
	assert.Len(t, ui.saved, 1)
	assert.Equal(t, pdf, ui.saved["webpage.pdf"])
	assert.Equal(t, []string{"loading:on", "status:info", "loading:off", "save:webpage.pdf", "status:success"}, ui.events)
	assert.False(t, ui.loadingAtSave)
	assert.Contains(t, ui.last().Text, `"webpage.pdf"`)
}

func TestSubmit_ValidationNeverEngagesLoading(t *testing.T) {
	b := &fakeBackend{}
	h := NewHandler(b)

	ui := newRecorder()
	Submit(context.Background(), h, ui, domain.ConversionRequest{URL: " "})
	assert.Equal(t, []string{"status:error"}, ui.events)
	assert.Equal(t, MsgEmptyInput, ui.last().Text)

	ui = newRecorder()
	Submit(context.Background(), h, ui, domain.ConversionRequest{URL: "example.com"})
	assert.Equal(t, []string{"status:error"}, ui.events)
	assert.Equal(t, MsgInvalidURL, ui.last().Text)

	assert.Equal(t, 0, b.callCount())
}

func TestSubmit_BackendErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad url"}`))
	}))
	defer srv.Close()

	ui := newRecorder()
	res := Submit(context.Background(), NewHandler(NewClient(srv.URL)), ui, domain.ConversionRequest{URL: "https://example.com"})

	assert.Equal(t, domain.BackendFailure, res.Kind)
	assert.Contains(t, ui.last().Text, "bad url")
	assert.Equal(t, LevelError, ui.last().Level)
	assert.Equal(t, []string{"loading:on", "status:info", "loading:off", "status:error"}, ui.events)
	assert.Empty(t, ui.saved)
}

func TestSubmit_NonJSONFailureFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Traceback (most recent call last): ..."))
	}))
	defer srv.Close()

	ui := newRecorder()
	res := Submit(context.Background(), NewHandler(NewClient(srv.URL)), ui, domain.ConversionRequest{URL: "http://example.com"})

	assert.Equal(t, domain.BackendFailure, res.Kind)
	assert.Equal(t, "Error: Internal Server Error", ui.last().Text)
	assert.False(t, ui.loading)
}

func TestSubmit_NetworkErrorRestoresUI(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	ui := newRecorder()
	res := Submit(context.Background(), NewHandler(NewClient(addr)), ui, domain.ConversionRequest{URL: "https://example.com"})

	assert.Equal(t, domain.NetworkFailure, res.Kind)
	assert.True(t, strings.HasPrefix(ui.last().Text, "Error: "))
	assert.False(t, ui.loading)
}

func TestSubmit_SaveFailureIsReported(t *testing.T) {
	b := &fakeBackend{pdf: []byte("x")}
	ui := newRecorder()
	ui.saveErr = errors.New("disk full")

	res := Submit(context.Background(), NewHandler(b), ui, domain.ConversionRequest{URL: "https://example.com", Filename: "out"})

	assert.Equal(t, domain.SaveFailure, res.Kind)
	assert.Equal(t, "Error: could not save out.pdf: disk full", ui.last().Text)
}

func TestStatusFor_Busy(t *testing.T) {
	s := StatusFor(domain.Failure(domain.ErrBusy))
	assert.Equal(t, LevelError, s.Level)
	assert.Equal(t, MsgBusy, s.Text)
}
