package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSender_Send(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html><body>OK</body></html>"))
	}))
	defer srv.Close()

	s := NewSender(srv.Client())
	resp, err := s.Send(context.Background(), srv.URL+"?sender_id=ID&windspeed=9.7")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "<html><body>OK</body></html>", string(resp.Body))
	require.Equal(t, "sender_id=ID&windspeed=9.7", gotQuery)
}

func TestSender_Send_StatusPassedThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "go away", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewSender(srv.Client())
	resp, err := s.Send(context.Background(), srv.URL)
	require.NoError(t, err, "a bad status is a response, not a transport error")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSender_Send_TruncatesHugeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", maxBodyBytes+1024)))
	}))
	defer srv.Close()

	s := NewSender(srv.Client())
	resp, err := s.Send(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, resp.Body, maxBodyBytes)
}

func TestSender_Send_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s := NewSender(srv.Client())
	_, err := s.Send(ctx, srv.URL)
	require.Error(t, err)
}

func TestSender_Send_InvalidURL(t *testing.T) {
	s := NewSender(http.DefaultClient)
	_, err := s.Send(context.Background(), "http://\x00bad")
	require.Error(t, err)
}
