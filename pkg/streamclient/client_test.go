package streamclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realty-stream/internal/models"
	"realty-stream/internal/stream"
)

func chunkedServer(t *testing.T, chunks ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		f, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, c := range chunks {
			_, _ = w.Write([]byte(c))
			f.Flush()
		}
	}))
}

func collect(t *testing.T, c *Client, city string) ([]models.ProjectRecord, error) {
	t.Helper()
	var got []models.ProjectRecord
	err := c.StreamProjects(context.Background(), city, func(p models.ProjectRecord) {
		got = append(got, p)
	})
	return got, err
}

func TestClient_StreamProjects_SplitFrames(t *testing.T) {
	srv := chunkedServer(t,
		`data: {"project":{"name":"Luxury Heights","location":"Banjara Hills, Hyderabad",`,
		`"priceRange":"₹1.2 Cr - ₹2.5 Cr","builderName":"Prestige Group","coordinates":{"lat":17.385,"lon":78.4867}}}`+"\n",
		"\n"+`data: {"project":{"name":"Sky Towers","location":"Kondapur, Hyderabad"}}`+"\n\n",
	)
	defer srv.Close()

	got, err := collect(t, NewClient(srv.URL, nil), "Hyderabad")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Luxury Heights", got[0].Name)
	assert.Equal(t, 17.385, got[0].Coordinates.Lat)
	assert.Equal(t, "Sky Towers", got[1].Name)
}

func TestClient_StreamProjects_EscapesCity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/scrape/New%20Delhi", r.URL.EscapedPath())
		assert.Equal(t, "text/event-stream", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer srv.Close()

	got, err := collect(t, NewClient(srv.URL+"/", nil), "New Delhi")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_StreamProjects_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"City name is required"}`))
	}))
	defer srv.Close()

	_, err := collect(t, NewClient(srv.URL, nil), "x")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "City name is required", se.Message)
}

func TestClient_StreamProjects_StatusErrorPlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := collect(t, NewClient(srv.URL, nil), "x")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), se.Message)
}

func TestClient_StreamProjects_ErrorEventKeepsEarlierRecords(t *testing.T) {
	srv := chunkedServer(t,
		`data: {"project":{"name":"Luxury Heights"}}`+"\n\n",
		"event: error\n"+`data: {"error":"Failed to fetch projects"}`+"\n\n",
	)
	defer srv.Close()

	got, err := collect(t, NewClient(srv.URL, nil), "Hyderabad")
	require.Len(t, got, 1)

	var srvErr *stream.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, "Failed to fetch projects", srvErr.Message)
}

func TestClient_StreamProjects_Malformed(t *testing.T) {
	srv := chunkedServer(t, "data: {not json}\n\n")
	defer srv.Close()

	_, err := collect(t, NewClient(srv.URL, nil), "Hyderabad")
	require.Error(t, err)
}

func TestClient_StreamProjects_Canceled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(`data: {"project":{"name":"Luxury Heights"}}` + "\n\n"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		errCh <- NewClient(srv.URL, nil).StreamProjects(ctx, "Hyderabad", func(models.ProjectRecord) {
			close(first)
		})
	}()

	<-first
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not stop after cancel")
	}
}
