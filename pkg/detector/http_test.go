package detector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"BatiDetect/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"
)

func TestHTTPDetectorAnalyze(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req analyzeRequest
		require.NoError(t, jsoniter.NewDecoder(r.Body).Decode(&req))
		require.InDelta(t, 40.0, req.Latitude, 1e-9)
		require.InDelta(t, -3.0, req.Longitude, 1e-9)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"buildings":5,"illegal":2}`))
	}))
	t.Cleanup(srv.Close)

	result, err := NewHTTP(srv.URL, srv.Client()).Analyze(context.Background(), entity.Coordinate{Latitude: 40, Longitude: -3})
	require.NoError(t, err)
	require.Equal(t, 5, result.Buildings)
	require.Equal(t, 2, result.Illegal)
	require.False(t, result.Simulated)
	require.Equal(t, BackendHTTP, result.Backend)
	require.Equal(t, "Résultat : 5 bâtiments détectés dont 2 illégal sur le secteur géré par 40.000000, -3.000000.", result.Message)
}

func TestHTTPDetectorClassifiesStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		status    int
		body      string
		want      error
		transient bool
	}{
		{"not found", http.StatusNotFound, `{}`, ErrNoCoverage, false},
		{"coverage code", http.StatusUnprocessableEntity, `{"code":"no_coverage"}`, ErrNoCoverage, false},
		{"bad request", http.StatusBadRequest, `{"error":"latitude"}`, ErrInvalidCoordinate, false},
		{"server error", http.StatusBadGateway, ``, ErrBackendUnavailable, true},
		{"throttled", http.StatusTooManyRequests, ``, ErrBackendUnavailable, true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			_, err := NewHTTP(srv.URL, srv.Client()).Analyze(context.Background(), entity.Coordinate{Latitude: 1, Longitude: 1})
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, tc.transient, IsTransient(err))
		})
	}
}

func TestHTTPDetectorUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTP(url, nil).Analyze(context.Background(), entity.Coordinate{Latitude: 1, Longitude: 1})
	require.ErrorIs(t, err, ErrBackendUnavailable)
	require.True(t, IsTransient(err))
}

func TestHTTPDetectorHealth(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	checker, ok := NewHTTP(srv.URL, srv.Client()).(HealthChecker)
	require.True(t, ok)
	require.NoError(t, checker.CheckHealth(context.Background()))
}
