package usersapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestListUsersDecodesPage(t *testing.T) {
	var gotPage, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":2,"per_page":6,"total":12,"total_pages":3,"data":[{"id":7,"email":"m@x.io","first_name":"Michael","last_name":"Lawson","avatar":"https://a/7.jpg"}]}`))
	}))
	defer srv.Close()

	c, err := New(Options{Endpoint: srv.URL + "/api/users", APIKey: "secret"})
	require.NoError(t, err)
	defer c.http.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	page, err := c.ListUsers(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, "2", gotPage)
	require.Equal(t, "secret", gotKey)
	require.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Data, 1)
	require.Equal(t, User{ID: 7, Email: "m@x.io", FirstName: "Michael", LastName: "Lawson", Avatar: "https://a/7.jpg"}, page.Data[0])
}

func TestListUsersRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New(Options{Endpoint: srv.URL})
	require.NoError(t, err)
	defer c.http.CloseIdleConnections()

	_, err = c.ListUsers(context.Background(), 1)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnexpectedStatus), "got %v", err)
}

func TestListUsersRejectsMissingData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_pages":2}`))
	}))
	defer srv.Close()

	c, err := New(Options{Endpoint: srv.URL})
	require.NoError(t, err)
	defer c.http.CloseIdleConnections()

	_, err = c.ListUsers(context.Background(), 1)
	require.ErrorContains(t, err, "missing data")
}

func TestNewRejectsNonHTTPEndpoint(t *testing.T) {
	_, err := New(Options{Endpoint: "ftp://example.com/users"})
	require.Error(t, err)
}

func TestListUsersHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Options{Endpoint: srv.URL})
	require.NoError(t, err)
	defer c.http.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.ListUsers(ctx, 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
