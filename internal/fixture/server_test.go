package fixture

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/require"

	"github.com/jask/cardfriends/internal/usersapi"
)

func TestDefaultDatasetMatchesReqres(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	require.Len(t, ds.Users, 12)
	require.Equal(t, 6, ds.PerPage)
	require.Equal(t, 2, ds.TotalPages())
	require.Equal(t, usersapi.User{
		ID:        7,
		Email:     "michael.lawson@reqres.in",
		FirstName: "Michael",
		LastName:  "Lawson",
		Avatar:    "https://reqres.in/img/faces/7-image.jpg",
	}, ds.Users[6])
}

func TestLoadDatasetFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(path, []byte("per_page: 1\nusers:\n  - id: 9\n    first_name: Tobias\n"), 0o644))
	ds, err := LoadDataset(path)
	require.NoError(t, err)
	require.Equal(t, 1, ds.TotalPages())
	require.Equal(t, "Tobias", ds.Users[0].FirstName)

	require.NoError(t, os.WriteFile(path, []byte("users: []\n"), 0o644))
	_, err = LoadDataset(path)
	require.ErrorContains(t, err, "per_page")
}

func TestDatasetPagePastEndIsEmpty(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	p := ds.Page(5)
	require.NotNil(t, p.Data)
	require.Empty(t, p.Data)
	require.Equal(t, 2, p.TotalPages)
}

func TestListUsersHandler(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	srv := New(ds, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users?page=2", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var page usersapi.Page
	require.NoError(t, json.Unmarshal(body, &page))
	require.Equal(t, 2, page.Page)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 6)
	require.Equal(t, 7, page.Data[0].ID)
}

func TestListUsersDefaultsBadPage(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	srv := New(ds, nil)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/users?page=-3", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	var page usersapi.Page
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	require.Equal(t, 1, page.Page)
	require.Equal(t, 1, page.Data[0].ID)
}

func TestClientAgainstFixture(t *testing.T) {
	ds, err := LoadDataset("")
	require.NoError(t, err)
	ts := httptest.NewServer(adaptor.FiberApp(New(ds, nil).App()))
	defer ts.Close()

	c, err := usersapi.New(usersapi.Options{Endpoint: ts.URL + "/api/users"})
	require.NoError(t, err)
	page, err := c.ListUsers(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 6)
	require.Equal(t, "George", page.Data[0].FirstName)
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(25, 10, 7)
	require.NoError(t, err)
	b, err := Generate(25, 10, 7)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, 3, a.TotalPages())
	require.Len(t, a.Page(3).Data, 5)
	require.Equal(t, 25, a.Users[24].ID)
	require.Equal(t, "https://reqres.in/img/faces/1-image.jpg", a.Users[12].Avatar)

	_, err = Generate(5, 0, 1)
	require.Error(t, err)
}
