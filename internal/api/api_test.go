package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/welcomehome/internal/auth"
	"github.com/erazemk/welcomehome/internal/db"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
	"github.com/erazemk/welcomehome/internal/store"
)

type testServer struct {
	*httptest.Server
	services *service.Services
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	database := db.NewTestDB(t)
	services := service.New(service.Deps{DB: database})
	ctx := context.Background()
	require.NoError(t, services.Catalog.Seed(ctx, store.DefaultReferenceData()))

	for _, p := range []struct{ username, role string }{
		{"sam", "staff"}, {"alice", "donor"}, {"bob", "client"},
	} {
		require.NoError(t, services.Identity.Register(ctx, service.RegisterInput{
			Username: p.username, Password: "password123", Role: p.role,
		}))
	}

	router := NewRouter(services, database, auth.NewIssuer("test-secret", time.Hour))
	server := httptest.NewServer(LoggingMiddleware(router))
	t.Cleanup(server.Close)
	return &testServer{Server: server, services: services}
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": "password123"})
	resp, err := http.Post(s.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out loginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func (s *testServer) do(t *testing.T, method, path, token string, target any) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if target != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	}
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	server := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong-password"})
	resp, err := http.Post(server.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/login", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	assert.NotEmpty(t, server.login(t, "alice"))
}

func TestUnauthenticatedAccess(t *testing.T) {
	server := setupTestServer(t)

	for _, path := range []string{"/api/items/1", "/api/orders/1", "/api/tasks", "/api/rankings"} {
		resp := server.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}

	resp := server.do(t, http.MethodGet, "/api/tasks", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesToken(t *testing.T) {
	server := setupTestServer(t)
	token := server.login(t, "alice")

	resp := server.do(t, http.MethodPost, "/api/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = server.do(t, http.MethodGet, "/api/tasks", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestItemAndOrderLookup(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	staff := service.Actor{Username: "sam", Role: model.RoleStaff}

	itemID, err := server.services.Inventory.AcceptDonation(ctx, staff, service.DonationInput{
		DonorID: "alice", Description: "Oak table", MainCategory: "Furniture", SubCategory: "Table",
		RoomNum: 1, ShelfNum: 2,
	})
	require.NoError(t, err)
	orderID, err := server.services.Orders.StartOrder(ctx, staff, "bob")
	require.NoError(t, err)
	_, err = server.services.Orders.AddToOrder(ctx, staff, orderID, fmt.Sprint(itemID))
	require.NoError(t, err)

	token := server.login(t, "bob")

	var item itemResponse
	resp := server.do(t, http.MethodGet, fmt.Sprintf("/api/items/%d", itemID), token, &item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Oak table", item.Description)
	require.Len(t, item.Pieces, 1)
	assert.Equal(t, 2, item.Pieces[0].ShelfNum)

	var order orderResponse
	resp = server.do(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), token, &order)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "bob", order.Client)
	require.Len(t, order.Items, 1)
	assert.Equal(t, itemID, order.Items[0].ItemID)

	var tasks tasksResponse
	resp = server.do(t, http.MethodGet, "/api/tasks", token, &tasks)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, tasks.Relevant)
	require.Len(t, tasks.Tasks, 1)
	assert.Equal(t, orderID, tasks.Tasks[0].OrderID)

	assert.Equal(t, http.StatusBadRequest, server.do(t, http.MethodGet, "/api/items/abc", token, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, "/api/items/999", token, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, server.do(t, http.MethodGet, "/api/orders/999", token, nil).StatusCode)
}

func TestRankings(t *testing.T) {
	server := setupTestServer(t)
	token := server.login(t, "sam")

	resp := server.do(t, http.MethodGet, "/api/rankings?startDate=2024-01-01", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out rankingResponse
	resp = server.do(t, http.MethodGet, "/api/rankings?startDate=2024-01-01&endDate=2024-12-31", token, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-01-01", out.StartDate)
	assert.NotNil(t, out.Ranking)
	assert.Empty(t, out.Ranking)
}

func TestCategories(t *testing.T) {
	server := setupTestServer(t)
	token := server.login(t, "alice")

	var mains map[string][]string
	resp := server.do(t, http.MethodGet, "/api/categories", token, &mains)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, mains["main_categories"], "Kitchen")

	var subs map[string][]string
	resp = server.do(t, http.MethodGet, "/api/subcategories?mainCategory=Kitchen", token, &subs)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Cookware", "Dishes"}, subs["subcategories"])

	resp = server.do(t, http.MethodGet, "/api/subcategories", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("%w: only staff members can prepare orders", model.ErrAccessDenied), http.StatusForbidden},
		{model.ErrOrderNotFound, http.StatusNotFound},
		{model.ErrItemUnavailable, http.StatusConflict},
		{fmt.Errorf("database is locked"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		writeError(rec, "test", tt.err)
		assert.Equal(t, tt.want, rec.Code, tt.err.Error())
	}

	rec := httptest.NewRecorder()
	writeError(rec, "test", fmt.Errorf("secret detail"))
	assert.NotContains(t, rec.Body.String(), "secret detail")
}

func TestLoggingMiddlewareRequestID(t *testing.T) {
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, id)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
}
