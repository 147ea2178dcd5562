package httpserver

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/campus_bites/internal/models"
	"github.com/Skotchmaster/campus_bites/internal/transport"
	"github.com/Skotchmaster/campus_bites/pkg/tokens"
)

func (env *testEnv) staffLogin() *http.Cookie {
	env.T.Helper()
	rec := env.serve(http.MethodPost, "/api/v1/kitchen/login", transport.LoginRequest{Passcode: testPasscode})
	require.Equal(env.T, http.StatusOK, rec.Code)
	return cookieNamed(env.T, rec, tokens.AccessCookie)
}

func TestKitchenLogin(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/kitchen/login", transport.LoginRequest{Passcode: "0000"})
	require.Equal(t, http.StatusUnauthorized, httpCode(t, env.K.Login(c)))

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/kitchen/login", transport.LoginRequest{Passcode: testPasscode})
	require.NoError(t, env.K.Login(c))
	resp := decode[transport.LoginResponse](t, rec)

	claims, err := tokens.AccessClaimsFromToken(resp.AccessToken, env.JWTSecret)
	require.NoError(t, err)
	require.Equal(t, tokens.RoleStaff, claims.Role)
	cookie := cookieNamed(t, rec, tokens.AccessCookie)
	require.Equal(t, resp.AccessToken, cookie.Value)
	require.False(t, cookie.Secure, "plain http must not get a Secure cookie")
	require.True(t, cookie.HttpOnly)

	req := newRequest(t, http.MethodPost, "/api/v1/kitchen/login", transport.LoginRequest{Passcode: testPasscode})
	req.TLS = &tls.ConnectionState{}
	rec = httptest.NewRecorder()
	require.NoError(t, env.K.Login(env.E.NewContext(req, rec)))
	require.True(t, cookieNamed(t, rec, tokens.AccessCookie).Secure)
}

func TestKitchenLogout(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodPost, "/api/v1/kitchen/logout", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.serve(http.MethodPost, "/api/v1/kitchen/logout", nil, env.staffLogin())
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := cookieNamed(t, rec, tokens.AccessCookie)
	require.Empty(t, cleared.Value)
	require.Negative(t, cleared.MaxAge)
}

func TestKitchenRoutesRequireStaff(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(http.MethodGet, "/api/v1/kitchen/orders", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	bogus := &http.Cookie{Name: tokens.AccessCookie, Value: "not-a-jwt"}
	rec = env.serve(http.MethodGet, "/api/v1/kitchen/orders", nil, bogus)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.serve(http.MethodGet, "/api/v1/kitchen/orders", nil, env.staffLogin())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[transport.BoardResponse](t, rec).Data)
}

func TestKitchenBoard(t *testing.T) {
	env := newTestEnv(t)
	staff := env.staffLogin()

	first := env.placeOrder("1")
	second := env.placeOrder("8", "11")

	rec := env.serve(http.MethodGet, "/api/v1/kitchen/orders", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[transport.BoardResponse](t, rec).Data
	require.Len(t, board, 2)
	require.Equal(t, second.ID, board[0].ID)
	require.Equal(t, "Start Cooking", board[0].Action)

	path := "/api/v1/kitchen/orders/" + first.ID.String()

	rec = env.serve(http.MethodPatch, path, transport.SetStatusRequest{Status: "ready"}, staff)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.serve(http.MethodPatch, path, transport.SetStatusRequest{Status: "eaten"}, staff)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.serve(http.MethodPost, path+"/advance", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[transport.KitchenOrder](t, rec)
	require.Equal(t, models.OrderStatusCooking, got.Status)
	require.Equal(t, "Mark Ready", got.Action)

	rec = env.serve(http.MethodPatch, path, transport.SetStatusRequest{Status: "ready"}, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.serve(http.MethodPost, path+"/advance", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[transport.KitchenOrder](t, rec).Action)

	rec = env.serve(http.MethodPost, path+"/advance", nil, staff)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.serve(http.MethodGet, "/api/v1/kitchen/orders", nil, staff)
	require.Len(t, decode[transport.BoardResponse](t, rec).Data, 1)

	rec = env.serve(http.MethodGet, "/api/v1/orders/"+first.ID.String(), nil)
	require.Equal(t, models.OrderStatusCompleted, decode[models.Order](t, rec).Status)
}

func TestKitchenStream(t *testing.T) {
	env := newTestEnv(t)
	staff := env.staffLogin()
	order := env.placeOrder("3")

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	req := newRequest(t, http.MethodGet, "/api/v1/kitchen/stream", nil, staff).WithContext(ctx)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	require.True(t, strings.HasPrefix(body, "event: orders\ndata: "))
	require.Contains(t, body, order.TokenNumber)
	require.Contains(t, body, "Start Cooking")
	require.Contains(t, body, `"counts":{`)
	require.Zero(t, env.Hub.Subscribers())
}

// complete walks an order through every status.
func (env *testEnv) complete(id uuid.UUID, staff *http.Cookie) {
	env.T.Helper()
	for range 3 {
		rec := env.serve(http.MethodPost, "/api/v1/kitchen/orders/"+id.String()+"/advance", nil, staff)
		require.Equal(env.T, http.StatusOK, rec.Code)
	}
}

func TestKitchenBoard_Counts(t *testing.T) {
	env := newTestEnv(t)
	staff := env.staffLogin()

	first := env.placeOrder("1")
	env.placeOrder("2")
	env.placeOrder("3")

	env.complete(first.ID, staff)

	rec := env.serve(http.MethodGet, "/api/v1/kitchen/orders", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[transport.BoardResponse](t, rec)
	require.Len(t, resp.Data, 2)
	require.Equal(t, map[models.OrderStatus]int64{
		models.OrderStatusPending:   2,
		models.OrderStatusCooking:   0,
		models.OrderStatusReady:     0,
		models.OrderStatusCompleted: 1,
	}, resp.Counts)
	require.EqualValues(t, 2, resp.Meta["total"])
}

func TestKitchenBoard_StatusFilterAndPaging(t *testing.T) {
	env := newTestEnv(t)
	staff := env.staffLogin()

	first := env.placeOrder("1")
	env.placeOrder("2")
	third := env.placeOrder("3")

	env.complete(first.ID, staff)

	rec := env.serve(http.MethodGet, "/api/v1/kitchen/orders?status=completed", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[transport.BoardResponse](t, rec)
	require.Len(t, resp.Data, 1)
	require.Equal(t, first.ID, resp.Data[0].ID)
	require.Empty(t, resp.Data[0].Action)

	rec = env.serve(http.MethodGet, "/api/v1/kitchen/orders?status=pending,completed&size=2", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[transport.BoardResponse](t, rec)
	require.Len(t, resp.Data, 2)
	require.Equal(t, third.ID, resp.Data[0].ID)
	require.EqualValues(t, 3, resp.Meta["total"])
	require.EqualValues(t, 2, resp.Meta["total_pages"])
	require.Equal(t, true, resp.Meta["has_next"])

	rec = env.serve(http.MethodGet, "/api/v1/kitchen/orders?status=all&page=2&size=2", nil, staff)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[transport.BoardResponse](t, rec)
	require.Len(t, resp.Data, 1)
	require.Equal(t, first.ID, resp.Data[0].ID)
	require.EqualValues(t, 2, resp.Meta["page"])
	require.Equal(t, false, resp.Meta["has_next"])
	require.Equal(t, true, resp.Meta["has_prev"])

	rec = env.serve(http.MethodGet, "/api/v1/kitchen/orders?status=eaten", nil, staff)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
