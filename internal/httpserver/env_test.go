package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Skotchmaster/campus_bites/internal/events"
	"github.com/Skotchmaster/campus_bites/internal/menu"
	"github.com/Skotchmaster/campus_bites/internal/repo"
	"github.com/Skotchmaster/campus_bites/internal/service"
	"github.com/Skotchmaster/campus_bites/internal/testutil"
	"github.com/Skotchmaster/campus_bites/pkg/hash"
)

const testPasscode = "4321"

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	Hub       *events.Hub
	M         *MenuHTTP
	C         *CartHTTP
	O         *OrderHTTP
	K         *KitchenHTTP
	JWTSecret []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	r := &repo.GormRepo{DB: db}
	catalog := menu.Default()
	hub := events.NewHub(events.DefaultBuffer)

	passHash, err := hash.HashPasswordCost(testPasscode, bcrypt.MinCost)
	require.NoError(t, err)

	tick := 0
	orders := &service.OrderService{
		Repo:   r,
		Menu:   catalog,
		Events: hub,
		Now: func() time.Time {
			tick++
			return time.Now().Add(time.Duration(tick) * time.Second)
		},
	}
	env := &testEnv{
		T:         t,
		E:         echo.New(),
		DB:        db,
		Hub:       hub,
		M:         &MenuHTTP{Catalog: catalog, Searcher: &menu.MemorySearcher{Catalog: catalog}},
		C:         &CartHTTP{Svc: &service.CartService{Repo: r, Menu: catalog}},
		O:         &OrderHTTP{Svc: orders},
		JWTSecret: []byte("test-secret"),
	}
	env.K = &KitchenHTTP{
		Svc:          &service.KitchenService{Orders: orders, Hub: hub, PollInterval: time.Hour},
		JWTSecret:    env.JWTSecret,
		PasscodeHash: passHash,
		TokenTTL:     time.Hour,
	}

	Register(env.E, &Deps{
		MenuHandler:    env.M,
		CartHandler:    env.C,
		OrderHandler:   env.O,
		KitchenHandler: env.K,
		JWTSecret:      env.JWTSecret,
		DB:             db,
	})
	return env
}

func newRequest(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return req
}

// doJSONRequest builds a context for calling a handler directly.
func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	rec := httptest.NewRecorder()
	c := env.E.NewContext(newRequest(env.T, method, path, body, cookies...), rec)
	return rec, c
}

// serve runs the request through the router and middleware.
func (env *testEnv) serve(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, newRequest(env.T, method, path, body, cookies...))
	return rec
}

func cookieNamed(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}
