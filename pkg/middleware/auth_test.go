package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/pkg/token"
	"carwash-marketplace/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProtectedRouter(issuer *token.Issuer, roles ...entity.Role) chi.Router {
	r := chi.NewRouter()
	r.Use(Authenticate(issuer, zap.NewNop()))
	if len(roles) > 0 {
		r.Use(RequireRole(roles...))
	}
	r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		principal, _ := utils.GetPrincipalFromContext(r.Context())
		utils.ResponseSuccess(w, "ok", map[string]string{
			"id":   principal.ID.String(),
			"role": string(principal.Role),
		})
	})
	return r
}

func doGet(router http.Handler, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_ValidToken(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	id := uuid.New()
	signed, err := issuer.Issue(id, entity.RoleEmployee)
	require.NoError(t, err)

	w := doGet(newProtectedRouter(issuer), "Bearer "+signed)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), id.String())
	assert.Contains(t, w.Body.String(), "employee")
}

func TestAuthenticate_NoToken(t *testing.T) {
	w := doGet(newProtectedRouter(token.NewIssuer("secret", time.Hour)), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_BadFormat(t *testing.T) {
	w := doGet(newProtectedRouter(token.NewIssuer("secret", time.Hour)), "Token abc")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token format")
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	signed, err := token.NewIssuer("secret", time.Hour).Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	w := doGet(newProtectedRouter(token.NewIssuer("other", time.Hour)), "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthenticate_Expired(t *testing.T) {
	issuer := token.NewIssuer("secret", -time.Minute)
	signed, err := issuer.Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)

	w := doGet(newProtectedRouter(issuer), "Bearer "+signed)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}

func TestRequireRole(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	router := newProtectedRouter(issuer, entity.RoleProvider)

	customerToken, err := issuer.Issue(uuid.New(), entity.RoleCustomer)
	require.NoError(t, err)
	providerToken, err := issuer.Issue(uuid.New(), entity.RoleProvider)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(router, "Bearer "+customerToken).Code)
	assert.Equal(t, http.StatusOK, doGet(router, "Bearer "+providerToken).Code)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	r := chi.NewRouter()
	r.Use(RequireRole(entity.RoleCustomer))
	r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
}

func TestRecover(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Recover(zap.NewNop()))
	r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := doGet(r, "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestCORSPreflight(t *testing.T) {
	r := chi.NewRouter()
	r.Use(CORS())
	r.Get("/protected", func(w http.ResponseWriter, r *http.Request) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/protected", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
