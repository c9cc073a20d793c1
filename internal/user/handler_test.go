package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumoshive/service-account-go/internal/token"
)

func newTestHandler() (*Handler, *token.Issuer) {
	svc, _ := newTestService()
	issuer := token.NewIssuer("test-secret")
	return NewHandlerWithService(svc, issuer, zap.NewNop().Sugar()), issuer
}

func postJSON(h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestSignup_CreatedWithToken(t *testing.T) {
	t.Parallel()
	h, issuer := newTestHandler()

	rr := postJSON(h.Signup, "/api/auth/signup", `{"username":"alice","email":"alice@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	require.NotEmpty(t, resp.Token)

	userID, err := issuer.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, userID)
}

func TestSignup_Duplicate(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	rr := postJSON(h.Signup, "/api/auth/signup", `{"username":"bob","email":"bob@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(h.Signup, "/api/auth/signup", `{"username":"bob2","email":"bob@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "already in use")
}

func TestSignup_MissingFields(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	rr := postJSON(h.Signup, "/api/auth/signup", `{"email":"x@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_IdenticalFailureMessages(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	rr := postJSON(h.Signup, "/api/auth/signup", `{"username":"carol","email":"carol@example.com","password":"right"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	wrongPw := postJSON(h.Login, "/api/auth/login", `{"email":"carol@example.com","password":"wrong"}`)
	noUser := postJSON(h.Login, "/api/auth/login", `{"email":"ghost@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, noUser.Code)
	assert.Equal(t, wrongPw.Body.String(), noUser.Body.String())
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	rr := postJSON(h.Signup, "/api/auth/signup", `{"username":"dave","email":"dave@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = postJSON(h.Login, "/api/auth/login", `{"email":"dave@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestUpdateProfile_PartialAndToken(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	rr := postJSON(h.Signup, "/api/auth/signup", `{"username":"erin","email":"erin@example.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created AccountResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader(`{"firstName":"Erin"}`))
	req = req.WithContext(token.NewContext(context.Background(), created.ID))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "erin", resp.Username)
	assert.Equal(t, "Erin", resp.FirstName)
	assert.NotEmpty(t, resp.Token)
}

func TestUpdateProfileHandler_StaleID(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPut, "/api/auth/profile", strings.NewReader(`{"firstName":"X"}`))
	req = req.WithContext(token.NewContext(context.Background(), "gone"))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLogout_Ack(t *testing.T) {
	t.Parallel()
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out")
}
