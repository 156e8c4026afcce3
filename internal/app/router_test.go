package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/app"
	"github.com/haifazahra-ui/pi-sosmed/internal/auth"
	"github.com/haifazahra-ui/pi-sosmed/internal/config"
	"github.com/haifazahra-ui/pi-sosmed/internal/health"
	"github.com/haifazahra-ui/pi-sosmed/internal/logger"
	"github.com/haifazahra-ui/pi-sosmed/internal/message"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"
	"github.com/haifazahra-ui/pi-sosmed/internal/password"
	"github.com/haifazahra-ui/pi-sosmed/internal/realtime"
	"github.com/haifazahra-ui/pi-sosmed/internal/student"
	"github.com/haifazahra-ui/pi-sosmed/internal/student/studenttest"
	"github.com/haifazahra-ui/pi-sosmed/internal/user/usertest"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := logger.Discard()
	m := metrics.NewMock()
	hasher := password.NewBcrypt(bcrypt.MinCost)
	signer := auth.NewTokenSigner("router-test-secret", time.Hour)

	handler := app.NewRouter(app.Handlers{
		Health:   health.NewHandler(okPinger{}, log, m),
		Auth:     auth.NewHandler(auth.NewService(usertest.NewRepository(hasher), hasher, signer), log, m),
		Student:  student.NewHandler(student.NewService(studenttest.NewRepository()), log, m),
		Message:  message.NewHandler(message.NewService(nil, log), log, m),
		Realtime: realtime.NewHandler(config.RealtimeConfig{MaxMessageBytes: 1024}, log, m),
	}, signer, []string{"*"}, log)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func request(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRouter(t *testing.T) {
	srv := newTestServer(t)

	t.Run("Welcome", func(t *testing.T) {
		status, body := request(t, srv, http.MethodGet, "/", "", nil)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Welcome to my sosmed backend services!", body["message"])
	})

	t.Run("SendMessageIsPublic", func(t *testing.T) {
		status, body := request(t, srv, http.MethodPost, "/send-message", "", map[string]any{"data": "hi"})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "hi", body["data"])
	})

	t.Run("StudentRoutesRequireToken", func(t *testing.T) {
		status, _ := request(t, srv, http.MethodGet, "/student", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = request(t, srv, http.MethodGet, "/student", "not-a-jwt", nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("RegisterLoginAndUseToken", func(t *testing.T) {
		creds := map[string]string{"username": "budi", "password": "rahasia"}

		status, _ := request(t, srv, http.MethodPost, "/register", "", creds)
		require.Equal(t, http.StatusCreated, status)

		status, body := request(t, srv, http.MethodPost, "/login", "", creds)
		require.Equal(t, http.StatusOK, status)
		token, _ := body["token"].(string)
		require.NotEmpty(t, token)

		status, body = request(t, srv, http.MethodPost, "/student", token, map[string]any{
			"firstName": "Siti",
			"lastName":  "Aminah",
			"classes":   "XI",
			"gender":    "female",
		})
		require.Equal(t, http.StatusCreated, status)
		created := body["data"].(map[string]any)

		status, body = request(t, srv, http.MethodGet, "/student", token, nil)
		require.Equal(t, http.StatusOK, status)
		students := body["data"].([]any)
		require.Len(t, students, 1)
		assert.Equal(t, created["id"], students[0].(map[string]any)["id"])

		user := body["user"].(map[string]any)
		assert.Equal(t, "budi", user["username"])
	})

	t.Run("WebSocketUpgradeOnAnyPath", func(t *testing.T) {
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/student"
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer conn.Close()

		assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	})
}
