package message_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/haifazahra-ui/pi-sosmed/internal/logger"
	"github.com/haifazahra-ui/pi-sosmed/internal/message"
	"github.com/haifazahra-ui/pi-sosmed/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	mu        sync.Mutex
	published []any
	err       error
}

func (p *fakeProducer) Publish(ctx context.Context, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, value)
	return nil
}

func (p *fakeProducer) Close() error { return nil }

func setupRouter(producer *fakeProducer) chi.Router {
	var service *message.Service
	if producer != nil {
		service = message.NewService(producer, logger.Discard())
	} else {
		service = message.NewService(nil, logger.Discard())
	}
	handler := message.NewHandler(service, logger.Discard(), metrics.NewMock())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func send(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/send-message", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSendMessage(t *testing.T) {
	t.Run("Echo", func(t *testing.T) {
		router := setupRouter(nil)

		tests := []struct {
			name string
			body string
			want string
		}{
			{"String", `{"data":"hi"}`, `{"data":"hi","message":"send message success!"}`},
			{"Number", `{"data":12345678901234567890}`, `{"data":12345678901234567890,"message":"send message success!"}`},
			{"True", `{"data":true}`, `{"data":true,"message":"send message success!"}`},
			{"Object", `{"data":{"text":"hi"}}`, `{"data":{"text":"hi"},"message":"send message success!"}`},
			{"EmptyArray", `{"data":[]}`, `{"data":[],"message":"send message success!"}`},
			{"EmptyObject", `{"data":{}}`, `{"data":{},"message":"send message success!"}`},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				w := send(router, tc.body)

				assert.Equal(t, http.StatusOK, w.Code)
				assert.JSONEq(t, tc.want, w.Body.String())
			})
		}
	})

	t.Run("NoContent", func(t *testing.T) {
		router := setupRouter(nil)

		for _, body := range []string{
			`{}`,
			`{"data":null}`,
			`{"data":""}`,
			`{"data":false}`,
			`{"data":0}`,
			`{"data":0.0}`,
			``,
			`[]`,
			`["data"]`,
			`"text"`,
			`42`,
			`null`,
		} {
			w := send(router, body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
			assert.JSONEq(t, `{"data":[],"message":"no message content !"}`, w.Body.String(), body)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		router := setupRouter(nil)

		w := send(router, `{"data":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("PublishesEvent", func(t *testing.T) {
		producer := &fakeProducer{}
		router := setupRouter(producer)

		w := send(router, `{"data":"hello"}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, producer.published, 1)
		event, ok := producer.published[0].(message.MessageEvent)
		require.True(t, ok)
		assert.Equal(t, "hello", event.Data)
		assert.False(t, event.SentAt.IsZero())
	})

	t.Run("RejectedMessageIsNotPublished", func(t *testing.T) {
		producer := &fakeProducer{}
		router := setupRouter(producer)

		send(router, `{"data":""}`)

		assert.Empty(t, producer.published)
	})

	t.Run("PublishFailureKeepsEcho", func(t *testing.T) {
		producer := &fakeProducer{err: errors.New("no servers available")}
		router := setupRouter(producer)

		w := send(router, `{"data":"hello"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":"hello","message":"send message success!"}`, w.Body.String())
	})
}
