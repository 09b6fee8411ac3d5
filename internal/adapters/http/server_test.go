package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atendebot/atende/pkg/dialog"
)

type stubBot struct {
	activities []dialog.Activity
	err        error
	gotConv    string
	gotInput   dialog.Input
}

func (b *stubBot) ProcessTurn(ctx context.Context, conversationID string, input dialog.Input) ([]dialog.Activity, error) {
	b.gotConv = conversationID
	b.gotInput = input
	return b.activities, b.err
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(&stubBot{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(&stubBot{}, nil, WithVersion("1.2.3"))

	req := httptest.NewRequest(http.MethodGet, "/info", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "atende", resp["app"])
	assert.Equal(t, "1.2.3", resp["version"])
}

func TestPostMessages(t *testing.T) {
	bot := &stubBot{activities: []dialog.Activity{{Text: "Escolha a opção desejada:"}}}
	handler := NewHandler(bot, nil)

	body := `{"conversationId":"conv-1","userId":"u-1","text":"oi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "conv-1", bot.gotConv)
	assert.Equal(t, "oi", bot.gotInput.Text)
	assert.Equal(t, "u-1", bot.gotInput.UserID)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "conv-1", resp.ConversationID)
	require.Len(t, resp.Activities, 1)
	assert.Equal(t, "Escolha a opção desejada:", resp.Activities[0].Text)
}

func TestPostMessagesRequiresConversationID(t *testing.T) {
	handler := NewHandler(&stubBot{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(`{"text":"oi"}`))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostMessagesInvalidBody(t *testing.T) {
	handler := NewHandler(&stubBot{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPostMessagesVersionConflict(t *testing.T) {
	handler := NewHandler(&stubBot{err: dialog.ErrVersionConflict}, nil)

	body := `{"conversationId":"conv-1","text":"oi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestMountedRoutes(t *testing.T) {
	mounted := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := NewHandler(&stubBot{}, map[string]http.Handler{"/api/pedidos": mounted})

	req := httptest.NewRequest(http.MethodGet, "/api/pedidos/1", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTeapot, rr.Code)
}
