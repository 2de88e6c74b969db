package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestNotifier(apiBase string) *TelegramNotifier {
	return &TelegramNotifier{
		BotToken: "token",
		ChatID:   "42",
		APIBase:  apiBase,
		Client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSend_MarkdownPayload(t *testing.T) {
	var got sendMessageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/sendMessage") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tn := newTestNotifier(srv.URL)
	if err := tn.Send("*hello*"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.ChatID != "42" || got.Text != "*hello*" || got.ParseMode != "Markdown" {
		t.Errorf("unexpected payload: %+v", got)
	}
	if !got.DisableWebPagePrev {
		t.Error("web page previews must be disabled")
	}
}

func TestSend_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"Bad Request: can't parse entities"}`))
	}))
	defer srv.Close()

	err := newTestNotifier(srv.URL).Send("broken")
	if err == nil || !strings.Contains(err.Error(), "can't parse entities") {
		t.Errorf("expected the API description in the error, got %v", err)
	}
}

func TestStartPolling_IgnoresUnauthorizedChats(t *testing.T) {
	replies := make(chan sendMessageRequest, 1)
	var served bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if served {
				w.Write([]byte(`{"ok":true,"result":[]}`))
				return
			}
			served = true
			w.Write([]byte(`{"ok":true,"result":[
				{"update_id":1,"message":{"text":"/scan","chat":{"id":999}}},
				{"update_id":2,"message":{"text":"/status","chat":{"id":42}}}
			]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var req sendMessageRequest
			json.NewDecoder(r.Body).Decode(&req)
			replies <- req
			w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var commands []string
	done := make(chan struct{})
	tn := newTestNotifier(srv.URL)
	go func() {
		tn.StartPolling(ctx, func(command string) string {
			commands = append(commands, command)
			return "reply to " + command
		})
		close(done)
	}()

	select {
	case reply := <-replies:
		if reply.ChatID != "42" || reply.Text != "reply to /status" {
			t.Errorf("unexpected reply: %+v", reply)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the reply")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("polling did not stop on context cancel")
	}

	if len(commands) != 1 || commands[0] != "/status" {
		t.Errorf("only the configured chat may issue commands, got %v", commands)
	}
}
