package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// CommandHandler turns one operator command ("/scan", "/status") into the
// Markdown reply to send back. An empty reply sends nothing.
type CommandHandler func(command string) string

type update struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// StartPolling long-polls getUpdates for operator commands and blocks until
// ctx is cancelled. Only the configured chat may drive the scanner: updates
// from any other chat are logged and dropped without a reply.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		updates, err := t.fetchUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] poll updates: %v", err)
			time.Sleep(5 * time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			t.handleUpdate(u, handler)
		}
	}
}

func (t *TelegramNotifier) fetchUpdates(ctx context.Context, client *http.Client, offset int) ([]update, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("timeout", "30")
	req, err := http.NewRequestWithContext(ctx, "GET", t.endpoint("getUpdates")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	var result struct {
		OK     bool     `json:"ok"`
		Result []update `json:"result"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return result.Result, nil
}

func (t *TelegramNotifier) handleUpdate(u update, handler CommandHandler) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	chatID := strconv.FormatInt(u.Message.Chat.ID, 10)
	if chatID != t.ChatID {
		log.Printf("[WARN] ignoring command from unauthorized chat %s", chatID)
		return
	}
	command := strings.TrimSpace(u.Message.Text)
	log.Printf("[INFO] received command: %s", command)
	if reply := handler(command); reply != "" {
		if err := t.sendTo(chatID, reply); err != nil {
			log.Printf("[ERROR] send reply: %v", err)
		}
	}
}
