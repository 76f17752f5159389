package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phenrril/fightshop/internal/domain"
)

// Telegram posts the order summary to each configured chat through the Bot API.
type Telegram struct {
	Token   string
	ChatIDs []string
	BaseURL string
	Client  *http.Client
}

// ParseChatIDs splits a comma separated list, dropping blanks.
func ParseChatIDs(raw string) []string {
	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (t *Telegram) OrderPlaced(ctx context.Context, o *domain.Order) error {
	if t.Token == "" || len(t.ChatIDs) == 0 {
		return fmt.Errorf("telegram: token or chat ids missing")
	}
	base := t.BaseURL
	if base == "" {
		base = "https://api.telegram.org"
	}
	client := t.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	apiURL := base + "/bot" + t.Token + "/sendMessage"
	text := Body(o)

	var lastErr error
	for _, id := range t.ChatIDs {
		form := url.Values{}
		form.Set("chat_id", id)
		form.Set("text", text)
		form.Set("disable_web_page_preview", "1")
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(form.Encode()))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
			lastErr = fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
		}
		resp.Body.Close()
	}
	return lastErr
}
