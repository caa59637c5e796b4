package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"infinity-realms-shop/internal/config"
	"infinity-realms-shop/internal/model"
)

// DiscordClient posts purchase events to a Discord webhook. Delivery is
// best effort; callers are expected to log and swallow any error.
type DiscordClient interface {
	NotifyPurchase(ctx context.Context, purchase *model.Purchase, verified bool) error
}

type discordClientImpl struct {
	httpClient  *http.Client
	webhookURL  string
	staffRoleID string
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title     string              `json:"title"`
	Color     int                 `json:"color"`
	Fields    []discordEmbedField `json:"fields"`
	Timestamp string              `json:"timestamp"`
	Footer    struct {
		Text string `json:"text"`
	} `json:"footer"`
}

type discordWebhookPayload struct {
	Content string         `json:"content,omitempty"`
	Embeds  []discordEmbed `json:"embeds"`
}

func NewDiscordClient(discordCfg *config.Discord) DiscordClient {
	return &discordClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		webhookURL:  discordCfg.WebhookURL,
		staffRoleID: discordCfg.StaffRoleID,
	}
}

func (c *discordClientImpl) NotifyPurchase(ctx context.Context, purchase *model.Purchase, verified bool) error {
	if c.webhookURL == "" {
		return fmt.Errorf("discord webhook URL not configured")
	}

	embed := discordEmbed{
		Title:     "🛒 New Purchase Completed",
		Color:     0x6366f1,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Fields: []discordEmbedField{
			{Name: "Username", Value: purchase.Username, Inline: true},
			{Name: "Product Name", Value: formatItems(purchase.Items), Inline: true},
			{Name: "Paid Price", Value: fmt.Sprintf("%s %s", purchase.Currency, purchase.Amount.String()), Inline: true},
			{Name: "Verification Status", Value: "Unverified", Inline: false},
		},
	}
	if verified {
		embed.Title = "✅ Purchase Verified"
		embed.Color = 0x10b981
		embed.Fields[3].Value = "Verified"
	}
	embed.Footer.Text = "Infinity Realms Shop"

	payload := discordWebhookPayload{Embeds: []discordEmbed{embed}}
	// ping staff only for purchases that still need verification
	if c.staffRoleID != "" && !verified {
		payload.Content = fmt.Sprintf("<@&%s>", c.staffRoleID)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func formatItems(raw []byte) string {
	var items []model.PurchaseItem
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return "Unknown items"
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%s (x%d)", item.Name, item.Quantity)
	}
	return strings.Join(parts, ", ")
}
