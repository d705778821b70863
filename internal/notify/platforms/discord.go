package platforms

import "context"

// DiscordAdapter posts one embed per message to a webhook URL.
type DiscordAdapter struct {
	client *HTTPClient
}

func NewDiscordAdapter(client *HTTPClient) *DiscordAdapter {
	return &DiscordAdapter{client: client}
}

func (a *DiscordAdapter) Name() string {
	return "discord"
}

func (a *DiscordAdapter) Send(ctx context.Context, endpoint string, msg Message) error {
	type embedField struct {
		Name   string `json:"name"`
		Value  string `json:"value"`
		Inline bool   `json:"inline"`
	}
	fields := make([]embedField, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		fields = append(fields, embedField{Name: f.Name, Value: f.Value, Inline: true})
	}
	payload := map[string]any{
		"embeds": []map[string]any{{
			"title":       msg.Title,
			"description": msg.Text,
			"color":       msg.Color,
			"fields":      fields,
		}},
	}
	return a.client.PostJSON(ctx, endpoint, payload)
}
