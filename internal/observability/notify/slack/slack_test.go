package slack

import (
	"strings"
	"testing"
	"time"

	"github.com/janasethu/civic-api/internal/observability/notify"
)

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error when webhook url missing")
	}
}

func TestFormatMessageIncludesFields(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
		Channel:    "#alerts",
		Username:   "bot",
		Timeout:    time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.AlertPayload{
		AlertID:     "a-123",
		Title:       "Water supply disruption",
		Description: "Valve failure near market road",
		Priority:    "critical",
		PinCode:     "560001",
	})

	if msg["username"] != "bot" {
		t.Fatalf("expected username to be preserved, got %v", msg["username"])
	}
	if msg["channel"] != "#alerts" {
		t.Fatalf("expected channel to be set, got %v", msg["channel"])
	}

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}
	if !containsAll(
		text,
		[]string{"Municipal alert", "a-123", "Water supply disruption", "critical", "560001", "Valve failure"},
	) {
		t.Fatalf("message text missing fields: %s", text)
	}
}

func TestFormatMessageAlertLink(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL:     "https://hooks.slack.com/services/test",
		AlertURLPrefix: "https://app.janasethu.local/alerts",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.AlertPayload{
		AlertID: "alert-123",
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}

	expected := "<https://app.janasethu.local/alerts/alert-123|alert-123>"
	if !strings.Contains(text, expected) {
		t.Fatalf("expected alert link %q in text: %s", expected, text)
	}
}

func TestFormatMessageEscapesTitle(t *testing.T) {
	client, err := NewClient(Config{
		WebhookURL: "https://hooks.slack.com/services/test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := client.formatMessage(notify.AlertPayload{
		AlertID: "alert-123",
		Title:   "roadwork & <detour>",
	})

	text, ok := msg["text"].(string)
	if !ok {
		t.Fatalf("expected text field")
	}

	if !strings.Contains(text, "roadwork &amp; &lt;detour&gt;") {
		t.Fatalf("expected escaped title, got: %s", text)
	}
}

func TestFormatAlertValuePermutations(t *testing.T) {
	tcs := []struct {
		name    string
		alertID string
		title   string
		prefix  string
		want    string
	}{
		{
			name:    "id with link",
			alertID: "alert-1",
			prefix:  "https://app.example/alerts",
			want:    "<https://app.example/alerts/alert-1|alert-1>",
		},
		{
			name:   "title only",
			title:  "Power cut",
			prefix: "https://app.example/alerts",
			want:   "Power cut",
		},
		{
			name:    "id and title with link",
			alertID: "alert-2",
			title:   "Power cut",
			prefix:  "https://app.example/alerts",
			want:    "<https://app.example/alerts/alert-2|Power cut> (alert-2)",
		},
		{
			name:    "id and title without link",
			alertID: "alert-3",
			title:   "Power cut",
			prefix:  "not a url",
			want:    "Power cut (alert-3)",
		},
		{
			name:   "empty inputs",
			want:   "",
			prefix: "https://app.example/alerts",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			client, err := NewClient(Config{
				WebhookURL:     "https://hooks.slack.com/services/test",
				AlertURLPrefix: tc.prefix,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := client.formatAlertValue(tc.alertID, tc.title)
			if got != tc.want {
				t.Fatalf("formatAlertValue(%q,%q) = %q, want %q", tc.alertID, tc.title, got, tc.want)
			}
		})
	}
}

func containsAll(text string, substrs []string) bool {
	for _, s := range substrs {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}
