package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aws/aws-lambda-go/events"

	"marketplace-event-extractor/internal/models"
	"marketplace-event-extractor/internal/services"
)

func TestHandleRequest(t *testing.T) {
	t.Run("OptionsPreflightAllowsCORS", func(t *testing.T) {
		resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "OPTIONS",
			Path:       "/api/events/extract",
		})
		if err != nil {
			t.Fatalf("handleRequest failed: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Errorf("Preflight status: got %d", resp.StatusCode)
		}
		if resp.Headers["Access-Control-Allow-Origin"] != "*" {
			t.Errorf("CORS header missing: %v", resp.Headers)
		}
	})

	t.Run("GetReturnsCapabilities", func(t *testing.T) {
		resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "GET",
			Path:       "/api/events/extract",
		})
		if err != nil {
			t.Fatalf("handleRequest failed: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("Status: got %d", resp.StatusCode)
		}

		var caps services.Capabilities
		if err := json.Unmarshal([]byte(resp.Body), &caps); err != nil {
			t.Fatalf("Capabilities body did not decode: %v", err)
		}
		if len(caps.Methods) == 0 || len(caps.SupportedDomains) == 0 {
			t.Errorf("Capabilities: %+v", caps)
		}
	})

	t.Run("PostWithBadJSONStillReturnsDraft", func(t *testing.T) {
		resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "POST",
			Path:       "/api/events/extract",
			Body:       `{"url": `,
		})
		if err != nil {
			t.Fatalf("handleRequest failed: %v", err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("Bad body must still yield 200, got %d", resp.StatusCode)
		}

		var draft models.EventDraft
		if err := json.Unmarshal([]byte(resp.Body), &draft); err != nil {
			t.Fatalf("Draft body did not decode: %v", err)
		}
		if draft.Error == "" {
			t.Error("Unusable input should set the draft error field")
		}
		if vErr := draft.Validate(); vErr != nil {
			t.Errorf("Error draft should still be complete: %v", vErr)
		}
	})

	t.Run("UnsupportedMethodIs405", func(t *testing.T) {
		resp, err := handleRequest(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod: "DELETE",
			Path:       "/api/events/extract",
		})
		if err != nil {
			t.Fatalf("handleRequest failed: %v", err)
		}
		if resp.StatusCode != 405 {
			t.Errorf("Status: got %d, want 405", resp.StatusCode)
		}
	})
}
