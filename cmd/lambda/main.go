package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"marketplace-event-extractor/internal/config"
	"marketplace-event-extractor/internal/services"
)

// ExtractRequest is the POST body for an extraction request.
type ExtractRequest struct {
	URL string `json:"url"`
}

var extractor *services.Extractor

func init() {
	cfg := config.Parse()
	extractor = services.NewExtractor(cfg)
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Set CORS headers
	headers := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
		"Content-Type":                 "application/json",
	}

	// Handle preflight OPTIONS request
	if request.HTTPMethod == "OPTIONS" {
		return events.APIGatewayProxyResponse{
			StatusCode: 200,
			Headers:    headers,
			Body:       "",
		}, nil
	}

	log.Printf("Extract API request: %s %s", request.HTTPMethod, request.Path)

	var body interface{}

	switch request.HTTPMethod {
	case "GET":
		// Capability descriptor for discovery/documentation.
		body = extractor.Capabilities()

	case "POST":
		var req ExtractRequest
		if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
			log.Printf("Invalid request body: %v", err)
			// Contract: even unusable input yields a 200 draft so the
			// form pre-fill never has to special-case failure.
			req.URL = ""
		}
		body = extractor.Extract(ctx, req.URL)

	default:
		body = map[string]string{"error": "method not allowed"}
		bodyJSON, _ := json.Marshal(body)
		return events.APIGatewayProxyResponse{
			StatusCode: 405,
			Headers:    headers,
			Body:       string(bodyJSON),
		}, nil
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		log.Printf("Error marshaling response body: %v", err)
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Headers:    headers,
			Body:       `{"error":"Internal server error"}`,
		}, nil
	}

	return events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    headers,
		Body:       string(bodyJSON),
	}, nil
}

func main() {
	lambda.Start(handleRequest)
}
