package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"marketplace-event-extractor/internal/config"
	"marketplace-event-extractor/internal/services"
)

// Manual one-shot runner: extract a single marketplace URL and print the
// resulting draft as indented JSON.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <marketplace-url>\n", os.Args[0])
		os.Exit(1)
	}

	cfg := config.Parse()
	extractor := services.NewExtractor(cfg)

	draft := extractor.Extract(context.Background(), os.Args[1])

	output, err := json.MarshalIndent(draft, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal draft: %v", err)
	}

	fmt.Println(string(output))

	if draft.Error != "" {
		fmt.Fprintf(os.Stderr, "extraction degraded: %s\n", draft.Error)
	}
}
