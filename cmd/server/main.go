// Command server runs the visa application backend: the REST API, health
// probes and the metrics endpoint.
package main

import (
	"context"
	"log"

	"github.com/visago/visago-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application failed: %v", err)
	}
}
