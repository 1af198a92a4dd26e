package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/raywall/secure-string-parameter/internal/config"
	"github.com/raywall/secure-string-parameter/internal/logging"
	"github.com/raywall/secure-string-parameter/provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	h := provider.New(cfg, provider.WithLogger(logging.New("secure-string-parameter", cfg)))
	lambda.Start(h.Handle)
}
