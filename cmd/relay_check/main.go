package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"bigfive-relay/internal/config"
	"bigfive-relay/internal/predictor"
	"bigfive-relay/internal/service"
)

type Scenario struct {
	Name    string
	Payload string
}

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	timeout := cfg.UpstreamTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := predictor.NewHTTPClient(cfg.UpstreamURL, timeout, logger)
	svc := service.NewPersonalityService(client, nil, logger)

	scenarios := []Scenario{
		{
			Name:    "Texto libre extrovertido",
			Payload: `{"text":"J'adore sortir avec mes amis et rencontrer de nouvelles personnes chaque week-end."}`,
		},
		{
			Name:    "Texto libre ansioso",
			Payload: `{"text":"Je m'inquiète souvent pour des détails et j'ai du mal à dormir avant un examen."}`,
		},
		{
			Name:    "Texto muy corto",
			Payload: `{"text":"ok"}`,
		},
		{
			Name:    "Payload vacio",
			Payload: `{}`,
		},
	}

	fmt.Printf("Upstream: %s\n", cfg.UpstreamURL)
	fmt.Println(strings.Repeat("=", 60))

	failed := 0
	for _, sc := range scenarios {
		start := time.Now()
		prediction, err := svc.Predict(ctx, []byte(sc.Payload))
		elapsed := time.Since(start).Round(time.Millisecond)

		switch {
		case err != nil:
			failed++
			fmt.Printf("[FAIL] %-28s %8s  error: %v\n", sc.Name, elapsed, err)
		case !prediction.Complete():
			failed++
			fmt.Printf("[FAIL] %-28s %8s  missing: %s\n", sc.Name, elapsed, strings.Join(prediction.Missing(), ", "))
		default:
			fmt.Printf("[ OK ] %-28s %8s  E=%s S=%s A=%s C=%s O=%s\n", sc.Name, elapsed,
				prediction.Extraversion, prediction.StabiliteEmotionnelle, prediction.Agreabilite,
				prediction.Conscience, prediction.Ouverture)
		}
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("%d/%d scenarios ok\n", len(scenarios)-failed, len(scenarios))
	if failed > 0 {
		os.Exit(1)
	}
}
