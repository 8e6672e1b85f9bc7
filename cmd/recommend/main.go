package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"agrirec/internal/config"
	"agrirec/internal/llm"
	"agrirec/internal/recommend"
)

func main() {
	profilePath := flag.String("profile", "", "path to the farmer profile JSON file")
	catalogPath := flag.String("catalog", "", "path to the subsidy catalog JSON file")
	outPath := flag.String("out", "", "write the recommendation bundle here (default: stdout)")
	verbose := flag.Bool("v", false, "log each reasoning-service request")
	flag.Parse()
	if *profilePath == "" || *catalogPath == "" {
		log.Fatal("--profile and --catalog are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	client, err := buildClient(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()
	if *verbose {
		client = llm.Wrap(client, llm.WithLogging(logger))
	}

	var profile recommend.FarmerProfile
	if err := readJSON(*profilePath, &profile); err != nil {
		log.Fatal(err)
	}
	var catalog []recommend.SubsidyRecord
	if err := readJSON(*catalogPath, &catalog); err != nil {
		log.Fatal(err)
	}

	pipe, err := recommend.New(client, logger)
	if err != nil {
		log.Fatal(err)
	}
	bundle, err := pipe.Recommend(ctx, profile, catalog)
	if err != nil {
		log.Fatal(err)
	}

	b, _ := json.MarshalIndent(bundle, "", "  ")
	if *outPath == "" {
		fmt.Println(string(b))
	} else if err := os.WriteFile(*outPath, b, 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, recommend.Summarize(profile, bundle))
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func buildClient(ctx context.Context, cfg *config.Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return llm.NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	default:
		return llm.NewGroqClient(cfg.APIKey, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout)
	}
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
