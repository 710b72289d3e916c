package main

import (
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/pepo-gtm/pepo/config"
	"github.com/pepo-gtm/pepo/internal/agent/core"
	"github.com/pepo-gtm/pepo/internal/agent/telemetry"
	"github.com/pepo-gtm/pepo/internal/profile"
	"github.com/pepo-gtm/pepo/tools"
	"github.com/pepo-gtm/pepo/tools/research"
	"github.com/pepo-gtm/pepo/tools/web_search"
)

// app bundles the wired dependencies shared by the CLI commands.
type app struct {
	cfg      *config.Config
	llm      core.LLMProvider
	agent    *core.Agent
	tele     *telemetry.Telemetry
	profiles *profile.Store
	planner  *profile.DailyPlanner
	rdb      *redis.Client
}

// buildApp wires the agent stack from config. A missing LLM key is fatal; a
// missing search key only degrades the search tools.
func buildApp(cfg *config.Config) (*app, error) {
	logger := log.New(log.Writer(), "[PEPO] ", log.LstdFlags)

	llm, err := core.NewLLMProvider(cfg.LLM, cfg.Agent.Model)
	if err != nil {
		return nil, fmt.Errorf("no LLM API key found: %w (set ANTHROPIC_API_KEY or OPENAI_API_KEY)", err)
	}

	var rdb *redis.Client
	if cfg.Storage.Redis.Configured() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr(),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
	}

	searcher := buildSearcher(cfg, rdb, logger)
	if searcher == nil {
		logger.Printf("warning: no search API key found, web search will be limited (free key at https://serper.dev)")
	}

	var researchClient *research.Client
	if key := firstNonEmpty(cfg.Research.APIKey, os.Getenv("PERPLEXITY_API_KEY")); key != "" {
		httpc := core.NewHTTPClient(cfg.Research.Timeout, 1, 0)
		researchClient = research.NewClient(key, cfg.Research.BaseURL, cfg.Research.Model, httpc)
	}

	registry := tools.NewRegistry(tools.Deps{
		Searcher:   searcher,
		Research:   researchClient,
		MaxResults: cfg.Search.MaxResults,
	})

	tele := telemetry.NewTelemetry(cfg.Telemetry)
	agent := core.NewAgent(cfg, llm, registry, tele)
	profiles := profile.NewStore(cfg.General.DataDir)
	planner := profile.NewDailyPlanner(core.MeterLLM(llm, tele), cfg.Agent.Model)

	return &app{
		cfg:      cfg,
		llm:      llm,
		agent:    agent,
		tele:     tele,
		profiles: profiles,
		planner:  planner,
		rdb:      rdb,
	}, nil
}

func buildSearcher(cfg *config.Config, rdb *redis.Client, logger *log.Logger) web_search.WebSearcher {
	serperKey := firstNonEmpty(cfg.Search.SerperAPIKey, os.Getenv("SERPER_API_KEY"))
	braveKey := firstNonEmpty(cfg.Search.BraveAPIKey, os.Getenv("BRAVE_API_KEY"))

	provider := web_search.Provider(cfg.Search.Provider)
	key := serperKey
	if provider == web_search.BraveProvider {
		key = braveKey
	} else if serperKey == "" && braveKey != "" {
		provider, key = web_search.BraveProvider, braveKey
	}
	if key == "" {
		return nil
	}

	searcher, err := web_search.NewWebSearcher(provider, key)
	if err != nil {
		logger.Printf("warning: %v", err)
		return nil
	}
	if rdb != nil && cfg.Search.CacheTTL > 0 {
		return web_search.NewCachedSearcher(searcher, rdb, cfg.Search.CacheTTL)
	}
	return searcher
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
