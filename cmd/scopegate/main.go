// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/scopegate/ai"
	"github.com/poiesic/scopegate/ai/ollama"
	"github.com/poiesic/scopegate/ai/openai"
	"github.com/poiesic/scopegate/analysis"
	"github.com/poiesic/scopegate/backend/qdrant"
	"github.com/poiesic/scopegate/core"
	"github.com/poiesic/scopegate/docstore"
	"github.com/poiesic/scopegate/gateway"
	"github.com/poiesic/scopegate/seed"
	"github.com/poiesic/scopegate/server"
)

func main() {
	app := &cli.App{
		Name:  "scopegate",
		Usage: "Role-scoped search gateway over a vector backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "HTTP listen address",
						Value:   ":3000",
					},
					&cli.StringFlag{
						Name:     "qdrant-url",
						Usage:    "Vector backend URL",
						EnvVars:  []string{"QDRANT_URL"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the document store directory",
						Value:   "scopegate-db",
					},
				}, append(credentialFlags(), aiFlags()...)...),
			},
			{
				Name:   "seed",
				Usage:  "Embed and upsert the source document files",
				Action: seedCommand,
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "qdrant-url",
						Usage:    "Vector backend URL",
						EnvVars:  []string{"QDRANT_URL"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "admin-key",
						Usage:   "Backend API key allowed to create collections and upsert",
						EnvVars: []string{"HEAD_OF_SUPPORT_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "contracts",
						Usage: "Path to the contracts JSON file",
						Value: "data/contracts.txt",
					},
					&cli.StringFlag{
						Name:  "tickets",
						Usage: "Path to the tickets JSON file",
						Value: "data/tickets.txt",
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the document store directory",
						Value:   "scopegate-db",
					},
				}, aiFlags()...),
			},
			{
				Name:   "create-collections",
				Usage:  "Create the backend collections if they do not exist",
				Action: createCollectionsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "qdrant-url",
						Usage:    "Vector backend URL",
						EnvVars:  []string{"QDRANT_URL"},
						Required: true,
					},
					&cli.StringFlag{
						Name:    "admin-key",
						Usage:   "Backend API key allowed to create collections",
						EnvVars: []string{"HEAD_OF_SUPPORT_API_KEY"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// credentialFlags builds one API-key flag per role, each backed by the
// role's environment variable (for example HEAD_OF_SUPPORT_API_KEY).
func credentialFlags() []cli.Flag {
	flags := make([]cli.Flag, 0, len(core.Roles))
	for _, role := range core.Roles {
		flags = append(flags, &cli.StringFlag{
			Name:    credentialFlagName(role),
			Usage:   fmt.Sprintf("Backend API key for %s", role),
			EnvVars: []string{string(role) + "_API_KEY"},
		})
	}
	return flags
}

func credentialFlagName(role core.Role) string {
	return strings.ToLower(strings.ReplaceAll(string(role), "_", "-")) + "-key"
}

func credentials(c *cli.Context) map[core.Role]string {
	creds := make(map[core.Role]string, len(core.Roles))
	for _, role := range core.Roles {
		if key := c.String(credentialFlagName(role)); key != "" {
			creds[role] = key
		}
	}
	return creds
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-token",
			Usage:   "Embedding service API token",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:    "completion-host",
			Usage:   "Completion service host URL",
			EnvVars: []string{"OLLAMA_BASE_URL"},
			Value:   "http://localhost:11434",
		},
		&cli.StringFlag{
			Name:    "completion-model",
			Usage:   "Completion model name",
			EnvVars: []string{"OLLAMA_MODEL"},
			Value:   "deepseek-coder:6.7b",
		},
	}
}

func aiConfig(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingToken(c.String("embedding-token")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionHost(c.String("completion-host")),
		ai.WithCompletionModel(c.String("completion-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := gateway.NewRegistry(gateway.RegistryConfig{
		Endpoint:    c.String("qdrant-url"),
		Credentials: credentials(c),
	}, qdrant.NewStore)
	if err != nil {
		return fmt.Errorf("failed to create credential registry: %w", err)
	}
	defer registry.Close()

	gw, err := gateway.New(registry, core.DefaultCapabilities())
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}

	config, err := aiConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	completer, err := ollama.NewCompleter(config)
	if err != nil {
		return fmt.Errorf("failed to create completer: %w", err)
	}

	analyzer, err := analysis.NewAnalyzer(completer, core.DefaultCapabilities())
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	meta, err := analysis.NewMetaAnalyzer(completer)
	if err != nil {
		return fmt.Errorf("failed to create meta-analyzer: %w", err)
	}

	docs, err := docstore.Open(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer docs.Close()

	srv, err := server.New(gw, analyzer, meta, embedder, docs)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	return srv.ListenAndServe(ctx, c.String("addr"))
}

func seedCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := qdrant.NewStore(c.String("qdrant-url"), c.String("admin-key"))
	if err != nil {
		return fmt.Errorf("failed to connect to backend: %w", err)
	}
	defer store.Close()

	config, err := aiConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(config)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	docs, err := docstore.Open(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer docs.Close()

	seeder, err := seed.NewSeeder(store, embedder, seed.WithDocumentStore(docs))
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}

	if err := seeder.CreateCollections(ctx); err != nil {
		return err
	}

	files := map[core.Collection]string{
		core.CollectionContracts: c.String("contracts"),
		core.CollectionTickets:   c.String("tickets"),
	}
	for _, collection := range core.Collections {
		n, err := seeder.SeedFile(ctx, collection, files[collection])
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Seeded %d %s\n", n, collection)
	}

	return nil
}

func createCollectionsCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := qdrant.NewStore(c.String("qdrant-url"), c.String("admin-key"))
	if err != nil {
		return fmt.Errorf("failed to connect to backend: %w", err)
	}
	defer store.Close()

	// Embedding is not needed to create collections; a noop embedder keeps
	// the seeder constructor satisfied.
	seeder, err := seed.NewSeeder(store, noopEmbedder{})
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}

	return seeder.CreateCollections(ctx)
}

// noopEmbedder satisfies ai.Embedder for commands that never embed.
type noopEmbedder struct{}

func (noopEmbedder) EmbedText(context.Context, string) ([]float32, error) {
	return nil, fmt.Errorf("embedding not configured")
}

func (noopEmbedder) EmbedTexts(context.Context, []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedding not configured")
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
