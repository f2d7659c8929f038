package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tleeds1/NotionMCP/internal/config"
	"github.com/tleeds1/NotionMCP/internal/logger"
	"github.com/tleeds1/NotionMCP/internal/mcpserver"
	"github.com/tleeds1/NotionMCP/internal/notion"
	"github.com/tleeds1/NotionMCP/internal/sync"
)

func main() {
	// Load configuration from .env and the environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	// Initialize Notion client and synchronizer
	notionClient := notion.New(cfg)
	syncer := sync.New(notionClient)

	// Initialize MCP server
	server, err := mcpserver.NewServer(&mcpserver.Ports{
		Pages: notionClient,
		Sync:  syncer,
	})
	if err != nil {
		logger.Error("Failed to initialize MCP server", err, nil)
		os.Exit(1)
	}

	logger.Info("MCP server initialized", map[string]interface{}{
		"version":        mcpserver.Version,
		"parent_page_id": cfg.ParentPageID,
	})

	// Serve over stdio until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server stopped", err, nil)
		os.Exit(1)
	}

	logger.Info("MCP server stopped", nil)
}
