package mcpserver

import (
	"context"

	"github.com/tleeds1/NotionMCP/internal/notion"
	"github.com/tleeds1/NotionMCP/internal/sync"
)

// PageService is the page-level surface the tools need.
// *notion.Client implements it.
type PageService interface {
	CreatePage(ctx context.Context, parentID, title string) (*notion.Page, error)
	GetPage(ctx context.Context, pageID string) (*notion.Page, error)
	FindPageByTitle(ctx context.Context, title string) (*notion.Page, bool, error)
	SearchPages(ctx context.Context, query string) ([]notion.Page, error)
	PageContent(ctx context.Context, pageID string) (string, error)
}

// Synchronizer applies markdown content to a page. *sync.Syncer implements it.
type Synchronizer interface {
	Sync(ctx context.Context, pageID, text string, mode sync.Mode) (*sync.Result, error)
}

// Ports aggregates the driven interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	Pages PageService
	Sync  Synchronizer
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Pages == nil {
		return ErrMissingPageService
	}
	if p.Sync == nil {
		return ErrMissingSynchronizer
	}
	return nil
}
