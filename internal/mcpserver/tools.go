package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tleeds1/NotionMCP/internal/logger"
	"github.com/tleeds1/NotionMCP/internal/notion"
	"github.com/tleeds1/NotionMCP/internal/sync"
)

// CreatePageInput is the input schema for the create_notion_page tool.
type CreatePageInput struct {
	Title   string `json:"title" jsonschema:"the title of the new page"`
	Content string `json:"content" jsonschema:"markdown content for the page body"`
}

// WriteInput is the input schema for the write_to_notion tool.
type WriteInput struct {
	Title    string `json:"title" jsonschema:"the title of the page to write"`
	Content  string `json:"content" jsonschema:"markdown content to write"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"optional parent page id, defaults to the configured parent"`
	Mode     string `json:"mode,omitempty" jsonschema:"replace (default) to replace all content, append to add to existing content"`
}

// AppendInput is the input schema for the append_to_notion tool.
type AppendInput struct {
	Title    string `json:"title" jsonschema:"the title of the page to append to"`
	Content  string `json:"content" jsonschema:"markdown content to append"`
	ParentID string `json:"parent_id,omitempty" jsonschema:"optional parent page id used if the page has to be created"`
}

// WriteOutput is the result of the page-writing tools.
type WriteOutput struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	PageID        string `json:"page_id"`
	PageURL       string `json:"page_url"`
	CreatedBlocks int    `json:"created_blocks"`
	DeletedBlocks int    `json:"deleted_blocks,omitempty"`
}

// SearchInput is the input schema for the search_notion_pages tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to search page titles and content for"`
}

// SearchOutput is the output schema for the search_notion_pages tool.
type SearchOutput struct {
	Query        string     `json:"query"`
	TotalResults int        `json:"total_results"`
	Pages        []PageInfo `json:"pages"`
}

// PageInfo is one search result.
type PageInfo struct {
	ID             string `json:"id"`
	URL            string `json:"url"`
	Title          string `json:"title"`
	CreatedTime    string `json:"created_time,omitempty"`
	LastEditedTime string `json:"last_edited_time,omitempty"`
}

// GetContentInput is the input schema for the get_notion_page_content tool.
type GetContentInput struct {
	PageID string `json:"page_id" jsonschema:"the id of the page to read"`
}

// GetContentOutput is the output schema for the get_notion_page_content tool.
type GetContentOutput struct {
	PageID         string `json:"page_id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Content        string `json:"content"`
	CreatedTime    string `json:"created_time,omitempty"`
	LastEditedTime string `json:"last_edited_time,omitempty"`
}

// TestConnectionOutput is the output schema for the test_connection tool.
type TestConnectionOutput struct {
	Message string `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_notion_page",
		Description: "Create a new Notion page with markdown content under the configured parent page",
	}, s.handleCreatePage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "write_to_notion",
		Description: "Write markdown to a Notion page by title, creating it if missing; mode=replace swaps the whole page body, mode=append adds to it",
	}, s.handleWrite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "append_to_notion",
		Description: "Append markdown to a Notion page by title, creating it if missing",
	}, s.handleAppend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_notion_pages",
		Description: "Search for Notion pages by title or content",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_notion_page_content",
		Description: "Read a Notion page by id and return its content as markdown",
	}, s.handleGetContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "test_connection",
		Description: "Verify the MCP connection is working",
	}, s.handleTestConnection)
}

// handleCreatePage creates a fresh page and fills it with the content.
func (s *Server) handleCreatePage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreatePageInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	logger.Debug("Tool called: create_notion_page", map[string]interface{}{
		"title": input.Title,
	})

	page, err := s.ports.Pages.CreatePage(ctx, "", input.Title)
	if err != nil {
		return nil, WriteOutput{}, err
	}

	res, err := s.ports.Sync.Sync(ctx, page.ID, input.Content, sync.ModeAppend)
	if err != nil {
		return nil, WriteOutput{}, syncFailure(page.ID, res, err)
	}

	return nil, writeOutput("created", fmt.Sprintf("Created new Notion page %q", input.Title), page, res), nil
}

// handleWrite writes content to a page by title, creating it when missing.
func (s *Server) handleWrite(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input WriteInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	mode, err := sync.ParseMode(input.Mode)
	if err != nil {
		return nil, WriteOutput{}, err
	}

	logger.Debug("Tool called: write_to_notion", map[string]interface{}{
		"title": input.Title,
		"mode":  string(mode),
	})

	return s.writePage(ctx, input.Title, input.Content, input.ParentID, mode)
}

// handleAppend appends content to a page by title, creating it when missing.
func (s *Server) handleAppend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AppendInput,
) (*mcp.CallToolResult, WriteOutput, error) {
	logger.Debug("Tool called: append_to_notion", map[string]interface{}{
		"title": input.Title,
	})

	return s.writePage(ctx, input.Title, input.Content, input.ParentID, sync.ModeAppend)
}

func (s *Server) writePage(ctx context.Context, title, content, parentID string, mode sync.Mode) (*mcp.CallToolResult, WriteOutput, error) {
	page, found, err := s.ports.Pages.FindPageByTitle(ctx, title)
	if err != nil {
		return nil, WriteOutput{}, err
	}

	if !found {
		page, err = s.ports.Pages.CreatePage(ctx, parentID, title)
		if err != nil {
			return nil, WriteOutput{}, err
		}
		res, err := s.ports.Sync.Sync(ctx, page.ID, content, sync.ModeAppend)
		if err != nil {
			return nil, WriteOutput{}, syncFailure(page.ID, res, err)
		}
		return nil, writeOutput("created", fmt.Sprintf("Created new Notion page %q", title), page, res), nil
	}

	res, err := s.ports.Sync.Sync(ctx, page.ID, content, mode)
	if err != nil {
		return nil, WriteOutput{}, syncFailure(page.ID, res, err)
	}

	status := "appended"
	message := fmt.Sprintf("Appended content to existing Notion page %q", title)
	if mode == sync.ModeReplace {
		status = "replaced"
		message = fmt.Sprintf("Replaced content of existing Notion page %q", title)
	}
	return nil, writeOutput(status, message, page, res), nil
}

// handleSearch searches the workspace for pages.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	logger.Debug("Tool called: search_notion_pages", map[string]interface{}{
		"query": input.Query,
	})

	pages, err := s.ports.Pages.SearchPages(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Query:        input.Query,
		TotalResults: len(pages),
		Pages:        make([]PageInfo, len(pages)),
	}
	for i := range pages {
		output.Pages[i] = PageInfo{
			ID:             pages[i].ID,
			URL:            pageURL(&pages[i]),
			Title:          pages[i].Title,
			CreatedTime:    formatTime(pages[i].CreatedTime),
			LastEditedTime: formatTime(pages[i].LastEditedTime),
		}
	}

	return nil, output, nil
}

// handleGetContent reads a page back as markdown.
func (s *Server) handleGetContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetContentInput,
) (*mcp.CallToolResult, GetContentOutput, error) {
	logger.Debug("Tool called: get_notion_page_content", map[string]interface{}{
		"page_id": input.PageID,
	})

	page, err := s.ports.Pages.GetPage(ctx, input.PageID)
	if err != nil {
		return nil, GetContentOutput{}, err
	}

	content, err := s.ports.Pages.PageContent(ctx, input.PageID)
	if err != nil {
		return nil, GetContentOutput{}, err
	}

	return nil, GetContentOutput{
		PageID:         page.ID,
		Title:          page.Title,
		URL:            pageURL(page),
		Content:        content,
		CreatedTime:    formatTime(page.CreatedTime),
		LastEditedTime: formatTime(page.LastEditedTime),
	}, nil
}

// handleTestConnection confirms tool calls reach the server.
func (s *Server) handleTestConnection(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, TestConnectionOutput, error) {
	return nil, TestConnectionOutput{
		Message: "MCP connection is working! Server is responding to tool calls.",
	}, nil
}

func writeOutput(status, message string, page *notion.Page, res *sync.Result) WriteOutput {
	return WriteOutput{
		Status:        status,
		Message:       message,
		PageID:        page.ID,
		PageURL:       pageURL(page),
		CreatedBlocks: len(res.CreatedBlockIDs),
		DeletedBlocks: len(res.DeletedBlockIDs),
	}
}

// syncFailure reports a sync error along with the remote side effects that
// already committed, so the caller never sees a bare failure.
func syncFailure(pageID string, res *sync.Result, err error) error {
	if res == nil {
		return err
	}
	return fmt.Errorf("page %s: %d blocks created and %d deleted before failure: %w",
		pageID, len(res.CreatedBlockIDs), len(res.DeletedBlockIDs), err)
}

func pageURL(page *notion.Page) string {
	if page.URL != "" {
		return page.URL
	}
	return "https://notion.so/" + strings.ReplaceAll(page.ID, "-", "")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
