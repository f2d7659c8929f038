// Package notion is the remote page client: a thin wrapper over the Notion
// HTTP API exposing the page and block operations the synchronizer and the
// MCP tools need.
package notion

import (
	"context"
	"strings"
	"time"

	"github.com/jomei/notionapi"
	"github.com/tleeds1/NotionMCP/internal/blocks"
	"github.com/tleeds1/NotionMCP/internal/config"
	"github.com/tleeds1/NotionMCP/internal/logger"
)

// Page is the caller-facing view of a Notion page.
type Page struct {
	ID             string
	URL            string
	Title          string
	CreatedTime    time.Time
	LastEditedTime time.Time
}

// Client wraps the Notion API client.
type Client struct {
	client     NotionClient
	parentID   notionapi.PageID
	parentType notionapi.ParentType
}

// New creates a new Notion client from an explicit configuration.
func New(cfg *config.Config) *Client {
	notionClient := notionapi.NewClient(notionapi.Token(cfg.APIKey))
	return &Client{
		client:     newNotionClientAdapter(notionClient),
		parentID:   notionapi.PageID(cfg.ParentPageID),
		parentType: "page_id",
	}
}

// CreatePage creates a new empty page with the given title. An empty
// parentID falls back to the configured default parent. Content is added
// afterwards through the synchronizer so it goes through the same
// conversion and batching path as appends.
func (c *Client) CreatePage(ctx context.Context, parentID, title string) (*Page, error) {
	logger.Debug("Creating Notion page", map[string]interface{}{
		"title": title,
	})

	parent := notionapi.Parent{Type: c.parentType, PageID: c.parentID}
	if parentID != "" {
		parent.PageID = notionapi.PageID(parentID)
	}

	page, err := c.client.Page().Create(ctx, &notionapi.PageCreateRequest{
		Parent: parent,
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{
						Text: &notionapi.Text{
							Content: title,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, wrapRemote("create", err)
	}

	logger.Info("Created Notion page", map[string]interface{}{
		"title":   title,
		"page_id": page.ID.String(),
	})

	return toPage(page), nil
}

// GetPage fetches a single page by id.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	page, err := c.client.Page().Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return nil, wrapRemote("get", err)
	}
	return toPage(page), nil
}

// SearchPages searches the workspace for pages matching the query.
func (c *Client) SearchPages(ctx context.Context, query string) ([]Page, error) {
	var pages []Page
	cursor := notionapi.Cursor("")
	for {
		resp, err := c.client.Search().Do(ctx, &notionapi.SearchRequest{
			Query:       query,
			StartCursor: cursor,
			Filter: notionapi.SearchFilter{
				Property: "object",
				Value:    "page",
			},
		})
		if err != nil {
			return nil, wrapRemote("search", err)
		}

		for _, result := range resp.Results {
			if page, ok := result.(*notionapi.Page); ok {
				pages = append(pages, *toPage(page))
			}
		}

		if !resp.HasMore || resp.NextCursor == "" {
			return pages, nil
		}
		cursor = resp.NextCursor
	}
}

// FindPageByTitle searches for a page whose title matches exactly,
// case-insensitively. The second return reports whether one was found.
func (c *Client) FindPageByTitle(ctx context.Context, title string) (*Page, bool, error) {
	pages, err := c.SearchPages(ctx, title)
	if err != nil {
		return nil, false, err
	}
	for i := range pages {
		if strings.EqualFold(pages[i].Title, title) {
			return &pages[i], true, nil
		}
	}
	return nil, false, nil
}

// ListChildren fetches one page of child block ids. The returned cursor is
// empty once the listing is exhausted; callers follow it to completion.
func (c *Client) ListChildren(ctx context.Context, pageID, cursor string) ([]string, string, error) {
	resp, err := c.client.Block().GetChildren(ctx, notionapi.BlockID(pageID), &notionapi.Pagination{
		StartCursor: notionapi.Cursor(cursor),
	})
	if err != nil {
		return nil, "", wrapRemote("list", err)
	}

	ids := make([]string, 0, len(resp.Results))
	for _, b := range resp.Results {
		ids = append(ids, b.GetID().String())
	}

	next := ""
	if resp.HasMore {
		next = string(resp.NextCursor)
	}
	return ids, next, nil
}

// ListChildBlocks fetches the full child blocks of a page, following
// pagination to exhaustion.
func (c *Client) ListChildBlocks(ctx context.Context, pageID string) ([]notionapi.Block, error) {
	var out []notionapi.Block
	cursor := ""
	for {
		resp, err := c.client.Block().GetChildren(ctx, notionapi.BlockID(pageID), &notionapi.Pagination{
			StartCursor: notionapi.Cursor(cursor),
		})
		if err != nil {
			return nil, wrapRemote("list", err)
		}
		out = append(out, resp.Results...)
		if !resp.HasMore || string(resp.NextCursor) == "" {
			return out, nil
		}
		cursor = string(resp.NextCursor)
	}
}

// PageContent fetches a page's children and renders them back to markdown.
func (c *Client) PageContent(ctx context.Context, pageID string) (string, error) {
	bs, err := c.ListChildBlocks(ctx, pageID)
	if err != nil {
		return "", err
	}
	return blocks.FromNotion(bs), nil
}

// AppendChildren submits one batch of blocks to the tail of a page and
// returns the created block ids in order.
func (c *Client) AppendChildren(ctx context.Context, pageID string, batch []blocks.Block) ([]string, error) {
	resp, err := c.client.Block().AppendChildren(ctx, notionapi.BlockID(pageID), &notionapi.AppendBlockChildrenRequest{
		Children: blocks.ToNotion(batch),
	})
	if err != nil {
		return nil, wrapRemote("append", err)
	}

	ids := make([]string, 0, len(resp.Results))
	for _, b := range resp.Results {
		ids = append(ids, b.GetID().String())
	}

	logger.Debug("Appended block batch", map[string]interface{}{
		"page_id": pageID,
		"blocks":  len(batch),
	})

	return ids, nil
}

// DeleteBlock deletes a single block. A block that is already gone counts
// as success so replace runs are idempotent.
func (c *Client) DeleteBlock(ctx context.Context, blockID string) error {
	_, err := c.client.Block().Delete(ctx, notionapi.BlockID(blockID))
	if err != nil {
		if isNotFound(err) {
			logger.Debug("Block already deleted", map[string]interface{}{
				"block_id": blockID,
			})
			return nil
		}
		return wrapRemote("delete", err)
	}
	return nil
}

func toPage(p *notionapi.Page) *Page {
	return &Page{
		ID:             p.ID.String(),
		URL:            p.URL,
		Title:          titleFromProperties(p.Properties),
		CreatedTime:    p.CreatedTime,
		LastEditedTime: p.LastEditedTime,
	}
}

// titleFromProperties digs the page title out of whichever property slot
// the API put it in.
func titleFromProperties(props notionapi.Properties) string {
	for _, key := range []string{"title", "Name", "Title"} {
		switch tp := props[key].(type) {
		case *notionapi.TitleProperty:
			return plainTitle(tp.Title)
		case notionapi.TitleProperty:
			return plainTitle(tp.Title)
		}
	}
	return ""
}

func plainTitle(rts []notionapi.RichText) string {
	var sb strings.Builder
	for _, rt := range rts {
		if rt.PlainText != "" {
			sb.WriteString(rt.PlainText)
		} else if rt.Text != nil {
			sb.WriteString(rt.Text.Content)
		}
	}
	return sb.String()
}
