package mcpserver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tleeds1/NotionMCP/internal/notion"
	"github.com/tleeds1/NotionMCP/internal/sync"
)

func newTestServer(t *testing.T, pages *mockPageService, syncer *mockSynchronizer) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Pages: pages, Sync: syncer})
	require.NoError(t, err)
	return server
}

func TestNewServerValidation(t *testing.T) {
	t.Run("missing page service", func(t *testing.T) {
		_, err := NewServer(&Ports{Sync: &mockSynchronizer{}})
		assert.ErrorIs(t, err, ErrMissingPageService)
	})

	t.Run("missing synchronizer", func(t *testing.T) {
		_, err := NewServer(&Ports{Pages: &mockPageService{}})
		assert.ErrorIs(t, err, ErrMissingSynchronizer)
	})
}

func TestHandleCreatePage(t *testing.T) {
	ctx := context.Background()

	pages := &mockPageService{}
	syncer := &mockSynchronizer{res: &sync.Result{
		CreatedBlockIDs: []string{"b1", "b2"},
		FailedBatch:     -1,
	}}
	server := newTestServer(t, pages, syncer)

	_, out, err := server.handleCreatePage(ctx, nil, CreatePageInput{
		Title:   "Report",
		Content: "# Report\n\nbody",
	})

	require.NoError(t, err)
	assert.Equal(t, "created", out.Status)
	assert.Equal(t, "new_page", out.PageID)
	assert.Equal(t, 2, out.CreatedBlocks)
	assert.Equal(t, sync.ModeAppend, syncer.mode)
	assert.Equal(t, "# Report\n\nbody", syncer.text)
}

func TestHandleWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces existing page by default", func(t *testing.T) {
		pages := &mockPageService{pages: map[string]*notion.Page{
			"Notes": {ID: "page_1", Title: "Notes"},
		}}
		syncer := &mockSynchronizer{res: &sync.Result{
			CreatedBlockIDs: []string{"b1"},
			DeletedBlockIDs: []string{"old1", "old2"},
			FailedBatch:     -1,
		}}
		server := newTestServer(t, pages, syncer)

		_, out, err := server.handleWrite(ctx, nil, WriteInput{Title: "Notes", Content: "fresh"})

		require.NoError(t, err)
		assert.Equal(t, "replaced", out.Status)
		assert.Equal(t, "page_1", syncer.pageID)
		assert.Equal(t, sync.ModeReplace, syncer.mode)
		assert.Equal(t, 1, out.CreatedBlocks)
		assert.Equal(t, 2, out.DeletedBlocks)
		assert.Zero(t, pages.createCalls)
	})

	t.Run("appends when asked", func(t *testing.T) {
		pages := &mockPageService{pages: map[string]*notion.Page{
			"Notes": {ID: "page_1", Title: "Notes"},
		}}
		syncer := &mockSynchronizer{}
		server := newTestServer(t, pages, syncer)

		_, out, err := server.handleWrite(ctx, nil, WriteInput{Title: "Notes", Content: "more", Mode: "append"})

		require.NoError(t, err)
		assert.Equal(t, "appended", out.Status)
		assert.Equal(t, sync.ModeAppend, syncer.mode)
	})

	t.Run("creates missing page", func(t *testing.T) {
		pages := &mockPageService{}
		syncer := &mockSynchronizer{}
		server := newTestServer(t, pages, syncer)

		_, out, err := server.handleWrite(ctx, nil, WriteInput{
			Title:    "Brand New",
			Content:  "hello",
			ParentID: "custom_parent",
		})

		require.NoError(t, err)
		assert.Equal(t, "created", out.Status)
		assert.Equal(t, 1, pages.createCalls)
		assert.Equal(t, "custom_parent", pages.createdWith.parentID)
		// New pages are filled by appending, whatever the requested mode.
		assert.Equal(t, sync.ModeAppend, syncer.mode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		server := newTestServer(t, &mockPageService{}, &mockSynchronizer{})

		_, _, err := server.handleWrite(ctx, nil, WriteInput{Title: "X", Content: "y", Mode: "merge"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown sync mode")
	})

	t.Run("reports partial side effects on sync failure", func(t *testing.T) {
		pages := &mockPageService{pages: map[string]*notion.Page{
			"Notes": {ID: "page_1", Title: "Notes"},
		}}
		syncer := &mockSynchronizer{
			res: &sync.Result{
				CreatedBlockIDs: []string{"b1", "b2"},
				DeletedBlockIDs: []string{"old1"},
				FailedBatch:     1,
			},
			err: errors.New("rate limited"),
		}
		server := newTestServer(t, pages, syncer)

		_, _, err := server.handleWrite(ctx, nil, WriteInput{Title: "Notes", Content: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "2 blocks created")
		assert.Contains(t, err.Error(), "1 deleted")
		assert.Contains(t, err.Error(), "rate limited")
	})
}

func TestHandleAppend(t *testing.T) {
	ctx := context.Background()

	pages := &mockPageService{pages: map[string]*notion.Page{
		"Log": {ID: "page_1", Title: "Log"},
	}}
	syncer := &mockSynchronizer{}
	server := newTestServer(t, pages, syncer)

	_, out, err := server.handleAppend(ctx, nil, AppendInput{Title: "Log", Content: "entry"})

	require.NoError(t, err)
	assert.Equal(t, "appended", out.Status)
	assert.Equal(t, sync.ModeAppend, syncer.mode)
}

func TestHandleSearch(t *testing.T) {
	ctx := context.Background()

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pages := &mockPageService{searchHits: []notion.Page{
		{ID: "page_1", Title: "First", URL: "https://notion.so/page_1", CreatedTime: created},
		{ID: "page_2", Title: "Second"},
	}}
	server := newTestServer(t, pages, &mockSynchronizer{})

	_, out, err := server.handleSearch(ctx, nil, SearchInput{Query: "fir"})

	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalResults)
	assert.Equal(t, "First", out.Pages[0].Title)
	assert.Equal(t, "2024-05-01T12:00:00Z", out.Pages[0].CreatedTime)
	// Pages without a URL get the canonical fallback.
	assert.Equal(t, "https://notion.so/page_2", out.Pages[1].URL)
}

func TestHandleGetContent(t *testing.T) {
	ctx := context.Background()

	pages := &mockPageService{content: "# Fetched\n\nbody"}
	server := newTestServer(t, pages, &mockSynchronizer{})

	_, out, err := server.handleGetContent(ctx, nil, GetContentInput{PageID: "page_1"})

	require.NoError(t, err)
	assert.Equal(t, "page_1", out.PageID)
	assert.Equal(t, "Fetched", out.Title)
	assert.Equal(t, "# Fetched\n\nbody", out.Content)
}

func TestHandleTestConnection(t *testing.T) {
	server := newTestServer(t, &mockPageService{}, &mockSynchronizer{})

	_, out, err := server.handleTestConnection(context.Background(), nil, struct{}{})

	require.NoError(t, err)
	assert.Contains(t, out.Message, "MCP connection is working")
}
