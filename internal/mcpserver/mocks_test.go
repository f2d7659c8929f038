package mcpserver

import (
	"context"

	"github.com/tleeds1/NotionMCP/internal/notion"
	"github.com/tleeds1/NotionMCP/internal/sync"
)

// mockPageService is a hand-rolled PageService fake recording calls.
type mockPageService struct {
	pages       map[string]*notion.Page // keyed by title
	searchHits  []notion.Page
	content     string
	err         error
	createdWith struct {
		parentID string
		title    string
	}
	createCalls int
}

func (m *mockPageService) CreatePage(_ context.Context, parentID, title string) (*notion.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.createCalls++
	m.createdWith.parentID = parentID
	m.createdWith.title = title
	return &notion.Page{ID: "new_page", Title: title}, nil
}

func (m *mockPageService) GetPage(_ context.Context, pageID string) (*notion.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &notion.Page{ID: pageID, Title: "Fetched", URL: "https://notion.so/" + pageID}, nil
}

func (m *mockPageService) FindPageByTitle(_ context.Context, title string) (*notion.Page, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	page, ok := m.pages[title]
	return page, ok, nil
}

func (m *mockPageService) SearchPages(_ context.Context, _ string) ([]notion.Page, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.searchHits, nil
}

func (m *mockPageService) PageContent(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}

// mockSynchronizer is a hand-rolled Synchronizer fake recording calls.
type mockSynchronizer struct {
	res      *sync.Result
	err      error
	pageID   string
	text     string
	mode     sync.Mode
	syncCall int
}

func (m *mockSynchronizer) Sync(_ context.Context, pageID, text string, mode sync.Mode) (*sync.Result, error) {
	m.syncCall++
	m.pageID = pageID
	m.text = text
	m.mode = mode
	if m.err != nil {
		return m.res, m.err
	}
	if m.res != nil {
		return m.res, nil
	}
	return &sync.Result{FailedBatch: -1}, nil
}
