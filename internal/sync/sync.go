// Package sync reconciles converted block content against a remote page,
// either appending after the existing children or replacing them wholesale.
package sync

import (
	"context"
	"fmt"

	"github.com/tleeds1/NotionMCP/internal/blocks"
	"github.com/tleeds1/NotionMCP/internal/logger"
)

// Mode selects how incoming content relates to the page's existing children.
type Mode string

const (
	// ModeAppend inserts the new blocks after the existing content.
	ModeAppend Mode = "append"
	// ModeReplace deletes all existing children, then inserts fresh.
	ModeReplace Mode = "replace"
)

// ParseMode maps a caller-supplied mode string to a Mode. The empty string
// defaults to replace.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", string(ModeReplace):
		return ModeReplace, nil
	case string(ModeAppend):
		return ModeAppend, nil
	}
	return "", fmt.Errorf("unknown sync mode %q", s)
}

// PageClient is the remote surface the syncer needs. *notion.Client
// implements it.
//
//go:generate mockgen -source=sync.go -destination=mock_sync/mock_sync.go -package=mock_sync
type PageClient interface {
	// ListChildren returns one page of child block ids plus a continuation
	// cursor, empty when the listing is exhausted.
	ListChildren(ctx context.Context, pageID, cursor string) ([]string, string, error)
	// AppendChildren appends one batch at the page tail, returning created ids.
	AppendChildren(ctx context.Context, pageID string, batch []blocks.Block) ([]string, error)
	// DeleteBlock removes one block; deleting an already-deleted block succeeds.
	DeleteBlock(ctx context.Context, blockID string) error
}

// Result reports the remote side effects of one Sync call, including the
// partial work committed before a failure.
type Result struct {
	CreatedBlockIDs []string
	DeletedBlockIDs []string
	// Batches is the number of append batches planned.
	Batches int
	// FailedBatch is the index of the batch whose append failed, -1 if none.
	FailedBatch int
}

// Syncer orchestrates convert, chunk and the ordered remote calls.
type Syncer struct {
	client PageClient
	limits blocks.Limits
	opts   blocks.Options
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithLimits overrides the API request limits.
func WithLimits(lim blocks.Limits) Option {
	return func(s *Syncer) {
		s.limits = lim
	}
}

// WithConvertOptions overrides the markdown conversion options.
func WithConvertOptions(opts blocks.Options) Option {
	return func(s *Syncer) {
		s.opts = opts
	}
}

// New creates a Syncer with the default Notion limits.
func New(client PageClient, opts ...Option) *Syncer {
	s := &Syncer{
		client: client,
		limits: blocks.DefaultLimits,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync converts text to blocks and applies it to the page under the given
// mode. Remote calls are strictly sequential: replace deletes everything
// before the first append, and batches go out one at a time so the remote
// page keeps document order. A failure is terminal for the call; the
// returned Result still carries the ids created and deleted so far.
// Cancellation is observed between batches, never mid-batch.
func (s *Syncer) Sync(ctx context.Context, pageID, text string, mode Mode) (*Result, error) {
	doc := blocks.Convert(text, s.opts)
	batches, err := blocks.Chunk(doc, s.limits)
	if err != nil {
		// Unsatisfiable limits fail before any remote mutation.
		return nil, err
	}

	res := &Result{Batches: len(batches), FailedBatch: -1}

	logger.Debug("Starting page sync", map[string]interface{}{
		"page_id": pageID,
		"mode":    string(mode),
		"blocks":  len(doc),
		"batches": len(batches),
	})

	if mode == ModeReplace {
		if err := s.deleteExisting(ctx, pageID, res); err != nil {
			return res, err
		}
	}

	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			res.FailedBatch = i
			return res, fmt.Errorf("sync cancelled before batch %d: %w", i, err)
		}

		created, err := s.client.AppendChildren(ctx, pageID, batch)
		if err != nil {
			res.FailedBatch = i
			return res, fmt.Errorf("appending batch %d of %d: %w", i+1, len(batches), err)
		}
		res.CreatedBlockIDs = append(res.CreatedBlockIDs, created...)
	}

	logger.Info("Page sync complete", map[string]interface{}{
		"page_id": pageID,
		"mode":    string(mode),
		"created": len(res.CreatedBlockIDs),
		"deleted": len(res.DeletedBlockIDs),
	})

	return res, nil
}

// deleteExisting lists all current children to exhaustion and deletes them
// in reverse-fetched order. Any failure other than already-deleted aborts
// with the partial delete tally recorded on res.
func (s *Syncer) deleteExisting(ctx context.Context, pageID string, res *Result) error {
	var ids []string
	cursor := ""
	for {
		page, next, err := s.client.ListChildren(ctx, pageID, cursor)
		if err != nil {
			return fmt.Errorf("listing existing children: %w", err)
		}
		ids = append(ids, page...)
		if next == "" {
			break
		}
		cursor = next
	}

	for i := len(ids) - 1; i >= 0; i-- {
		if err := s.client.DeleteBlock(ctx, ids[i]); err != nil {
			return fmt.Errorf("deleting block %s: %w", ids[i], err)
		}
		res.DeletedBlockIDs = append(res.DeletedBlockIDs, ids[i])
	}

	return nil
}
