package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/tleeds1/NotionMCP/internal/blocks"
	"github.com/tleeds1/NotionMCP/internal/sync/mock_sync"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input       string
		want        Mode
		expectError bool
	}{
		{input: "", want: ModeReplace},
		{input: "replace", want: ModeReplace},
		{input: "append", want: ModeAppend},
		{input: "upsert", expectError: true},
	}

	for _, tt := range tests {
		t.Run("mode "+tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if mode != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, mode)
			}
		})
	}
}

func TestSyncAppend(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_sync.NewMockPageClient(ctrl)
	// Append mode never reads existing children.
	client.EXPECT().ListChildren(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	client.EXPECT().AppendChildren(ctx, "page_1", gomock.Any()).Return([]string{"b1", "b2"}, nil)

	s := New(client)
	res, err := s.Sync(ctx, "page_1", "# Title\n\nSome text", ModeAppend)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.CreatedBlockIDs) != 2 {
		t.Errorf("Expected 2 created blocks, got %v", res.CreatedBlockIDs)
	}
	if len(res.DeletedBlockIDs) != 0 {
		t.Errorf("Expected no deletions, got %v", res.DeletedBlockIDs)
	}
	if res.FailedBatch != -1 {
		t.Errorf("Expected no failed batch, got %d", res.FailedBatch)
	}
}

func TestSyncAppendBatchOrder(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_sync.NewMockPageClient(ctrl)
	// Four paragraphs under a 2-block limit make two sequential batches.
	first := client.EXPECT().AppendChildren(ctx, "page_1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, batch []blocks.Block) ([]string, error) {
			if len(batch) != 2 {
				t.Errorf("Expected batch of 2, got %d", len(batch))
			}
			if batch[0].PlainText() != "one" {
				t.Errorf("Expected first batch to start with 'one', got %q", batch[0].PlainText())
			}
			return []string{"b1", "b2"}, nil
		})
	client.EXPECT().AppendChildren(ctx, "page_1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, batch []blocks.Block) ([]string, error) {
			if batch[0].PlainText() != "three" {
				t.Errorf("Expected second batch to start with 'three', got %q", batch[0].PlainText())
			}
			return []string{"b3", "b4"}, nil
		}).After(first)

	s := New(client, WithLimits(blocks.Limits{MaxBlocksPerRequest: 2, MaxTextLen: 2000}))
	res, err := s.Sync(ctx, "page_1", "one\n\ntwo\n\nthree\n\nfour", ModeAppend)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Batches != 2 {
		t.Errorf("Expected 2 batches, got %d", res.Batches)
	}
	want := []string{"b1", "b2", "b3", "b4"}
	if len(res.CreatedBlockIDs) != len(want) {
		t.Fatalf("Expected %v, got %v", want, res.CreatedBlockIDs)
	}
	for i := range want {
		if res.CreatedBlockIDs[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, res.CreatedBlockIDs)
			break
		}
	}
}

func TestSyncAppendPartialFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_sync.NewMockPageClient(ctrl)
	first := client.EXPECT().AppendChildren(ctx, "page_1", gomock.Any()).Return([]string{"b1", "b2"}, nil)
	client.EXPECT().AppendChildren(ctx, "page_1", gomock.Any()).Return(nil, errors.New("rate limited")).After(first)

	s := New(client, WithLimits(blocks.Limits{MaxBlocksPerRequest: 2, MaxTextLen: 2000}))
	res, err := s.Sync(ctx, "page_1", "one\n\ntwo\n\nthree", ModeAppend)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if res.FailedBatch != 1 {
		t.Errorf("Expected failed batch 1, got %d", res.FailedBatch)
	}
	if len(res.CreatedBlockIDs) != 2 {
		t.Errorf("Expected partial created ids from batch 0, got %v", res.CreatedBlockIDs)
	}
}

func TestSyncReplace(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_sync.NewMockPageClient(ctrl)

	// Children are listed across two cursor pages, then deleted in
	// reverse-fetched order before anything is appended.
	gomock.InOrder(
		client.EXPECT().ListChildren(ctx, "page_1", "").Return([]string{"b1", "b2"}, "cursor_2", nil),
		client.EXPECT().ListChildren(ctx, "page_1", "cursor_2").Return([]string{"b3"}, "", nil),
		client.EXPECT().DeleteBlock(ctx, "b3").Return(nil),
		client.EXPECT().DeleteBlock(ctx, "b2").Return(nil),
		client.EXPECT().DeleteBlock(ctx, "b1").Return(nil),
		client.EXPECT().AppendChildren(ctx, "page_1", gomock.Any()).Return([]string{"n1"}, nil),
	)

	s := New(client)
	res, err := s.Sync(ctx, "page_1", "fresh content", ModeReplace)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(res.DeletedBlockIDs) != 3 {
		t.Errorf("Expected 3 deletions, got %v", res.DeletedBlockIDs)
	}
	if res.DeletedBlockIDs[0] != "b3" {
		t.Errorf("Expected reverse-fetched delete order, got %v", res.DeletedBlockIDs)
	}
	if len(res.CreatedBlockIDs) != 1 || res.CreatedBlockIDs[0] != "n1" {
		t.Errorf("Unexpected created ids: %v", res.CreatedBlockIDs)
	}
}

func TestSyncReplaceDeleteFailure(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_sync.NewMockPageClient(ctrl)
	gomock.InOrder(
		client.EXPECT().ListChildren(ctx, "page_1", "").Return([]string{"b1", "b2", "b3"}, "", nil),
		client.EXPECT().DeleteBlock(ctx, "b3").Return(nil),
		client.EXPECT().DeleteBlock(ctx, "b2").Return(errors.New("permission denied")),
	)
	// No further deletes, no appends.
	client.EXPECT().AppendChildren(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	s := New(client)
	res, err := s.Sync(ctx, "page_1", "fresh content", ModeReplace)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if len(res.DeletedBlockIDs) != 1 || res.DeletedBlockIDs[0] != "b3" {
		t.Errorf("Expected only the first delete recorded, got %v", res.DeletedBlockIDs)
	}
	if len(res.CreatedBlockIDs) != 0 {
		t.Errorf("Expected no created blocks, got %v", res.CreatedBlockIDs)
	}
}

func TestSyncSizeViolationFailsFast(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No remote calls at all when the limits are unsatisfiable.
	client := mock_sync.NewMockPageClient(ctrl)

	s := New(client, WithLimits(blocks.Limits{MaxBlocksPerRequest: 0, MaxTextLen: 2000}))
	_, err := s.Sync(ctx, "page_1", "text", ModeReplace)

	var sv *blocks.SizeViolationError
	if !errors.As(err, &sv) {
		t.Fatalf("Expected SizeViolationError, got %v", err)
	}
}

func TestSyncCancelledBetweenBatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())

	client := mock_sync.NewMockPageClient(ctrl)
	client.EXPECT().AppendChildren(gomock.Any(), "page_1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, _ []blocks.Block) ([]string, error) {
			cancel()
			return []string{"b1", "b2"}, nil
		})

	s := New(client, WithLimits(blocks.Limits{MaxBlocksPerRequest: 2, MaxTextLen: 2000}))
	res, err := s.Sync(ctx, "page_1", "one\n\ntwo\n\nthree", ModeAppend)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if res.FailedBatch != 1 {
		t.Errorf("Expected abort before batch 1, got %d", res.FailedBatch)
	}
	if len(res.CreatedBlockIDs) != 2 {
		t.Errorf("Expected first batch recorded, got %v", res.CreatedBlockIDs)
	}
}
