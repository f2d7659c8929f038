// Package blocks holds the typed block model for Notion page content and
// the pure conversion pipeline from markdown text to API-ready batches.
package blocks

import "fmt"

// Kind identifies a Notion block type. The values match the type tags of
// the Notion block JSON schema.
type Kind string

const (
	KindParagraph        Kind = "paragraph"
	KindHeading1         Kind = "heading_1"
	KindHeading2         Kind = "heading_2"
	KindHeading3         Kind = "heading_3"
	KindBulletedListItem Kind = "bulleted_list_item"
	KindNumberedListItem Kind = "numbered_list_item"
	KindCode             Kind = "code"
	KindQuote            Kind = "quote"
	KindDivider          Kind = "divider"
	KindToDo             Kind = "to_do"
)

// Run is one inline rich-text span with its emphasis flags.
type Run struct {
	Content string
	Bold    bool
	Italic  bool
	Code    bool
}

// Block is one page content unit. Language is only meaningful for code
// blocks and Checked only for to_do items; both are zero otherwise.
type Block struct {
	Kind     Kind
	Runs     []Run
	Children []Block
	Language string
	Checked  bool
}

// PlainText returns the concatenated run contents of the block.
func (b Block) PlainText() string {
	var out string
	for _, r := range b.Runs {
		out += r.Content
	}
	return out
}

// Document is the ordered top-level block sequence produced by one
// conversion call.
type Document []Block

// Limits mirrors the Notion API request ceilings.
type Limits struct {
	// MaxBlocksPerRequest is the block count allowed in one append call,
	// nested children included.
	MaxBlocksPerRequest int
	// MaxTextLen is the character ceiling for a single rich-text run.
	MaxTextLen int
}

// DefaultLimits are the documented Notion API limits.
var DefaultLimits = Limits{
	MaxBlocksPerRequest: 100,
	MaxTextLen:          2000,
}

// SizeViolationError reports limits that no amount of splitting can satisfy.
// It is surfaced before any remote call is issued.
type SizeViolationError struct {
	Reason string
}

func (e *SizeViolationError) Error() string {
	return fmt.Sprintf("size limits cannot be satisfied: %s", e.Reason)
}
