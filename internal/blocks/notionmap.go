package blocks

import (
	"strings"

	"github.com/jomei/notionapi"
)

const defaultCodeLanguage = "plain text"

// ToNotion serializes a block sequence into the Notion API block schema.
// The field names and nesting are a compatibility contract with the hosted
// service; notionapi's structs carry the exact JSON shape.
func ToNotion(doc []Block) []notionapi.Block {
	out := make([]notionapi.Block, 0, len(doc))
	for _, b := range doc {
		out = append(out, toNotionBlock(b))
	}
	return out
}

func toNotionBlock(b Block) notionapi.Block {
	rich := toRichText(b.Runs)
	children := notionapi.Blocks(ToNotion(b.Children))

	basic := func(t notionapi.BlockType) notionapi.BasicBlock {
		return notionapi.BasicBlock{Object: "block", Type: t}
	}

	switch b.Kind {
	case KindHeading1:
		return &notionapi.Heading1Block{
			BasicBlock: basic(notionapi.BlockTypeHeading1),
			Heading1:   notionapi.Heading{RichText: rich},
		}
	case KindHeading2:
		return &notionapi.Heading2Block{
			BasicBlock: basic(notionapi.BlockTypeHeading2),
			Heading2:   notionapi.Heading{RichText: rich},
		}
	case KindHeading3:
		return &notionapi.Heading3Block{
			BasicBlock: basic(notionapi.BlockTypeHeading3),
			Heading3:   notionapi.Heading{RichText: rich},
		}
	case KindBulletedListItem:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeBulletedListItem),
			BulletedListItem: notionapi.ListItem{RichText: rich, Children: children},
		}
	case KindNumberedListItem:
		return &notionapi.NumberedListItemBlock{
			BasicBlock:       basic(notionapi.BlockTypeNumberedListItem),
			NumberedListItem: notionapi.ListItem{RichText: rich, Children: children},
		}
	case KindCode:
		language := b.Language
		if language == "" {
			language = defaultCodeLanguage
		}
		return &notionapi.CodeBlock{
			BasicBlock: basic(notionapi.BlockTypeCode),
			Code:       notionapi.Code{RichText: rich, Language: language},
		}
	case KindQuote:
		return &notionapi.QuoteBlock{
			BasicBlock: basic(notionapi.BlockTypeQuote),
			Quote:      notionapi.Quote{RichText: rich, Children: children},
		}
	case KindDivider:
		return &notionapi.DividerBlock{
			BasicBlock: basic(notionapi.BlockTypeDivider),
			Divider:    notionapi.Divider{},
		}
	case KindToDo:
		return &notionapi.ToDoBlock{
			BasicBlock: basic(notionapi.BlockTypeToDo),
			ToDo:       notionapi.ToDo{RichText: rich, Children: children, Checked: b.Checked},
		}
	default:
		return &notionapi.ParagraphBlock{
			BasicBlock: basic(notionapi.BlockTypeParagraph),
			Paragraph:  notionapi.Paragraph{RichText: rich, Children: children},
		}
	}
}

func toRichText(runs []Run) []notionapi.RichText {
	out := make([]notionapi.RichText, 0, len(runs))
	for _, r := range runs {
		rt := notionapi.RichText{
			Text: &notionapi.Text{Content: r.Content},
		}
		if r.Bold || r.Italic || r.Code {
			rt.Annotations = &notionapi.Annotations{
				Bold:   r.Bold,
				Italic: r.Italic,
				Code:   r.Code,
			}
		}
		out = append(out, rt)
	}
	return out
}

// FromNotion renders fetched Notion blocks back into markdown text, the
// inverse of Convert for the recognized block kinds. Unrecognized block
// types are skipped.
func FromNotion(bs []notionapi.Block) string {
	var sb strings.Builder
	renderBlocks(&sb, bs, 0)
	return strings.TrimRight(sb.String(), "\n")
}

func renderBlocks(sb *strings.Builder, bs []notionapi.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, b := range bs {
		switch v := b.(type) {
		case *notionapi.ParagraphBlock:
			sb.WriteString(indent + renderRichText(v.Paragraph.RichText) + "\n")
			renderBlocks(sb, v.Paragraph.Children, depth+1)
		case *notionapi.Heading1Block:
			sb.WriteString("# " + renderRichText(v.Heading1.RichText) + "\n")
		case *notionapi.Heading2Block:
			sb.WriteString("## " + renderRichText(v.Heading2.RichText) + "\n")
		case *notionapi.Heading3Block:
			sb.WriteString("### " + renderRichText(v.Heading3.RichText) + "\n")
		case *notionapi.BulletedListItemBlock:
			sb.WriteString(indent + "- " + renderRichText(v.BulletedListItem.RichText) + "\n")
			renderBlocks(sb, v.BulletedListItem.Children, depth+1)
		case *notionapi.NumberedListItemBlock:
			sb.WriteString(indent + "1. " + renderRichText(v.NumberedListItem.RichText) + "\n")
			renderBlocks(sb, v.NumberedListItem.Children, depth+1)
		case *notionapi.CodeBlock:
			language := v.Code.Language
			if language == defaultCodeLanguage {
				language = ""
			}
			sb.WriteString("```" + language + "\n" + renderRichText(v.Code.RichText) + "\n```\n")
		case *notionapi.QuoteBlock:
			sb.WriteString(indent + "> " + renderRichText(v.Quote.RichText) + "\n")
		case *notionapi.DividerBlock:
			sb.WriteString("---\n")
		case *notionapi.ToDoBlock:
			box := "[ ]"
			if v.ToDo.Checked {
				box = "[x]"
			}
			sb.WriteString(indent + "- " + box + " " + renderRichText(v.ToDo.RichText) + "\n")
			renderBlocks(sb, v.ToDo.Children, depth+1)
		}
	}
}

func renderRichText(rts []notionapi.RichText) string {
	var sb strings.Builder
	for _, rt := range rts {
		content := rt.PlainText
		if content == "" && rt.Text != nil {
			content = rt.Text.Content
		}
		if rt.Annotations != nil {
			switch {
			case rt.Annotations.Code:
				content = "`" + content + "`"
			case rt.Annotations.Bold:
				content = "**" + content + "**"
			case rt.Annotations.Italic:
				content = "*" + content + "*"
			}
		}
		sb.WriteString(content)
	}
	return sb.String()
}
