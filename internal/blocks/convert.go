package blocks

import (
	"strings"
	"unicode"
)

// Options configures the markdown conversion.
type Options struct {
	// IndentStep is the number of leading spaces that nests a list item one
	// level deeper. Indentation that is not a multiple of the step rounds
	// down. Zero means the default of 2.
	IndentStep int
}

const defaultIndentStep = 2

// Convert turns markdown text into an ordered block Document.
//
// Lines are classified top to bottom, first match wins: fenced code,
// headings (1-3 '#'), to_do / bulleted / numbered list items, dividers,
// quotes, and a paragraph fallback for everything else. Blank lines only
// terminate the current block. The function is pure and never fails:
// unrecognized syntax degrades to a paragraph, an unterminated code fence
// closes at end of input, and unmatched emphasis markers stay literal.
func Convert(text string, opts Options) Document {
	step := opts.IndentStep
	if step <= 0 {
		step = defaultIndentStep
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	// Virtual root; list nesting attaches to the deepest open list item.
	root := &Block{}
	stack := []*frame{{depth: -1, block: root}}

	for i := 0; i < len(lines); i++ {
		indent, line := splitIndent(lines[i], step)

		if line == "" {
			// Separator: close any open list nesting.
			stack = stack[:1]
			continue
		}

		// Fenced code consumes lines verbatim until the closing fence or,
		// failing that, end of input.
		if strings.HasPrefix(line, "```") {
			language := strings.TrimSpace(line[3:])
			var body []string
			i++
			for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				body = append(body, lines[i])
				i++
			}
			stack = stack[:1]
			root.Children = append(root.Children, Block{
				Kind:     KindCode,
				Runs:     []Run{{Content: strings.Join(body, "\n")}},
				Language: language,
			})
			continue
		}

		b, isList := classifyLine(line)

		if !isList {
			stack = stack[:1]
			root.Children = append(root.Children, b)
			continue
		}

		// List items nest by indentation: pop to the nearest shallower item
		// and attach there, or at the top level.
		depth := indent / step
		for len(stack) > 1 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1].block
		parent.Children = append(parent.Children, b)
		stack = append(stack, &frame{
			depth: depth,
			block: &parent.Children[len(parent.Children)-1],
		})
	}

	return Document(root.Children)
}

type frame struct {
	depth int
	block *Block
}

// splitIndent strips leading whitespace and reports its width in spaces.
// A tab counts as one indent step.
func splitIndent(line string, step int) (int, string) {
	indent := 0
	rest := line
	for rest != "" {
		switch rest[0] {
		case ' ':
			indent++
		case '\t':
			indent += step
		default:
			return indent, rest
		}
		rest = rest[1:]
	}
	return 0, ""
}

// classifyLine maps one non-blank, already-dedented line to a block.
// The second return reports whether the block is a list item that
// participates in indentation nesting.
func classifyLine(line string) (Block, bool) {
	if level, rest, ok := matchHeading(line); ok {
		kind := [...]Kind{KindHeading1, KindHeading2, KindHeading3}[level-1]
		return Block{Kind: kind, Runs: parseRuns(rest)}, false
	}

	if rest, ok := matchBullet(line); ok {
		if content, checked, ok := matchCheckbox(rest); ok {
			return Block{Kind: KindToDo, Runs: parseRuns(content), Checked: checked}, true
		}
		return Block{Kind: KindBulletedListItem, Runs: parseRuns(rest)}, true
	}

	if rest, ok := matchNumbered(line); ok {
		return Block{Kind: KindNumberedListItem, Runs: parseRuns(rest)}, true
	}

	if isDivider(line) {
		return Block{Kind: KindDivider}, false
	}

	if rest, ok := matchMarker(line, ">"); ok {
		return Block{Kind: KindQuote, Runs: parseRuns(rest)}, false
	}

	// Fail-open: anything else is a paragraph carrying the raw line.
	return Block{Kind: KindParagraph, Runs: parseRuns(line)}, false
}

// matchHeading matches 1-3 '#' characters followed by whitespace.
func matchHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 3 {
		return 0, "", false
	}
	rest, ok := trimMarkerSpace(line[level:])
	if !ok {
		return 0, "", false
	}
	return level, rest, true
}

func matchBullet(line string) (string, bool) {
	for _, m := range []string{"-", "*", "+"} {
		if rest, ok := matchMarker(line, m); ok {
			return rest, true
		}
	}
	return "", false
}

// matchCheckbox recognizes the "[ ]" / "[x]" prefix of a to_do item.
func matchCheckbox(rest string) (string, bool, bool) {
	switch {
	case strings.HasPrefix(rest, "[ ] "):
		return rest[4:], false, true
	case strings.HasPrefix(rest, "[x] "), strings.HasPrefix(rest, "[X] "):
		return rest[4:], true, true
	}
	return "", false, false
}

// matchNumbered matches a decimal number followed by '.' and whitespace.
// The displayed number is discarded; Notion regenerates ordering.
func matchNumbered(line string) (string, bool) {
	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(line) || line[digits] != '.' {
		return "", false
	}
	return trimMarkerSpace(line[digits+1:])
}

// matchMarker matches a marker followed by whitespace and returns the rest.
func matchMarker(line, marker string) (string, bool) {
	if !strings.HasPrefix(line, marker) {
		return "", false
	}
	return trimMarkerSpace(line[len(marker):])
}

func trimMarkerSpace(rest string) (string, bool) {
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return strings.TrimLeftFunc(rest, unicode.IsSpace), true
}

// isDivider reports whether the line is 3+ repetitions of '-', '*' or '_'.
func isDivider(line string) bool {
	if len(line) < 3 {
		return false
	}
	c := line[0]
	if c != '-' && c != '*' && c != '_' {
		return false
	}
	for i := 1; i < len(line); i++ {
		if line[i] != c {
			return false
		}
	}
	return true
}

// parseRuns splits a line into inline rich-text runs, recognizing
// **bold**, *italic* and `code` spans. Unterminated or empty markers are
// kept as literal text.
func parseRuns(s string) []Run {
	if s == "" {
		return nil
	}

	var runs []Run
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Content: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(s) {
		switch {
		case strings.HasPrefix(s[i:], "**"):
			end := strings.Index(s[i+2:], "**")
			if end > 0 {
				flush()
				runs = append(runs, Run{Content: s[i+2 : i+2+end], Bold: true})
				i += end + 4
				continue
			}
			plain.WriteString("**")
			i += 2
		case s[i] == '*':
			end := strings.IndexByte(s[i+1:], '*')
			if end > 0 {
				flush()
				runs = append(runs, Run{Content: s[i+1 : i+1+end], Italic: true})
				i += end + 2
				continue
			}
			plain.WriteByte('*')
			i++
		case s[i] == '`':
			end := strings.IndexByte(s[i+1:], '`')
			if end > 0 {
				flush()
				runs = append(runs, Run{Content: s[i+1 : i+1+end], Code: true})
				i += end + 2
				continue
			}
			plain.WriteByte('`')
			i++
		default:
			plain.WriteByte(s[i])
			i++
		}
	}
	flush()

	return runs
}
