package blocks

// Chunk splits a document into ordered batches that respect the per-request
// block count and per-run text length limits. Blocks are packed greedily in
// document order; oversized runs are split at whitespace into sibling blocks
// of the same kind, and a single block whose nested children alone bust the
// request limit has its children moved into follow-up siblings. Flattening
// the batches in order reproduces the document content exactly, with only
// size-driven splits.
func Chunk(doc Document, lim Limits) ([][]Block, error) {
	if lim.MaxBlocksPerRequest <= 0 {
		return nil, &SizeViolationError{Reason: "max blocks per request must be positive"}
	}
	if lim.MaxTextLen <= 0 {
		return nil, &SizeViolationError{Reason: "max text length per block must be positive"}
	}

	var fitted []Block
	for _, b := range doc {
		for _, s := range splitText(b, lim.MaxTextLen) {
			exploded, err := explode(s, lim.MaxBlocksPerRequest)
			if err != nil {
				return nil, err
			}
			fitted = append(fitted, exploded...)
		}
	}

	var batches [][]Block
	var batch []Block
	used := 0
	for _, b := range fitted {
		n := countBlocks(b)
		if used+n > lim.MaxBlocksPerRequest && used > 0 {
			batches = append(batches, batch)
			batch = nil
			used = 0
		}
		batch = append(batch, b)
		used += n
	}
	if len(batch) > 0 {
		batches = append(batches, batch)
	}

	return batches, nil
}

// countBlocks counts a block and all of its descendants.
func countBlocks(b Block) int {
	n := 1
	for _, c := range b.Children {
		n += countBlocks(c)
	}
	return n
}

// splitText rewrites a block whose runs exceed the text limit into sibling
// blocks of the same kind. Runs that fit are untouched; an oversized run is
// cut at the last whitespace at or before the limit (hard cut when there is
// none), each extra piece starting a new sibling. Children stay with the
// last sibling so document order is preserved.
func splitText(b Block, max int) []Block {
	children := make([]Block, 0, len(b.Children))
	for _, c := range b.Children {
		children = append(children, splitText(c, max)...)
	}

	var out []Block
	cur := sibling(b)
	for _, r := range b.Runs {
		pieces := splitRun(r, max)
		cur.Runs = append(cur.Runs, pieces[0])
		for _, p := range pieces[1:] {
			out = append(out, cur)
			cur = sibling(b)
			cur.Runs = append(cur.Runs, p)
		}
	}
	cur.Children = children
	out = append(out, cur)

	return out
}

// sibling copies a block's identity without its content.
func sibling(b Block) Block {
	return Block{Kind: b.Kind, Language: b.Language, Checked: b.Checked}
}

// splitRun cuts one run into pieces of at most max characters, keeping the
// whitespace so concatenation reconstructs the original content.
func splitRun(r Run, max int) []Run {
	text := []rune(r.Content)
	if len(text) <= max {
		return []Run{r}
	}

	var pieces []Run
	for len(text) > max {
		cut := max
		for i := max - 1; i > 0; i-- {
			if text[i] == ' ' || text[i] == '\t' {
				cut = i + 1
				break
			}
		}
		piece := r
		piece.Content = string(text[:cut])
		pieces = append(pieces, piece)
		text = text[cut:]
	}
	last := r
	last.Content = string(text)
	return append(pieces, last)
}

// explode splits a block whose recursive count exceeds the request limit:
// the block keeps its own runs and its children move into follow-up
// siblings of identical kind, each sibling packed up to the limit.
func explode(b Block, max int) ([]Block, error) {
	if countBlocks(b) <= max {
		return []Block{b}, nil
	}
	if max < 2 {
		return nil, &SizeViolationError{Reason: "nested block cannot fit in one request"}
	}

	head := b
	head.Children = nil
	out := []Block{head}

	cur := sibling(b)
	used := 1
	for _, c := range b.Children {
		parts, err := explode(c, max-1)
		if err != nil {
			return nil, err
		}
		for _, p := range parts {
			n := countBlocks(p)
			if used+n > max && used > 1 {
				out = append(out, cur)
				cur = sibling(b)
				used = 1
			}
			cur.Children = append(cur.Children, p)
			used += n
		}
	}
	if used > 1 {
		out = append(out, cur)
	}

	return out, nil
}
