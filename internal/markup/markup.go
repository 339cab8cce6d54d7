// Package markup renders the author-markup dialect stored in article bodies:
// a Markdown subset (headings, bullet lists, quotes, rules, inline markers,
// links, images, pipe tables) plus two raw inline HTML exceptions
// (<span style=...> and <u>) that must pass through untouched. Rendering is
// best-effort and never fails: malformed input degrades to plain paragraphs.
package markup

import "strings"

type blockKind int

const (
	blockParagraph blockKind = iota
	blockHeading
	blockListItem
	blockQuote
	blockRule
	blockTable
)

type block struct {
	kind  blockKind
	level int      // heading level 1..4
	lines []string // paragraph/quote lines, list item or table rows
}

// Render converts an author-markup string into an HTML fragment wrapped in
// the outer content container. Output is deterministic for a given input.
func Render(src string) string {
	blocks := parseBlocks(src)
	var b strings.Builder
	b.WriteString(`<div class="article-body">`)
	for _, blk := range blocks {
		renderBlock(&b, blk)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func parseBlocks(src string) []block {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	blocks := []block{}
	var para []string

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockParagraph, lines: para})
			para = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flushPara()
		case headingLevel(line) > 0:
			flushPara()
			level := headingLevel(line)
			text := strings.TrimSpace(line[level+1:])
			blocks = append(blocks, block{kind: blockHeading, level: level, lines: []string{text}})
		case strings.HasPrefix(line, "- "):
			flushPara()
			items := []string{strings.TrimSpace(line[2:])}
			for i+1 < len(lines) && strings.HasPrefix(lines[i+1], "- ") {
				i++
				items = append(items, strings.TrimSpace(lines[i][2:]))
			}
			blocks = append(blocks, block{kind: blockListItem, lines: items})
		case strings.HasPrefix(line, "> "):
			flushPara()
			quoted := []string{strings.TrimSpace(line[2:])}
			for i+1 < len(lines) && strings.HasPrefix(lines[i+1], "> ") {
				i++
				quoted = append(quoted, strings.TrimSpace(lines[i][2:]))
			}
			blocks = append(blocks, block{kind: blockQuote, lines: quoted})
		case isRule(trimmed):
			flushPara()
			blocks = append(blocks, block{kind: blockRule})
		case strings.HasPrefix(trimmed, "|"):
			flushPara()
			rows := []string{trimmed}
			for i+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i+1]), "|") {
				i++
				rows = append(rows, strings.TrimSpace(lines[i]))
			}
			blocks = append(blocks, block{kind: blockTable, lines: rows})
		default:
			para = append(para, trimmed)
		}
	}
	flushPara()
	return blocks
}

// headingLevel reports the heading level (1..4) of a line, or 0. Longer
// marker runs win over shorter ones, so "#### x" is never a level-1 heading.
func headingLevel(line string) int {
	count := 0
	for count < len(line) && line[count] == '#' {
		count++
	}
	if count == 0 || count > 4 {
		return 0
	}
	if count >= len(line) || line[count] != ' ' {
		return 0
	}
	return count
}

func isRule(trimmed string) bool {
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

var headingTags = map[int][2]string{
	1: {`<h1 class="content-h1">`, `</h1>`},
	2: {`<h2 class="content-h2">`, `</h2>`},
	3: {`<h3 class="content-h3">`, `</h3>`},
	4: {`<h4 class="content-h4">`, `</h4>`},
}

func renderBlock(b *strings.Builder, blk block) {
	switch blk.kind {
	case blockHeading:
		tags := headingTags[blk.level]
		b.WriteString(tags[0])
		b.WriteString(renderInline(blk.lines[0]))
		b.WriteString(tags[1])
	case blockListItem:
		b.WriteString(`<ul class="content-list">`)
		for _, item := range blk.lines {
			b.WriteString("<li>")
			b.WriteString(renderInline(item))
			b.WriteString("</li>")
		}
		b.WriteString(`</ul>`)
	case blockQuote:
		b.WriteString(`<blockquote class="content-quote">`)
		for i, line := range blk.lines {
			if i > 0 {
				b.WriteString("<br />")
			}
			b.WriteString(renderInline(line))
		}
		b.WriteString(`</blockquote>`)
	case blockRule:
		b.WriteString(`<hr class="content-divider" />`)
	case blockTable:
		renderTable(b, blk.lines)
	default:
		b.WriteString("<p>")
		for i, line := range blk.lines {
			if i > 0 {
				b.WriteString("<br />")
			}
			b.WriteString(renderInline(line))
		}
		b.WriteString("</p>")
	}
}

func renderTable(b *strings.Builder, rows []string) {
	parsed := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := strings.Split(strings.Trim(row, "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		parsed = append(parsed, cells)
	}
	hasHeader := len(parsed) > 1 && isSeparatorRow(parsed[1])
	b.WriteString(`<table class="content-table">`)
	body := parsed
	if hasHeader {
		b.WriteString("<thead><tr>")
		for _, cell := range parsed[0] {
			b.WriteString("<th>")
			b.WriteString(renderInline(cell))
			b.WriteString("</th>")
		}
		b.WriteString("</tr></thead>")
		body = parsed[2:]
	}
	b.WriteString("<tbody>")
	for _, cells := range body {
		b.WriteString("<tr>")
		for _, cell := range cells {
			b.WriteString("<td>")
			b.WriteString(renderInline(cell))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell == "" {
			return false
		}
		for _, r := range cell {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}
