// Package editor implements the toolbar text-splicing engine behind the
// article composer. The client owns a plain multi-line buffer and a selection
// range; every toolbar command is a pure splice over that pair, so all
// surfaces share one policy for cursor placement and placeholder handling.
package editor

// Placeholder is inserted when a wrap command runs with a collapsed selection.
const Placeholder = "text"

// Buffer is a document string plus the current selection, in byte offsets.
// SelStart == SelEnd means a collapsed cursor.
type Buffer struct {
	Text     string `json:"content"`
	SelStart int    `json:"selectionStart"`
	SelEnd   int    `json:"selectionEnd"`
}

func (b Buffer) clamped() Buffer {
	if b.SelStart < 0 {
		b.SelStart = 0
	}
	if b.SelStart > len(b.Text) {
		b.SelStart = len(b.Text)
	}
	if b.SelEnd < b.SelStart {
		b.SelEnd = b.SelStart
	}
	if b.SelEnd > len(b.Text) {
		b.SelEnd = len(b.Text)
	}
	return b
}

// WrapSelection splices prefix+selected+suffix over the selection. A collapsed
// selection wraps the placeholder word instead, and the result selects the
// wrapped inner text so a follow-up command replaces it.
func (b Buffer) WrapSelection(prefix, suffix string) Buffer {
	b = b.clamped()
	inner := b.Text[b.SelStart:b.SelEnd]
	if inner == "" {
		inner = Placeholder
	}
	text := b.Text[:b.SelStart] + prefix + inner + suffix + b.Text[b.SelEnd:]
	start := b.SelStart + len(prefix)
	return Buffer{Text: text, SelStart: start, SelEnd: start + len(inner)}
}

// InsertAtCursor splices a literal at the selection start. Selected text is
// kept, not replaced; the cursor lands just after the inserted literal.
func (b Buffer) InsertAtCursor(literal string) Buffer {
	b = b.clamped()
	text := b.Text[:b.SelStart] + literal + b.Text[b.SelStart:]
	pos := b.SelStart + len(literal)
	return Buffer{Text: text, SelStart: pos, SelEnd: pos}
}
