package retained

import (
	"slices"
	"strings"
	"time"
	"unicode"
)

// TextBuffer holds single-line editable text with a caret and selection.
// Positions are rune indices: 0 is before the first character.
type TextBuffer struct {
	content []rune
	caret   int
	anchor  int // selection is [min(anchor, caret), max(anchor, caret))

	maxLength int // 0 = no limit
	filter    func(r rune) bool

	// Caret blink, driven by Advance.
	caretVisible  bool
	sinceToggle   time.Duration
	blinkInterval time.Duration

	undo []bufferState
}

type bufferState struct {
	content []rune
	caret   int
	anchor  int
}

const maxUndo = 100

// NewTextBuffer creates an empty buffer that blinks its caret every
// blinkInterval. A zero interval keeps the caret steady.
func NewTextBuffer(blinkInterval time.Duration) *TextBuffer {
	return &TextBuffer{caretVisible: true, blinkInterval: blinkInterval}
}

// Text returns the content.
func (b *TextBuffer) Text() string { return string(b.content) }

// Len returns the number of runes.
func (b *TextBuffer) Len() int { return len(b.content) }

// SetText replaces the content and moves the caret to the end.
func (b *TextBuffer) SetText(text string) {
	b.content = []rune(b.clean(text))
	if b.maxLength > 0 && len(b.content) > b.maxLength {
		b.content = b.content[:b.maxLength]
	}
	b.caret = len(b.content)
	b.anchor = b.caret
	b.undo = b.undo[:0]
}

// Caret returns the caret position.
func (b *TextBuffer) Caret() int { return b.caret }

// SetCaret moves the caret and clears the selection.
func (b *TextBuffer) SetCaret(pos int) {
	b.caret = b.clamp(pos)
	b.anchor = b.caret
	b.ResetBlink()
}

// Selection returns the selected range, start <= end.
func (b *TextBuffer) Selection() (start, end int) {
	return min(b.anchor, b.caret), max(b.anchor, b.caret)
}

// HasSelection reports whether any text is selected.
func (b *TextBuffer) HasSelection() bool { return b.anchor != b.caret }

// SelectedText returns the selected text.
func (b *TextBuffer) SelectedText() string {
	s, e := b.Selection()
	return string(b.content[s:e])
}

// SelectAll selects the whole content.
func (b *TextBuffer) SelectAll() {
	b.anchor = 0
	b.caret = len(b.content)
}

// SetMaxLength limits the content length in runes. 0 removes the limit.
func (b *TextBuffer) SetMaxLength(n int) { b.maxLength = max(0, n) }

// SetFilter restricts which runes Insert accepts. nil accepts every
// printable rune.
func (b *TextBuffer) SetFilter(fn func(r rune) bool) { b.filter = fn }

// Insert replaces the selection with text at the caret. It reports whether
// the content changed.
func (b *TextBuffer) Insert(text string) bool {
	runes := []rune(b.clean(text))
	if b.filter != nil {
		runes = slices.DeleteFunc(runes, func(r rune) bool { return !b.filter(r) })
	}
	start, end := b.Selection()
	if b.maxLength > 0 {
		avail := max(0, b.maxLength-(len(b.content)-(end-start)))
		runes = runes[:min(len(runes), avail)]
	}
	if len(runes) == 0 && start == end {
		return false
	}
	b.saveUndo()
	b.content = slices.Replace(b.content, start, end, runes...)
	b.caret = start + len(runes)
	b.anchor = b.caret
	b.ResetBlink()
	return true
}

// Delete removes the selection, or count runes after (count > 0) or before
// (count < 0) the caret. It reports whether the content changed.
func (b *TextBuffer) Delete(count int) bool {
	start, end := b.Selection()
	if start == end {
		if count > 0 {
			end = min(len(b.content), start+count)
		} else {
			start = max(0, start+count)
		}
	}
	if start == end {
		return false
	}
	b.saveUndo()
	b.content = slices.Delete(b.content, start, end)
	b.caret = start
	b.anchor = start
	b.ResetBlink()
	return true
}

// DeleteWord deletes to the next (forward) or previous word boundary.
func (b *TextBuffer) DeleteWord(forward bool) bool {
	if b.HasSelection() {
		return b.Delete(0)
	}
	to := b.wordBoundary(b.caret, forward)
	return b.Delete(to - b.caret)
}

// MoveCaret moves the caret by delta runes. With extend, the selection
// grows instead of being cleared.
func (b *TextBuffer) MoveCaret(delta int, extend bool) {
	if !extend && b.HasSelection() {
		s, e := b.Selection()
		if delta < 0 {
			b.caret = s
		} else {
			b.caret = e
		}
		b.anchor = b.caret
		b.ResetBlink()
		return
	}
	b.moveTo(b.caret+delta, extend)
}

// MoveWord moves the caret to the next or previous word boundary.
func (b *TextBuffer) MoveWord(forward, extend bool) {
	b.moveTo(b.wordBoundary(b.caret, forward), extend)
}

// MoveToStart moves the caret before the first rune.
func (b *TextBuffer) MoveToStart(extend bool) { b.moveTo(0, extend) }

// MoveToEnd moves the caret after the last rune.
func (b *TextBuffer) MoveToEnd(extend bool) { b.moveTo(len(b.content), extend) }

func (b *TextBuffer) moveTo(pos int, extend bool) {
	b.caret = b.clamp(pos)
	if !extend {
		b.anchor = b.caret
	}
	b.ResetBlink()
}

// Undo restores the content before the last edit.
func (b *TextBuffer) Undo() bool {
	if len(b.undo) == 0 {
		return false
	}
	s := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.content, b.caret, b.anchor = s.content, s.caret, s.anchor
	b.ResetBlink()
	return true
}

func (b *TextBuffer) saveUndo() {
	if len(b.undo) == maxUndo {
		b.undo = slices.Delete(b.undo, 0, 1)
	}
	b.undo = append(b.undo, bufferState{slices.Clone(b.content), b.caret, b.anchor})
}

// SetBlinkInterval changes the caret blink period.
func (b *TextBuffer) SetBlinkInterval(d time.Duration) { b.blinkInterval = max(0, d) }

// CaretVisible reports the blink phase.
func (b *TextBuffer) CaretVisible() bool { return b.caretVisible }

// ResetBlink shows the caret and restarts the blink period.
func (b *TextBuffer) ResetBlink() {
	b.caretVisible = true
	b.sinceToggle = 0
}

// Advance moves the blink clock forward. It reports whether the caret
// visibility changed.
func (b *TextBuffer) Advance(elapsed time.Duration) bool {
	if b.blinkInterval <= 0 {
		return false
	}
	b.sinceToggle += elapsed
	if b.sinceToggle < b.blinkInterval {
		return false
	}
	toggles := int(b.sinceToggle / b.blinkInterval)
	b.sinceToggle %= b.blinkInterval
	if toggles%2 == 0 {
		return false
	}
	b.caretVisible = !b.caretVisible
	return true
}

func (b *TextBuffer) clamp(pos int) int {
	return max(0, min(pos, len(b.content)))
}

// clean drops line breaks and control characters.
func (b *TextBuffer) clean(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
}

func (b *TextBuffer) wordBoundary(pos int, forward bool) int {
	isWord := func(i int) bool {
		r := b.content[i]
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}
	if forward {
		for pos < len(b.content) && !isWord(pos) {
			pos++
		}
		for pos < len(b.content) && isWord(pos) {
			pos++
		}
		return pos
	}
	for pos > 0 && !isWord(pos-1) {
		pos--
	}
	for pos > 0 && isWord(pos-1) {
		pos--
	}
	return pos
}
