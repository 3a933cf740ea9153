package buffer

import (
	"kilo-tui/internal/syntax"
)

// Row is one line of the buffer. rendered and hl are derived from raw and are
// rebuilt whenever raw changes; len(rendered) == len(hl) always holds.
//
// Slices returned by Row accessors alias the row's storage. They are valid
// until the next buffer mutation and must not be modified.
type Row struct {
	idx         int
	raw         []byte
	rendered    []byte
	hl          []syntax.Tag
	commentOpen bool
}

func newRow(idx int, content []byte) *Row {
	raw := make([]byte, len(content))
	copy(raw, content)
	return &Row{idx: idx, raw: raw}
}

// Index returns the position of the row in its buffer.
func (r *Row) Index() int { return r.idx }

// Len returns the raw length of the row.
func (r *Row) Len() int { return len(r.raw) }

// Raw returns the authoritative content of the row.
func (r *Row) Raw() []byte { return r.raw }

// Rendered returns the content with tabs expanded.
func (r *Row) Rendered() []byte { return r.rendered }

// Highlight returns one tag per rendered byte.
func (r *Row) Highlight() []syntax.Tag { return r.hl }

// CommentOpen reports whether a block comment is still open at the end of the row.
func (r *Row) CommentOpen() bool { return r.commentOpen }

func (r *Row) project(tabStop int) {
	r.rendered = Project(r.raw, tabStop)
}

func (r *Row) insertByte(at int, c byte) {
	at = clamp(at, 0, len(r.raw))
	r.raw = append(r.raw, 0)
	copy(r.raw[at+1:], r.raw[at:])
	r.raw[at] = c
}

func (r *Row) deleteByte(at int) bool {
	if at < 0 || at >= len(r.raw) {
		return false
	}
	r.raw = append(r.raw[:at], r.raw[at+1:]...)
	return true
}

func (r *Row) appendBytes(s []byte) {
	r.raw = append(r.raw, s...)
}

func (r *Row) truncate(at int) {
	r.raw = r.raw[:clamp(at, 0, len(r.raw))]
}
