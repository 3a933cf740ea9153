// Package buffer holds the rows of an open file and keeps their rendered
// text and highlight tags consistent with every edit.
//
// Row and column arguments that fall outside the buffer are clamped to the
// nearest valid position instead of being rejected. Callers rely on this when
// the cursor sits one row past the end of the file.
package buffer

import (
	"bytes"

	"kilo-tui/internal/syntax"
)

// DefaultTabStop is the tab width used when none is configured.
const DefaultTabStop = 8

// Pos is a raw position inside the buffer.
type Pos struct {
	Row int
	Col int
}

// Buffer is an ordered collection of rows. It is not safe for concurrent use.
type Buffer struct {
	rows    []*Row
	dirty   int
	tabStop int
	profile *syntax.Profile
}

// New creates an empty buffer.
func New(tabStop int) *Buffer {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	return &Buffer{tabStop: tabStop}
}

// TabStop returns the tab width of the buffer.
func (b *Buffer) TabStop() int { return b.tabStop }

// NumRows returns the number of rows.
func (b *Buffer) NumRows() int { return len(b.rows) }

// Row returns the row at index i or nil. The row must not be kept across
// edits: indices shift on every structural change.
func (b *Buffer) Row(i int) *Row {
	if i < 0 || i >= len(b.rows) {
		return nil
	}
	return b.rows[i]
}

// Dirty returns the number of edits since the buffer last matched the file.
func (b *Buffer) Dirty() int { return b.dirty }

// MarkClean records that the buffer matches the file on disk.
func (b *Buffer) MarkClean() { b.dirty = 0 }

// Profile returns the active lexical profile, possibly nil.
func (b *Buffer) Profile() *syntax.Profile { return b.profile }

// SetProfile switches the lexical profile and re-highlights every row from
// the top, since comment state accumulates from row 0.
func (b *Buffer) SetProfile(p *syntax.Profile) {
	b.profile = p
	b.highlightAll()
}

// Load replaces the content with lines and resets the dirty counter.
func (b *Buffer) Load(lines [][]byte) {
	b.rows = nil
	for _, line := range lines {
		b.InsertRow(len(b.rows), line)
	}
	b.dirty = 0
}

// Serialize joins every row with a trailing newline.
func (b *Buffer) Serialize() []byte {
	size := 0
	for _, row := range b.rows {
		size += len(row.raw) + 1
	}
	var out bytes.Buffer
	out.Grow(size)
	for _, row := range b.rows {
		out.Write(row.raw)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// RawToRendered maps a raw offset of row to its rendered column. Rows past the
// end of the buffer have column 0.
func (b *Buffer) RawToRendered(row, offset int) int {
	r := b.Row(row)
	if r == nil {
		return 0
	}
	return RawToRendered(r.raw, offset, b.tabStop)
}

// RenderedToRaw maps a rendered column of row back to a raw offset.
func (b *Buffer) RenderedToRaw(row, col int) int {
	r := b.Row(row)
	if r == nil {
		return 0
	}
	return RenderedToRaw(r.raw, col, b.tabStop)
}

// InsertRow inserts a row holding a copy of content at position at.
func (b *Buffer) InsertRow(at int, content []byte) {
	at = clamp(at, 0, len(b.rows))
	b.insertRowAt(at, content)
	b.cascade(at, at+1)
}

// DeleteRow removes the row at position at. Out of range positions are ignored.
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.rows) {
		return
	}
	b.removeRowAt(at)
	b.cascade(at)
}

// InsertChar inserts c into row before col and returns the position after it.
// A row index at or past the end appends an empty row first.
func (b *Buffer) InsertChar(row, col int, c byte) Pos {
	row = max(row, 0)
	if row >= len(b.rows) {
		row = len(b.rows)
		b.InsertRow(row, nil)
	}
	r := b.rows[row]
	col = clamp(col, 0, len(r.raw))
	r.insertByte(col, c)
	b.update(row)
	return Pos{Row: row, Col: col + 1}
}

// DeleteChar deletes the character before col. At column 0 the row is joined
// onto the previous one. It returns the resulting cursor position.
func (b *Buffer) DeleteChar(row, col int) Pos {
	if row < 0 || row >= len(b.rows) {
		return Pos{Row: row, Col: col}
	}
	r := b.rows[row]
	col = clamp(col, 0, len(r.raw))
	if col == 0 && row == 0 {
		return Pos{}
	}
	if col > 0 {
		r.deleteByte(col - 1)
		b.update(row)
		return Pos{Row: row, Col: col - 1}
	}

	prev := b.rows[row-1]
	joinAt := len(prev.raw)
	prev.appendBytes(r.raw)
	prev.project(b.tabStop)
	b.dirty++
	b.removeRowAt(row)
	b.cascade(row-1, row)
	return Pos{Row: row - 1, Col: joinAt}
}

// DeleteForward deletes the character under col, joining the next row onto
// this one at the end of the row.
func (b *Buffer) DeleteForward(row, col int) Pos {
	if row < 0 || row >= len(b.rows) {
		return Pos{Row: row, Col: col}
	}
	r := b.rows[row]
	col = clamp(col, 0, len(r.raw))
	if col < len(r.raw) {
		return b.DeleteChar(row, col+1)
	}
	if row+1 < len(b.rows) {
		return b.DeleteChar(row+1, 0)
	}
	return Pos{Row: row, Col: col}
}

// InsertNewline splits row at col. At column 0 an empty row is inserted
// above instead. It returns the start of the new line.
func (b *Buffer) InsertNewline(row, col int) Pos {
	row = clamp(row, 0, len(b.rows))
	if row == len(b.rows) || col <= 0 {
		b.InsertRow(row, nil)
		return Pos{Row: row + 1}
	}
	r := b.rows[row]
	col = min(col, len(r.raw))
	tail := b.insertRowAt(row+1, r.raw[col:])
	// the row below was highlighted against the unsplit row's state
	tail.commentOpen = r.commentOpen
	r.truncate(col)
	r.project(b.tabStop)
	b.cascade(row, row+1)
	return Pos{Row: row + 1}
}

func (b *Buffer) insertRowAt(at int, content []byte) *Row {
	row := newRow(at, content)
	row.project(b.tabStop)
	b.rows = append(b.rows, nil)
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = row
	for j := at + 1; j < len(b.rows); j++ {
		b.rows[j].idx++
	}
	b.dirty++
	return row
}

func (b *Buffer) removeRowAt(at int) {
	copy(b.rows[at:], b.rows[at+1:])
	b.rows[len(b.rows)-1] = nil
	b.rows = b.rows[:len(b.rows)-1]
	for j := at; j < len(b.rows); j++ {
		b.rows[j].idx--
	}
	b.dirty++
}

// update re-derives row after its raw content changed.
func (b *Buffer) update(row int) {
	b.rows[row].project(b.tabStop)
	b.dirty++
	b.cascade(row)
}

// highlightRow re-scans row i with the state carried from row i-1 and reports
// whether the row's own comment state changed.
func (b *Buffer) highlightRow(i int) bool {
	row := b.rows[i]
	carried := i > 0 && b.rows[i-1].commentOpen
	hl, open := syntax.Highlight(row.rendered, b.profile, carried)
	changed := open != row.commentOpen
	row.hl = hl
	row.commentOpen = open
	return changed
}

// cascade re-highlights the seeded rows in order. A row whose comment state
// changed pushes its successor onto the worklist; the walk ends once the list
// is empty. It returns the number of rows scanned.
func (b *Buffer) cascade(seeds ...int) int {
	work := make([]int, 0, len(seeds)+1)
	for _, s := range seeds {
		if s >= 0 && s < len(b.rows) {
			work = append(work, s)
		}
	}
	scanned := 0
	last := -1
	for len(work) > 0 {
		i := work[0]
		work = work[1:]
		if i <= last {
			continue
		}
		last = i
		scanned++
		if b.highlightRow(i) && i+1 < len(b.rows) && (len(work) == 0 || work[0] != i+1) {
			work = append([]int{i + 1}, work...)
		}
	}
	return scanned
}

func (b *Buffer) highlightAll() {
	for i := range b.rows {
		b.highlightRow(i)
	}
}
