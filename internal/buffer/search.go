package buffer

import (
	"bytes"

	"kilo-tui/internal/syntax"
)

// Direction of an incremental search step.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Match is a search hit. Col is the raw offset, RenderCol the rendered column.
type Match struct {
	Row       int
	Col       int
	RenderCol int
	Len       int
}

type overlay struct {
	row  int
	tags []syntax.Tag
}

// Session is the state of one incremental search. It lives only while the
// search prompt is open; End must be called when the prompt closes.
type Session struct {
	lastMatch int
	direction Direction
	saved     *overlay
}

// NewSession starts a search with no previous match.
func NewSession() *Session {
	return &Session{lastMatch: -1, direction: Forward}
}

// LastMatch returns the row of the previous match or -1.
func (s *Session) LastMatch() int { return s.lastMatch }

// Direction returns the direction of the last step.
func (s *Session) Direction() Direction { return s.direction }

// Reset forgets the previous match, so the next step scans from the top.
func (s *Session) Reset() {
	s.lastMatch = -1
	s.direction = Forward
}

// Advance restores the previous match overlay and looks for query in the
// rendered text of every row, starting after the last match and wrapping
// around in dir. Each row is checked at most once. On a hit the matched span
// is tagged TagMatch until the next step.
func (s *Session) Advance(b *Buffer, query string, dir Direction) (Match, bool) {
	s.restore(b)
	s.direction = dir
	if s.lastMatch == -1 {
		s.direction = Forward
	}
	if query == "" || b.NumRows() == 0 {
		return Match{}, false
	}

	step := 1
	if s.direction == Backward {
		step = -1
	}
	needle := []byte(query)
	n := b.NumRows()
	current := s.lastMatch
	for range n {
		current += step
		if current < 0 {
			current = n - 1
		} else if current >= n {
			current = 0
		}

		row := b.rows[current]
		at := bytes.Index(row.rendered, needle)
		if at < 0 {
			continue
		}
		s.lastMatch = current
		s.saved = &overlay{row: current, tags: append([]syntax.Tag(nil), row.hl...)}
		fill(row.hl[at:at+len(needle)], syntax.TagMatch)
		return Match{
			Row:       current,
			Col:       RenderedToRaw(row.raw, at, b.tabStop),
			RenderCol: at,
			Len:       len(needle),
		}, true
	}
	return Match{}, false
}

// End restores any outstanding overlay and resets the session.
func (s *Session) End(b *Buffer) {
	s.restore(b)
	s.Reset()
}

func (s *Session) restore(b *Buffer) {
	if s.saved == nil {
		return
	}
	saved := s.saved
	s.saved = nil
	row := b.Row(saved.row)
	if row == nil || len(row.hl) != len(saved.tags) {
		return
	}
	copy(row.hl, saved.tags)
}

func fill(hl []syntax.Tag, tag syntax.Tag) {
	for i := range hl {
		hl[i] = tag
	}
}
