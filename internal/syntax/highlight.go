package syntax

import (
	"bytes"
	"strings"
)

// Tag classifies a single rendered character for display.
type Tag uint8

const (
	TagNormal Tag = iota
	TagComment
	TagBlockComment
	TagKeyword1
	TagKeyword2
	TagString
	TagNumber
	TagMatch
)

// String returns a short name of the tag, used in logs and tests.
func (t Tag) String() string {
	switch t {
	case TagNormal:
		return "normal"
	case TagComment:
		return "comment"
	case TagBlockComment:
		return "block-comment"
	case TagKeyword1:
		return "keyword1"
	case TagKeyword2:
		return "keyword2"
	case TagString:
		return "string"
	case TagNumber:
		return "number"
	case TagMatch:
		return "match"
	default:
		return "unknown"
	}
}

const separators = ",.()+-/*=~%<>[]:;{}"

// IsSeparator reports whether c ends a word for keyword and number detection.
// The zero byte stands for the end of the row.
func IsSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	}
	return strings.IndexByte(separators, c) >= 0
}

// Highlight scans a rendered row and returns one tag per byte together with
// the block-comment state at the end of the row. open is the state carried
// from the previous row. A nil profile tags everything as normal.
func Highlight(rendered []byte, p *Profile, open bool) ([]Tag, bool) {
	hl := make([]Tag, len(rendered))
	if p == nil {
		return hl, false
	}

	lineComment := []byte(p.LineComment)
	blockStart := []byte(p.BlockStart)
	blockEnd := []byte(p.BlockEnd)
	hasBlock := len(blockStart) > 0 && len(blockEnd) > 0

	prevSep := true
	var inString byte
	inComment := open && hasBlock
	dotSeen := false

	i := 0
	for i < len(rendered) {
		c := rendered[i]
		prevHL := TagNormal
		if i > 0 {
			prevHL = hl[i-1]
		}
		rest := rendered[i:]

		if len(lineComment) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(rest, lineComment) {
				fill(hl[i:], TagComment)
				break
			}
		}

		if hasBlock && inString == 0 {
			if inComment {
				if bytes.HasPrefix(rest, blockEnd) {
					fill(hl[i:i+len(blockEnd)], TagBlockComment)
					i += len(blockEnd)
					inComment = false
					prevSep = true
					continue
				}
				hl[i] = TagBlockComment
				i++
				continue
			}
			if bytes.HasPrefix(rest, blockStart) {
				fill(hl[i:i+len(blockStart)], TagBlockComment)
				i += len(blockStart)
				inComment = true
				continue
			}
		}

		if p.Flags&HighlightStrings != 0 {
			if inString != 0 {
				hl[i] = TagString
				if c == '\\' && i+1 < len(rendered) {
					hl[i+1] = TagString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			}
			if c == '"' || c == '\'' {
				inString = c
				hl[i] = TagString
				i++
				continue
			}
		}

		if p.Flags&HighlightNumbers != 0 {
			if isDigit(c) && (prevSep || prevHL == TagNumber) {
				if prevHL != TagNumber {
					dotSeen = false
				}
				hl[i] = TagNumber
				i++
				prevSep = false
				continue
			}
			if c == '.' && prevHL == TagNumber && !dotSeen {
				dotSeen = true
				hl[i] = TagNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if kw, ok := p.matchKeyword(rendered, i); ok {
				tag := TagKeyword1
				if kw.Class == Secondary {
					tag = TagKeyword2
				}
				fill(hl[i:i+len(kw.Word)], tag)
				i += len(kw.Word)
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		i++
	}

	return hl, inComment
}

func fill(hl []Tag, tag Tag) {
	for i := range hl {
		hl[i] = tag
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
