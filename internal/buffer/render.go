package buffer

// Project expands tabs of raw to spaces up to the next multiple of tabStop.
// Every other byte is copied unchanged.
func Project(raw []byte, tabStop int) []byte {
	tabStop = normalizeTabStop(tabStop)
	tabs := 0
	for _, c := range raw {
		if c == '\t' {
			tabs++
		}
	}
	out := make([]byte, 0, len(raw)+tabs*(tabStop-1))
	for _, c := range raw {
		if c != '\t' {
			out = append(out, c)
			continue
		}
		out = append(out, ' ')
		for len(out)%tabStop != 0 {
			out = append(out, ' ')
		}
	}
	return out
}

// RawToRendered converts a raw offset into the rendered column.
func RawToRendered(raw []byte, offset, tabStop int) int {
	tabStop = normalizeTabStop(tabStop)
	offset = clamp(offset, 0, len(raw))
	col := 0
	for _, c := range raw[:offset] {
		if c == '\t' {
			col += (tabStop - 1) - (col % tabStop)
		}
		col++
	}
	return col
}

// RenderedToRaw returns the raw offset of the first character whose rendered
// span ends past col, or len(raw) when there is none.
func RenderedToRaw(raw []byte, col, tabStop int) int {
	tabStop = normalizeTabStop(tabStop)
	cur := 0
	for i, c := range raw {
		if c == '\t' {
			cur += (tabStop - 1) - (cur % tabStop)
		}
		cur++
		if cur > col {
			return i
		}
	}
	return len(raw)
}

func normalizeTabStop(tabStop int) int {
	if tabStop < 1 {
		return 1
	}
	return tabStop
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
