package mdnum

import "bytes"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// line is one source line without its terminator. offset is the byte
// position of the line start in the source it was split from.
type line struct {
	text   string
	eol    string
	offset int
}

func splitLines(src []byte) []line {
	var lines []line
	pos := 0
	for pos < len(src) {
		i := bytes.IndexByte(src[pos:], '\n')
		if i < 0 {
			lines = append(lines, line{text: string(src[pos:]), offset: pos})
			break
		}
		end := pos + i
		text := src[pos:end]
		eol := "\n"
		if len(text) > 0 && text[len(text)-1] == '\r' {
			text = text[:len(text)-1]
			eol = "\r\n"
		}
		lines = append(lines, line{text: string(text), eol: eol, offset: pos})
		pos = end + 1
	}
	return lines
}

func joinLines(prefix []byte, lines []line) []byte {
	size := len(prefix)
	for _, l := range lines {
		size += len(l.text) + len(l.eol)
	}
	out := make([]byte, 0, size)
	out = append(out, prefix...)
	for _, l := range lines {
		out = append(out, l.text...)
		out = append(out, l.eol...)
	}
	return out
}

func trimBOM(b []byte) ([]byte, []byte) {
	if bytes.HasPrefix(b, utf8BOM) {
		return b[:len(utf8BOM)], b[len(utf8BOM):]
	}
	return nil, b
}
