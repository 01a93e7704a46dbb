package at

import (
	"bytes"
	"strings"
)

// DecodeASCII converts a raw response payload to text. The payload is
// truncated at the first NUL byte (the module zero-pads short frames) and
// any remaining non-ASCII bytes are dropped.
func DecodeASCII(p []byte) string {
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	var sb strings.Builder
	sb.Grow(len(p))
	for _, b := range p {
		if b < 0x80 {
			sb.WriteByte(b)
		}
	}
	return sb.String()
}

// ParseValue extracts the value from a GET response. The module echoes the
// command code ahead of the value ("VR1.0.0\r\n" for VR), so the CR/LF is
// stripped and the echoed code removed case-insensitively. When the prefix
// does not match (error text, unexpected firmware output) the whole trimmed
// text is returned so callers still see what arrived.
func ParseValue(code, resp string) string {
	s := strings.Trim(resp, "\r\n")
	cu := strings.ToUpper(code)
	if len(s) >= len(cu) && strings.EqualFold(s[:len(cu)], cu) {
		s = s[len(cu):]
	}
	return strings.TrimSpace(s)
}

// IsErrorResponse reports whether a UART response line is the module's
// rejection vocabulary rather than a value.
func IsErrorResponse(s string) bool {
	u := strings.ToUpper(s)
	return strings.Contains(u, "ER") || strings.Contains(u, "INVALID")
}
