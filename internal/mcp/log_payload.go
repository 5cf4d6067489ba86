package mcp

import (
	"encoding/json"
	"unicode/utf8"
)

const (
	// httpLogBodyLimit caps the bytes of HTTP bodies kept for debug logs.
	httpLogBodyLimit = 4096
	// hookLogPayloadLimit caps the rendered hook payload. Research output is large.
	hookLogPayloadLimit = 2048
)

// hookPayload renders a JSON payload for hook logging, truncated to hookLogPayloadLimit.
func hookPayload(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return "<unencodable payload>"
	}

	out, truncated := truncateForLog(data, hookLogPayloadLimit)
	if truncated {
		out += "...(truncated)"
	}
	return out
}

// truncateForLog keeps at most limit bytes of data, cut back to a UTF-8 rune boundary.
func truncateForLog(data []byte, limit int) (string, bool) {
	if limit <= 0 || len(data) <= limit {
		return string(data), false
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return string(data[:cut]), true
}
