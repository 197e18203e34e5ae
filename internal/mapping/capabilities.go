package mapping

import "strings"

// variableLengthMarker opens a variable-length relationship: -[*1..3]->.
const variableLengthMarker = "[*"

// checkCapabilities rejects query shapes the translator does not handle.
// It looks only at the raw text, so it runs before any pattern or schema
// work and its error is never masked by a later one.
func checkCapabilities(raw string) error {
	if strings.Contains(raw, variableLengthMarker) {
		return newError(ErrCodeVariableLength,
			"variable-length traversals are not supported yet; recursive SQL translation is a future enhancement")
	}
	return nil
}
