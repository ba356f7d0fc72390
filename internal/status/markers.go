package status

import "bytes"

// conflictStart is the token git places at the start of every conflict hunk.
var conflictStart = []byte("<<<<<<<")

// binarySniffLen matches git's own heuristic: a NUL within the first 8000
// bytes marks the content as binary.
const binarySniffLen = 8000

// CountMarkers counts conflict hunk starts in content. Only the start token
// is counted; separator and end markers are ignored, and no well-formedness
// is enforced, so unbalanced markers still count every start found. Zero is
// a meaningful result: the user may have resolved the text while the index
// entry is still unmerged.
func CountMarkers(content []byte) int {
	count := 0
	for line := range bytes.Lines(content) {
		if bytes.HasPrefix(line, conflictStart) {
			count++
		}
	}
	return count
}

// IsBinary reports whether content should be treated as binary rather than
// marker-bearing text.
func IsBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) != -1
}
