package content

// DefaultBinarySampleSize is the number of bytes scanned for NUL when no size is configured.
// This matches Git's heuristic (8000 bytes since 2005).
const DefaultBinarySampleSize = 8000

// IsBinaryContent checks if content bytes contain binary data by looking for null bytes
// in the first sampleSize bytes. UTF-16 and UTF-32 BOMs mark text and skip the check.
func IsBinaryContent(content []byte, sampleSize int) bool {
	// Check for common text file BOMs (UTF-16, UTF-32)
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}

	if sampleSize <= 0 {
		sampleSize = DefaultBinarySampleSize
	}
	for i := range min(len(content), sampleSize) {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
