package catalog

// LabelSuffix returns the media identifier appended to auto-numbered
// barcode labels.
func LabelSuffix(m MediaCode, worm bool) string {
	switch m {
	case MediaLTO1, MediaLTO2, MediaLTO3, MediaLTO4, MediaLTO5, MediaLTO6:
		gen := int(m - MediaLTO1)
		if worm {
			return "L" + string(rune('R'+gen))
		}
		return "L" + string(rune('1'+gen))
	case MediaSDLT1, MediaSDLT2, MediaSDLT3:
		return "S"
	}

	return ""
}

// LabelLength returns the full barcode length a media type requires, or 0
// when the type has no fixed length.
func LabelLength(m MediaCode) int {
	switch m {
	case MediaLTO1, MediaLTO2, MediaLTO3, MediaLTO4, MediaLTO5, MediaLTO6:
		return 8
	case MediaSDLT1, MediaSDLT2, MediaSDLT3:
		return 7
	case MediaDLT4, MediaVSTape:
		return 6
	}

	return 0
}
