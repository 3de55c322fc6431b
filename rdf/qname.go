package rdf

// isQNameLocal reports whether value can be written as the local part of a
// prefixed name (ASCII subset of PN_LOCAL, including %XX escapes).
func isQNameLocal(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch == '%' {
			if i+2 >= len(value) {
				return false
			}
			if !isHexDigit(value[i+1]) || !isHexDigit(value[i+2]) {
				return false
			}
			i += 2
			continue
		}
		if i == 0 {
			if !isNameStartChar(ch) && !isDigit(ch) {
				return false
			}
		} else if !isNameChar(ch) {
			return false
		}
	}
	return value[len(value)-1] != '.'
}

// isValidPrefixName reports whether prefix is a valid PN_PREFIX label.
// The empty prefix is valid.
func isValidPrefixName(prefix string) bool {
	if prefix == "" {
		return true
	}
	if !isLetter(prefix[0]) {
		return false
	}
	for i := 1; i < len(prefix); i++ {
		if !isNameChar(prefix[i]) {
			return false
		}
	}
	return prefix[len(prefix)-1] != '.'
}

// IsValidPrefixName reports whether prefix can be declared with @prefix.
func IsValidPrefixName(prefix string) bool {
	return isValidPrefixName(prefix)
}

func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'A' && ch <= 'F') || (ch >= 'a' && ch <= 'f')
}

func isNameStartChar(ch byte) bool {
	return isLetter(ch) || ch == '_'
}

func isNameChar(ch byte) bool {
	return isNameStartChar(ch) || isDigit(ch) || ch == '-' || ch == '.'
}
