package project

// The configuration dialect is JSON with comments and trailing commas.
// stripJSONC rewrites such a document into strict JSON by blanking comments
// and dropping trailing commas, preserving offsets where possible so the
// standard decoder's error positions stay meaningful.

// stripJSONC returns src with // and /* */ comments replaced by spaces
// (newlines preserved) and trailing commas before } or ] removed.
func stripJSONC(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	inString := false
	for i := 0; i < len(out); i++ {
		c := out[i]

		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '/':
			if i+1 >= len(out) {
				continue
			}
			switch out[i+1] {
			case '/':
				for i < len(out) && out[i] != '\n' {
					out[i] = ' '
					i++
				}
			case '*':
				out[i], out[i+1] = ' ', ' '
				i += 2
				for i < len(out) {
					if out[i] == '*' && i+1 < len(out) && out[i+1] == '/' {
						out[i], out[i+1] = ' ', ' '
						i++
						break
					}
					if out[i] != '\n' {
						out[i] = ' '
					}
					i++
				}
			}
		}
	}

	return dropTrailingCommas(out)
}

// dropTrailingCommas blanks any comma whose next non-whitespace byte closes
// an object or array. Comments have already been blanked by the caller.
func dropTrailingCommas(src []byte) []byte {
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]

		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(src) && isJSONSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				src[i] = ' '
			}
		}
	}
	return src
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
