package pretty

const hexDigits = "0123456789abcdef"

// appendChar appends the escaped form of c. Printable ASCII is kept except
// the double quote; \0 \n \r \t \a use their mnemonics; everything else is
// \xHH, \uHHHH or \UHHHHHHHH depending on the value.
func appendChar(dst []byte, c rune) []byte {
	u := uint32(c)
	if u >= 0x20 && u <= 0x7e {
		if u == '"' {
			return append(dst, '\\', '"')
		}
		return append(dst, byte(u))
	}

	switch u {
	case 0:
		return append(dst, '\\', '0')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	case '\a':
		return append(dst, '\\', 'a')
	}

	switch {
	case u <= 0xff:
		return appendHex(append(dst, '\\', 'x'), u, 2)
	case u <= 0xffff:
		return appendHex(append(dst, '\\', 'u'), u, 4)
	default:
		return appendHex(append(dst, '\\', 'U'), u, 8)
	}
}

func appendHex(dst []byte, u uint32, width int) []byte {
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[(u>>uint(shift))&0xf])
	}
	return dst
}

// appendString escapes s byte by byte between double quotes.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		dst = appendChar(dst, rune(s[i]))
	}
	return append(dst, '"')
}

// appendWideString escapes rs between L"...".
func appendWideString(dst []byte, rs []rune) []byte {
	dst = append(dst, 'L', '"')
	for _, r := range rs {
		dst = appendChar(dst, r)
	}
	return append(dst, '"')
}
