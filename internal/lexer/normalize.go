package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize performs input normalization at the lexer boundary: strips a
// UTF-8 BOM if present, then applies Unicode NFC normalization, so
// lexically equivalent source produces identical token streams
// regardless of encoding variations. Kept byte-for-byte in approach with
// the teacher's internal/lexer/normalize.go.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}
