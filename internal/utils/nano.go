package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

var (
	tokenSize     = 13
	tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// FileToken returns the unique lower-alphanumeric token embedded in stored
// attachment names.
func FileToken() string {
	return gonanoid.MustGenerate(tokenAlphabet, tokenSize)
}
