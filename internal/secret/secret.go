// Package secret generates random passwords for accounts created without one.
package secret

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// PasswordLen gives ~95 bits of entropy with Alphabet.
	PasswordLen = 16

	maxBufLen = 2048
)

// Alphabet is the default set of characters of generated passwords.
var Alphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

// ErrAlphabet is returned for alphabets shorter than 2 or longer than 256 characters.
var ErrAlphabet = errors.New("alphabet must have between 2 and 256 characters")

// Password returns a random password of PasswordLen characters from Alphabet.
func Password() (string, error) {
	return Generate(PasswordLen, Alphabet)
}

// Generate returns a random string of length characters drawn uniformly from alphabet.
// Random bytes that would bias the modulo are rejected.
func Generate(length int, alphabet []byte) (string, error) {
	n := len(alphabet)
	if n < 2 || n > 256 {
		return "", ErrAlphabet
	}

	if length <= 0 {
		return "", nil
	}

	// largest byte value that maps uniformly onto alphabet
	limit := 255 - (256 % n)

	buf := make([]byte, min(max(length*2, 16), maxBufLen))
	out := make([]byte, 0, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}

		for _, b := range buf {
			if int(b) > limit {
				continue
			}

			out = append(out, alphabet[int(b)%n])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
