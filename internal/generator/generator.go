// Package generator produces random passwords from configurable character
// sets and rates their strength.
package generator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Наборы символов
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Numbers   = "0123456789"
	Symbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// SimilarChars легко спутать визуально
	SimilarChars = "il1Lo0O"
)

// DefaultLength длина пароля по умолчанию
const DefaultLength = 16

var (
	// ErrNoCharset returned when every character set is disabled
	ErrNoCharset = errors.New("at least one character set must be selected")
	// ErrInvalidLength returned for length < 1
	ErrInvalidLength = errors.New("length must be at least 1")
)

// Options selects the character sets for Generate
type Options struct {
	Length         int
	Uppercase      bool
	Lowercase      bool
	Numbers        bool
	Symbols        bool
	ExcludeSimilar bool
}

// DefaultOptions returns all sets enabled, similar characters kept
func DefaultOptions() Options {
	return Options{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Charset builds the alphabet described by opts
func (opts Options) Charset() string {
	var sb strings.Builder
	if opts.Uppercase {
		sb.WriteString(Uppercase)
	}
	if opts.Lowercase {
		sb.WriteString(Lowercase)
	}
	if opts.Numbers {
		sb.WriteString(Numbers)
	}
	if opts.Symbols {
		sb.WriteString(Symbols)
	}

	charset := sb.String()
	if opts.ExcludeSimilar {
		charset = strings.Map(func(r rune) rune {
			if strings.ContainsRune(SimilarChars, r) {
				return -1
			}
			return r
		}, charset)
	}
	return charset
}

// Generate returns a password of opts.Length characters drawn uniformly
// from the selected sets using crypto/rand.
func Generate(opts Options) (string, error) {
	if opts.Length < 1 {
		return "", ErrInvalidLength
	}

	charset := opts.Charset()
	if charset == "" {
		return "", ErrNoCharset
	}

	limit := big.NewInt(int64(len(charset)))
	out := make([]byte, opts.Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random: %w", err)
		}
		out[i] = charset[n.Int64()]
	}

	return string(out), nil
}

// Strength оценка надежности пароля
type Strength string

const (
	Weak   Strength = "Weak"
	Medium Strength = "Medium"
	Strong Strength = "Strong"
)

// Score counts length thresholds (12, 16) and character classes present
func Score(pwd string) int {
	score := 0
	if len(pwd) >= 12 {
		score++
	}
	if len(pwd) >= 16 {
		score++
	}

	var lower, upper, digit, other bool
	for _, r := range pwd {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, present := range []bool{lower, upper, digit, other} {
		if present {
			score++
		}
	}
	return score
}

// Rate maps Score to Weak (<=2), Medium (<=4) or Strong
func Rate(pwd string) Strength {
	switch score := Score(pwd); {
	case score <= 2:
		return Weak
	case score <= 4:
		return Medium
	default:
		return Strong
	}
}
