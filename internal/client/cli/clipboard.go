package cli

import (
	"github.com/atotto/clipboard"
)

// Clipboard буфер обмена системы
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

// SystemClipboard returns the OS clipboard backed by atotto/clipboard
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

func (systemClipboard) ReadAll() (string, error) {
	return clipboard.ReadAll()
}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
