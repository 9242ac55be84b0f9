package iocli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestStream_PrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader(""), &out)

	s.Println("hello", "world")
	s.Printf("test %d %s", 1, "abc")
	_, err := s.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc!", out.String())
}

func TestStream_ReadInputSequential(t *testing.T) {
	var out bytes.Buffer
	s := NewStream(strings.NewReader("first\r\nsecond\nlast"), &out)

	first, err := s.ReadInput("A: ")
	require.NoError(t, err)
	second, err := s.ReadInput("B: ")
	require.NoError(t, err)
	last, err := s.ReadPassword("C: ")
	require.NoError(t, err)

	assert.Equal(t, "first", first)
	assert.Equal(t, "second", second)
	assert.Equal(t, "last", last)
	assert.Equal(t, "A: B: C: ", out.String())

	_, err = s.ReadInput("D: ")
	assert.ErrorIs(t, err, io.EOF)
}

// Тест ReadInput: читаем из pipe вместо os.Stdin
func TestStdio_ReadInputFromPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("user input\n"))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()
	os.Stdin = r

	stdio := NewStdio()
	result, err := stdio.ReadInput("")
	assert.NoError(t, err)
	assert.Equal(t, "user input", result)
}

func TestFormatter_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.Equal(t, "'alice'", Highlight.Sprint("alice"))
	assert.Equal(t, "(hint)", Muted.Sprintf("%s", "hint"))
	assert.Equal(t, "done", Success.Sprint("done"))
	assert.Equal(t, "`passvault signin`", Code.Sprint("passvault signin"))
}
