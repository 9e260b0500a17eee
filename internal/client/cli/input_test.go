package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "hello world\n", "hello world"},
		{"trims", "  padded \r\n", "padded"},
		{"eof after text", "lastline", "lastline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(rdr(tt.input), "Name?", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Name?\n> ", out.String())
		})
	}

	t.Run("empty input", func(t *testing.T) {
		var out bytes.Buffer
		_, err := GetSimpleText(rdr(""), "Name?", &out)
		assert.Error(t, err)
	})
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"crlf", "a\r\nb\r\n\r\n", "a\nb"},
		{"immediate blank", "\n", ""},
		{"eof without blank", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Enter text", &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	t.Run("ok", func(t *testing.T) {
		readPassword = func(int) ([]byte, error) { return []byte("secret123"), nil }
		var out bytes.Buffer
		pw, err := GetPassword(&out, "Password")
		require.NoError(t, err)
		assert.Equal(t, []byte("secret123"), pw)
		assert.Equal(t, "Password: \n", out.String())
	})

	t.Run("error", func(t *testing.T) {
		readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
		var out bytes.Buffer
		_, err := GetPassword(&out, "Password")
		assert.Error(t, err)
	})
}
