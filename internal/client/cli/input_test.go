package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scannerFromLines(lines ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	sc := scannerFromLines("  hello  ", "next")

	got, err := GetSimpleText(sc, "Say something", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
	assert.Equal(t, "Say something\n> ", out.String())

	got, err = GetSimpleText(sc, "again", &out)
	require.NoError(t, err)
	assert.Equal(t, "next", got)
}

func TestGetSimpleText_EOF(t *testing.T) {
	_, err := GetSimpleText(scannerFromLines(), "p", &bytes.Buffer{})
	require.ErrorIs(t, err, io.EOF)
}

func stubTerminal(t *testing.T, tty bool, secret string, err error) {
	t.Helper()
	origTerm, origRead := isTerminal, readSecret
	isTerminal = func(int) bool { return tty }
	readSecret = func(int) ([]byte, error) { return []byte(secret), err }
	t.Cleanup(func() { isTerminal, readSecret = origTerm, origRead })
}

func TestGetRedirectURL_NonTerminalReadsLine(t *testing.T) {
	stubTerminal(t, false, "", nil)
	got, err := GetRedirectURL(scannerFromLines("http://localhost:1234/#id_token=x"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234/#id_token=x", got)
}

func TestGetRedirectURL_TerminalReadsHidden(t *testing.T) {
	stubTerminal(t, true, " http://localhost:1234/#id_token=y ", nil)
	var out bytes.Buffer
	got, err := GetRedirectURL(scannerFromLines(), &out)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234/#id_token=y", got)
	assert.Contains(t, out.String(), "input hidden")
}

func TestGetRedirectURL_TerminalError(t *testing.T) {
	stubTerminal(t, true, "", errors.New("tty gone"))
	_, err := GetRedirectURL(scannerFromLines(), &bytes.Buffer{})
	require.Error(t, err)
}
