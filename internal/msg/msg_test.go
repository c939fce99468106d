package msg

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &IndentWriter{Indent: "  ", W: &buf}

	n, err := w.Write([]byte("gcc main.c -o app\nmain.c: In function"))
	require.NoError(t, err)
	assert.Equal(t, 37, n)

	_, err = w.Write([]byte(" 'main':\n"))
	require.NoError(t, err)

	assert.Equal(t, "  gcc main.c -o app\n  main.c: In function 'main':\n", buf.String())
}
