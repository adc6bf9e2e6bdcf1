package qhf_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/qhfkit/internal/format"
	"github.com/joshuapare/qhfkit/internal/testutil"
	"github.com/joshuapare/qhfkit/pkg/qhf"
)

func TestDetect(t *testing.T) {
	assert.True(t, qhf.Detect(testutil.Conversation().Bytes()))
	assert.False(t, qhf.Detect([]byte("QH")))
	assert.False(t, qhf.Detect([]byte("PK\x03\x04")))
}

func TestDetectFile(t *testing.T) {
	good := testutil.WriteContainer(t, "good.qhf", testutil.Conversation().Bytes())
	ok, err := qhf.DetectFile(good)
	require.NoError(t, err)
	assert.True(t, ok)

	short := testutil.WriteContainer(t, "short.qhf", []byte("Q"))
	ok, err = qhf.DetectFile(short)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = qhf.DetectFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestParseAndLookup(t *testing.T) {
	data := testutil.NewBuilder("123456", "Alice").
		Add(testutil.Message{Timestamp: testutil.FixtureTime, Sent: true, Text: "hi"}).
		Bytes()

	h, err := qhf.Parse(data, qhf.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "123456", h.UIN())
	assert.Equal(t, "Alice", h.Nick())
	assert.Equal(t, uint32(1), h.MsgQuantity())

	m, err := h.Message(1)
	require.NoError(t, err)
	assert.Equal(t, "hi", m.Text())
	assert.True(t, m.Sent())

	_, err = h.Message(2)
	assert.True(t, errors.Is(err, qhf.ErrOutOfRange))
}

func TestParseErrors(t *testing.T) {
	_, err := qhf.Parse([]byte("not a history"), qhf.ParseOptions{})
	assert.ErrorIs(t, err, qhf.ErrNotQHF)

	data := testutil.NewBuilder("1", "n").Add(testutil.Message{Text: "x", BlockSize: 1 << 20}).Bytes()
	_, err = qhf.Parse(data, qhf.ParseOptions{})
	assert.ErrorIs(t, err, qhf.ErrTruncatedRecord)
}

func TestOutputFilename(t *testing.T) {
	h, err := qhf.Parse(testutil.Conversation().Bytes(), qhf.ParseOptions{})
	require.NoError(t, err)

	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, "123456 - 2024-05-06 07-08-09.txt", qhf.OutputFilename(h, now))

	b := testutil.NewBuilder("a/b:c", "n")
	h, err = qhf.Parse(b.Bytes(), qhf.ParseOptions{})
	require.NoError(t, err)
	assert.Equal(t, "a_b_c - 2024-05-06 07-08-09.txt", qhf.OutputFilename(h, now))

	h, err = qhf.Parse(testutil.NewBuilder("", "n").Bytes(), qhf.ParseOptions{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qhf.OutputFilename(h, now), "unknown - "))
}

func TestWriteTranscript(t *testing.T) {
	h, err := qhf.Parse(testutil.Conversation().Bytes(), qhf.ParseOptions{})
	require.NoError(t, err)

	dir := t.TempDir()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	path, err := qhf.WriteTranscript(h, dir, now, qhf.RenderOptions{OwnerLabel: "Owner"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "123456 - 2024-05-06 07-08-09.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "History conversation with Alice (123456)\n"))
	assert.Contains(t, string(data), "-- Owner (2009-02-13 23:31:30)\nhi\n\n")
}

type failingSink struct{}

func (failingSink) WriteDocument([]byte) error { return errors.New("disk full") }

func TestWriteDocumentWrapsSinkError(t *testing.T) {
	err := qhf.WriteDocument(failingSink{}, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestRenderJSON(t *testing.T) {
	h, err := qhf.Parse(testutil.Conversation().Bytes(), qhf.ParseOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, qhf.RenderJSON(&out, h, qhf.RenderOptions{}))
	assert.Contains(t, out.String(), `"uin": "123456"`)
	assert.Contains(t, out.String(), `"text": "привет"`)

	doc := qhf.NewDocument(h, qhf.RenderOptions{})
	assert.Len(t, doc.Messages, 3)
}

func TestInvalidTextDoesNotFailParse(t *testing.T) {
	data := testutil.NewBuilder("123456", "Alice").
		Add(testutil.Message{Encoded: format.Transform([]byte{0xc0})}).
		Add(testutil.Message{Text: "fine"}).
		Bytes()

	h, err := qhf.Parse(data, qhf.ParseOptions{})
	require.NoError(t, err)

	first, err := h.Message(1)
	require.NoError(t, err)
	assert.Equal(t, qhf.DefaultPlaceholder, first.Text())
	_, err = first.DecodeText()
	assert.ErrorIs(t, err, qhf.ErrDecode)

	second, err := h.Message(2)
	require.NoError(t, err)
	assert.Equal(t, "fine", second.Text())
}
