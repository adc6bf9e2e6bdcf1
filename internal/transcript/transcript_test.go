package transcript

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/qhfkit/internal/format"
	"github.com/joshuapare/qhfkit/internal/reader"
	"github.com/joshuapare/qhfkit/internal/testutil"
	"github.com/joshuapare/qhfkit/pkg/types"
)

func parseConversation(t *testing.T) *types.History {
	t.Helper()
	h, err := reader.Parse(testutil.Conversation().Bytes(), types.ParseOptions{})
	require.NoError(t, err)
	return h
}

func TestWriteText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteText(&out, parseConversation(t), Options{}))

	want := "History conversation with Alice (123456)\n" +
		"Contains 3 message(s)\n" +
		"\n" +
		"-- Me (2009-02-13 23:31:30)\nhi\n\n" +
		"-- Alice (2009-02-13 23:32:30)\nhello, Me\n\n" +
		"-- Me (2009-02-13 23:33:30)\nпривет\n\n"
	assert.Equal(t, want, out.String())
}

func TestWriteTextOptions(t *testing.T) {
	loc := time.FixedZone("MSK", 3*60*60)
	var out bytes.Buffer
	require.NoError(t, WriteText(&out, parseConversation(t), Options{
		OwnerLabel: "Owner",
		TimeLayout: time.RFC3339,
		Location:   loc,
	}))
	assert.Contains(t, out.String(), "-- Owner (2009-02-14T02:31:30+03:00)\nhi\n")
	assert.Contains(t, out.String(), "-- Alice (2009-02-14T02:32:30+03:00)\nhello, Me\n")
}

func TestWriteTextPlaceholder(t *testing.T) {
	data := testutil.NewBuilder("1", "Bob").
		Add(testutil.Message{Text: "ok"}).
		Add(testutil.Message{Encoded: format.Transform([]byte{0xff, 0xfe})}).
		Bytes()
	h, err := reader.Parse(data, types.ParseOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteText(&out, h, Options{}))
	assert.Contains(t, out.String(), "-- Bob (1970-01-01 00:00:00)\nok\n\n")
	assert.Contains(t, out.String(), "\n"+types.DefaultPlaceholder+"\n\n")
}

func TestWriteTextEmpty(t *testing.T) {
	h, err := reader.Parse(testutil.NewBuilder("9", "Zed").Bytes(), types.ParseOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteText(&out, h, Options{}))
	assert.Equal(t, "History conversation with Zed (9)\nContains 0 message(s)\n\n", out.String())
}

func TestWriteJSON(t *testing.T) {
	data := testutil.NewBuilder("123456", "Alice").
		Add(testutil.Message{StoredNumber: 5, Timestamp: testutil.FixtureTime, Sent: true, Text: "hi"}).
		Add(testutil.Message{StoredNumber: 5, Encoded: []byte{0x00}}).
		Bytes()
	h, err := reader.Parse(data, types.ParseOptions{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteJSON(&out, h, Options{}))

	var doc Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "123456", doc.UIN)
	assert.Equal(t, "Alice", doc.Nick)
	assert.Equal(t, uint32(2), doc.MsgQuantity)
	require.Len(t, doc.Messages, 2)

	first := doc.Messages[0]
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, uint32(5), first.StoredNumber)
	assert.Equal(t, "Me", first.Sender)
	assert.Equal(t, "hi", first.Text)
	assert.Empty(t, first.DecodeError)
	assert.True(t, first.Time.Equal(time.Unix(int64(testutil.FixtureTime), 0)))

	second := doc.Messages[1]
	assert.Equal(t, 2, second.Seq)
	assert.Equal(t, "Alice", second.Sender)
	assert.Equal(t, types.DefaultPlaceholder, second.Text)
	assert.NotEmpty(t, second.DecodeError)
}
