package doctext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes([]byte("Angebot Nr. 2024-117\nLaptop Pro 15\n"))
	require.NoError(t, err)
	assert.Equal(t, "Angebot Nr. 2024-117\nLaptop Pro 15\n", text)
}

func TestFromBytesRejectsBinary(t *testing.T) {
	_, err := FromBytes([]byte{0xff, 0xfe, 0x00, 0x01, 0x80})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFromBytesCorruptPDF(t *testing.T) {
	_, err := FromBytes([]byte("%PDF-1.7\nthis is not a real pdf body"))
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestFromReader(t *testing.T) {
	text, err := FromReader(strings.NewReader("offer text"))
	require.NoError(t, err)
	assert.Equal(t, "offer text", text)
}

func TestFromBytesWithHint(t *testing.T) {
	t.Run("text hint accepts utf8", func(t *testing.T) {
		text, err := FromBytesWithHint([]byte("hello"), "text/plain; charset=utf-8")
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	})

	t.Run("pdf hint with text body", func(t *testing.T) {
		_, err := FromBytesWithHint([]byte("not a pdf"), "application/pdf")
		assert.ErrorIs(t, err, ErrCorruptDocument)
	})

	t.Run("unknown content type", func(t *testing.T) {
		_, err := FromBytesWithHint([]byte("<docx/>"), "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})
}

func TestMetadataRequiresPDF(t *testing.T) {
	_, err := Metadata([]byte("plain text"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
