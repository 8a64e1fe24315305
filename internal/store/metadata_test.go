package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	s, ok := ValueOf("hello").AsString()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)

	n, ok := ValueOf(42).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 42.0, n)

	b, ok := ValueOf(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	// Composites are stringified.
	s, ok = ValueOf([]int{1, 2}).AsString()
	assert.True(t, ok)
	assert.Equal(t, "[1 2]", s)

	s, ok = ValueOf(nil).AsString()
	assert.True(t, ok)
	assert.Equal(t, "", s)
}

func TestValueKindMismatch(t *testing.T) {
	_, ok := String("x").AsNumber()
	assert.False(t, ok)
	_, ok = Int(3).AsBool()
	assert.False(t, ok)
}

func TestValueDisplay(t *testing.T) {
	assert.Equal(t, "hello", String("hello").String())
	assert.Equal(t, "3", Int(3).String())
	assert.Equal(t, "2.5", Number(2.5).String())
	assert.Equal(t, "true", Bool(true).String())
}

func TestMetadataJSONRoundTrip(t *testing.T) {
	meta := Metadata{
		KeySource:     String("resume.pdf"),
		KeyChunkIndex: Int(4),
		KeySanitized:  Bool(true),
	}

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	var back Metadata
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, "resume.pdf", back.StringOr(KeySource, ""))
	idx, ok := back[KeyChunkIndex].AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 4.0, idx)
	sanitized, ok := back[KeySanitized].AsBool()
	assert.True(t, ok)
	assert.True(t, sanitized)
}

func TestMetadataStringOr(t *testing.T) {
	meta := Metadata{KeyDocType: String(DocTypeResume), KeyChunkIndex: Int(2)}
	assert.Equal(t, DocTypeResume, meta.StringOr(KeyDocType, "x"))
	assert.Equal(t, "2", meta.StringOr(KeyChunkIndex, "x"))
	assert.Equal(t, "x", meta.StringOr("missing", "x"))
}

func TestMetadataClone(t *testing.T) {
	meta := Metadata{KeySource: String("a.txt")}
	clone := meta.Clone()
	clone[KeySource] = String("b.txt")
	clone["extra"] = Int(1)

	assert.Equal(t, "a.txt", meta.StringOr(KeySource, ""))
	_, present := meta["extra"]
	assert.False(t, present)
}
