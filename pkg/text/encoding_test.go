package text

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name     string
		wantUTF8 bool
		wantErr  bool
	}{
		{name: "utf-8", wantUTF8: true},
		{name: "UTF8", wantUTF8: true},
		{name: "", wantUTF8: true},
		{name: "windows-1251"},
		{name: "cp1251"},
		{name: "latin1"},
		{name: "koi8-r"},
		{name: "no-such-encoding", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := LookupEncoding(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown encoding")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, enc)
			assert.Equal(t, tt.wantUTF8, IsUTF8(enc))
		})
	}
}

func TestEncodingRoundTrip(t *testing.T) {
	enc, err := LookupEncoding("windows-1251")
	require.NoError(t, err)

	var encoded bytes.Buffer
	w := NewWriter(&encoded, enc)
	_, err = io.WriteString(w, "привет, мир")
	require.NoError(t, err)
	require.NoError(t, w.Close(), "closing flushes pending bytes")

	assert.Len(t, encoded.Bytes(), len([]rune("привет, мир")), "windows-1251 is one byte per rune")

	decoded, err := io.ReadAll(NewReader(&encoded, enc))
	require.NoError(t, err)
	assert.Equal(t, "привет, мир", string(decoded))
}

func TestUTF8PassesThrough(t *testing.T) {
	enc, err := LookupEncoding("utf-8")
	require.NoError(t, err)

	raw := "caf\xe9 bytes stay as they are"
	got, err := io.ReadAll(NewReader(strings.NewReader(raw), enc))
	require.NoError(t, err)
	assert.Equal(t, raw, string(got))

	var out bytes.Buffer
	w := NewWriter(&out, enc)
	_, err = io.WriteString(w, raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, raw, out.String())
}
