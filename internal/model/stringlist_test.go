package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	tests := []struct {
		name string
		list StringList
		want string
	}{
		{name: "nil list stored as empty array", list: nil, want: "[]"},
		{name: "empty list", list: StringList{}, want: "[]"},
		{name: "order preserved", list: StringList{"b", "a", "c"}, want: `["b","a","c"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.list.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestStringListScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    StringList
		wantErr bool
	}{
		{name: "null", src: nil, want: StringList{}},
		{name: "canonical array", src: []byte(`["x","y"]`), want: StringList{"x", "y"}},
		{name: "canonical array as string", src: `["x"]`, want: StringList{"x"}},
		{name: "legacy json string", src: []byte(`"a, b,c"`), want: StringList{"a", "b", "c"}},
		{name: "legacy bare text", src: []byte(`laporan,keuangan`), want: StringList{"laporan", "keuangan"}},
		{name: "empty text", src: []byte(``), want: StringList{}},
		{name: "malformed array", src: []byte(`[1,2]`), wantErr: true},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l StringList
			err := l.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, l)
		})
	}
}

func TestStringListRoundTrip(t *testing.T) {
	in := StringList{"pedoman", "teknis", "2025"}

	v, err := in.Value()
	require.NoError(t, err)

	var out StringList
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}
