package plain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	for _, tt := range []struct {
		name     string
		input    string
		defvalue bool
		want     bool
	}{
		{name: "yes", input: "y\n", defvalue: false, want: true},
		{name: "no", input: "n\n", defvalue: true, want: false},
		{name: "default true", input: "\n", defvalue: true, want: true},
		{name: "default false", input: "\n", defvalue: false, want: false},
		{name: "garbage then yes", input: "maybe\nyes\n", defvalue: false, want: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out := bytes.NewBuffer(nil)
			p := New(WithIn(strings.NewReader(tt.input)), WithOut(out))
			got, err := p.Confirm("proceed?", tt.defvalue)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfirm_NoStdin(t *testing.T) {
	p := New(WithIn(nil))
	got, err := p.Confirm("proceed?", true)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestInput(t *testing.T) {
	out := bytes.NewBuffer(nil)
	p := New(WithIn(strings.NewReader("\n")), WithOut(out))
	got, err := p.Input("data dir:", "/var/lib/groundwork", false)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/groundwork", got)
}
