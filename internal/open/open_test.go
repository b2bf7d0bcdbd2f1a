package open

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditorCommand(t *testing.T) {
	tests := []struct {
		editor string
		line   int
		want   []string
	}{
		{"nvim", 12, []string{"nvim", "+12", "/tmp/x.txt"}},
		{"/usr/bin/vim", 3, []string{"/usr/bin/vim", "+3", "/tmp/x.txt"}},
		{"code", 7, []string{"code", "--goto", "/tmp/x.txt:7"}},
		{"less", 0, []string{"less", "-R", "+1", "/tmp/x.txt"}},
		{"nano", 9, []string{"nano", "/tmp/x.txt"}},
	}
	for _, tt := range tests {
		t.Run(tt.editor, func(t *testing.T) {
			cmd := editorCommand(tt.editor, "/tmp/x.txt", tt.line)
			assert.Equal(t, tt.want, cmd.Args)
		})
	}
}

func TestText_EditorFailure(t *testing.T) {
	t.Setenv("EDITOR", "false")

	assert.Error(t, Text("cha-test-*.txt", "hello\n", 1))
}
