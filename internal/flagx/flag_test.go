package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		owned []string
		want  []string
	}{
		{
			name:  "separate value",
			args:  []string{"-s", "http://salt", "-x", "1"},
			owned: []string{"-s"},
			want:  []string{"-s", "http://salt"},
		},
		{
			name:  "equals form",
			args:  []string{"-p=http://prover", "-x", "1"},
			owned: []string{"-p"},
			want:  []string{"-p=http://prover"},
		},
		{
			name:  "unknown flags dropped",
			args:  []string{"-x", "1", "--y=2", "positional"},
			owned: []string{"-c"},
			want:  []string{},
		},
		{
			name:  "trailing flag without value",
			args:  []string{"-c"},
			owned: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "next token is a flag, not a value",
			args:  []string{"-c", "-d", "db.sqlite"},
			owned: []string{"-c"},
			want:  []string{"-c"},
		},
		{
			name:  "repeated flag kept in order",
			args:  []string{"-c", "a.json", "-c", "b.json"},
			owned: []string{"-c"},
			want:  []string{"-c", "a.json", "-c", "b.json"},
		},
		{
			name:  "value that looks like a flag in equals form",
			args:  []string{"-config=--odd.json"},
			owned: []string{"-config"},
			want:  []string{"-config=--odd.json"},
		},
		{
			name:  "empty",
			args:  []string{},
			owned: []string{"-c"},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.owned))
		})
	}
}

func TestConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/etc/zk.json"}
		assert.Equal(t, "/etc/zk.json", ConfigPath())
	})

	t.Run("long form mixed with other flags", func(t *testing.T) {
		os.Args = []string{"bin", "-s", "http://salt", "-config", "/etc/zk.json"}
		assert.Equal(t, "/etc/zk.json", ConfigPath())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"bin", "-s", "x"}
		assert.Empty(t, ConfigPath())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"bin", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", ConfigPath())
	})
}
