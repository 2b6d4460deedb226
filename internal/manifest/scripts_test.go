package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeScripts(t *testing.T) {
	tests := []struct {
		name      string
		existing  []Script
		additions []Script
		removals  []string
		want      []Script
	}{
		{
			name:      "empty existing",
			additions: []Script{{Name: "a", Command: "1"}, {Name: "b", Command: "2"}},
			want:      []Script{{Name: "a", Command: "1"}, {Name: "b", Command: "2"}},
		},
		{
			name:      "additions win in place",
			existing:  []Script{{Name: "start", Command: "node src/"}, {Name: "custom", Command: "z"}},
			additions: []Script{{Name: "build", Command: "make"}, {Name: "start", Command: "electron ."}},
			want:      []Script{{Name: "start", Command: "electron ."}, {Name: "custom", Command: "z"}, {Name: "build", Command: "make"}},
		},
		{
			name:      "removals apply to both sides",
			existing:  []Script{{Name: "eslint", Command: "x"}, {Name: "custom", Command: "z"}},
			additions: []Script{{Name: "mocha", Command: "y"}, {Name: "test", Command: "t"}},
			removals:  []string{"eslint", "mocha"},
			want:      []Script{{Name: "custom", Command: "z"}, {Name: "test", Command: "t"}},
		},
		{
			name:      "an addition replaces a non-string command",
			existing:  []Script{{Name: "start", Command: "1", Raw: "1"}, {Name: "flags", Command: `{"a":1}`, Raw: `{"a":1}`}},
			additions: []Script{{Name: "start", Command: "electron ."}},
			want:      []Script{{Name: "start", Command: "electron ."}, {Name: "flags", Command: `{"a":1}`, Raw: `{"a":1}`}},
		},
		{
			name:     "nothing to add",
			existing: []Script{{Name: "custom", Command: "z"}},
			want:     []Script{{Name: "custom", Command: "z"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeScripts(tt.existing, tt.additions, tt.removals)
			if len(tt.want) == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMergeScripts_DoesNotMutateInputs(t *testing.T) {
	existing := []Script{{Name: "start", Command: "node src/"}}
	additions := []Script{{Name: "start", Command: "electron ."}}

	_ = MergeScripts(existing, additions, []string{"start"})

	require.Equal(t, []Script{{Name: "start", Command: "node src/"}}, existing)
	require.Equal(t, []Script{{Name: "start", Command: "electron ."}}, additions)
}

func TestElectronScripts_Table(t *testing.T) {
	want := []string{
		"test", "check:lint", "check:mocha", "build", "build:webpack", "build:webpack:verbose",
		"prebuild:platform", "build:platform", "build:platform:linux", "build:platform:win",
		"build:platform:all", "start", "package", "package:all", "package:win", "package:linux",
		"rebuild",
	}

	names := make([]string, 0, len(ElectronScripts))
	for _, s := range ElectronScripts {
		names = append(names, s.Name)
		require.NotEmpty(t, s.Command, s.Name)
	}
	require.Equal(t, want, names)
}
