package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"shellmenu/internal/shellfake"
	"shellmenu/internal/types"
)

func TestIdentifierBuilderAbsoluteKeepsOrder(t *testing.T) {
	shell := shellfake.New()
	builder := NewIdentifierBuilder(shell)

	ids, err := builder.BuildAbsolute(types.Selection{
		fileEntry(`C:\b\g.txt`),
		fileEntry(`C:\a\f.txt`),
	})
	require.NoError(t, err)
	require.Equal(t, 2, ids.Len())
	if diff := cmp.Diff([]string{`C:\b\g.txt`, `C:\a\f.txt`}, shell.Parsed); diff != "" {
		t.Fatalf("unexpected parse order (-want +got):\n%s", diff)
	}

	ids.Release()
	ids.Release()
	require.Empty(t, shell.Leaks())
}

func TestIdentifierBuilderRelativeUsesNames(t *testing.T) {
	shell := shellfake.New()
	parent, err := shell.ParseDisplayName(`C:\a`)
	require.NoError(t, err)
	folder, err := shell.BindToFolder(parent)
	require.NoError(t, err)

	ids, err := NewIdentifierBuilder(shell).BuildRelative(folder, types.Selection{
		fileEntry(`C:\a\f.txt`),
		fileEntry(`C:\a\g.txt`),
	})
	require.NoError(t, err)
	require.Equal(t, 2, ids.Len())
	require.Equal(t, []string{`C:\a`, `C:\a\f.txt`, `C:\a\g.txt`}, shell.Parsed)

	ids.Release()
	folder.Release()
	shell.FreeItemID(parent)
	require.Empty(t, shell.Leaks())
}

func TestIdentifierBuilderReleasesOnPartialFailure(t *testing.T) {
	tests := []struct {
		name  string
		build func(IdentifierBuilder, types.Selection) (*ItemIDList, error)
	}{
		{
			name: "absolute",
			build: func(b IdentifierBuilder, s types.Selection) (*ItemIDList, error) {
				return b.BuildAbsolute(s)
			},
		},
		{
			name: "relative to desktop",
			build: func(b IdentifierBuilder, s types.Selection) (*ItemIDList, error) {
				desktop, err := b.Namespace.Desktop()
				if err != nil {
					return nil, err
				}
				return b.BuildRelative(desktop, s)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell := shellfake.New()
			shell.FailParse["h.txt"] = errors.New("no such file")

			ids, err := tt.build(NewIdentifierBuilder(shell), types.Selection{
				fileEntry(`C:\a\f.txt`),
				fileEntry(`C:\b\g.txt`),
				fileEntry(`C:\c\h.txt`),
			})
			require.Error(t, err)
			require.Nil(t, ids)
			require.True(t, types.IsContextMenuUnavailable(err))
			require.Len(t, shell.Parsed, 3)
			require.Empty(t, shell.Leaks())
		})
	}
}

func TestItemIDListNilIsSafe(t *testing.T) {
	var ids *ItemIDList
	require.Equal(t, 0, ids.Len())
	require.Nil(t, ids.IDs())
	ids.Release()
}
