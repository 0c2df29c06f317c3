package formatcheck_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdcheck/pkg/config"
	"github.com/yaklabco/mdcheck/pkg/formatcheck"
	"github.com/yaklabco/mdcheck/pkg/issue"
	"github.com/yaklabco/mdcheck/pkg/mdast"
	"github.com/yaklabco/mdcheck/pkg/mdfile"
	"github.com/yaklabco/mdcheck/pkg/parser/goldmark"
)

func check(t *testing.T, content string, cfg *config.Config) *issue.CheckIssue {
	t.Helper()
	file := mdfile.New("doc.md", content)
	snap, err := goldmark.New(goldmark.FlavorGFM).Parse(context.Background(), file.Path, file.Bytes())
	require.NoError(t, err)

	got, err := formatcheck.Check(file, snap, cfg)
	require.NoError(t, err)
	return got
}

func TestCheck_Canonical(t *testing.T) {
	assert.Nil(t, check(t, "# Title\n\nText.\n", config.NewConfig()))
	assert.Nil(t, check(t, "", config.NewConfig()))
}

func TestCheck_Mismatch(t *testing.T) {
	content := "# Title\ntext\n* item"
	got := check(t, content, config.NewConfig())
	require.NotNil(t, got)

	assert.Equal(t, issue.Formatting, got.Category)
	assert.Equal(t, issue.Error, got.Severity)
	assert.Equal(t, "doc.md", got.FilePath)
	assert.Equal(t, formatcheck.Message, got.Message)
	assert.Equal(t, 1, got.RowStart)
	assert.Equal(t, 3, got.RowEnd)
	assert.Equal(t, 1, got.ColStart)
	assert.Equal(t, 1, got.ColEnd)
	assert.Equal(t, 0, got.OffsetStart)
	assert.Equal(t, len(content), got.OffsetEnd)

	assert.Equal(t, []string{
		"Rationale Consistent formatting makes it easier to understand a document",
		"Suggestion Run \"mdcheck fmt --check --show-diff doc.md\" to see a diff between the expected formatting and yours",
		"Auto-fix mdcheck fmt doc.md",
	}, got.Fixes)
}

func TestCheck_ShowDiff(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Fmt.ShowDiff = true

	got := check(t, "* a\n+ b\n", cfg)
	require.NotNil(t, got)
	require.Len(t, got.Fixes, 3)

	assert.Equal(t, "Auto-fix mdcheck fmt doc.md", got.Fixes[1])
	assert.Contains(t, got.Fixes[2], "Diff\n\n--- a/doc.md")
	assert.Contains(t, got.Fixes[2], "-+ b\n")
}

func TestCheck_NilConfigUsesDefaults(t *testing.T) {
	got := check(t, "text\n\n\n", nil)
	require.NotNil(t, got)
	assert.Len(t, got.Fixes, 3)
}

func TestCheck_NoSnapshot(t *testing.T) {
	_, err := formatcheck.Check(mdfile.New("a.md", "x"), nil, nil)
	require.ErrorIs(t, err, formatcheck.ErrNoSnapshot)
}

func TestCheck_UnsupportedNode(t *testing.T) {
	root := mdast.NewRoot()
	mdast.AppendChild(root, mdast.NewNode(mdast.NodeKind(99)))
	snap := &mdast.FileSnapshot{Path: "a.md", Content: []byte("x"), Root: root}

	_, err := formatcheck.Check(mdfile.New("a.md", "x"), snap, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported node kind")
}
