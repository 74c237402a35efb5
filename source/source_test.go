package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLorem_Deterministic(t *testing.T) {
	a := Lorem(25, 7)
	b := Lorem(25, 7)
	c := Lorem(25, 8)

	require.Len(t, a, 25)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestLorem_Shape(t *testing.T) {
	rows := Lorem(50, 1)
	for i, r := range rows {
		assert.Equal(t, strings.TrimSpace(r.Key), r.Key)
		assert.Equal(t, i, mustAtoi(t, r.Key))
		assert.Len(t, strings.Fields(r.Heading), 2)

		n := len(strings.Fields(r.Body))
		assert.GreaterOrEqual(t, n, minSentenceWords)
		assert.LessOrEqual(t, n, maxSentenceWords)
		assert.True(t, strings.HasSuffix(r.Body, "."))
	}
	assert.Empty(t, Lorem(-3, 1))
}

func TestRow_ItemMethods(t *testing.T) {
	r := Row{Key: "k", Heading: "h", Body: "b"}
	assert.Equal(t, "k", r.ID())
	assert.Equal(t, "h", r.Title())
	assert.Equal(t, "b", r.Text())
}

func TestLoad_Dispatch(t *testing.T) {
	ctx := context.Background()

	rows, err := Load(ctx, Spec{})
	require.NoError(t, err)
	assert.Len(t, rows, DefaultCount)

	rows, err = Load(ctx, Spec{Name: NameLorem, Count: 3, Seed: 9})
	require.NoError(t, err)
	assert.Equal(t, Lorem(3, 9), rows)

	_, err = Load(ctx, Spec{Name: "nope"})
	require.ErrorIs(t, err, ErrUnknown)
	assert.Contains(t, err.Error(), `"nope"`)
}

func TestGitLog(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	rows, err := GitLog(context.Background(), dir, 10)
	require.NoError(t, err)
	assert.Empty(t, rows, "no commits yet")

	wt, err := repo.Worktree()
	require.NoError(t, err)
	sig := &object.Signature{Name: "Tess Ter", Email: "t@example.com", When: time.Unix(1700000000, 0)}
	for i, msg := range []string{"first commit", "second commit\n\nwith a body", "third commit"} {
		name := filepath.Join(dir, "f.txt")
		require.NoError(t, os.WriteFile(name, []byte(strings.Repeat("x", i+1)), 0o644))
		_, err = wt.Add("f.txt")
		require.NoError(t, err)
		_, err = wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}

	rows, err = GitLog(context.Background(), dir, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Contains(t, rows[0].Heading, "third commit")
	assert.Contains(t, rows[1].Heading, "second commit")
	assert.Contains(t, rows[1].Body, "with a body")
	assert.Contains(t, rows[1].Body, "Tess Ter")
	assert.Len(t, rows[0].Key, 40)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	rows, err = GitLog(context.Background(), sub, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3, "repository found from a subdirectory")
}

func TestGitLog_NotARepo(t *testing.T) {
	_, err := GitLog(context.Background(), t.TempDir(), 5)
	assert.Error(t, err)
}

func TestProcesses(t *testing.T) {
	rows, err := Processes(context.Background(), 3)
	if err != nil {
		t.Skipf("process table unavailable: %v", err)
	}
	assert.LessOrEqual(t, len(rows), 3)
	for _, r := range rows {
		assert.NotEmpty(t, r.Key)
		assert.Contains(t, r.Body, "rss")
	}
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KiB", formatBytes(1024))
	assert.Equal(t, "1.5 MiB", formatBytes(3*512*1024))
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, r := range s {
		require.True(t, r >= '0' && r <= '9', "non-digit in %q", s)
		n = n*10 + int(r-'0')
	}
	return n
}
