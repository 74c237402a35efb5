package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// GitLog returns up to limit commits reachable from HEAD of the repository
// containing path, newest first. A repository without commits yields no rows.
func GitLog(ctx context.Context, path string, limit int) ([]Row, error) {
	if path == "" {
		path = "."
	}
	if limit <= 0 {
		limit = DefaultCount
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repo: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	defer iter.Close()

	rows := make([]Row, 0, limit)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if len(rows) >= limit {
			return storer.ErrStop
		}
		rows = append(rows, commitRow(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}
	return rows, nil
}

func commitRow(c *object.Commit) Row {
	msg := strings.TrimSpace(c.Message)
	subject, rest, _ := strings.Cut(msg, "\n")

	var b strings.Builder
	fmt.Fprintf(&b, "**%s** · %s\n", c.Author.Name, c.Author.When.UTC().Format(time.RFC3339))
	if rest = strings.TrimSpace(rest); rest != "" {
		b.WriteString("\n")
		b.WriteString(rest)
	}

	return Row{
		Key:     c.Hash.String(),
		Heading: c.Hash.String()[:7] + " " + subject,
		Body:    b.String(),
	}
}
