// Package source loads rows for the virtual list: generated lorem text, a
// git commit log, or a process snapshot.
package source

import (
	"context"
	"errors"
	"fmt"
)

// Row is one list entry. It satisfies vscroll.Item and row.Titled.
type Row struct {
	Key     string `json:"id"`
	Heading string `json:"title,omitempty"`
	Body    string `json:"text"`
}

func (r Row) ID() string    { return r.Key }
func (r Row) Text() string  { return r.Body }
func (r Row) Title() string { return r.Heading }

// Names of the built-in sources.
const (
	NameLorem = "lorem"
	NameGit   = "git"
	NameProcs = "procs"
)

// ErrUnknown is returned by Load for a name it does not know.
var ErrUnknown = errors.New("unknown source")

// Spec selects a source and its parameters.
type Spec struct {
	Name  string
	Count int    // rows to produce; sources treat <= 0 as their default
	Repo  string // git only
	Seed  uint64 // lorem only
}

// DefaultCount is the row count used when Spec.Count is not positive.
const DefaultCount = 25

// Load dispatches on s.Name.
func Load(ctx context.Context, s Spec) ([]Row, error) {
	count := s.Count
	if count <= 0 {
		count = DefaultCount
	}

	var (
		rows []Row
		err  error
	)
	switch s.Name {
	case NameLorem, "":
		rows = Lorem(count, s.Seed)
	case NameGit:
		rows, err = GitLog(ctx, s.Repo, count)
	case NameProcs:
		rows, err = Processes(ctx, count)
	default:
		err = ErrUnknown
	}
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", s.Name, err)
	}
	return rows, nil
}
