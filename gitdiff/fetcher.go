// Package gitdiff reconstructs base revisions from unified patches using
// bluekeyes/go-gitdiff.
package gitdiff

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffpane"
)

// Compile-time interface verification.
var _ diffpane.ReferenceFetcher = (*Fetcher)(nil)

// Fetcher returns the content a file had before a patch was applied to it,
// by applying the patch in reverse to the current content.
type Fetcher struct {
	files    []*gitdiff.File
	readFile func(path string) ([]byte, error)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithReadFile sets how current file content is read. Defaults to os.ReadFile.
func WithReadFile(fn func(path string) ([]byte, error)) Option {
	return func(f *Fetcher) {
		f.readFile = fn
	}
}

// Parse reads a unified diff and returns a Fetcher for the files it patches.
func Parse(r io.Reader, opts ...Option) (*Fetcher, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing patch: %w", err)
	}

	f := &Fetcher{files: files, readFile: os.ReadFile}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Files returns the post-image paths the patch touches.
func (f *Fetcher) Files() []string {
	names := make([]string, 0, len(f.files))
	for _, file := range f.files {
		if !file.IsDelete {
			names = append(names, file.NewName)
		}
	}
	return names
}

// Fetch returns the pre-image of path. It returns diffpane.ErrNoReference
// when the patch does not touch path or creates it.
func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file := f.find(path)
	if file == nil {
		return nil, fmt.Errorf("%s not in patch: %w", path, diffpane.ErrNoReference)
	}
	if file.IsNew {
		return nil, fmt.Errorf("%s is created by the patch: %w", path, diffpane.ErrNoReference)
	}
	if file.IsBinary {
		return nil, fmt.Errorf("%s is binary: %w", path, diffpane.ErrNoReference)
	}

	current, err := f.readFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var base bytes.Buffer
	if err := gitdiff.Apply(&base, bytes.NewReader(current), reverse(file)); err != nil {
		return nil, fmt.Errorf("reverse applying patch to %s: %w", path, err)
	}
	return base.Bytes(), nil
}

// find returns the patched file whose post-image name is a path suffix of path.
func (f *Fetcher) find(path string) *gitdiff.File {
	slashed := filepath.ToSlash(filepath.Clean(path))
	var best *gitdiff.File
	for _, file := range f.files {
		if file.IsDelete || file.NewName == "" {
			continue
		}
		if slashed == file.NewName || strings.HasSuffix(slashed, "/"+file.NewName) {
			if best == nil || len(file.NewName) > len(best.NewName) {
				best = file
			}
		}
	}
	return best
}

// reverse returns a copy of file that turns its post-image back into its
// pre-image.
func reverse(file *gitdiff.File) *gitdiff.File {
	r := &gitdiff.File{
		OldName: file.NewName,
		NewName: file.OldName,
		OldMode: file.NewMode,
		NewMode: file.OldMode,
	}
	for _, frag := range file.TextFragments {
		rf := &gitdiff.TextFragment{
			Comment:         frag.Comment,
			OldPosition:     frag.NewPosition,
			OldLines:        frag.NewLines,
			NewPosition:     frag.OldPosition,
			NewLines:        frag.OldLines,
			LinesAdded:      frag.LinesDeleted,
			LinesDeleted:    frag.LinesAdded,
			LeadingContext:  frag.LeadingContext,
			TrailingContext: frag.TrailingContext,
			Lines:           make([]gitdiff.Line, len(frag.Lines)),
		}
		for i, l := range frag.Lines {
			switch l.Op {
			case gitdiff.OpAdd:
				l.Op = gitdiff.OpDelete
			case gitdiff.OpDelete:
				l.Op = gitdiff.OpAdd
			}
			rf.Lines[i] = l
		}
		r.TextFragments = append(r.TextFragments, rf)
	}
	return r
}
