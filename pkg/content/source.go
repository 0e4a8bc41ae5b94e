package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// Source is the raw document store behind a Repository.
type Source interface {
	// Name identifies the source in logs and cache keys.
	Name() string

	// Slugs lists the available slugs. Drafts may be included; the
	// repository filters them.
	Slugs(ctx context.Context) ([]string, error)

	// Read returns the raw document for slug, or a DOCUMENT_NOT_FOUND error.
	Read(ctx context.Context, slug string) ([]byte, error)
}

// DefaultExtensions are the file extensions tried by FSSource, in order.
var DefaultExtensions = []string{".mdx", ".md"}

// FSSource reads documents stored as <slug><ext> files at the root of a
// file system.
type FSSource struct {
	fsys fs.FS
	name string
	exts []string
}

// NewFSSource creates a source over fsys. name is used in logs.
func NewFSSource(fsys fs.FS, name string) *FSSource {
	return &FSSource{fsys: fsys, name: name, exts: DefaultExtensions}
}

// NewDirSource creates a source over a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), "dir:"+dir)
}

// Name returns the source name.
func (s *FSSource) Name() string { return s.name }

// Slugs lists files with a known extension, skipping hidden files and those
// starting with an underscore.
func (s *FSSource) Slugs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "list %s", s.name)
	}

	seen := map[string]bool{}
	var slugs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		ext := path.Ext(name)
		if !s.known(ext) {
			continue
		}
		slug := strings.TrimSuffix(name, ext)
		if !seen[slug] {
			seen[slug] = true
			slugs = append(slugs, slug)
		}
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Read returns the first <slug><ext> file that exists.
func (s *FSSource) Read(ctx context.Context, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, ext := range s.exts {
		name := slug + ext
		if !fs.ValidPath(name) || strings.Contains(slug, "/") {
			break
		}
		data, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInternal, err, "read %s", name)
		}
		return data, nil
	}
	return nil, perrors.New(perrors.ErrCodeDocumentNotFound, "no case study %q in %s", slug, s.name)
}

func (s *FSSource) known(ext string) bool {
	for _, e := range s.exts {
		if e == ext {
			return true
		}
	}
	return false
}

var _ Source = (*FSSource)(nil)
