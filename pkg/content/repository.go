package content

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jackparrish/deskfolio/pkg/cache"
	"github.com/jackparrish/deskfolio/pkg/observability"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// Repository enumerates and loads documents from a Source.
type Repository struct {
	src    Source
	logger *log.Logger
}

// NewRepository wraps src. A nil logger discards output.
func NewRepository(src Source, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Repository{src: src, logger: logger}
}

// Source returns the underlying source.
func (r *Repository) Source() Source { return r.src }

// ListDocumentIDs returns every publishable slug. Drafts (a leading
// underscore) and names that are not valid slugs are left out.
func (r *Repository) ListDocumentIDs(ctx context.Context) ([]string, error) {
	slugs, err := r.src.Slugs(ctx)
	if err != nil {
		return nil, err
	}
	out := slugs[:0:0]
	for _, s := range slugs {
		if strings.HasPrefix(s, "_") {
			continue
		}
		if err := perrors.ValidateSlug(s); err != nil {
			r.logger.Warn("skipping document with invalid slug", "slug", s, "source", r.src.Name())
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadDocument loads and parses slug. Unknown or invalid slugs fail with
// DOCUMENT_NOT_FOUND, malformed front matter with PARSE_ERROR.
func (r *Repository) LoadDocument(ctx context.Context, slug string) (doc *Document, err error) {
	start := time.Now()
	defer func() {
		observability.Content().OnLoad(ctx, slug, time.Since(start), err)
	}()

	if verr := perrors.ValidateSlug(slug); verr != nil {
		return nil, perrors.Wrap(perrors.ErrCodeDocumentNotFound, verr, "no case study %q", slug)
	}

	raw, err := r.src.Read(ctx, slug)
	if err != nil {
		return nil, err
	}
	doc, err = ParseDocument(slug, raw)
	if err != nil {
		r.logger.Warn("malformed case study", "slug", slug, "err", err)
		return nil, err
	}
	r.logger.Debug("loaded case study", "slug", slug, "bytes", len(raw))
	return doc, nil
}

// ParseDocument builds a Document from raw source bytes.
func ParseDocument(slug string, raw []byte) (*Document, error) {
	meta, body, err := ParseFrontMatter(raw)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeParse, err, "case study %q", slug)
	}
	return &Document{
		Slug:     slug,
		Metadata: meta,
		Body:     body,
		Hash:     cache.Hash(raw),
	}, nil
}
