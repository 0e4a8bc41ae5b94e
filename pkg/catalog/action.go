package catalog

import (
	"fmt"
	"strings"

	perrors "github.com/jackparrish/deskfolio/pkg/errors"
)

// ActionKind tags the variant held by an [Action].
type ActionKind string

const (
	KindNavigate ActionKind = "navigate"
	KindExternal ActionKind = "external"
	KindEmail    ActionKind = "email"
)

// Action is what activating a tile does.
type Action struct {
	Kind   ActionKind `toml:"kind" json:"kind"`
	Target string     `toml:"target" json:"target"`
}

// Navigate routes to a site-relative path.
func Navigate(path string) Action { return Action{Kind: KindNavigate, Target: path} }

// OpenExternal opens url in a new browsing context.
func OpenExternal(url string) Action { return Action{Kind: KindExternal, Target: url} }

// ComposeEmail starts an email to addr.
func ComposeEmail(addr string) Action { return Action{Kind: KindEmail, Target: addr} }

// IsNavigate reports whether the action routes within the site.
func (a Action) IsNavigate() bool { return a.Kind == KindNavigate }

// Href returns the link form of the action.
func (a Action) Href() string {
	if a.Kind == KindEmail && !strings.HasPrefix(a.Target, "mailto:") {
		return "mailto:" + a.Target
	}
	return a.Target
}

// Validate checks the target against the kind.
func (a Action) Validate() error {
	switch a.Kind {
	case KindNavigate:
		return perrors.ValidatePath(a.Target)
	case KindExternal:
		return perrors.ValidateURL(a.Target)
	case KindEmail:
		return perrors.ValidateEmail(strings.TrimPrefix(a.Target, "mailto:"))
	case "":
		return perrors.New(perrors.ErrCodeInvalidInput, "action kind is required")
	}
	return perrors.New(perrors.ErrCodeInvalidInput, "unknown action kind %q", a.Kind)
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
}
