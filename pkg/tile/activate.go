package tile

import (
	"fmt"

	"github.com/jackparrish/deskfolio/pkg/catalog"
)

// Activator performs tile actions on behalf of a host environment.
type Activator interface {
	Navigate(path string) error
	OpenExternal(url string) error
	ComposeEmail(addr string) error
}

// Activate dispatches action to a.
func Activate(a Activator, action catalog.Action) error {
	switch action.Kind {
	case catalog.KindNavigate:
		return a.Navigate(action.Target)
	case catalog.KindExternal:
		return a.OpenExternal(action.Target)
	case catalog.KindEmail:
		return a.ComposeEmail(action.Href())
	}
	return fmt.Errorf("unknown action kind %q", action.Kind)
}

// ActivatorFuncs adapts plain functions to Activator. Nil fields are no-ops.
type ActivatorFuncs struct {
	NavigateFunc     func(path string) error
	OpenExternalFunc func(url string) error
	ComposeEmailFunc func(addr string) error
}

func (f ActivatorFuncs) Navigate(path string) error {
	if f.NavigateFunc == nil {
		return nil
	}
	return f.NavigateFunc(path)
}

func (f ActivatorFuncs) OpenExternal(url string) error {
	if f.OpenExternalFunc == nil {
		return nil
	}
	return f.OpenExternalFunc(url)
}

func (f ActivatorFuncs) ComposeEmail(addr string) error {
	if f.ComposeEmailFunc == nil {
		return nil
	}
	return f.ComposeEmailFunc(addr)
}

// NopActivator ignores every action.
type NopActivator struct{}

func (NopActivator) Navigate(string) error     { return nil }
func (NopActivator) OpenExternal(string) error { return nil }
func (NopActivator) ComposeEmail(string) error { return nil }
