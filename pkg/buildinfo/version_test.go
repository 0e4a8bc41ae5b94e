package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolveKeepsLdflags(t *testing.T) {
	in := Info{Version: "v1.4.0", Commit: "abc123", Date: "2026-05-01T10:00:00Z"}
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.0-20260101-deadbeef"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
	}
	if got := resolve(in, bi); got != in {
		t.Errorf("resolve() = %+v, want ldflags %+v", got, in)
	}
}

func TestResolveFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123abcd"},
			{Key: "vcs.time", Value: "2026-09-30T08:15:00Z"},
		},
	}
	got := resolve(Info{Version: "dev", Commit: "none", Date: "unknown"}, bi)
	want := Info{Version: "v0.3.1", Commit: "0123abcd", Date: "2026-09-30T08:15:00Z"}
	if got != want {
		t.Errorf("resolve() = %+v, want %+v", got, want)
	}
}

func TestResolveDirtyCheckout(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.modified", Value: "true"}},
	}
	if got := resolve(Info{Version: "dev", Commit: "none", Date: "unknown"}, bi); got.Version != "dev+dirty" {
		t.Errorf("Version = %q, want dev+dirty", got.Version)
	}
	if got := resolve(Info{Version: "dev"}, nil); got.Version != "dev" {
		t.Errorf("nil build info changed version to %q", got.Version)
	}
}

func TestString(t *testing.T) {
	s := Info{Version: "v1.0.0", Commit: "abc", Date: "today"}.String()
	for _, want := range []string{"version: v1.0.0", "commit: abc", "built: today"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
