package version

import (
	"runtime/debug"
	"testing"
)

func TestResolveLinkerValuesWin(t *testing.T) {
	t.Parallel()
	read := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "v0.9.0"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffff"}},
		}, true
	}
	got := resolve("v1.2.3", "abc", "", read)
	if got.Version != "v1.2.3" || got.Commit != "abc" {
		t.Fatalf("resolve = %+v", got)
	}
}

func TestResolveFromBuildInfo(t *testing.T) {
	t.Parallel()
	read := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef0123"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	}
	got := resolve("", "", "", read)
	if got.Version != devVersion {
		t.Fatalf("version = %q, want %q", got.Version, devVersion)
	}
	if got.BuildTime != "2026-01-02T03:04:05Z" {
		t.Fatalf("build time = %q", got.BuildTime)
	}
	if s := got.String(); s != "dev (0123456789ab)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestResolveNoBuildInfo(t *testing.T) {
	t.Parallel()
	got := resolve("", "", "", func() (*debug.BuildInfo, bool) { return nil, false })
	if got.String() != devVersion {
		t.Fatalf("String() = %q", got.String())
	}
}
