package codegen

import (
	"errors"
	"testing"
	"time"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/config"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/enum"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/fragment"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.Output.SchemaTypes.Path = "Sources/Generated"
	c.Output.SchemaTypes.ModuleType = config.ModuleSwiftPackage
	return c
}

func TestRenderEnumsProducesOneFilePerInput(t *testing.T) {
	files := RenderEnums(testConfig(), []enum.Input{
		{Name: "episode", Values: []enum.Value{{ValueName: "JEDI"}}},
		{Name: "unit", Values: []enum.Value{{ValueName: "METER"}}},
	})

	if len(files) != 2 {
		t.Fatalf("len(files) = %d, want 2", len(files))
	}
	if files[0].Path != "Sources/Generated/episode.swift" {
		t.Errorf("files[0].Path = %q, want Sources/Generated/episode.swift", files[0].Path)
	}
	if files[0].Content == "" {
		t.Error("expected non-empty rendered content")
	}
}

func TestRenderFragmentsProducesOneFilePerInput(t *testing.T) {
	files := RenderFragments(testConfig(), []fragment.Input{
		{Name: "HeroDetails", ParentTypeName: "Human"},
	})

	if len(files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(files))
	}
	if files[0].Path != "Sources/Generated/HeroDetails.swift" {
		t.Errorf("files[0].Path = %q, want Sources/Generated/HeroDetails.swift", files[0].Path)
	}
}

func TestCheckVersionAcceptsMatchingVersion(t *testing.T) {
	if err := CheckVersion(LibraryVersion, false); err != nil {
		t.Errorf("CheckVersion() error = %v, want nil for a matching version", err)
	}
}

func TestCheckVersionAcceptsEmptyVersion(t *testing.T) {
	if err := CheckVersion("", false); err != nil {
		t.Errorf("CheckVersion() error = %v, want nil when the CLI version is unknown", err)
	}
}

func TestCheckVersionFailsOnMismatch(t *testing.T) {
	err := CheckVersion("9.9.9", false)
	var mismatch *graphchain.VersionMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("CheckVersion() error = %v, want *VersionMismatchError", err)
	}
	if mismatch.CLIVersion != "9.9.9" || mismatch.LibraryVersion != LibraryVersion {
		t.Errorf("mismatch = %+v, want CLIVersion=9.9.9 LibraryVersion=%s", mismatch, LibraryVersion)
	}
}

func TestCheckVersionIgnoresMismatchWhenRequested(t *testing.T) {
	if err := CheckVersion("9.9.9", true); err != nil {
		t.Errorf("CheckVersion() error = %v, want nil when ignoreMismatch is set", err)
	}
}

func TestRequireSchemaDownloadMissing(t *testing.T) {
	_, err := RequireSchemaDownload(&config.Config{})
	if !errors.Is(err, graphchain.ErrMissingSchemaDownloadConfig) {
		t.Fatalf("RequireSchemaDownload() error = %v, want ErrMissingSchemaDownloadConfig", err)
	}
}

func TestRequireSchemaDownloadPresent(t *testing.T) {
	sd := &config.SchemaDownload{Endpoint: "https://example.test/graphql"}
	got, err := RequireSchemaDownload(&config.Config{SchemaDownload: sd})
	if err != nil {
		t.Fatalf("RequireSchemaDownload() error = %v", err)
	}
	if got != sd {
		t.Error("expected RequireSchemaDownload to return the configured block")
	}
}

func TestDownloadTimeoutDefault(t *testing.T) {
	if got := DownloadTimeout(&config.SchemaDownload{}); got != 30*time.Second {
		t.Errorf("DownloadTimeout() = %v, want 30s default", got)
	}
}

func TestDownloadTimeoutHonorsConfiguredValue(t *testing.T) {
	got := DownloadTimeout(&config.SchemaDownload{DownloadTimeout: 5})
	if got != 5*time.Second {
		t.Errorf("DownloadTimeout() = %v, want 5s", got)
	}
}
