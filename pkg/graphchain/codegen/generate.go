// Package codegen drives the enum and fragment renderers over a decoded
// Config to produce the generated output files named in spec.md 6.
package codegen

import (
	"fmt"
	"time"

	"github.com/graphchain/graphchain-go/pkg/graphchain"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/config"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/enum"
	"github.com/graphchain/graphchain-go/pkg/graphchain/codegen/fragment"
)

// LibraryVersion is the pinned library version checked against a
// consuming project's CLI version during the generate command's preflight,
// mirroring Package.resolved-style version pinning.
const LibraryVersion = "0.1.0"

// GeneratedFile is one rendered output unit: a path relative to the
// configured schema-types output directory, and its rendered text.
type GeneratedFile struct {
	Path    string
	Content string
}

// RenderEnums renders one file per enum input using config's enum options.
func RenderEnums(cfg *config.Config, enums []enum.Input) []GeneratedFile {
	enumCfg := cfg.EnumConfig()
	files := make([]GeneratedFile, 0, len(enums))
	for _, e := range enums {
		files = append(files, GeneratedFile{
			Path:    fmt.Sprintf("%s/%s.swift", cfg.Output.SchemaTypes.Path, e.Name),
			Content: enum.Render(e, enumCfg),
		})
	}
	return files
}

// RenderFragments renders one file per fragment input using config's
// fragment options.
func RenderFragments(cfg *config.Config, fragments []fragment.Input) []GeneratedFile {
	fragCfg := cfg.FragmentConfig()
	files := make([]GeneratedFile, 0, len(fragments))
	for _, f := range fragments {
		files = append(files, GeneratedFile{
			Path:    fmt.Sprintf("%s/%s.swift", cfg.Output.SchemaTypes.Path, f.Name),
			Content: fragment.Render(f, fragCfg),
		})
	}
	return files
}

// CheckVersion compares cliVersion (read from the consuming project's
// Package.resolved-equivalent pin, if present) against LibraryVersion,
// failing with *graphchain.VersionMismatchError unless ignoreMismatch is
// set.
func CheckVersion(cliVersion string, ignoreMismatch bool) error {
	if cliVersion == "" || cliVersion == LibraryVersion || ignoreMismatch {
		return nil
	}
	return graphchain.WrapError("codegen.CheckVersion", &graphchain.VersionMismatchError{
		CLIVersion:     cliVersion,
		LibraryVersion: LibraryVersion,
	}, "")
}

// RequireSchemaDownload validates that --fetch-schema has the config block
// it needs.
func RequireSchemaDownload(cfg *config.Config) (*config.SchemaDownload, error) {
	if cfg.SchemaDownload == nil {
		return nil, graphchain.WrapError("codegen.RequireSchemaDownload", graphchain.ErrMissingSchemaDownloadConfig, "Missing schema download configuration.")
	}
	return cfg.SchemaDownload, nil
}

// DownloadTimeout returns the configured schema-download timeout, or a
// reasonable default.
func DownloadTimeout(sd *config.SchemaDownload) time.Duration {
	if sd.DownloadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(sd.DownloadTimeout * float64(time.Second))
}
