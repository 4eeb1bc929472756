package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/fsutil"
)

// Extension is the file extension of declaration files.
const Extension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL declaration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load collects every declaration under root. Each immediate subdirectory
// of root is a module; its declaration files are discovered recursively and
// any other file is ignored. The first file that fails to parse or decode
// aborts the whole load.
func (l *Loader) Load(ctx context.Context, root string) (*config.Collection, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "root", root)

	info, err := os.Stat(root)
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeConfig, "modules root is not accessible", err).With("path", root)
	}
	if !info.IsDir() {
		return nil, contenterr.Newf(contenterr.CodeConfig, "modules root %s is not a directory", root).With("path", root)
	}

	modules, err := fsutil.ListModules(root)
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeConfig, "failed to list modules", err).With("path", root)
	}
	logger.Debug("Discovered modules.", "count", len(modules), "modules", modules)

	col := config.NewCollection()
	parser := hclparse.NewParser()

	for _, module := range modules {
		col.AddModule(module)

		files, err := fsutil.FindFilesByExtension(filepath.Join(root, module), Extension)
		if err != nil {
			return nil, contenterr.Wrap(contenterr.CodeConfig, "failed to walk module "+module, err)
		}
		logger.Debug("Discovered declaration files.", "module", module, "count", len(files))

		for _, file := range files {
			origin := relativeOrigin(root, file)
			hclFile, diags := parser.ParseHCLFile(file)
			if diags.HasErrors() {
				return nil, parseError(origin, "failed to parse declaration file", diags)
			}

			decl, err := decodeDeclaration(hclFile.Body)
			if err != nil {
				return nil, parseError(origin, "failed to decode declaration file", err)
			}

			col.Append(module, config.NamedDeclaration{
				Name:   strings.TrimSuffix(filepath.Base(file), Extension),
				Origin: origin,
				Decl:   decl,
			})
		}
	}

	logger.Debug("HCL loading complete.", "modules", len(modules), "declarations", col.Len())
	return col, nil
}

// DecodeJSONDeclaration decodes a single declaration written in HCL JSON
// syntax. It applies exactly the same schema as declaration files.
func DecodeJSONDeclaration(src []byte, origin string) (*config.Declaration, error) {
	file, diags := hclparse.NewParser().ParseJSON(src, origin)
	if diags.HasErrors() {
		return nil, parseError(origin, "failed to parse declaration", diags)
	}
	decl, err := decodeDeclaration(file.Body)
	if err != nil {
		return nil, parseError(origin, "failed to decode declaration", err)
	}
	return decl, nil
}

// decodeDeclaration decodes and translates one declaration body.
func decodeDeclaration(body hcl.Body) (*config.Declaration, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, diags
	}
	return translateDeclaration(&root)
}

func parseError(origin, message string, cause error) error {
	return contenterr.Wrap(contenterr.CodeParse, fmt.Sprintf("%s %s", message, origin), cause).With("file", origin)
}

func relativeOrigin(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return file
	}
	return filepath.ToSlash(rel)
}
