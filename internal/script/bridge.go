package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Shopify/go-lua"
	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/contenterr"
	"github.com/specialistvlad/contentgrid/internal/ctxlog"
	"github.com/specialistvlad/contentgrid/internal/fsutil"
	"github.com/specialistvlad/contentgrid/internal/hcl"
	"github.com/specialistvlad/contentgrid/internal/registry"
)

// Extension is the file extension of script files.
const Extension = ".lua"

// ErrNotLoaded is returned by Eval before the first PostCollection.
var ErrNotLoaded = errors.New("script: no script state loaded")

// Bridge is the Lua implementation of config.MergePoint. Access to the Lua
// state is serialised, so a Bridge may be shared between goroutines.
type Bridge struct {
	mu     sync.Mutex
	state  *lua.State
	view   registry.View
	logger *slog.Logger

	collecting      bool
	reloadRequested bool
}

// New creates a bridge whose GameInfo functions read from view. view may be
// nil, in which case every query returns nil.
func New(view registry.View) *Bridge {
	return &Bridge{view: view}
}

// PostCollection starts a fresh Lua state, runs every script under root,
// then every registered post-deserialization event, and finally returns the
// declarations scripts placed in Core.InitializationInfo.GameData.
//
// A failing script or event is logged and skipped. A malformed declaration
// is a parse error, exactly like a malformed file.
func (b *Bridge) PostCollection(ctx context.Context, root string) ([]config.ScriptDeclaration, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	logger := ctxlog.FromContext(ctx)
	b.logger = logger
	b.state = b.newState()
	b.collecting = true
	defer func() { b.collecting = false }()

	scripts, err := fsutil.FindFilesByExtension(root, Extension)
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeConfig, "failed to list scripts", err).With("path", root)
	}
	logger.Debug("Script bridge: Running scripts.", "count", len(scripts))

	for _, path := range scripts {
		rel, _ := filepath.Rel(root, path)
		if err := b.protected(func() error { return lua.DoFile(b.state, path) }); err != nil {
			logger.Warn("Script failed.", "script", filepath.ToSlash(rel), "error", err)
		}
	}

	b.runEvents()

	decls, err := b.readGameData()
	if err != nil {
		return nil, err
	}
	logger.Debug("Script bridge: Collected declarations.", "count", len(decls))
	return decls, nil
}

// Eval runs a chunk in the current state and returns its first result
// converted to Go values.
func (b *Bridge) Eval(ctx context.Context, chunk string) (any, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == nil {
		return nil, ErrNotLoaded
	}
	b.logger = ctxlog.FromContext(ctx)

	l := b.state
	top := l.Top()
	defer l.SetTop(top)

	if err := lua.LoadString(l, chunk); err != nil {
		return nil, fmt.Errorf("failed to load chunk: %w", err)
	}
	if err := l.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("failed to run chunk: %w", err)
	}
	return luaToGo(l, -1), nil
}

// TakeReloadRequest reports whether a chunk run by Eval called Core.reload
// since the last call, and clears the request.
func (b *Bridge) TakeReloadRequest() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	requested := b.reloadRequested
	b.reloadRequested = false
	return requested
}

// protected runs fn and restores the stack, dropping any error object.
func (b *Bridge) protected(fn func() error) error {
	top := b.state.Top()
	defer b.state.SetTop(top)
	return fn()
}

func (b *Bridge) runEvents() {
	l := b.state
	top := l.Top()
	defer l.SetTop(top)

	l.Global("Core")
	l.Field(-1, "Events")
	l.Field(-1, "PostDeserializationEvents")
	if !l.IsTable(-1) {
		return
	}
	events := l.AbsIndex(-1)

	n := l.RawLength(events)
	for i := 1; i <= n; i++ {
		l.RawGetInt(events, i)
		if !l.IsFunction(-1) {
			l.Pop(1)
			b.logger.Warn("Post deserialization event is not a function.", "index", i)
			continue
		}
		err := l.ProtectedCall(0, 0, 0)
		l.SetTop(events)
		if err != nil {
			b.logger.Warn("Post deserialization event failed.", "index", i, "error", err)
		}
	}
}

func (b *Bridge) readGameData() ([]config.ScriptDeclaration, error) {
	l := b.state
	top := l.Top()
	defer l.SetTop(top)

	l.Global("Core")
	l.Field(-1, "InitializationInfo")
	if !l.IsTable(-1) {
		return nil, nil
	}
	l.Field(-1, "GameData")
	if !l.IsTable(-1) {
		return nil, nil
	}
	data := tableToMap(l, -1)

	modules := make([]string, 0, len(data))
	for m := range data {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	var out []config.ScriptDeclaration
	for _, module := range modules {
		items, ok := data[module].(map[string]any)
		if !ok {
			return nil, contenterr.Newf(contenterr.CodeParse, "GameData.%s must be a table of declarations", module).
				With("file", "script:"+module)
		}
		names := make([]string, 0, len(items))
		for name := range items {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			origin := "script:" + module + "/" + name
			decl, err := decodeDeclaration(items[name], origin)
			if err != nil {
				return nil, err
			}
			out = append(out, config.ScriptDeclaration{
				Module:           module,
				NamedDeclaration: config.NamedDeclaration{Name: name, Origin: origin, Decl: decl},
			})
		}
	}
	return out, nil
}

// decodeDeclaration routes a script table through the HCL JSON decoder.
func decodeDeclaration(item any, origin string) (*config.Declaration, error) {
	fields, ok := item.(map[string]any)
	if !ok {
		return nil, contenterr.Newf(contenterr.CodeParse, "declaration %s must be a table", origin).With("file", origin)
	}
	src, err := json.Marshal(fields)
	if err != nil {
		return nil, contenterr.Wrap(contenterr.CodeParse, "failed to encode declaration "+origin, err).With("file", origin)
	}
	return hcl.DecodeJSONDeclaration(src, origin)
}
