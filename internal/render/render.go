package render

import (
	"fmt"
	"log/slog"
	"strings"

	"assetman/internal/config"
	"assetman/internal/logging"
	"assetman/internal/registry"
	"assetman/internal/script"
	"assetman/internal/textutil"
)

const assetPrefix = "_am_"

// Asset is an external script file referenced by the rendered block.
type Asset struct {
	Name    string
	Content string
}

// Result is the output of one render.
type Result struct {
	// Block is the text inserted into the template, stub markers included.
	Block  string
	Assets []Asset
}

// Renderer turns settings into template text.
type Renderer struct {
	registry  *registry.Registry
	stubBegin string
	stubEnd   string
	logger    *slog.Logger
}

// New builds a renderer that wraps its output in the given stub markers.
func New(reg *registry.Registry, stubBegin, stubEnd string, logger *slog.Logger) *Renderer {
	return &Renderer{
		registry:  reg,
		stubBegin: stubBegin,
		stubEnd:   stubEnd,
		logger:    logging.NewComponentLogger(logger, "render"),
	}
}

// NewFromConfig builds a renderer using the configured stub marker.
func NewFromConfig(reg *registry.Registry, cfg *config.Config, logger *slog.Logger) *Renderer {
	return New(reg, cfg.StubBegin(), cfg.StubEnd(), logger)
}

// Render produces the block for target: matching HTML fragments first, then
// matching scripts. Disabled settings contribute nothing.
func (r *Renderer) Render(scripts script.ScriptSetting, html script.HTMLSetting, target Target) (Result, error) {
	fragments, err := r.fragments(html, target)
	if err != nil {
		return Result{}, err
	}
	tags, assets, err := r.scripts(scripts, target)
	if err != nil {
		return Result{}, err
	}

	parts := make([]string, 0, 2)
	if fragments != "" {
		parts = append(parts, fragments)
	}
	if tags != "" {
		parts = append(parts, tags)
	}
	block := strings.Join(parts, "\n")
	if scripts.InsertStub {
		block = r.wrap(block)
	}

	r.logger.Debug("rendered template",
		logging.String("model", target.Model),
		logging.String("template", target.Template),
		logging.String("side", string(target.Side)),
		logging.Int("assets", len(assets)),
		logging.Int("bytes", len(block)),
	)
	return Result{Block: block, Assets: assets}, nil
}

func (r *Renderer) scripts(setting script.ScriptSetting, target Target) (string, []Asset, error) {
	if !setting.Enabled {
		return "", nil, nil
	}
	gctx := registry.GenerateContext{Model: target.Model, Template: target.Template, Side: string(target.Side)}
	names := make(map[string]int)

	var tags []string
	var assets []Asset
	for i, entry := range setting.Scripts {
		resolved, code, err := r.resolve(entry, gctx)
		if err != nil {
			return "", nil, fmt.Errorf("script %d: %w", i, err)
		}
		if !resolved.Enabled {
			continue
		}
		matched, err := Match(resolved.Conditions, target)
		if err != nil {
			return "", nil, fmt.Errorf("script %d (%s): %w", i, resolved.Name, err)
		}
		if !matched || strings.TrimSpace(code) == "" {
			continue
		}

		switch resolved.Position {
		case script.PositionIntoTemplate:
			tags = append(tags, inlineTag(resolved.Type, code, setting.IndentSize))
		default:
			name := assetName(resolved.Name, names)
			tags = append(tags, externalTag(resolved.Type, name))
			assets = append(assets, Asset{Name: name, Content: code})
		}
	}
	return strings.Join(tags, "\n"), assets, nil
}

// resolve returns the effective script and the code to emit for it.
func (r *Renderer) resolve(entry script.Script, gctx registry.GenerateContext) (script.ConcreteScript, string, error) {
	switch typed := entry.(type) {
	case *script.ConcreteScript:
		return *typed, typed.Code, nil
	case *script.MetaScript:
		iface, err := r.registry.Interface(typed.Tag)
		if err != nil {
			return script.ConcreteScript{}, "", err
		}
		resolved := iface.Get(typed.ID, typed.Storage.Clone())
		if !resolved.Enabled {
			return resolved, "", nil
		}
		return resolved, registry.Generate(iface, typed.ID, typed.Storage.Clone(), gctx), nil
	}
	return script.ConcreteScript{}, "", fmt.Errorf("unsupported script %T", entry)
}

func (r *Renderer) fragments(setting script.HTMLSetting, target Target) (string, error) {
	if !setting.Enabled {
		return "", nil
	}
	var parts []string
	for i, fragment := range setting.Fragments {
		if !fragment.Enabled || strings.TrimSpace(fragment.Code) == "" {
			continue
		}
		matched, err := Match(fragment.Conditions, target)
		if err != nil {
			return "", fmt.Errorf("fragment %d (%s): %w", i, fragment.Name, err)
		}
		if !matched {
			continue
		}
		code := strings.TrimRight(fragment.Code, "\n")
		if setting.Minify {
			code = textutil.CollapseLines(code)
		}
		parts = append(parts, code)
	}
	return strings.Join(parts, "\n"), nil
}

func typeAttr(t script.Type) string {
	if t == script.TypeESM {
		return ` type="module"`
	}
	return ""
}

func inlineTag(t script.Type, code string, indent int) string {
	body := textutil.Indent(strings.TrimRight(code, "\n"), indent)
	return fmt.Sprintf("<script%s>\n%s\n</script>", typeAttr(t), body)
}

func externalTag(t script.Type, name string) string {
	return fmt.Sprintf(`<script%s src="%s"></script>`, typeAttr(t), name)
}

// assetName derives a unique file name from the script name.
func assetName(scriptName string, seen map[string]int) string {
	slug := textutil.Slug(scriptName)
	seen[slug]++
	if n := seen[slug]; n > 1 {
		slug = fmt.Sprintf("%s_%d", slug, n)
	}
	return assetPrefix + slug + ".js"
}

func (r *Renderer) wrap(block string) string {
	if block == "" {
		return r.stubBegin + "\n" + r.stubEnd
	}
	return r.stubBegin + "\n" + block + "\n" + r.stubEnd
}

// StripStub removes every stub block from template, markers included.
// An unterminated block is left in place.
func (r *Renderer) StripStub(template string) string {
	out := template
	for {
		start := strings.Index(out, r.stubBegin)
		if start < 0 {
			return out
		}
		rel := strings.Index(out[start:], r.stubEnd)
		if rel < 0 {
			return out
		}
		end := start + rel + len(r.stubEnd)
		before := strings.TrimRight(out[:start], "\n")
		after := strings.TrimLeft(out[end:], "\n")
		switch {
		case before == "":
			out = after
		case after == "":
			out = before
		default:
			out = before + "\n" + after
		}
	}
}

// Apply replaces any previous stub block in template with result. With stub
// markers enabled, applying the same result twice yields the same template.
func (r *Renderer) Apply(template string, result Result) string {
	base := strings.TrimRight(r.StripStub(template), "\n")
	if result.Block == "" {
		return base
	}
	if base == "" {
		return result.Block
	}
	return base + "\n" + result.Block
}
