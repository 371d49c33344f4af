package codec

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/internal/document"
	"contract-mapper/internal/engine"
	"contract-mapper/internal/errors"
	"contract-mapper/internal/logger"
	"contract-mapper/internal/mapping"
	"contract-mapper/internal/normalize"
	"contract-mapper/internal/serialize"
	"contract-mapper/internal/wire"
	"contract-mapper/model"
)

// Options configure a Codec. The zero value imports and exports with the
// heuristic mapper only and logs nothing.
type Options struct {
	// Engine supplies the external transformation engine. Nil means none
	// is configured and the heuristic mapper is used without a warning.
	Engine *engine.Loader
	// Logger receives every diagnostic. Nil discards.
	Logger *zap.SugaredLogger
	// MaxNestingDepth bounds composite column nesting on import and
	// export. Zero selects model.DefaultMaxNestingDepth.
	MaxNestingDepth int
	// DataLevelTagKey is the tag key promoted to Table.DataLevel. Empty
	// selects "dataLevel".
	DataLevelTagKey string
}

// Codec imports and exports data contracts. It is safe for concurrent use.
type Codec struct {
	opts Options
	log  *zap.SugaredLogger
}

// Result is the outcome of a successful import.
type Result struct {
	Model       *model.EntityModel
	Diagnostics Diagnostics
	// Native reports whether the external engine mapped the document.
	Native bool
}

// New returns a Codec.
func New(opts Options) *Codec {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	if opts.MaxNestingDepth <= 0 {
		opts.MaxNestingDepth = model.DefaultMaxNestingDepth
	}

	if opts.DataLevelTagKey == "" {
		opts.DataLevelTagKey = normalize.DefaultDataLevelTagKey
	}

	return &Codec{opts: opts, log: log}
}

// Import converts contract text into an entity model.
func (c *Codec) Import(ctx context.Context, text []byte) (*Result, error) {
	var diags diagnostic.Diagnostics

	docs, err := document.ParseStream(text)
	if err != nil {
		c.log.Debugw("contract parse failed", logger.FieldError, err)
		return nil, err
	}

	if len(docs) > 1 {
		diags.AddWarning(diagnostic.CodeExtraDocuments,
			fmt.Sprintf("document stream holds %d documents; only the first is imported", len(docs)), "", "")
	}

	contract, native := c.nativeContract(ctx, text, &diags)
	if contract == nil {
		contract, err = mapping.FromTree(docs[0], mapping.Options{MaxNestingDepth: c.opts.MaxNestingDepth}, &diags)
		if err != nil {
			c.report("import", &diags)
			return nil, err
		}
	}

	m, err := normalize.Contract(contract, normalize.Options{
		MaxNestingDepth: c.opts.MaxNestingDepth,
		DataLevelTagKey: c.opts.DataLevelTagKey,
	}, &diags)
	if err != nil {
		c.report("import", &diags)
		return nil, err
	}

	c.report("import", &diags)
	c.log.Debugw("contract imported",
		logger.FieldCount, len(m.Tables),
		logger.FieldEngine, native,
	)

	return &Result{Model: m, Diagnostics: diags, Native: native}, nil
}

// nativeContract maps text through the engine. It returns nil when no
// engine is configured or any engine step fails; failures are recorded as
// engine_unavailable warnings.
func (c *Codec) nativeContract(ctx context.Context, text []byte, diags *diagnostic.Diagnostics) (*wire.Contract, bool) {
	capability := c.capability(ctx, diags)
	if capability == nil {
		return nil, false
	}

	tree, err := capability.ParseNative(ctx, text)
	if err != nil {
		c.fallback(diags, errors.Wrap(err, "engine parse"))
		return nil, false
	}

	var contract wire.Contract
	if err := document.Decode(tree, &contract); err != nil {
		c.fallback(diags, errors.Wrap(err, "engine output"))
		return nil, false
	}

	return &contract, true
}

func (c *Codec) capability(ctx context.Context, diags *diagnostic.Diagnostics) engine.Capability {
	if c.opts.Engine == nil {
		return nil
	}

	capability, err := c.opts.Engine.Load(ctx)
	if err != nil {
		c.fallback(diags, err)
		return nil
	}

	return capability
}

func (c *Codec) fallback(diags *diagnostic.Diagnostics, err error) {
	diags.AddWarning(diagnostic.CodeEngineUnavailable, err.Error()+"; using the built-in mapper", "", "")
}

// Export converts m into contract text. m is not modified.
func (c *Codec) Export(m *model.EntityModel) ([]byte, error) {
	tree, err := c.exportTree(m)
	if err != nil {
		return nil, err
	}

	return document.Emit(tree)
}

// ExportNative converts m into contract text rendered by the engine. When
// the engine is unavailable it behaves like Export and records an
// engine_unavailable warning.
func (c *Codec) ExportNative(ctx context.Context, m *model.EntityModel) ([]byte, Diagnostics, error) {
	var diags diagnostic.Diagnostics

	tree, err := c.exportTree(m)
	if err != nil {
		return nil, diags, err
	}

	if capability := c.capability(ctx, &diags); capability != nil {
		out, err := capability.SerializeNative(ctx, tree)
		if err == nil {
			c.report("export", &diags)
			return out, diags, nil
		}

		c.fallback(&diags, errors.Wrap(err, "engine serialize"))
	}

	c.report("export", &diags)

	out, err := document.Emit(tree)

	return out, diags, err
}

func (c *Codec) exportTree(m *model.EntityModel) (*yaml.Node, error) {
	contract, err := serialize.Contract(m, serialize.Options{
		MaxNestingDepth: c.opts.MaxNestingDepth,
		DataLevelTagKey: c.opts.DataLevelTagKey,
	})
	if err != nil {
		c.log.Warnw("contract export failed", logger.FieldError, err)
		return nil, err
	}

	return document.Encode(contract)
}

// RoundTripResult reports an import, export, import cycle.
type RoundTripResult struct {
	// First and Second are the models of the original and re-imported text.
	First, Second *Result
	// Text is the exported contract.
	Text []byte
	// Drift lists structural differences between the two models.
	Drift []string
}

// Stable reports whether the cycle reproduced the model.
func (r *RoundTripResult) Stable() bool {
	return len(r.Drift) == 0
}

// RoundTrip imports text, exports the model and imports the output again.
func (c *Codec) RoundTrip(ctx context.Context, text []byte) (*RoundTripResult, error) {
	first, err := c.Import(ctx, text)
	if err != nil {
		return nil, err
	}

	out, err := c.Export(first.Model)
	if err != nil {
		return nil, err
	}

	second, err := c.Import(ctx, out)
	if err != nil {
		return nil, errors.Wrap(err, "re-import exported contract")
	}

	return &RoundTripResult{
		First:  first,
		Second: second,
		Text:   out,
		Drift:  model.Diff(first.Model, second.Model),
	}, nil
}

// report logs every diagnostic: errors and warnings at warn, infos at debug.
func (c *Codec) report(op string, diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fields := []any{
			logger.FieldOperation, op,
			logger.FieldCode, d.Code,
			logger.FieldSeverity, d.Severity.String(),
		}

		if d.Entry != "" {
			fields = append(fields, logger.FieldEntry, d.Entry)
		}

		if d.Field != "" {
			fields = append(fields, logger.FieldField, d.Field)
		}

		if d.Severity == diagnostic.DiagnosticInfo {
			c.log.Debugw(d.Message, fields...)
		} else {
			c.log.Warnw(d.Message, fields...)
		}
	}
}
