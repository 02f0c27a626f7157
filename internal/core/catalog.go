// Package core implements the fitting catalog: family registration,
// reference-table loading and caching, per-family validation, and the
// assembly of validated fitting entities. Operations run through a
// shared instrumentation wrapper feeding the configured logger, metrics
// recorder, tracer and audit recorder.
package core

import (
	"context"
	"fmt"

	"fittingcore/internal/gostdata"
	"fittingcore/pkg/domain"
)

// Armature temperature defaults in degrees Celsius, applied when the
// spec leaves the corresponding field zero.
const (
	defaultArmatureTMax    = 150
	defaultArmatureTMin    = 70
	defaultArmatureTDesign = 150
)

// Catalog validates fitting specifications against reference tables and
// assembles the fitting entities.
type Catalog struct {
	registry      *Registry
	provider      *TableProvider
	clock         Clock
	logger        Logger
	metrics       MetricsRecorder
	tracer        Tracer
	audit         AuditRecorder
	cacheCapacity int
}

// Option configures a Catalog during New.
type Option func(*Catalog)

// WithClock substitutes the timestamp source used for durations and
// audit entries.
func WithClock(clock Clock) Option {
	return func(c *Catalog) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLogger routes catalog logs to the supplied logger.
func WithLogger(logger Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetricsRecorder observes every catalog operation outcome.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(c *Catalog) {
		c.metrics = recorder
	}
}

// WithTracer starts a span around every catalog operation.
func WithTracer(tracer Tracer) Option {
	return func(c *Catalog) {
		c.tracer = tracer
	}
}

// WithAuditRecorder records an audit entry for every catalog operation.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(c *Catalog) {
		c.audit = recorder
	}
}

// WithRegistry replaces the built-in family registry.
func WithRegistry(registry *Registry) Option {
	return func(c *Catalog) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithCacheCapacity bounds the resolved-table cache. Non-positive
// values select DefaultCacheCapacity.
func WithCacheCapacity(capacity int) Option {
	return func(c *Catalog) {
		c.cacheCapacity = capacity
	}
}

// New builds a catalog over the table source. A nil source selects the
// embedded GOST tables.
func New(source domain.TableSource, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		registry: DefaultRegistry(),
		clock:    systemClock{},
		logger:   noopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if source == nil {
		source = gostdata.Source{}
	}
	provider, err := NewTableProvider(source, c.registry, c.cacheCapacity, c.logger)
	if err != nil {
		return nil, err
	}
	c.provider = provider
	return c, nil
}

// Provider returns the table provider backing the catalog.
func (c *Catalog) Provider() *TableProvider {
	return c.provider
}

// Standards lists every registered standard name, sorted.
func (c *Catalog) Standards() []string {
	return c.registry.Standards()
}

// Families lists the registered family configurations sorted by family
// name.
func (c *Catalog) Families() []FamilyConfig {
	return c.registry.Families()
}

// Table loads the resolved reference table for a registered standard.
func (c *Catalog) Table(ctx context.Context, standard string) (domain.Table, error) {
	var table domain.Table
	err := c.run(ctx, "load_table", func(ctx context.Context) (string, error) {
		var err error
		table, err = c.provider.Load(ctx, standard)
		return standard, err
	})
	if err != nil {
		return domain.Table{}, err
	}
	return table, nil
}

// NewPipe validates the spec against its pipe table and assembles the
// pipe. An empty standard selects ГОСТ 8732-78.
func (c *Catalog) NewPipe(ctx context.Context, spec domain.PipeSpec) (*domain.Pipe, error) {
	var pipe *domain.Pipe
	err := c.run(ctx, "create_pipe", func(ctx context.Context) (string, error) {
		cfg, err := c.familyConfig(domain.FamilyPipe)
		if err != nil {
			return "", err
		}
		if spec.Standard == "" {
			spec.Standard = cfg.DefaultStandard
		}
		table, err := c.familyTable(ctx, cfg, spec.Standard)
		if err != nil {
			return "", err
		}
		massPerMeter, err := resolvePipe(table, spec)
		if err != nil {
			return "", err
		}
		pipe = domain.NewPipe(spec, massPerMeter)
		return pipe.Label(), nil
	})
	if err != nil {
		return nil, err
	}
	return pipe, nil
}

// NewElbow validates the spec against the elbow table and assembles the
// elbow. An empty steel grade selects Сталь 20; a zero count means one
// elbow.
func (c *Catalog) NewElbow(ctx context.Context, spec domain.ElbowSpec) (*domain.Elbow, error) {
	var elbow *domain.Elbow
	err := c.run(ctx, "create_elbow", func(ctx context.Context) (string, error) {
		cfg, err := c.familyConfig(domain.FamilyElbow)
		if err != nil {
			return "", err
		}
		if spec.Standard == "" {
			spec.Standard = cfg.DefaultStandard
		}
		if spec.SteelGrade == "" {
			spec.SteelGrade = cfg.SteelGrade
		}
		if err := normalizeCount(&spec.Count); err != nil {
			return "", err
		}
		table, err := c.familyTable(ctx, cfg, spec.Standard)
		if err != nil {
			return "", err
		}
		nominal, massPerUnit, err := resolveElbow(table, spec, cfg.Angles)
		if err != nil {
			return "", err
		}
		elbow = domain.NewElbow(spec, nominal, massPerUnit)
		return elbow.Label(), nil
	})
	if err != nil {
		return nil, err
	}
	return elbow, nil
}

// NewTee validates the spec against the tee table and assembles the
// tee.
func (c *Catalog) NewTee(ctx context.Context, spec domain.TeeSpec) (*domain.Tee, error) {
	var tee *domain.Tee
	err := c.run(ctx, "create_tee", func(ctx context.Context) (string, error) {
		cfg, err := c.familyConfig(domain.FamilyTee)
		if err != nil {
			return "", err
		}
		if spec.Standard == "" {
			spec.Standard = cfg.DefaultStandard
		}
		if spec.SteelGrade == "" {
			spec.SteelGrade = cfg.SteelGrade
		}
		if err := normalizeCount(&spec.Count); err != nil {
			return "", err
		}
		table, err := c.familyTable(ctx, cfg, spec.Standard)
		if err != nil {
			return "", err
		}
		nominal, execution, massPerUnit, err := resolveTee(table, spec)
		if err != nil {
			return "", err
		}
		tee = domain.NewTee(spec, nominal, execution, massPerUnit)
		return tee.Label(), nil
	})
	if err != nil {
		return nil, err
	}
	return tee, nil
}

// NewTransition validates the spec against the transition table and
// assembles the transition.
func (c *Catalog) NewTransition(ctx context.Context, spec domain.TransitionSpec) (*domain.Transition, error) {
	var transition *domain.Transition
	err := c.run(ctx, "create_transition", func(ctx context.Context) (string, error) {
		cfg, err := c.familyConfig(domain.FamilyTransition)
		if err != nil {
			return "", err
		}
		if spec.Standard == "" {
			spec.Standard = cfg.DefaultStandard
		}
		if spec.SteelGrade == "" {
			spec.SteelGrade = cfg.SteelGrade
		}
		if err := normalizeCount(&spec.Count); err != nil {
			return "", err
		}
		table, err := c.familyTable(ctx, cfg, spec.Standard)
		if err != nil {
			return "", err
		}
		nominal, massPerUnit, err := resolveTransition(table, spec)
		if err != nil {
			return "", err
		}
		transition = domain.NewTransition(spec, nominal, massPerUnit)
		return transition.Label(), nil
	})
	if err != nil {
		return nil, err
	}
	return transition, nil
}

// NewSupport validates the spec against the support table and assembles
// the support. The table key composes the support type with the
// standard, so "КП" under ОСТ 36-146-88 loads "КП ОСТ 36-146-88".
func (c *Catalog) NewSupport(ctx context.Context, spec domain.SupportSpec) (*domain.Support, error) {
	var support *domain.Support
	err := c.run(ctx, "create_support", func(ctx context.Context) (string, error) {
		cfg, err := c.familyConfig(domain.FamilySupport)
		if err != nil {
			return "", err
		}
		if spec.Standard == "" {
			spec.Standard = domain.StandardSupport
		}
		if spec.Type == "" {
			spec.Type = cfg.Type
		}
		if spec.Execution == "" {
			spec.Execution = cfg.Execution
		}
		if spec.SteelGrade == "" {
			spec.SteelGrade = cfg.SteelGrade
		}
		table, err := c.familyTable(ctx, cfg, spec.Type+" "+spec.Standard)
		if err != nil {
			return "", err
		}
		massPerUnit, err := resolveSupport(table, spec)
		if err != nil {
			return "", err
		}
		support = domain.NewSupport(spec, massPerUnit)
		return support.Label(), nil
	})
	if err != nil {
		return nil, err
	}
	return support, nil
}

// NewArmatureAssembly validates the valve-assembly spec and assembles
// the kit. Zero temperatures select the catalog defaults.
func (c *Catalog) NewArmatureAssembly(ctx context.Context, spec domain.ArmatureSpec) (*domain.ArmatureAssembly, error) {
	var assembly *domain.ArmatureAssembly
	err := c.run(ctx, "create_armature", func(ctx context.Context) (string, error) {
		if spec.TMax == 0 {
			spec.TMax = defaultArmatureTMax
		}
		if spec.TMin == 0 {
			spec.TMin = defaultArmatureTMin
		}
		if spec.TDesign == 0 {
			spec.TDesign = defaultArmatureTDesign
		}
		if err := validateArmature(spec); err != nil {
			return "", err
		}
		assembly = domain.NewArmatureAssembly(spec)
		return assembly.Label(), nil
	})
	if err != nil {
		return nil, err
	}
	return assembly, nil
}

func (c *Catalog) familyConfig(family domain.Family) (FamilyConfig, error) {
	cfg, ok := c.registry.Config(family)
	if !ok {
		return FamilyConfig{}, fmt.Errorf("family %s is not registered", family)
	}
	return cfg, nil
}

// familyTable loads the table for a standard after checking that the
// standard belongs to the family; a pipe spec naming an elbow standard
// fails here rather than during the lookup.
func (c *Catalog) familyTable(ctx context.Context, cfg FamilyConfig, standard string) (domain.Table, error) {
	if owner, ok := c.registry.FamilyFor(standard); !ok || owner != cfg.Family {
		return domain.Table{}, domain.UnknownStandardError{
			Standard: standard,
			Known:    append([]string(nil), cfg.Standards...),
		}
	}
	return c.provider.Load(ctx, standard)
}

// normalizeCount applies the single-unit default and rejects negative
// counts.
func normalizeCount(count *int) error {
	if *count < 0 {
		return domain.InvalidParameterError{
			Parameter:  "count",
			Value:      fmt.Sprintf("%d", *count),
			Constraint: "must not be negative",
		}
	}
	if *count == 0 {
		*count = 1
	}
	return nil
}

// run executes one catalog operation through the configured
// instrumentation. fn returns the designation recorded in the audit
// trail on success.
func (c *Catalog) run(ctx context.Context, operation string, fn func(ctx context.Context) (string, error)) error {
	start := c.clock.Now()
	var span TraceSpan
	if c.tracer != nil {
		ctx, span = c.tracer.Start(ctx, operation)
	}
	designation, err := fn(ctx)
	duration := c.clock.Now().Sub(start)
	if span != nil {
		span.End(err)
	}
	if c.metrics != nil {
		c.metrics.Observe(ctx, operation, err == nil, duration)
	}
	if c.audit != nil {
		entry := AuditEntry{
			Operation:   operation,
			Status:      AuditStatusSuccess,
			Designation: designation,
			OccurredAt:  c.clock.Now(),
		}
		if err != nil {
			entry.Status = AuditStatusError
			entry.Designation = ""
			entry.Error = err.Error()
		}
		c.audit.Record(ctx, entry)
	}
	if err != nil {
		c.logger.Error("catalog operation failed", "operation", operation, "error", err)
		return err
	}
	c.logger.Debug("catalog operation completed", "operation", operation, "designation", designation, "duration", duration)
	return nil
}
