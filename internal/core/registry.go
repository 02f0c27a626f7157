package core

import (
	"fmt"
	"sort"

	"fittingcore/pkg/domain"
)

// FamilyConfig declares one fitting family: the table keys it may read,
// the column schema resolved against those tables, and the defaults the
// catalog applies to specs that leave a field empty. Supports compose
// their table key as "<type> <standard>", so the registered key carries
// the support type prefix.
type FamilyConfig struct {
	Family          domain.Family
	Schema          domain.Schema
	Standards       []string
	DefaultStandard string
	// Angles lists the valid elbow angles in degrees; empty for other
	// families.
	Angles     []int
	SteelGrade string
	// Execution and Type are support defaults.
	Execution string
	Type      string
}

// Registry maps fitting families to their configurations and table keys
// back to families. Registration happens at catalog construction;
// lookups never mutate it.
type Registry struct {
	families  map[domain.Family]FamilyConfig
	standards map[string]domain.Family
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		families:  make(map[domain.Family]FamilyConfig),
		standards: make(map[string]domain.Family),
	}
}

// Register adds a family configuration. A family and each of its table
// keys may be claimed at most once, and the default standard must be in
// the family's own list.
func (r *Registry) Register(cfg FamilyConfig) error {
	if cfg.Family == "" {
		return fmt.Errorf("family name is empty")
	}
	if _, dup := r.families[cfg.Family]; dup {
		return fmt.Errorf("family %s already registered", cfg.Family)
	}
	if len(cfg.Standards) == 0 {
		return fmt.Errorf("family %s: no standards listed", cfg.Family)
	}
	defaultListed := false
	for _, standard := range cfg.Standards {
		if standard == "" {
			return fmt.Errorf("family %s: empty standard name", cfg.Family)
		}
		if owner, dup := r.standards[standard]; dup {
			return fmt.Errorf("standard %s already claimed by family %s", standard, owner)
		}
		if standard == cfg.DefaultStandard {
			defaultListed = true
		}
	}
	if !defaultListed {
		return fmt.Errorf("family %s: default standard %q is not in its standard list", cfg.Family, cfg.DefaultStandard)
	}
	r.families[cfg.Family] = cfg
	for _, standard := range cfg.Standards {
		r.standards[standard] = cfg.Family
	}
	return nil
}

// Config returns the configuration registered for the family.
func (r *Registry) Config(family domain.Family) (FamilyConfig, bool) {
	cfg, ok := r.families[family]
	return cfg, ok
}

// FamilyFor returns the family that claimed the table key.
func (r *Registry) FamilyFor(standard string) (domain.Family, bool) {
	family, ok := r.standards[standard]
	return family, ok
}

// Standards returns every registered table key in sorted order.
func (r *Registry) Standards() []string {
	out := make([]string, 0, len(r.standards))
	for standard := range r.standards {
		out = append(out, standard)
	}
	sort.Strings(out)
	return out
}

// Families returns the registered configurations sorted by family name.
func (r *Registry) Families() []FamilyConfig {
	out := make([]FamilyConfig, 0, len(r.families))
	for _, cfg := range r.families {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Family < out[j].Family })
	return out
}

// DefaultRegistry returns the registry of built-in GOST/OST families.
// Armature assemblies read no tables and are not registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	configs := []FamilyConfig{
		{
			Family: domain.FamilyPipe,
			Schema: domain.Schema{Diameter: "dn", ThicknessColumns: true},
			Standards: []string{
				domain.StandardPipeSeamlessHot,
				domain.StandardPipeSeamlessCold,
				domain.StandardPipeWelded,
			},
			DefaultStandard: domain.StandardPipeSeamlessHot,
			SteelGrade:      domain.DefaultSteelGrade,
		},
		{
			Family: domain.FamilyElbow,
			Schema: domain.Schema{
				Diameter:  "D",
				Thickness: "T",
				Nominal:   "DN",
				AngleMass: map[int]string{45: "Mass_45", 60: "Mass_60", 90: "Mass_90", 180: "Mass_180"},
			},
			Standards:       []string{domain.StandardElbow},
			DefaultStandard: domain.StandardElbow,
			Angles:          []int{45, 60, 90, 180},
			SteelGrade:      domain.DefaultSteelGrade,
		},
		{
			Family: domain.FamilyTee,
			Schema: domain.Schema{
				Diameter:        "D",
				Thickness:       "T",
				BranchDiameter:  "D1",
				BranchThickness: "T1",
				Nominal:         "DN",
				Execution:       "Execution",
				Mass:            "mass",
			},
			Standards:       []string{domain.StandardTee},
			DefaultStandard: domain.StandardTee,
			SteelGrade:      domain.DefaultSteelGrade,
		},
		{
			Family: domain.FamilyTransition,
			Schema: domain.Schema{
				Diameter:        "D",
				Thickness:       "T",
				BranchDiameter:  "D1",
				BranchThickness: "T1",
				Nominal:         "DN",
				Mass:            "mass",
			},
			Standards:       []string{domain.StandardTransition},
			DefaultStandard: domain.StandardTransition,
			SteelGrade:      domain.DefaultSteelGrade,
		},
		{
			Family:          domain.FamilySupport,
			Schema:          domain.Schema{Diameter: "dn", Execution: "Execution", Mass: "mass"},
			Standards:       []string{domain.DefaultSupportType + " " + domain.StandardSupport},
			DefaultStandard: domain.DefaultSupportType + " " + domain.StandardSupport,
			SteelGrade:      domain.DefaultSupportSteelGrade,
			Execution:       domain.DefaultSupportExecution,
			Type:            domain.DefaultSupportType,
		},
	}
	for _, cfg := range configs {
		if err := r.Register(cfg); err != nil {
			panic(fmt.Sprintf("register built-in family: %v", err))
		}
	}
	return r
}
