// Package theme holds the named color palettes and resolves semantic
// roles to concrete colors. A theme is resolved once at startup and is
// immutable afterwards; every rendering call receives it by reference.
package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Role identifies a semantic color slot in a theme.
type Role int

const (
	RoleText Role = iota
	RoleTextDim
	RoleSeparator
	RoleModel
	RoleGaugeAhead
	RoleGaugeOnTrack
	RoleGaugeCaution
	RoleGaugeCritical
	RoleGaugeEmpty
	RoleGradientFloor
)

// roleNames maps the config-facing role names to Role values.
var roleNames = map[string]Role{
	"text":           RoleText,
	"text.dim":       RoleTextDim,
	"separator":      RoleSeparator,
	"model":          RoleModel,
	"gauge.ahead":    RoleGaugeAhead,
	"gauge.on_track": RoleGaugeOnTrack,
	"gauge.caution":  RoleGaugeCaution,
	"gauge.critical": RoleGaugeCritical,
	"gauge.empty":    RoleGaugeEmpty,
	"gradient.floor": RoleGradientFloor,
}

// String returns the config-facing name of the role.
func (r Role) String() string {
	for name, role := range roleNames {
		if role == r {
			return name
		}
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// GradientStop pairs an exclusive upper percentage bound with the
// color used below it.
type GradientStop struct {
	Threshold float64
	Color     Color
}

// Theme is a resolved, immutable palette. Construct one with Resolve.
type Theme struct {
	name     string
	roles    map[Role]Color
	gradient []GradientStop
}

// Name returns the theme name. Custom-merged themes carry a synthetic
// "<base>/custom" name.
func (t *Theme) Name() string { return t.name }

// Role returns the color bound to the given semantic role.
func (t *Theme) Role(r Role) Color { return t.roles[r] }

// Gradient returns the color for a percentage on the theme's gradient:
// the first stop whose threshold exceeds pct wins, and the floor color
// covers everything past the last stop. Built-in themes keep their
// final threshold above 100 so the floor is a pure safety net.
func (t *Theme) Gradient(pct float64) Color {
	for _, stop := range t.gradient {
		if stop.Threshold > pct {
			return stop.Color
		}
	}
	return t.roles[RoleGradientFloor]
}

// Built-in palettes. Hex values follow the Catppuccin Mocha and Latte
// schemes used across the rest of our tooling.
var builtins = map[string]*Theme{
	"dark": {
		name: "dark",
		roles: map[Role]Color{
			RoleText:          mustColor("#cdd6f4"),
			RoleTextDim:       mustColor("#6c7086"),
			RoleSeparator:     mustColor("#45475a"),
			RoleModel:         mustColor("#cba6f7"),
			RoleGaugeAhead:    mustColor("#a6e3a1"),
			RoleGaugeOnTrack:  mustColor("#94e2d5"),
			RoleGaugeCaution:  mustColor("#f9e2af"),
			RoleGaugeCritical: mustColor("#f38ba8"),
			RoleGaugeEmpty:    mustColor("#313244"),
			RoleGradientFloor: mustColor("#f38ba8"),
		},
		gradient: []GradientStop{
			{Threshold: 50, Color: mustColor("#a6e3a1")},
			{Threshold: 75, Color: mustColor("#f9e2af")},
			{Threshold: 90, Color: mustColor("#fab387")},
			{Threshold: 101, Color: mustColor("#f38ba8")},
		},
	},
	"light": {
		name: "light",
		roles: map[Role]Color{
			RoleText:          mustColor("#4c4f69"),
			RoleTextDim:       mustColor("#9ca0b0"),
			RoleSeparator:     mustColor("#bcc0cc"),
			RoleModel:         mustColor("#8839ef"),
			RoleGaugeAhead:    mustColor("#40a02b"),
			RoleGaugeOnTrack:  mustColor("#179299"),
			RoleGaugeCaution:  mustColor("#df8e1d"),
			RoleGaugeCritical: mustColor("#d20f39"),
			RoleGaugeEmpty:    mustColor("#ccd0da"),
			RoleGradientFloor: mustColor("#d20f39"),
		},
		gradient: []GradientStop{
			{Threshold: 50, Color: mustColor("#40a02b")},
			{Threshold: 75, Color: mustColor("#df8e1d")},
			{Threshold: 90, Color: mustColor("#fe640b")},
			{Threshold: 101, Color: mustColor("#d20f39")},
		},
	},
}

// Names returns the built-in theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve builds the active theme: the named base with the given role
// overrides applied on top. Unset roles inherit from the base
// unchanged. An override with a malformed hex value keeps the base
// fallback index but drops the RGB triple, forcing palette emission
// for that role. Unknown role names are an error.
func Resolve(name string, overrides map[string]string) (*Theme, error) {
	base, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q (have: %s)", name, strings.Join(Names(), ", "))
	}
	if len(overrides) == 0 {
		return base, nil
	}

	roles := make(map[Role]Color, len(base.roles))
	for r, c := range base.roles {
		roles[r] = c
	}

	var unknown []string
	for roleName, hex := range overrides {
		role, ok := roleNames[roleName]
		if !ok {
			unknown = append(unknown, roleName)
			continue
		}
		c, ok := parseHex(hex)
		if !ok {
			// Malformed hex: absent RGB, keep the inherited fallback.
			c = Color{Index: roles[role].Index}
		}
		roles[role] = c
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown theme roles: %s", strings.Join(unknown, ", "))
	}

	return &Theme{
		name:     base.name + "/custom",
		roles:    roles,
		gradient: base.gradient,
	}, nil
}
