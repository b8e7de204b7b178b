package payroll

import (
	"sort"
	"strings"

	payrollerrors "go-paye/internal/payroll/errors"

	"github.com/shopspring/decimal"
)

// DefaultComponentSpec mirrors the breakdown offered by the calculator form.
const DefaultComponentSpec = "BASIC:30,TRANSPORT:25,HOUSING:20,UTILITY:15,MEAL:5,CLOTHING:5"

var (
	hundred           = decimal.NewFromInt(100)
	percentTolerance  = decimal.RequireFromString("0.01")
	pensionableFields = []string{ComponentBasic, ComponentTransport, ComponentHousing}
	wellKnownOrder    = []string{ComponentBasic, ComponentTransport, ComponentHousing, ComponentUtility}
)

type Component struct {
	Name       string
	Percentage decimal.Decimal
}

// ComponentConfig is validated once and then only read.
type ComponentConfig struct {
	components []Component
}

// NewComponentConfig validates percentages: non-negative, summing to
// 100 ± 0.01, with BASIC, TRANSPORT and HOUSING present (they may be 0).
// Names are trimmed and upper-cased. Well-known categories come first,
// the rest alphabetically.
func NewComponentConfig(percentages map[string]decimal.Decimal) (ComponentConfig, error) {
	if len(percentages) == 0 {
		return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("no components given")
	}

	normalized := make(map[string]decimal.Decimal, len(percentages))
	total := decimal.Zero
	for name, pct := range percentages {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("component name is empty")
		}
		if _, dup := normalized[key]; dup {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("component %s given twice", key)
		}
		if pct.IsNegative() {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("component %s has negative percentage %s", key, pct.String())
		}
		normalized[key] = pct
		total = total.Add(pct)
	}

	for _, required := range pensionableFields {
		if _, ok := normalized[required]; !ok {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("component %s is required", required)
		}
	}

	if total.Sub(hundred).Abs().GreaterThan(percentTolerance) {
		return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("percentages sum to %s, expected 100", total.String())
	}

	ordered := make([]Component, 0, len(normalized))
	for _, name := range wellKnownOrder {
		if pct, ok := normalized[name]; ok {
			ordered = append(ordered, Component{Name: name, Percentage: pct})
			delete(normalized, name)
		}
	}
	rest := make([]string, 0, len(normalized))
	for name := range normalized {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		ordered = append(ordered, Component{Name: name, Percentage: normalized[name]})
	}

	return ComponentConfig{components: ordered}, nil
}

// ParseComponentSpec reads "BASIC:30,TRANSPORT:25,..." (as found in
// PAYROLL_COMPONENTS) and validates it.
func ParseComponentSpec(spec string) (ComponentConfig, error) {
	percentages := make(map[string]decimal.Decimal)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			name, value, ok = strings.Cut(part, "=")
		}
		if !ok {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("entry %q is not NAME:PERCENT", part)
		}
		pct, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("entry %q has a non-numeric percentage", part)
		}
		key := strings.ToUpper(strings.TrimSpace(name))
		if _, dup := percentages[key]; dup {
			return ComponentConfig{}, payrollerrors.ErrInvalidConfig.WithReason("component %s given twice", key)
		}
		percentages[key] = pct
	}
	return NewComponentConfig(percentages)
}

// Components returns a copy in configured order.
func (c ComponentConfig) Components() []Component {
	out := make([]Component, len(c.components))
	copy(out, c.components)
	return out
}

func (c ComponentConfig) Percentages() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.components))
	for _, comp := range c.components {
		out[comp.Name] = comp.Percentage
	}
	return out
}
