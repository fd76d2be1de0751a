package principles

import (
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/locale"
)

var ispParamThresholds = Thresholds{Low: 6, Medium: 8, High: 10}

// InterfaceSegregation flags units whose call contract is too wide: a long
// parameter list forces every caller to know about inputs it rarely uses.
type InterfaceSegregation struct {
	Base
}

func NewInterfaceSegregation() *InterfaceSegregation {
	return &InterfaceSegregation{Base{principle: "interface-segregation"}}
}

func (c *InterfaceSegregation) Check(ctx *Context) []findings.Violation {
	var violations []findings.Violation
	for i := range ctx.Units {
		unit := &ctx.Units[i]
		count := len(unit.Parameters)
		if count < ispParamThresholds.Low {
			continue
		}

		params := map[string]interface{}{"name": unit.Name, "count": count}
		v := c.NewViolation(
			ctx.File,
			c.SeverityFromThresholds(count, ispParamThresholds),
			locale.T("principle.interface-segregation.description", params),
			locale.T("principle.interface-segregation.explanation", params),
			locale.T("principle.interface-segregation.impact", nil),
			locale.T("principle.interface-segregation.suggestion", params),
		)
		v.Line = unit.StartLine
		v.UnitName = unit.Name
		v.Metrics = &findings.UnitMetrics{ParameterCount: count, LineCount: unit.LineCount()}
		violations = append(violations, v)
	}
	return violations
}
