package principles

import (
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/locale"
)

// lowLevelConcerns are infrastructure categories a single file should not
// reach into directly all at once.
var lowLevelConcerns = []string{"data-access", "network", "filesystem", "messaging"}

var depConcernThresholds = Thresholds{Low: 2, Medium: 3, High: 4}

// DependencyDirection flags files that couple themselves to several
// infrastructure concerns at once instead of depending on an abstraction.
type DependencyDirection struct {
	Base
}

func NewDependencyDirection() *DependencyDirection {
	return &DependencyDirection{Base{principle: "dependency-direction"}}
}

func (c *DependencyDirection) Check(ctx *Context) []findings.Violation {
	concerns := c.ClassifyImportConcerns(ctx.Imports)

	var hit []string
	for _, concern := range lowLevelConcerns {
		if concerns[concern] {
			hit = append(hit, concern)
		}
	}
	if len(hit) < depConcernThresholds.Low {
		return nil
	}

	params := map[string]interface{}{"count": len(hit), "imports": len(ctx.Imports)}
	v := c.NewViolation(
		ctx.File,
		c.SeverityFromThresholds(len(hit), depConcernThresholds),
		locale.T("principle.dependency-direction.description", params),
		locale.T("principle.dependency-direction.explanation", params),
		locale.T("principle.dependency-direction.impact", nil),
		locale.T("principle.dependency-direction.suggestion", params),
	)
	v.Metrics = &findings.UnitMetrics{
		DependencyCount: len(ctx.Imports),
		Concerns:        hit,
	}
	return []findings.Violation{v}
}
