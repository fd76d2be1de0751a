package locale

// Builtin returns the default English catalog. Callers that need another
// language install their own map through SetCatalog instead.
func Builtin() map[string]string {
	return map[string]string{
		"detector.deprecated-declaration.message":    "'var' declaration is deprecated",
		"detector.deprecated-declaration.suggestion": "Use 'let' or 'const' instead of 'var'",

		"detector.weak-equality.message":    "Weak equality operator '{operator}' compares after type coercion",
		"detector.weak-equality.suggestion": "Use '{replacement}' instead of '{operator}'",

		"detector.debug-statement.message":    "Debug statement 'console.{method}' left in code",
		"detector.debug-statement.suggestion": "Remove the console call or route it through a logger",

		"detector.unnamed-constant.message":    "Magic number {value} has no explanatory name",
		"detector.unnamed-constant.suggestion": "Extract {value} into a named constant",

		"metric.complexity.message":    "Function '{name}' has cyclomatic complexity {complexity} (threshold {threshold})",
		"metric.complexity.suggestion": "Split '{name}' into smaller functions with fewer branches",

		"metric.length.message":    "Function '{name}' spans {lines} lines (threshold {threshold})",
		"metric.length.suggestion": "Break '{name}' into focused helper functions",

		"metric.parameters.message":    "Function '{name}' takes {count} parameters (threshold {threshold})",
		"metric.parameters.suggestion": "Group related parameters of '{name}' into an options object",

		"metric.nesting.message":    "Nesting reaches depth {depth} (threshold {threshold})",
		"metric.nesting.suggestion": "Flatten the control flow with early returns or extracted functions",

		"principle.single-responsibility.description": "File concentrates too much responsibility ({methods} functions, combined complexity {complexity}, {concerns} concerns)",
		"principle.single-responsibility.explanation": "A file owning {methods} functions across {concerns} concerns changes for many unrelated reasons",
		"principle.single-responsibility.impact":      "Every change risks breaking unrelated behavior in the same file",
		"principle.single-responsibility.suggestion":  "Split the file so each piece owns a single concern",

		"principle.interface-segregation.description": "Function '{name}' forces callers to supply {count} parameters",
		"principle.interface-segregation.explanation": "Callers of '{name}' depend on arguments they may not use",
		"principle.interface-segregation.impact":      "Wide signatures couple callers to details they do not need",
		"principle.interface-segregation.suggestion":  "Narrow '{name}' or split it into smaller, focused entry points",

		"principle.dependency-direction.description": "File depends directly on {count} low-level concerns across {imports} imports",
		"principle.dependency-direction.explanation": "High-level logic wired straight to {count} low-level concerns cannot be tested or swapped in isolation",
		"principle.dependency-direction.impact":      "Infrastructure changes ripple into business logic",
		"principle.dependency-direction.suggestion":  "Route low-level access through interfaces owned by the high-level code",
	}
}
