// Package service provides the tool registry that fronts the solver
// providers.
//
// Providers publish a types.Service definition listing their tools. Tool IDs
// are "<service>.<name>[.<sub>]"; the part before the first dot selects the
// provider.
//
// Discovery scores each service against a free-text intent:
//   - service ID or name in the intent: +10
//   - description word (longer than three letters): +5
//   - capability: +3
//   - category: +2
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(mathProvider)
//	services := registry.Discover("solve polynomial", 5)
//	result, err := registry.Execute(ctx, "math.solve.quadratic", params, appCtx)
package service
