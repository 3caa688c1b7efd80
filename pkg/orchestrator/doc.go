// Package orchestrator drives a generation run: it builds every class
// descriptor into a canonical model, renders it for the configured dialect,
// and persists the artifacts through a store. Classes are independent, so a
// failure in one never blocks the others.
package orchestrator
