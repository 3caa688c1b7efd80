// Package generator walks a canonical model and renders it as an Ext JS or
// Sencha Touch class definition. All dialect variance lives in a single
// decision table; rendering is deterministic so the same model and
// configuration always produce byte-identical output.
package generator
