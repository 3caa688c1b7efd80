// Package openapi derives class descriptors from the component schemas of
// an OpenAPI 3 document, so models can be generated from an API contract
// instead of hand-written descriptor files. Property constraints map to
// validations and $ref properties become associations.
package openapi
