// Package descriptor defines the input contract for model generation:
// pre-extracted class and property descriptors that decouple the compilation
// core from any particular introspection mechanism. Descriptors can be built
// programmatically, loaded from YAML files, or derived from OpenAPI
// documents by the openapi package.
package descriptor
