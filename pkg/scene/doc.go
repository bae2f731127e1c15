// Package scene defines the declarative map description consumed by the
// layout pipeline, and the serialized layout document it produces.
//
// A [Scene] lists the extent and the labeled features of one historical
// map: cities, rivers, regions, event markers, and campaign arrows.
// Scenes are plain JSON documents; [ReadSceneFile] and [WriteSceneFile]
// are the file-level entry points, with Marshal/Read variants for
// in-memory use.
//
// Validation lives at this layer. The placement engine assumes
// well-formed input, so [Scene.Validate] rejects duplicate identifiers,
// degenerate geometry, and dangling campaign references with structured
// errors before anything reaches the engine.
//
// The [Layout] document is the serialized counterpart of a resolution
// pass: one placement per element with its status, plus the routed
// campaign arrows and aggregate statistics. It carries bson tags so the
// run archive can store it in MongoDB unchanged.
package scene
