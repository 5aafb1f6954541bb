package crucible

// Package crucible validates loosely-typed collections against declared
// schemas. It provides:
//
// - A Schema/Field/Constraint model with ordered candidate types per field
//   (first successful cast wins) and per-type constraint sets
// - A severity-ranked error model via ErrorList; a run is valid exactly when
//   it produced no Fatal entry
// - A Translator capability set that lets one validation algorithm serve
//   parsed JSON trees, string-keyed dictionaries, and registered native
//   records without knowing which it is operating on
// - Schema self-description documents (describe/) and fill-in templates
//
// Design policy:
// - Keep the engine in the root package; put the constraint library under
//   rules/, translators under translate/, and the document model under
//   describe/.
// - Usage errors (malformed constraints, duplicate fields or types) surface
//   at build time through Build/NewSchema, never at validation time.
// - Expected failures such as cast misses are values, not errors; the engine
//   never panics across component boundaries during normal validation.
//
// Typical usage:
//
//	schema := crucible.MustSchema(
//		crucible.NewField("port", "TCP port to listen on",
//			crucible.Int(rules.InRange[int64](1, 65535)),
//		).Default(int64(8080)).MustBuild(),
//	)
//	coll, errs := schema.Validate(doc, jsontree.New())
//	if crucible.AnyFatal(errs) { ... }
