// Package fieldspec resolves which fields of an entity are validated and how.
//
// Field metadata is declared upstream (a YAML document, a Postgres schema table,
// a Redis key, or an in-memory map) as a Schema: an optional entity label key
// plus the field Definitions attached to an entity type and variant ("bundle").
// Resolve turns that metadata into an immutable, ordered Set of FieldSpec values,
// attaching the validators implied by each definition:
//
//   - the label key becomes a required field placed first,
//   - every field gets the type conformance validator,
//   - required fields with unbounded cardinality get the multi-value check,
//   - image fields get the image dimension check,
//   - image and file fields get the file extension check.
//
// A definition declaring its own Validators overrides the derived list.
//
// # Usage
//
//	src, err := fieldspec.LoadYAMLFile("schema.yaml")
//	if err != nil {
//	    return err
//	}
//
//	set, err := fieldspec.Resolve(ctx, src, "node", "issue")
//	if err != nil {
//	    return err // the source itself failed
//	}
//	for _, spec := range set.All() {
//	    fmt.Println(spec.Name, spec.Required, spec.Validators)
//	}
//
// # Unknown types
//
// Sources return an empty Schema for an unknown entity type or variant. Resolve
// then yields an empty Set, which callers treat as "nothing to validate". Only
// infrastructure failures (unreachable database, unreadable document) are
// reported as errors, wrapped with ErrSchemaUnavailable.
//
// # Sources
//
//   - MemorySource: schemas registered in code, handy for tests and embedding.
//   - YAMLSource: a whole schema document parsed with gopkg.in/yaml.v3.
//   - PostgresSource: entity_types and field_instances tables read through pgx;
//     MigratePostgres creates them with goose.
//   - RedisSource: one JSON schema document per entity type and variant.
//
// Sets are built fresh on every Resolve call. Nothing is cached, so a variant
// change between two validation runs is always observed.
package fieldspec
