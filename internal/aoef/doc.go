// Package aoef converts domain object graphs to and from flat exchange
// documents. A document stores every entity exactly once in a per-kind table
// and replaces cross references with short ids, so shared tags, users,
// recordings and sound events never appear twice. Conversion state lives in
// an adapter tree built per call; the package itself is stateless.
package aoef
