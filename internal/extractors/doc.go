// Package extractors provides format detection and the registry that
// maps detected media types to Extractor implementations.
//
// Detection inspects byte content (magic numbers), never the filename
// extension alone. Adding a format means registering a new Extractor,
// not editing a conditional.
package extractors
