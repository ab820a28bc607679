// Package infoparse splits raw per-node info responses into key/value maps.
//
// Two grammars exist:
//
//   - Flat: one entity per response, "key1=value1;key2=value2".
//   - Multi-entity: several entities per response, one per ';'-separated
//     chunk, with ':'-separated pairs inside each chunk:
//     "ns=test:set=users;ns=test:set=events".
//
// Values may themselves contain '=' (only the first one per pair splits),
// and malformed chunks without '=' are dropped rather than rejected, since
// live clusters routinely emit trailing separators and deprecated noise.
package infoparse
