// Package syncer applies computed plans to agent config files and
// manages the snapshot store that makes every sync reversible.
//
// A sync is strictly sequential: back up everything that will change,
// write the new state, then commit the snapshot by writing its
// meta.json last. A snapshot directory without meta.json is incomplete
// by definition and never offered for listing or rollback.
package syncer
