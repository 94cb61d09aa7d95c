// Package paths lays out the storage root a build runs against:
//
//	{root}/projects/     project definitions, scanned in interactive mode
//	{root}/cache/{id}/     working directory: the checkout and build steps
//	{root}/artifacts/{id}/ collected build outputs
//
// The root is passed around in a Layout rather than held globally.
package paths
