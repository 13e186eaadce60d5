// Package services implements the list and delete flows of the consoles.
//
// Listings always query the backend; they never consult the snapshot cache,
// which belongs to edit sessions only.
package services
