// Package archive stores directory format instances as zip files.
//
// Layout, where <root> is the zip file name without its extension:
//
//	<root>/VERSION         archive layout version, "0.2.0"
//	<root>/README.md       human-readable description
//	<root>/metadata.yaml   uuid and directory format name
//	<root>/data/...        the instance's files
//
// Loading extracts data/ into an owned temporary directory and validates it
// against the recorded format before handing back a read-mode instance.
package archive
