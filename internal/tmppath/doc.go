// Package tmppath provides the filesystem locations format instances live at.
//
// An InPath refers to an existing file or directory that the holder must never
// delete or rename. An OutPath is a freshly created temporary file or
// directory owned by its holder: Close removes it, MoveTo hands it over to a
// final location. An OutPath that becomes unreachable before either call is
// removed by a runtime cleanup.
package tmppath
