// Package builtin provides the reference plugin: three text file formats,
// three directory formats built on them, and transformers between those
// formats and plain Go values ([]int, int, map[string]string).
//
// Formats:
//
//	IntSequenceFormat           one integer per line
//	MappingFormat               two tab-separated cells per line
//	SingleIntFormat             one integer on the first line
//	IntSequenceDirectoryFormat  single-file directory wrapping ints.txt
//	MappingDirectoryFormat      mapping.tsv
//	FourIntsDirectoryFormat     (nested/)?file[1-4].txt collection of single ints
package builtin
