package builtin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"viewcast/internal/format"
)

// sniffLines is the number of leading lines a sniffer inspects.
const sniffLines = 5

var (
	IntSequenceFormat = format.MustFileFormat("IntSequenceFormat", sniffIntSequence)
	MappingFormat     = format.MustFileFormat("MappingFormat", sniffMapping)
	SingleIntFormat   = format.MustFileFormat("SingleIntFormat", sniffSingleInt)

	IntSequenceDirectoryFormat = format.MustSingleFileDirectory(
		"IntSequenceDirectoryFormat", "ints.txt", IntSequenceFormat)

	MappingDirectoryFormat = format.NewSchema("MappingDirectoryFormat").
		File("mapping", "mapping.tsv", MappingFormat).
		MustBuild()

	FourIntsDirectoryFormat = format.NewSchema("FourIntsDirectoryFormat").
		Collection("single_ints", `(nested/)?file[1-4]\.txt`, SingleIntFormat, singleIntsPath).
		MustBuild()
)

// singleIntsPath places members 1 and 2 at the root and 3 and 4 under nested/.
func singleIntsPath(_ *format.DirectoryInstance, args format.Args) (string, error) {
	num, ok := args["num"].(int)
	if !ok {
		return "", fmt.Errorf("single_ints: num must be an int, got %T", args["num"])
	}

	if num > 2 {
		return fmt.Sprintf("nested/file%d.txt", num), nil
	}

	return fmt.Sprintf("file%d.txt", num), nil
}

func sniffIntSequence(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 0; n < sniffLines && sc.Scan(); n++ {
		if _, err := strconv.Atoi(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n+1, err)
		}
	}

	return sc.Err()
}

func sniffMapping(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 0; n < sniffLines && sc.Scan(); n++ {
		if cells := strings.Split(sc.Text(), "\t"); len(cells) != 2 {
			return fmt.Errorf("line %d: expected 2 cells, got %d", n+1, len(cells))
		}
	}

	return sc.Err()
}

func sniffSingleInt(r io.Reader) error {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return err
		}

		return errors.New("empty file")
	}

	_, err := strconv.Atoi(sc.Text())

	return err
}
