package builtin

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"viewcast/internal/common"
	"viewcast/internal/format"
)

var (
	intType     = format.ObjectOf[int]()
	intsType    = format.ObjectOf[[]int]()
	mappingType = format.ObjectOf[map[string]string]()
)

// intsToFourInts stores each value as a member numbered from 1.
func intsToFourInts(c format.Converter, view []int) (*format.DirectoryInstance, error) {
	inst, err := format.NewDirectory(FourIntsDirectoryFormat, c)
	if err != nil {
		return nil, err
	}

	coll, err := inst.Collection("single_ints")
	if err != nil {
		return nil, errors.Join(err, inst.Close())
	}

	for i, v := range view {
		if err := coll.Add(v, intType, format.Args{"num": i + 1}); err != nil {
			return nil, errors.Join(err, inst.Close())
		}
	}

	return inst, nil
}

func intToSingleInt(_ format.Converter, view int) (*format.FileInstance, error) {
	return writeFile(SingleIntFormat, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%d\n", view)
		return err
	})
}

func intsToIntSequenceDirectory(c format.Converter, view []int) (*format.DirectoryInstance, error) {
	return writeSingleFile(c, IntSequenceDirectoryFormat, view, intsType)
}

func intsToIntSequence(_ format.Converter, view []int) (*format.FileInstance, error) {
	return writeFile(IntSequenceFormat, func(w io.Writer) error {
		for _, v := range view {
			if _, err := fmt.Fprintf(w, "%d\n", v); err != nil {
				return err
			}
		}

		return nil
	})
}

func mappingToMappingDirectory(c format.Converter, view map[string]string) (*format.DirectoryInstance, error) {
	inst, err := format.NewDirectory(MappingDirectoryFormat, c)
	if err != nil {
		return nil, err
	}

	bf, err := inst.File("mapping")
	if err != nil {
		return nil, errors.Join(err, inst.Close())
	}

	if err := bf.Set(view, mappingType); err != nil {
		return nil, errors.Join(err, inst.Close())
	}

	return inst, nil
}

// mappingToMapping writes rows in key order.
func mappingToMapping(_ format.Converter, view map[string]string) (*format.FileInstance, error) {
	return writeFile(MappingFormat, func(w io.Writer) error {
		for _, k := range common.SortedKeys(view) {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", k, view[k]); err != nil {
				return err
			}
		}

		return nil
	})
}

// fourIntsToInts reads the members in path order.
func fourIntsToInts(_ format.Converter, view *format.DirectoryInstance) ([]int, error) {
	coll, err := view.Collection("single_ints")
	if err != nil {
		return nil, err
	}

	seq, err := coll.View(intType)
	if err != nil {
		return nil, err
	}

	return format.Collect[int](seq)
}

func singleIntToInt(_ format.Converter, view *format.FileInstance) (int, error) {
	var out int

	err := readLines(view, func(_ int, line string) (bool, error) {
		v, err := strconv.Atoi(line)
		out = v

		return false, err
	})

	return out, err
}

func intSequenceToInts(_ format.Converter, view *format.FileInstance) ([]int, error) {
	out := []int{}

	err := readLines(view, func(n int, line string) (bool, error) {
		v, err := strconv.Atoi(line)
		if err != nil {
			return false, fmt.Errorf("line %d: %w", n, err)
		}

		out = append(out, v)

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func mappingToMap(_ format.Converter, view *format.FileInstance) (map[string]string, error) {
	out := map[string]string{}

	err := readLines(view, func(n int, line string) (bool, error) {
		key, value, ok := strings.Cut(line, "\t")
		if !ok {
			return false, fmt.Errorf("line %d: missing tab", n)
		}

		out[key] = value

		return true, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func mappingDirectoryToMap(_ format.Converter, view *format.DirectoryInstance) (map[string]string, error) {
	bf, err := view.File("mapping")
	if err != nil {
		return nil, err
	}

	v, err := bf.View(mappingType)
	if err != nil {
		return nil, err
	}

	return v.(map[string]string), nil
}

// writeFile creates a new instance of f and fills it through fill.
func writeFile(f *format.FileFormat, fill func(w io.Writer) error) (*format.FileInstance, error) {
	fi, err := format.NewFile(f)
	if err != nil {
		return nil, err
	}

	w, err := fi.Create()
	if err != nil {
		return nil, errors.Join(err, fi.Close())
	}

	bw := bufio.NewWriter(w)
	if err := errors.Join(fill(bw), bw.Flush(), w.Close()); err != nil {
		return nil, errors.Join(fmt.Errorf("write %s: %w", f.Name(), err), fi.Close())
	}

	return fi, nil
}

// writeSingleFile creates a new single-file directory and sets its file
// from view.
func writeSingleFile(c format.Converter, d *format.DirectoryFormat, view any, vt format.ViewType) (*format.DirectoryInstance, error) {
	inst, err := format.NewDirectory(d, c)
	if err != nil {
		return nil, err
	}

	bf, err := inst.File(format.SingleFileFieldName)
	if err != nil {
		return nil, errors.Join(err, inst.Close())
	}

	if err := bf.Set(view, vt); err != nil {
		return nil, errors.Join(err, inst.Close())
	}

	return inst, nil
}

// readLines calls fn for each line (numbered from 1) until fn returns false.
func readLines(fi *format.FileInstance, fn func(n int, line string) (bool, error)) error {
	r, err := fi.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		more, err := fn(n, sc.Text())
		if err != nil {
			return fmt.Errorf("read %s: %w", fi.Format().Name(), err)
		}

		if !more {
			return nil
		}
	}

	return sc.Err()
}
