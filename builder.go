package geonames

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Build consumes the GeoNames TSV dump at rawPath and writes a persisted
// index to mapPath in the layout of format.go, per SPEC_FULL.md §5.C.
//
// Build is single-threaded and the exclusive writer of mapPath for the
// duration of the call — see SPEC_FULL.md §7 "Concurrency & resource model".
func Build(mapPath, rawPath string) error {
	in, err := os.Open(rawPath)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %v", ErrInputMissing, rawPath, err)
	}
	defer in.Close()

	idx, err := readRawDump(in)
	if err != nil {
		return err
	}
	if len(idx.objects) == 0 {
		return ErrEmptyInput
	}

	out, err := os.Create(mapPath)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrInputMissing, mapPath, err)
	}
	defer out.Close()

	if err := persistStore(out, idx); err != nil {
		return fmt.Errorf("writing index to %s: %w", mapPath, err)
	}

	log.WithFields(log.Fields{
		"objects": len(idx.objects),
		"map":     mapPath,
	}).Info("geonames index built")

	return nil
}

// readRawDump scans the dump line by line, skipping rows that ParseRawLine
// rejects, and accumulates survivors into a buildIndex via merge-on-id.
func readRawDump(r io.Reader) (*buildIndex, error) {
	idx := newBuildIndex()

	scanner := bufio.NewScanner(r)
	// Alternate-names cells can make GeoNames rows long; raise the
	// scanner's maximum line size from bufio's 64KiB default to 1MiB so
	// long rows do not stop the scan with bufio.ErrTooLong.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var skipped int
	for scanner.Scan() {
		line := scanner.Text()
		obj, ok := ParseRawLine(line)
		if !ok {
			if line != "" && line[0] != '#' {
				skipped++
			}
			continue
		}
		idx.add(obj)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanning dump: %v", ErrInputMissing, err)
	}

	if skipped > 0 {
		log.WithField("skipped", skipped).Debug("geonames rows skipped (unreadable, too few columns, or undefined or extra-feature-set type)")
	}

	return idx, nil
}
