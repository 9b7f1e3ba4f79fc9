// Package source acquires raw resource-record lines for the normalizer,
// from zone files, live zone transfers or a SQL-backed name server. The
// normalizer makes no assumption about which source the lines came from.
package source

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
)

// File reads raw zone-file lines from disk.
func File(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read zone file")
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read zone file")
	}

	return lines, nil
}
