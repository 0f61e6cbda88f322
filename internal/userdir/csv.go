// Package userdir provides pricing.CategoryLookup implementations over the
// externally owned user directory: a flat CSV file in the legacy layout, or
// a MySQL table.
package userdir

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/amir01mn/parking-space-reservation/internal/pricing"
)

// CSVDirectory reads user categories from a comma-delimited user file.  The
// layout is fixed by the legacy registration tooling: user ID in column 0,
// category in column 5, header row first.  The file is re-read on every
// lookup so external edits are picked up immediately.
type CSVDirectory struct {
	path string
}

// NewCSVDirectory returns a directory over the user file at path.
func NewCSVDirectory(path string) *CSVDirectory {
	return &CSVDirectory{path: path}
}

// Category returns the category of the user with the given ID, or
// pricing.ErrUnknownUser.  An unreadable file is logged and reported as an
// unknown user.
func (d *CSVDirectory) Category(_ context.Context, userID int) (string, error) {
	f, err := os.Open(d.path)
	if err != nil {
		log.Printf("user-directory: could not read %s: %v", d.path, err)
		return "", fmt.Errorf("%w: %d", pricing.ErrUnknownUser, userID)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	first := true
	for sc.Scan() {
		if first { // header row
			first = false
			continue
		}
		fields := strings.Split(sc.Text(), ",")
		if len(fields) < 6 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || id != userID {
			continue
		}
		return strings.TrimSpace(fields[5]), nil
	}
	return "", fmt.Errorf("%w: %d", pricing.ErrUnknownUser, userID)
}
