package userdir

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amir01mn/parking-space-reservation/internal/pricing"
)

func writeUserFile(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "User_Database.csv")
	content := "user_id,email,password,name,phone,user_type\n" + rows
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write user file: %v", err)
	}
	return path
}

func TestCSVDirectory_Category(t *testing.T) {
	path := writeUserFile(t,
		"1004,alex@campus.edu,secret,Alex,555-0101,Student\n"+
			"1005,sam@campus.edu,secret,Sam,555-0102,Faculty\n")
	d := NewCSVDirectory(path)

	got, err := d.Category(context.Background(), 1004)
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	if got != "Student" {
		t.Fatalf("Category = %q, want Student", got)
	}
}

func TestCSVDirectory_UnknownUser(t *testing.T) {
	path := writeUserFile(t, "1004,alex@campus.edu,secret,Alex,555-0101,Student\n")
	d := NewCSVDirectory(path)

	if _, err := d.Category(context.Background(), 999); !errors.Is(err, pricing.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestCSVDirectory_MissingFileReportsUnknown(t *testing.T) {
	d := NewCSVDirectory(filepath.Join(t.TempDir(), "missing.csv"))
	if _, err := d.Category(context.Background(), 1004); !errors.Is(err, pricing.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestCSVDirectory_SkipsShortRows(t *testing.T) {
	path := writeUserFile(t, "1004,alex@campus.edu\n1004,alex@campus.edu,secret,Alex,555-0101,Student\n")
	d := NewCSVDirectory(path)

	got, err := d.Category(context.Background(), 1004)
	if err != nil {
		t.Fatalf("Category: %v", err)
	}
	if got != "Student" {
		t.Fatalf("Category = %q, want Student", got)
	}
}
