package migrations

import (
	"reflect"
	"testing"
	"testing/fstest"

	schema "github.com/yigit/abimath/migrations"
)

func TestVersion(t *testing.T) {
	tests := map[string]string{
		"001_init.sql":           "001",
		"migrations/002_idx.sql": "002",
		"003.sql":                "003.sql",
	}
	for in, want := range tests {
		if got := Version(in); got != want {
			t.Errorf("Version(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPendingFiles_SortedAndFiltered(t *testing.T) {
	fsys := fstest.MapFS{
		"010_late.sql":  {Data: []byte("SELECT 1;")},
		"002_next.sql":  {Data: []byte("SELECT 1;")},
		"001_first.sql": {Data: []byte("SELECT 1;")},
		"README.md":     {Data: []byte("notes")},
	}

	files, err := PendingFiles(fsys)
	if err != nil {
		t.Fatalf("PendingFiles() error = %v", err)
	}
	want := []string{"001_first.sql", "002_next.sql", "010_late.sql"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("PendingFiles() = %v, want %v", files, want)
	}
}

func TestEmbeddedSchemaIsListed(t *testing.T) {
	files, err := PendingFiles(schema.Files)
	if err != nil {
		t.Fatalf("PendingFiles() error = %v", err)
	}
	if len(files) == 0 || files[0] != "001_init.sql" {
		t.Errorf("embedded migrations = %v, want 001_init.sql first", files)
	}
}
