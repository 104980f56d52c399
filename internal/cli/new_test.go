package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/imageforge/imageforge/pkg/script"
)

func TestWriteProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.expr")

	if err := writeProgram(path, false); err != nil {
		t.Fatalf("writeProgram() error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != script.DefaultProgram {
		t.Error("written program differs from DefaultProgram")
	}

	if err := writeProgram(path, false); err == nil {
		t.Error("writeProgram() should refuse to overwrite")
	}

	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := writeProgram(path, true); err != nil {
		t.Fatalf("writeProgram(force) error: %v", err)
	}
	got, _ = os.ReadFile(path)
	if string(got) != script.DefaultProgram {
		t.Error("--force did not replace the file")
	}
}
