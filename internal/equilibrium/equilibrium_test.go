package equilibrium

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default equilibrium invalid: %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.yaml")

	eq := Default()
	eq.Name = "roundtrip"
	eq.Geometry = 2
	eq.Volumes = 3
	eq.Rtor = 5.5

	if err := Save(path, eq); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if loaded.Name != "roundtrip" || loaded.Geometry != 2 || loaded.Volumes != 3 {
		t.Errorf("unexpected round trip: %+v", loaded)
	}
	if loaded.Rtor != 5.5 {
		t.Errorf("expected rtor 5.5, got %f", loaded.Rtor)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eq.yaml")

	if err := os.WriteFile(path, []byte("geometry: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	eq, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if eq.Geometry != 1 {
		t.Errorf("expected geometry 1, got %d", eq.Geometry)
	}
	if eq.Field.B0 != DefaultAxisField {
		t.Errorf("expected default b0, got %f", eq.Field.B0)
	}
}

func TestValidateRejectsBadRadii(t *testing.T) {
	eq := Default()
	eq.Field.MajorRadius = 0.5
	if err := eq.Validate(); err == nil {
		t.Error("expected error for major radius below minor radius")
	}

	eq = Default()
	eq.Rpol = 0
	if err := eq.Validate(); err == nil {
		t.Error("expected error for zero rpol")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/eq.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
