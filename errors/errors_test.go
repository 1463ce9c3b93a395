package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Op:       OpDecode,
				Kind:     KindDecodeFailed,
				Category: "texture",
				Name:     "bricks",
				Path:     "assets/textures/bricks.png",
				Detail:   "decoding image data",
			},
			contains: []string{"[decode]", "decode_failed", "texture", `"bricks"`, "assets/textures/bricks.png", "decoding image data"},
		},
		{
			name: "minimal error",
			err: &Error{
				Op:   OpLookup,
				Kind: KindNotFound,
			},
			contains: []string{"[lookup]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Op:     OpScan,
				Kind:   KindIO,
				Detail: "walking content root",
				Cause:  errors.New("permission denied"),
			},
			contains: []string{"[scan]", "io", "walking content root", "caused by", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Op:    OpDecode,
		Kind:  KindDecodeFailed,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Op:       OpLookup,
		Kind:     KindNotFound,
		Category: "mesh",
		Name:     "crate",
	}

	// Same op and kind
	if !err.Is(&Error{Op: OpLookup, Kind: KindNotFound}) {
		t.Error("Is should match same op and kind")
	}

	// Different op
	if err.Is(&Error{Op: OpRefresh, Kind: KindNotFound}) {
		t.Error("Is should not match different op")
	}

	// Different kind
	if err.Is(&Error{Op: OpLookup, Kind: KindInvalidState}) {
		t.Error("Is should not match different kind")
	}

	// Test with errors.Is
	target := &Error{Op: OpLookup, Kind: KindNotFound}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(OpParse, KindInvalidDocument).
		Category("material").
		Name("bricks").
		Path("assets/materials/stone.hcl").
		Cause(cause).
		Detail("block %d has no %s attribute", 2, "diffuse").
		Build()

	if err.Op != OpParse {
		t.Errorf("Op = %v, want %v", err.Op, OpParse)
	}
	if err.Kind != KindInvalidDocument {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidDocument)
	}
	if err.Category != "material" {
		t.Errorf("Category = %v, want material", err.Category)
	}
	if err.Name != "bricks" {
		t.Errorf("Name = %v, want bricks", err.Name)
	}
	if err.Path != "assets/materials/stone.hcl" {
		t.Errorf("Path = %v, want assets/materials/stone.hcl", err.Path)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "block 2 has no diffuse attribute" {
		t.Errorf("Detail = %v, want 'block 2 has no diffuse attribute'", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(OpLookup, "mesh", "tank_body")
		if err.Kind != KindNotFound {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNotFound)
		}
		if err.Category != "mesh" || err.Name != "tank_body" {
			t.Errorf("Category=%v Name=%v", err.Category, err.Name)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := Duplicate(OpInit, "material", "bricks", "assets/materials/b.hcl")
		if err.Kind != KindDuplicateName {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDuplicateName)
		}
		if !strings.Contains(err.Error(), "keeping first") {
			t.Errorf("Error() = %v, should mention first registration", err.Error())
		}
	})

	t.Run("DecodeFailed", func(t *testing.T) {
		cause := errors.New("bad header")
		err := DecodeFailed("sound", "assets/sounds/click.wav", cause)
		if err.Kind != KindDecodeFailed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindDecodeFailed)
		}
		if !errors.Is(err, &Error{Op: OpDecode, Kind: KindDecodeFailed}) {
			t.Error("errors.Is should match decode error")
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		err := ParseFailed("assets/materials/stone.hcl", errors.New("unclosed block"))
		if err.Kind != KindInvalidDocument {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidDocument)
		}
		if err.Path != "assets/materials/stone.hcl" {
			t.Errorf("Path = %v", err.Path)
		}
	})

	t.Run("InvalidState", func(t *testing.T) {
		err := InvalidState(OpLookup, "terminated")
		if err.Kind != KindInvalidState {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidState)
		}
		if !strings.Contains(err.Detail, "terminated") {
			t.Errorf("Detail = %v, should contain state", err.Detail)
		}
	})

	t.Run("Closed", func(t *testing.T) {
		err := Closed(OpWatch, "store")
		if err.Kind != KindClosed {
			t.Errorf("Kind = %v, want %v", err.Kind, KindClosed)
		}
	})

	t.Run("IO", func(t *testing.T) {
		cause := errors.New("no such file")
		err := IO(OpScan, "assets/meshes", cause)
		if err.Kind != KindIO {
			t.Errorf("Kind = %v, want %v", err.Kind, KindIO)
		}
		if !errors.Is(err.Unwrap(), cause) {
			t.Error("cause not preserved")
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := errors.New("inner")
		err := Wrap(OpRefresh, KindDecodeFailed, cause, "re-decoding scene")
		if err.Op != OpRefresh || err.Kind != KindDecodeFailed {
			t.Errorf("Op=%v Kind=%v", err.Op, err.Kind)
		}
		if !errors.Is(err.Unwrap(), cause) {
			t.Error("cause not preserved")
		}
	})
}

func TestPredicates(t *testing.T) {
	nf := NotFound(OpLookup, "texture", "missing")
	if !IsNotFound(nf) {
		t.Error("IsNotFound should report true for not-found errors")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound should report false for plain errors")
	}

	is := InvalidState(OpRefresh, "uninitialized")
	if !IsInvalidState(is) {
		t.Error("IsInvalidState should report true for state errors")
	}
	if IsInvalidState(nf) {
		t.Error("IsInvalidState should report false for not-found errors")
	}

	// Predicates see through wrapping.
	wrapped := Wrap(OpInit, KindIO, nf, "loading meshes")
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should unwrap")
	}
}
