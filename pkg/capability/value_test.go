package capability

import (
	"encoding/json"
	"testing"
)

func TestValue_TriState(t *testing.T) {
	if !Unknown().IsUnknown() {
		t.Fatal("Unknown() should be unknown")
	}
	if Bool(false).IsUnknown() {
		t.Error("definite false must not be unknown")
	}
	if Bool(false).IsTrue() {
		t.Error("false is not true")
	}
	if !Bool(true).IsTrue() {
		t.Error("true should be true")
	}
	if Unknown().IsTrue() {
		t.Error("unknown must never be true")
	}
}

func TestValue_Accessors(t *testing.T) {
	if v, ok := Int(42).AsInt(); !ok || v != 42 {
		t.Errorf("AsInt = %d, %v", v, ok)
	}
	if v, ok := Float(1.5).AsFloat(); !ok || v != 1.5 {
		t.Errorf("AsFloat = %f, %v", v, ok)
	}
	if v, ok := Int(7).AsFloat(); !ok || v != 7 {
		t.Errorf("int as float = %f, %v", v, ok)
	}
	if _, ok := Unknown().AsInt(); ok {
		t.Error("unknown must not convert to int")
	}
	if v, ok := Str("DDR4").AsString(); !ok || v != "DDR4" {
		t.Errorf("AsString = %q, %v", v, ok)
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want string
	}{
		{"unknown", Unknown(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(64), "64"},
		{"float", Float(2.5), "2.5"},
		{"string", Str("nvme"), `"nvme"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.val)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, want %s", data, tt.want)
			}

			var back Value
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if back.IsUnknown() != tt.val.IsUnknown() {
				t.Errorf("round trip changed unknown-ness")
			}
			if back.String() != tt.val.String() {
				t.Errorf("round trip = %s, want %s", back.String(), tt.val.String())
			}
		})
	}
}

func TestRecord_MissingKeyIsUnknown(t *testing.T) {
	r := Record{"has_avx2": Bool(true)}

	if !r.Get("has_avx512f").IsUnknown() {
		t.Error("missing attribute must read as unknown")
	}
	if r.IsTrue("has_avx512f") {
		t.Error("missing attribute must never be true")
	}
	if !r.IsTrue("has_avx2") {
		t.Error("present attribute should be true")
	}

	var nilRec Record
	if !nilRec.Get("anything").IsUnknown() {
		t.Error("nil record must read as unknown")
	}
}

func TestRecord_Clone(t *testing.T) {
	r := Record{"cores": Int(8)}
	c := r.Clone()
	c["cores"] = Int(16)

	if v, _ := r.Int("cores"); v != 8 {
		t.Errorf("clone mutated original: cores = %d", v)
	}
}
