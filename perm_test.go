package stdsec

import "testing"

func TestPermRoundTripStrongAllowAll(t *testing.T) {
	p := PermAll.toP(true)
	got := permFromP(p, true)
	if got != PermAll {
		t.Fatalf("round trip = %v, want PermAll", got)
	}
}

func TestPermRoundTripWeakAllowAll(t *testing.T) {
	p := PermAll.toP(false)
	got := permFromP(p, false)
	// R2 cannot distinguish PermPrintDegraded/Forms/Assemble from their
	// full-permission counterparts; decoding always yields the widest set
	// representable, which for an all-permissions P word is PermAll.
	if got != PermAll {
		t.Fatalf("round trip = %v, want PermAll", got)
	}
}

func TestPermRoundTripNothing(t *testing.T) {
	var perm Perm
	p := perm.toP(true)
	got := permFromP(p, true)
	if got != 0 {
		t.Fatalf("round trip = %v, want 0", got)
	}
}

func TestPermRoundTripDegradedPrintOnly(t *testing.T) {
	perm := PermPrintDegraded
	p := perm.toP(true)
	got := permFromP(p, true)
	if got&PermPrintDegraded == 0 {
		t.Fatalf("PermPrintDegraded not preserved: %v", got)
	}
	if got&PermPrint != 0 {
		t.Fatalf("PermPrint should not be granted: %v", got)
	}
}

func TestPermRoundTripFormsWithoutAnnotate(t *testing.T) {
	perm := PermForms
	p := perm.toP(true)
	got := permFromP(p, true)
	if got&PermForms == 0 {
		t.Fatalf("PermForms not preserved: %v", got)
	}
	if got&PermAnnotate != 0 {
		t.Fatalf("PermAnnotate should not be granted: %v", got)
	}
}

func TestPermRoundTripAssembleWithoutModify(t *testing.T) {
	perm := PermAssemble
	p := perm.toP(true)
	got := permFromP(p, true)
	if got&PermAssemble == 0 {
		t.Fatalf("PermAssemble not preserved: %v", got)
	}
	if got&PermModify != 0 {
		t.Fatalf("PermModify should not be granted: %v", got)
	}
}

// Reserved bits are always forced to their required value and the two
// undefined low bits are always cleared, for both revision widths.
func TestNormalizePReservedBits(t *testing.T) {
	for _, strong := range []bool{true, false} {
		p := normalizeP(0, strong)
		if p&0x3 != 0 {
			t.Fatalf("strong=%v: low bits not cleared: %#x", strong, p)
		}
		mask := uint32(reservedMaskWeak)
		if strong {
			mask = reservedMaskStrong
		}
		if p&mask != mask {
			t.Fatalf("strong=%v: reserved bits not set: %#x", strong, p)
		}
	}
}

func TestCanR2(t *testing.T) {
	cases := []struct {
		name string
		perm Perm
		want bool
	}{
		{"all", PermAll, true},
		{"none", 0, true},
		{"print+degraded", PermPrint | PermPrintDegraded, true},
		{"degraded only", PermPrintDegraded, false},
		{"annotate+forms", PermAnnotate | PermForms, true},
		{"forms only", PermForms, false},
		{"modify+assemble", PermModify | PermAssemble, true},
		{"assemble only", PermAssemble, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.perm.canR2(); got != c.want {
				t.Fatalf("canR2() = %v, want %v", got, c.want)
			}
		})
	}
}
