package diag

import (
	"testing"

	"lattice/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: AttrInfo}) || !b.Add(Diagnostic{Code: AttrInfo}) {
		t.Fatalf("bag rejected diagnostics below limit")
	}
	if b.Add(Diagnostic{Code: AttrInfo}) {
		t.Fatalf("bag accepted a diagnostic past its limit")
	}
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Severity: SevWarning})
	if b.HasErrors() {
		t.Fatalf("warning must not count as error")
	}
	b.Add(Diagnostic{Severity: SevError})
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors after SevError")
	}
	if SevWarning.IsError() || !SevError.IsError() {
		t.Fatalf("IsError must single out SevError")
	}
}

func TestBagReporterCollects(t *testing.T) {
	b := NewBag(4)
	r := BagReporter{Bag: b}
	ReportError(r, AttrFloatNotRepresentable, source.Span{File: 1, Start: 3, End: 7}, "1.1 is not exact in f16")
	if b.Len() != 1 {
		t.Fatalf("reporter did not reach the bag")
	}
	d := b.Items()[0]
	if d.Code != AttrFloatNotRepresentable || d.Severity != SevError {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
}

func TestBagSortIsDeterministic(t *testing.T) {
	b := NewBag(4)
	b.Add(Diagnostic{Primary: source.Span{File: 2, Start: 1}, Code: AttrInfo})
	b.Add(Diagnostic{Primary: source.Span{File: 1, Start: 9}, Code: AttrInfo})
	b.Add(Diagnostic{Primary: source.Span{File: 1, Start: 2}, Code: AttrInfo})
	b.Sort()
	items := b.Items()
	if items[0].Primary.File != 1 || items[0].Primary.Start != 2 {
		t.Fatalf("sort order wrong: %+v", items)
	}
}
