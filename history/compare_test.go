package history

import "testing"

func TestCompareDeltas(t *testing.T) {
	prev := Run{Entries: []Entry{
		{Name: "hash", NetNsPerOp: 100, BytesPerOp: 64},
		{Name: "scan", NetNsPerOp: 200, BytesPerOp: 0},
		{Name: "gone", NetNsPerOp: 50, BytesPerOp: 10},
	}}
	curr := Run{Entries: []Entry{
		{Name: "hash", NetNsPerOp: 150, BytesPerOp: 32},
		{Name: "scan", NetNsPerOp: 100, BytesPerOp: 8},
		{Name: "fresh", NetNsPerOp: 10, BytesPerOp: 0},
	}}

	cmp := Compare(prev, curr)

	if len(cmp.Deltas) != 2 {
		t.Fatalf("len(Deltas) = %d, want 2", len(cmp.Deltas))
	}

	hash := cmp.Deltas[0]
	if hash.Name != "hash" || hash.TimePct != 50 || hash.AllocPct != -50 {
		t.Errorf("hash delta = %+v, want +50%% time, -50%% alloc", hash)
	}

	scan := cmp.Deltas[1]
	if scan.Name != "scan" || scan.TimePct != -50 {
		t.Errorf("scan delta = %+v, want -50%% time", scan)
	}
	if scan.AllocPct != 0 {
		t.Errorf("scan AllocPct = %v, want 0 for zero baseline", scan.AllocPct)
	}

	if len(cmp.Added) != 1 || cmp.Added[0] != "fresh" {
		t.Errorf("Added = %v, want [fresh]", cmp.Added)
	}
	if len(cmp.Removed) != 1 || cmp.Removed[0] != "gone" {
		t.Errorf("Removed = %v, want [gone]", cmp.Removed)
	}
}

func TestCompareIdenticalRuns(t *testing.T) {
	run := Run{Entries: []Entry{{Name: "noop", NetNsPerOp: 10, BytesPerOp: 0}}}

	cmp := Compare(run, run)

	if len(cmp.Deltas) != 1 || cmp.Deltas[0].TimePct != 0 || cmp.Deltas[0].AllocPct != 0 {
		t.Errorf("Deltas = %+v, want one zero delta", cmp.Deltas)
	}
	if cmp.Added != nil || cmp.Removed != nil {
		t.Errorf("Added = %v, Removed = %v, want none", cmp.Added, cmp.Removed)
	}
}

func TestRegressionsAboveThreshold(t *testing.T) {
	cmp := Comparison{Deltas: []Delta{
		{Name: "worse", TimePct: 25},
		{Name: "same", TimePct: 0},
		{Name: "better", TimePct: -40},
		{Name: "borderline", TimePct: 10},
	}}

	regressed := cmp.Regressions(10)

	if len(regressed) != 1 || regressed[0].Name != "worse" {
		t.Errorf("Regressions(10) = %+v, want [worse]", regressed)
	}
}

func TestDeltaString(t *testing.T) {
	d := Delta{Name: "hash", TimePct: 12.5, AllocPct: -3}

	want := "hash: +12.50% time, -3.00% alloc"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
