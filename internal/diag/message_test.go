package diag

import "testing"

func TestBundleIsSyntheticRequiresEveryMessageSynthetic(t *testing.T) {
	real := Location{File: "a.emb", Start: Position{1, 1}, End: Position{1, 2}}
	synthetic := Location{File: "a.emb", IsSynthetic: true}

	allSynthetic := NewBundle(Errorf("TYP001", "typecheck", "a.emb", synthetic, "bad"))
	if !allSynthetic.IsSynthetic() {
		t.Fatal("bundle of only synthetic messages should be synthetic")
	}

	mixed := NewBundle(
		Errorf("TYP001", "typecheck", "a.emb", real, "bad"),
		Notef("TYP001", "typecheck", "a.emb", synthetic, "see also"),
	)
	if mixed.IsSynthetic() {
		t.Fatal("a bundle with any non-synthetic message is not synthetic")
	}

	var empty Bundle
	if empty.IsSynthetic() {
		t.Fatal("an empty bundle should not count as synthetic")
	}
}

func TestBundleHasErrors(t *testing.T) {
	loc := Location{File: "a.emb"}
	warnOnly := NewBundle(Warnf("ATR010", "attrs", "a.emb", loc, "heads up"))
	if warnOnly.HasErrors() {
		t.Fatal("warning-only bundle should not HasErrors")
	}
	withError := NewBundle(Errorf("TYP001", "typecheck", "a.emb", loc, "bad"))
	if !withError.HasErrors() {
		t.Fatal("bundle with an error message should HasErrors")
	}
}

func TestSplitErrorsPartitionsBySynthetic(t *testing.T) {
	real := Location{File: "a.emb", Start: Position{1, 1}}
	synthetic := Location{File: "a.emb", IsSynthetic: true}

	userBundle := NewBundle(Errorf("TYP001", "typecheck", "a.emb", real, "bad"))
	syntheticBundle := NewBundle(Errorf("TYP002", "typecheck", "a.emb", synthetic, "internal"))

	user, synth := SplitErrors([]Bundle{userBundle, syntheticBundle})
	if len(user) != 1 || len(synth) != 1 {
		t.Fatalf("got %d user, %d synthetic, want 1 and 1", len(user), len(synth))
	}
	if len(FilterErrors([]Bundle{userBundle, syntheticBundle})) != 1 {
		t.Fatal("FilterErrors should return only the user-facing partition")
	}
}

func TestAnyErrorsAcrossBundles(t *testing.T) {
	loc := Location{File: "a.emb"}
	onlyWarnings := []Bundle{NewBundle(Warnf("ATR010", "attrs", "a.emb", loc, "heads up"))}
	if AnyErrors(onlyWarnings) {
		t.Fatal("no bundle has an error, AnyErrors should be false")
	}
	withOneError := []Bundle{
		NewBundle(Warnf("ATR010", "attrs", "a.emb", loc, "heads up")),
		NewBundle(Errorf("TYP001", "typecheck", "a.emb", loc, "bad")),
	}
	if !AnyErrors(withOneError) {
		t.Fatal("one bundle has an error, AnyErrors should be true")
	}
}

func TestLocationStringSyntheticVsReal(t *testing.T) {
	real := Location{File: "a.emb", Start: Position{Line: 3, Column: 5}}
	if got := real.String(); got != "a.emb:3:5" {
		t.Fatalf("got %q", got)
	}
	synthetic := Location{File: "a.emb", IsSynthetic: true}
	if got := synthetic.String(); got != "a.emb:[compiler bug]:" {
		t.Fatalf("got %q", got)
	}
}
