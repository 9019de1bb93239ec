package propcheck

import "testing"

func TestRunHasNoFailures(t *testing.T) {
	report := Run()
	if !report.OK() {
		t.Fatalf("propcheck found %d failures, first: %+v", len(report.Failures), report.Failures[0])
	}
	if report.Checked == 0 {
		t.Fatal("Run() should have checked at least one property")
	}
}
