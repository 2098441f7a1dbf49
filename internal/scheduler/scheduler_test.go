package scheduler

import "testing"

func TestAddJobValidation(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init scheduler: %v", err)
	}

	if _, err := AddJob("", "0 4 * * *", func() {}); err == nil {
		t.Fatal("expected error for empty job name")
	}
	if _, err := AddJob("audit", "   ", func() {}); err == nil {
		t.Fatal("expected error for blank cron expression")
	}
	if _, err := AddJob("audit", "not a cron expression", func() {}); err == nil {
		t.Fatal("expected error for malformed cron expression")
	}
}

func TestAddJobRegisters(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init scheduler: %v", err)
	}

	job, err := AddJob("nightly-recheck", "0 4 * * *", func() {})
	if err != nil {
		t.Fatalf("add job: %v", err)
	}
	if job.Name() != "nightly-recheck" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
}
