package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/daymark/internal/models"
)

func TestDoctorCmd_Healthy(t *testing.T) {
	ctx, out := setupTestDB(t)
	if _, err := ctx.Manager.CreateTask("Stretch", nil, fixedNow, false); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out.String())
	}

	output := out.String()
	for _, want := range []string{
		"✓ Database reachable: OK",
		"✓ Schema: OK",
		"✓ Migrations complete: OK",
		"⚠ Backups present: WARNING",
		"✓ Data validation: OK",
		"✓ Clock/timezone: OK",
		"All diagnostics passed!",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("doctor output missing %q:\n%s", want, output)
		}
	}
}

func TestDoctorCmd_Uninitialized(t *testing.T) {
	ctx, out, _ := newTestContext(t)

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should fail without a database")
	}
	if !strings.Contains(out.String(), "❌ Database reachable: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "⊘ Schema: SKIPPED") {
		t.Errorf("dependent checks should be skipped:\n%s", out.String())
	}
}

func TestDoctorCmd_FutureResetDate(t *testing.T) {
	ctx, out := setupTestDB(t)
	if _, err := ctx.Manager.UpdateSettings(func(s *models.Settings) error {
		s.LastResetDate = "2024-05-01"
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Fatal("doctor should flag a reset date in the future")
	}
	if !strings.Contains(out.String(), "❌ Clock/timezone: FAIL") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
