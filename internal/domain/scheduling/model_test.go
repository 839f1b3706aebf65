package scheduling

import (
	"testing"

	"github.com/google/uuid"

	"github.com/mindcare/mindcare/internal/domain/directory"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusAccepted, StatusInProgress, StatusResolved} {
		if !ValidStatus(s) {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "accepted", "Closed", "Done"} {
		if ValidStatus(s) {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestSetProfessional_ExactlyOneIDSet(t *testing.T) {
	id := uuid.New()
	var a Appointment

	a.SetProfessional(directory.RoleCounselor, id)
	if a.CounselorID == nil || *a.CounselorID != id {
		t.Error("expected counselor_id to be set")
	}
	if a.PsychiatristID != nil {
		t.Error("expected psychiatrist_id to be nil")
	}
	if a.ProfessionalID() != id {
		t.Error("ProfessionalID() mismatch for counselor")
	}

	other := uuid.New()
	a.SetProfessional(directory.RolePsychiatrist, other)
	if a.PsychiatristID == nil || *a.PsychiatristID != other {
		t.Error("expected psychiatrist_id to be set")
	}
	if a.CounselorID != nil {
		t.Error("expected counselor_id cleared on role switch")
	}
	if a.ProfessionalID() != other {
		t.Error("ProfessionalID() mismatch for psychiatrist")
	}
}

func TestProfessionalID_Unassigned(t *testing.T) {
	var a Appointment
	if a.ProfessionalID() != uuid.Nil {
		t.Error("expected uuid.Nil for unassigned appointment")
	}
}
