package enquiry

import (
	"regexp"
	"testing"
	"time"
)

func TestNewReferenceNumber_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^ENQ-\d{8}-[A-Z0-9]{5}$`)

	ref := NewReferenceNumber()
	if !pattern.MatchString(ref) {
		t.Errorf("reference %q does not match ENQ-YYYYMMDD-XXXXX", ref)
	}
	if want := "ENQ-" + time.Now().Format("20060102"); ref[:12] != want {
		t.Errorf("reference date prefix = %q, want %q", ref[:12], want)
	}
}

func TestNewReferenceNumber_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewReferenceNumber()] = true
	}
	// 36^5 suffixes; 50 draws colliding down to a single value would mean
	// the randomness is broken.
	if len(seen) < 2 {
		t.Errorf("50 references produced %d distinct values", len(seen))
	}
}
