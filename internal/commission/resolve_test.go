package commission

import "testing"

func TestResolveSponsor(t *testing.T) {
	users := []User{
		{ID: 1, ReferralCode: "ALPHA1"},
		{ID: 2, ReferralCode: "BETA22"},
	}

	tests := []struct {
		name   string
		ref    string
		wantID int64
		wantOK bool
	}{
		{"by numeric id", "2", 2, true},
		{"by exact code", "ALPHA1", 1, true},
		{"by lowercase code", "beta22", 2, true},
		{"by mixed-case code", "AlPhA1", 1, true},
		{"empty ref", "", 0, false},
		{"unknown ref", "GAMMA3", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveSponsor(users, tt.ref)
			if ok != tt.wantOK {
				t.Fatalf("ResolveSponsor(%q) ok = %v, want %v", tt.ref, ok, tt.wantOK)
			}
			if ok && got.ID != tt.wantID {
				t.Errorf("ResolveSponsor(%q) = user %d, want %d", tt.ref, got.ID, tt.wantID)
			}
		})
	}
}
