package auth

import (
	"testing"
	"time"
)

func TestRole_Valid(t *testing.T) {
	if !RoleCitizen.Valid() || !RoleAdmin.Valid() {
		t.Fatalf("expected citizen and admin to be valid")
	}
	if Role("superuser").Valid() {
		t.Fatalf("did not expect superuser to be valid")
	}
}

func TestSession_IsElevated(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{name: "elevated with future expiry", s: Session{Elevated: true, ElevatedUntil: &future}, want: true},
		{name: "elevated with past expiry", s: Session{Elevated: true, ElevatedUntil: &past}, want: false},
		{name: "elevated without expiry", s: Session{Elevated: true}, want: false},
		{name: "not elevated", s: Session{ElevatedUntil: &future}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.IsElevated(now); got != tt.want {
				t.Errorf("IsElevated() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGrant_Active(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if !(Grant{ExpiresAt: now.Add(8 * time.Hour)}).Active(now) {
		t.Fatalf("expected unexpired grant to be active")
	}
	if (Grant{ExpiresAt: now.Add(-time.Minute)}).Active(now) {
		t.Fatalf("did not expect expired grant to be active")
	}
}
