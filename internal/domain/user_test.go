package domain

import "testing"

func TestParseRole(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"USER", "TECHNICIAN", "ADMIN"} {
		role, err := ParseRole(value)
		if err != nil {
			t.Fatalf("ParseRole(%q) returned error: %v", value, err)
		}
		if string(role) != value {
			t.Errorf("ParseRole(%q) = %q, want %q", value, role, value)
		}
	}

	for _, value := range []string{"", "user", "MANAGER", "ROOT"} {
		if _, err := ParseRole(value); err == nil {
			t.Errorf("ParseRole(%q) accepted unknown role", value)
		}
	}
}
