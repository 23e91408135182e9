package rbac

import "testing"

func TestCanAdminister(t *testing.T) {
	c := NewChecker(nil)
	cases := []struct {
		role string
		want bool
	}{
		{"coordinator", true},
		{"rector", true},
		{"admin", true},
		{"teacher", false},
		{"student", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := c.CanAdminister(tc.role); got != tc.want {
			t.Fatalf("CanAdminister(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestHas_WildcardPrefix(t *testing.T) {
	c := NewChecker(nil)
	if !c.Has("coordinator", "gradebook:lock") {
		t.Fatalf("coordinator should match gradebook:* against gradebook:lock")
	}
	if !c.Has("admin", "anything:at-all") {
		t.Fatalf("admin * should match everything")
	}
	if c.Has("teacher", "gradebook:lock") {
		t.Fatalf("teacher must not hold gradebook:lock")
	}
}
