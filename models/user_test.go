package models

import "testing"

func TestUserFullName(t *testing.T) {
	u := &User{UserFname: "Neema", UserLname: "Mushi"}
	if u.FullName() != "Neema Mushi" {
		t.Errorf("unexpected full name: %q", u.FullName())
	}

	u = &User{UserFname: "Neema"}
	if u.FullName() != "Neema" {
		t.Errorf("expected first name only, got %q", u.FullName())
	}
}

func TestUserIsStaff(t *testing.T) {
	tests := []struct {
		roleID int
		staff  bool
	}{
		{RoleMember, false},
		{RolePastoralTeam, true},
		{RoleAdmin, true},
		{0, false},
	}

	for _, tt := range tests {
		u := &User{RoleID: tt.roleID}
		if u.IsStaff() != tt.staff {
			t.Errorf("IsStaff() with role %d = %v, want %v", tt.roleID, !tt.staff, tt.staff)
		}
	}
}
