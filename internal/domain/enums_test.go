package domain

import "testing"

func TestFieldType_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ft   FieldType
		want bool
	}{
		{FieldTypeText, true},
		{FieldTypeNumber, true},
		{FieldTypeDropdown, true},
		{FieldTypeRadio, true},
		{FieldTypeCheckbox, true},
		{FieldType("date"), false},
		{FieldType("Text"), false},
		{FieldType(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.ft), func(t *testing.T) {
			t.Parallel()
			if got := tt.ft.IsValid(); got != tt.want {
				t.Errorf("FieldType(%q).IsValid() = %v, want %v", tt.ft, got, tt.want)
			}
		})
	}
}

func TestFieldType_HasOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ft   FieldType
		want bool
	}{
		{FieldTypeText, false},
		{FieldTypeNumber, false},
		{FieldTypeDropdown, true},
		{FieldTypeRadio, true},
		{FieldTypeCheckbox, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.ft), func(t *testing.T) {
			t.Parallel()
			if got := tt.ft.HasOptions(); got != tt.want {
				t.Errorf("FieldType(%q).HasOptions() = %v, want %v", tt.ft, got, tt.want)
			}
		})
	}
}

func TestListingStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status ListingStatus
		want   bool
	}{
		{ListingStatusActive, true},
		{ListingStatusSold, true},
		{ListingStatusExpired, true},
		{ListingStatus("ACTIVE"), false},
		{ListingStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.want {
				t.Errorf("ListingStatus(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestRole_IsAdmin(t *testing.T) {
	t.Parallel()

	if !RoleAdmin.IsAdmin() {
		t.Error("admin role should be admin")
	}
	if RoleUser.IsAdmin() || Role("").IsAdmin() {
		t.Error("non-admin roles should not be admin")
	}
}
