package errors

import (
	"testing"
)

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid lowercase", "8a2f6a2e-4f3b-4c1d-9e8f-0a1b2c3d4e5f", false},
		{"valid uppercase", "8A2F6A2E-4F3B-4C1D-9E8F-0A1B2C3D4E5F", false},

		{"empty", "", true},
		{"too short", "8a2f6a2e", true},
		{"braced", "{8a2f6a2e-4f3b-4c1d-9e8f-0a1b2c3d4e5f}", true},
		{"urn", "urn:uuid:8a2f6a2e-4f3b-4c1d-9e8f-0a1b2c3d4e5f", true},
		{"bad hex", "8a2f6a2e-4f3b-4c1d-9e8f-0a1b2c3d4e5z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUUID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUUID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidUUID) {
				t.Errorf("ValidateUUID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidUUID)
			}
		})
	}
}

func TestValidateTreeFile(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"json", "tree.json", false, ""},
		{"yaml", "data/tree.yaml", false, ""},
		{"yml uppercase", "TREE.YML", false, ""},

		{"empty", "", true, ErrCodeInvalidInput},
		{"null byte", "tree\x00.json", true, ErrCodeInvalidInput},
		{"toml", "tree.toml", true, ErrCodeInvalidFormat},
		{"no extension", "tree", true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTreeFile(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateTreeFile(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && GetCode(err) != tt.wantCode {
				t.Errorf("ValidateTreeFile(%q) code = %v, want %v", tt.input, GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://anet.example.org", false},
		{"http", "http://localhost:8080", false},
		{"empty", "", true},
		{"ftp", "ftp://anet.example.org", true},
		{"no scheme", "anet.example.org", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
