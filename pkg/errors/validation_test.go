package errors

import "testing"

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "survey_2024", false},
		{"valid with hyphen", "regional-sales", false},
		{"empty", "", true},
		{"path separator", "data/survey", true},
		{"backslash", "data\\survey", true},
		{"traversal", "../secrets", true},
		{"control character", "bad\x01name", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "site/index.md", false},
		{"valid nested", "site/assets/chart.svg", false},
		{"empty", "", true},
		{"traversal", "site/../../etc", true},
		{"backslash", "site\\index.md", true},
		{"null byte", "site\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://example.com/data.csv"); err != nil {
		t.Errorf("https URL rejected: %v", err)
	}
	if err := ValidateURL("http://example.com/data.csv"); err != nil {
		t.Errorf("http URL rejected: %v", err)
	}
	if err := ValidateURL("ftp://example.com/data.csv"); err == nil {
		t.Error("ftp URL accepted")
	}
	if err := ValidateURL(""); err == nil {
		t.Error("empty URL accepted")
	}
}
