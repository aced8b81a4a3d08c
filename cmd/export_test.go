package cmd

import "testing"

func TestDetectExportFormat(t *testing.T) {
	cases := []struct {
		path     string
		expected string
	}{
		{"./out.csv", "csv"},
		{"./out.XLSX", "excel"},
		{"./out.xlsm", "excel"},
		{"./out.xls", "excel"},
		{"./out.dat", "csv"},
		{"./out", "csv"},
	}

	for _, tc := range cases {
		if got := detectExportFormat(tc.path); got != tc.expected {
			t.Fatalf("detectExportFormat(%q): expected %q, got %q", tc.path, tc.expected, got)
		}
	}
}
