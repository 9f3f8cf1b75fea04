package reveal

import "testing"

func TestCommand(t *testing.T) {
	testCases := []struct {
		goos    string
		want    string
		wantErr bool
	}{
		{goos: "darwin", want: "open"},
		{goos: "windows", want: "explorer"},
		{goos: "linux", want: "xdg-open"},
		{goos: "plan9", wantErr: true},
	}
	for _, tc := range testCases {
		name, args, err := Command(tc.goos, "/tmp/unicode_mappings.txt")
		if tc.wantErr {
			if err == nil {
				t.Errorf("Command(%s) = %s, want error", tc.goos, name)
			}
			continue
		}
		if err != nil || name != tc.want || len(args) != 1 || args[0] != "/tmp/unicode_mappings.txt" {
			t.Errorf("Command(%s) = %s %v, %v", tc.goos, name, args, err)
		}
	}
}
