package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"lease agreement.pdf", "lease_agreement.pdf"},
		{"photo (1).JPG", "photo__1_.JPG"},
		{"ok-file_1.2.txt", "ok-file_1.2.txt"},
		{"../../etc/passwd", ".._.._etc_passwd"},
		{"résumé.pdf", "r_sum_.pdf"},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if err != nil {
			t.Fatalf("SanitizeFileName(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileNameEmpty(t *testing.T) {
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestSanitizeFileNameCharset(t *testing.T) {
	got, err := SanitizeFileName("a b~c!d@e#f$g.png")
	if err != nil {
		t.Fatalf("SanitizeFileName: %v", err)
	}
	for _, r := range got {
		if !safeFileNameRune(r) {
			t.Fatalf("unsafe rune %q survived sanitization: %s", r, got)
		}
	}
}
