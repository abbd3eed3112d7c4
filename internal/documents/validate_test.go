package documents

import (
	"testing"
	"time"
)

func TestStoragePathDeterministic(t *testing.T) {
	t.Parallel()

	at := time.UnixMilli(1712345678901)
	first, err := StoragePath("user-1", CategoryIdentity, "passport scan.png", at)
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	second, err := StoragePath("user-1", CategoryIdentity, "passport scan.png", at)
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	if first != second {
		t.Fatalf("path not deterministic: %q vs %q", first, second)
	}
	want := "user-1/identity/1712345678901_passport_scan.png"
	if first != want {
		t.Fatalf("path = %q, want %q", first, want)
	}
}

func TestStoragePathCharset(t *testing.T) {
	t.Parallel()

	path, err := StoragePath("u1", CategoryMiscellaneous, "weird name!@#$.TXT", time.UnixMilli(1))
	if err != nil {
		t.Fatalf("storage path: %v", err)
	}
	for _, r := range path {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.' || r == '-' || r == '_' || r == '/':
		default:
			t.Fatalf("path %q contains invalid rune %q", path, r)
		}
	}
}

func TestValidateUpload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		category string
		mime     string
		size     int64
		wantType string
		wantErr  bool
	}{
		{name: "pdf document", category: CategoryIdentity, mime: "application/pdf", size: 100, wantType: "pdf"},
		{name: "doc document", category: CategoryMiscellaneous, mime: "application/msword", size: 100, wantType: "doc"},
		{name: "docx document", category: CategoryMiscellaneous, mime: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", size: 100, wantType: "docx"},
		{name: "txt document", category: CategoryMiscellaneous, mime: "text/plain", size: 100, wantType: "txt"},
		{name: "png document", category: CategoryIdentity, mime: "image/png", size: 100, wantType: "png"},
		{name: "jpeg document", category: CategoryIncomeProof, mime: "image/jpeg", size: 100, wantType: "jpeg"},
		{name: "png avatar", category: CategoryProfilePicture, mime: "image/png", size: 100, wantType: "png"},
		{name: "exe rejected", category: CategoryIdentity, mime: "application/octet-stream", size: 100, wantErr: true},
		{name: "txt avatar rejected", category: CategoryProfilePicture, mime: "text/plain", size: 100, wantErr: true},
		{name: "oversize document", category: CategoryIdentity, mime: "application/pdf", size: MaxDocumentBytes + 1, wantErr: true},
		{name: "at ceiling ok", category: CategoryIdentity, mime: "application/pdf", size: MaxDocumentBytes, wantType: "pdf"},
		{name: "avatar at ceiling ok", category: CategoryProfilePicture, mime: "image/jpeg", size: MaxProfilePictureBytes, wantType: "jpeg"},
		{name: "empty file ok", category: CategoryIdentity, mime: "application/pdf", size: 0, wantType: "pdf"},
		{name: "negative size rejected", category: CategoryIdentity, mime: "application/pdf", size: -1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fileType, err := ValidateUpload(tt.category, tt.mime, tt.size)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fileType != tt.wantType {
				t.Fatalf("file type = %q, want %q", fileType, tt.wantType)
			}
		})
	}
}
