package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestMediaPathTemplates(t *testing.T) {
	if got := ProfileImagePath(42, "a.jpg"); got != "profile_images/user_42/a.jpg" {
		t.Errorf("ProfileImagePath = %q", got)
	}
	if got := WorkImagePath("ravi", "b.jpg"); got != "work_images/ravi/b.jpg" {
		t.Errorf("WorkImagePath = %q", got)
	}
	if got := ChefImagePath("c.jpg"); got != "chef_dishes/c.jpg" {
		t.Errorf("ChefImagePath = %q", got)
	}
	if got := BlogImagePath("d.jpg"); got != "blog_images/d.jpg" {
		t.Errorf("BlogImagePath = %q", got)
	}
}

func TestSaveBase64ImageRoundTrip(t *testing.T) {
	mediaRoot = t.TempDir()

	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0} // jpeg magic
	encoded := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	rel := ProfileImagePath(7, NewImageName())
	url := SaveBase64Image(encoded, rel)
	if url != "/media/"+rel {
		t.Fatalf("expected /media/%s, got %q", rel, url)
	}

	onDisk, err := os.ReadFile(filepath.Join(mediaRoot, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(onDisk) != string(raw) {
		t.Fatal("stored bytes differ from the decoded payload")
	}

	// payload without the data: prefix works too
	plain := base64.StdEncoding.EncodeToString(raw)
	if got := SaveBase64Image(plain, ChefImagePath("plain.jpg")); got == "" {
		t.Fatal("plain base64 payload should be accepted")
	}

	if got := SaveBase64Image("not-base64!!", ChefImagePath("bad.jpg")); got != "" {
		t.Fatalf("undecodable payload should return empty, got %q", got)
	}
}

func TestDeleteMedia(t *testing.T) {
	mediaRoot = t.TempDir()

	rel := ChefImagePath("gone.jpg")
	full := filepath.Join(mediaRoot, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	DeleteMedia("/media/" + rel)
	if _, err := os.Stat(full); !os.IsNotExist(err) {
		t.Fatal("file should be removed")
	}

	// traversal attempts are ignored
	DeleteMedia("/media/../secrets")
	DeleteMedia("")
}
