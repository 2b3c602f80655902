package storage

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Media files live on local disk under MEDIA_ROOT and are served from
// /media/. The relative paths below are part of the persisted-state
// contract; existing rows reference them, so the templates must not change.

var mediaRoot string

func InitializeMedia() {
	mediaRoot = os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media"
	}
	if err := os.MkdirAll(mediaRoot, 0o755); err != nil {
		log.Panic("cannot create media root: " + err.Error())
	}
	log.Println("Media root:", mediaRoot)
}

func MediaRoot() string {
	if mediaRoot == "" {
		mediaRoot = "media"
	}
	return mediaRoot
}

func ProfileImagePath(userID uint, filename string) string {
	return fmt.Sprintf("profile_images/user_%d/%s", userID, filename)
}

func WorkImagePath(username, filename string) string {
	return fmt.Sprintf("work_images/%s/%s", username, filename)
}

func ChefImagePath(filename string) string {
	return "chef_dishes/" + filename
}

func BlogImagePath(filename string) string {
	return "blog_images/" + filename
}

// NewImageName returns a random jpg filename for an upload.
func NewImageName() string {
	return uuid.NewString() + ".jpg"
}

// SaveBase64Image decodes a base64 image (with or without a data: prefix)
// to relPath under the media root and returns the public /media/ URL.
// Returns "" when the payload is empty or undecodable.
func SaveBase64Image(base64ImageSrc string, relPath string) string {
	if base64ImageSrc == "" {
		log.Println("ERROR: empty base64 image")
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		log.Println("ERROR: cannot decode image:", err)
		return ""
	}

	fullPath := filepath.Join(MediaRoot(), filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		log.Println("ERROR: cannot create media dir:", err)
		return ""
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		log.Println("ERROR: cannot write media file:", err)
		return ""
	}

	return "/media/" + relPath
}

// DeleteMedia removes a previously stored file given its /media/ URL or
// relative path. Missing files are ignored.
func DeleteMedia(urlOrPath string) {
	rel := strings.TrimPrefix(urlOrPath, "/media/")
	if rel == "" || strings.Contains(rel, "..") {
		return
	}
	_ = os.Remove(filepath.Join(MediaRoot(), filepath.FromSlash(rel)))
}
