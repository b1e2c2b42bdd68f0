package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEntryFile(t *testing.T, dir, name, data string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write entry file: %v", err)
	}
}

func TestLoadVideoEntry(t *testing.T) {
	dir := t.TempDir()
	writeEntryFile(t, dir, "sunset-bay", `
creator: luna_dreams
caption: "Sunset over the bay"
category: travel
media:
  kind: video
  video_url: https://cdn.example.com/videos/sunset-bay.mp4
monetized: true
reward_cents: 2000
counters:
  likes: 1200
  comments: 45
  shares: 12
`)

	cache := NewCatalogCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	entry, err := cache.GetEntry("sunset-bay")
	if err != nil {
		t.Fatalf("Expected entry to be cached, got: %v", err)
	}

	if entry.Creator != "luna_dreams" {
		t.Errorf("Expected creator 'luna_dreams', got '%s'", entry.Creator)
	}
	if entry.Media.Kind != "video" {
		t.Errorf("Expected kind 'video', got '%s'", entry.Media.Kind)
	}
	if !entry.Monetized {
		t.Error("Expected entry to be monetized")
	}
	if entry.RewardCents != 2000 {
		t.Errorf("Expected reward 2000, got %d", entry.RewardCents)
	}
	if entry.Counters.Likes != 1200 {
		t.Errorf("Expected 1200 likes, got %d", entry.Counters.Likes)
	}
}

func TestMonetizedEntryRequiresReward(t *testing.T) {
	dir := t.TempDir()
	writeEntryFile(t, dir, "bad-entry", `
creator: luna_dreams
media:
  kind: video
  video_url: https://cdn.example.com/videos/clip.mp4
monetized: true
reward_cents: 0
`)

	cache := NewCatalogCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected validation error for monetized entry without reward")
	}
}

func TestNonMonetizedRewardIsZeroed(t *testing.T) {
	dir := t.TempDir()
	writeEntryFile(t, dir, "free-clip", `
creator: luna_dreams
media:
  kind: video
  video_url: https://cdn.example.com/videos/free.mp4
monetized: false
reward_cents: 5000
`)

	cache := NewCatalogCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	entry, err := cache.GetEntry("free-clip")
	if err != nil {
		t.Fatalf("Expected entry to be cached, got: %v", err)
	}
	if entry.RewardCents != 0 {
		t.Errorf("Reward on a non-monetized entry should be zeroed, got %d", entry.RewardCents)
	}
}

func TestImageEntryRequiresURLs(t *testing.T) {
	dir := t.TempDir()
	writeEntryFile(t, dir, "empty-gallery", `
creator: luna_dreams
media:
  kind: image
  image_urls: []
`)

	cache := NewCatalogCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected validation error for image entry without URLs")
	}
}

func TestUnknownMediaKindRejected(t *testing.T) {
	dir := t.TempDir()
	writeEntryFile(t, dir, "audio-clip", `
creator: luna_dreams
media:
  kind: audio
`)

	cache := NewCatalogCache(dir)
	if err := cache.Run(); err == nil {
		t.Error("Expected validation error for unknown media kind")
	}
}

func TestGetEntriesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zebra", "alpha", "mango"} {
		writeEntryFile(t, dir, name, `
creator: luna_dreams
media:
  kind: video
  video_url: https://cdn.example.com/videos/clip.mp4
`)
	}

	cache := NewCatalogCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	entries := cache.GetEntries()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "alpha" || entries[1].Name != "mango" || entries[2].Name != "zebra" {
		t.Errorf("Entries should be sorted by name, got %s, %s, %s",
			entries[0].Name, entries[1].Name, entries[2].Name)
	}

	if cache.GetEntryCount() != 3 {
		t.Errorf("Expected entry count 3, got %d", cache.GetEntryCount())
	}
}

func TestMissingContentDirIsNotAnError(t *testing.T) {
	cache := NewCatalogCache(filepath.Join(t.TempDir(), "does-not-exist"))
	if err := cache.Run(); err != nil {
		t.Errorf("Missing content directory should not error, got: %v", err)
	}
}
