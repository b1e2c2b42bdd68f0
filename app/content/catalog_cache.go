package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// CatalogCache loads and caches curated content entries from YAML files
// in the content directory, one file per entry.
type CatalogCache struct {
	contentDir string
	cache      map[string]*Entry
	mu         sync.RWMutex
}

func NewCatalogCache(contentDir string) *CatalogCache {
	return &CatalogCache{
		contentDir: contentDir,
		cache:      make(map[string]*Entry),
	}
}

func (cc *CatalogCache) Run() error {
	if _, err := os.Stat(cc.contentDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(cc.contentDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		entryName := strings.TrimSuffix(fileName, ".yml")

		entry, err := cc.LoadEntry(entryName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Catalog entry loaded", "entry", entryName, "kind", entry.Media.Kind, "monetized", entry.Monetized)
	}

	return nil
}

func (cc *CatalogCache) LoadEntry(entryName string) (*Entry, error) {
	entryFile := filepath.Join(cc.contentDir, entryName+".yml")

	entry, err := cc.parseEntry(entryFile)
	if err != nil {
		return nil, err
	}

	entry.Name = entryName

	if err := cc.validateEntry(entry); err != nil {
		return nil, fmt.Errorf("invalid catalog entry %s: %w", entryFile, err)
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.cache[entry.Name] = entry

	return entry, nil
}

func (cc *CatalogCache) GetEntry(entryName string) (*Entry, error) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	entry, ok := cc.cache[entryName]
	if !ok {
		return nil, fmt.Errorf("catalog entry with name '%s' not found", entryName)
	}
	return entry, nil
}

func (cc *CatalogCache) GetEntries() []*Entry {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	entries := make([]*Entry, 0, len(cc.cache))
	for _, entry := range cc.cache {
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

func (cc *CatalogCache) GetEntryCount() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.cache)
}

func (cc *CatalogCache) parseEntry(entryFile string) (*Entry, error) {
	data, err := os.ReadFile(entryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var entry Entry
	if err := yaml.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return &entry, nil
}

func (cc *CatalogCache) validateEntry(entry *Entry) error {
	if entry.Creator == "" {
		return fmt.Errorf("creator is required")
	}

	switch entry.Media.Kind {
	case "video":
		if entry.Media.VideoURL == "" {
			return fmt.Errorf("video entries require media.video_url")
		}
	case "image":
		if len(entry.Media.ImageURLs) == 0 {
			return fmt.Errorf("image entries require at least one media.image_urls entry")
		}
	default:
		return fmt.Errorf("media.kind must be 'image' or 'video', got '%s'", entry.Media.Kind)
	}

	if entry.Monetized && entry.RewardCents <= 0 {
		return fmt.Errorf("monetized entries require a positive reward_cents")
	}

	// Reward amounts are meaningful only on monetized entries.
	if !entry.Monetized {
		entry.RewardCents = 0
	}

	return nil
}
