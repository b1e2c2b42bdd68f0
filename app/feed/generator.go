package feed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dreamlabs/dreams-server/app/database"
)

// Generator produces shuffled feed pages. Every page is a uniform random
// permutation of its source items, each re-tagged with a fresh instance
// id so list keys never collide across appended batches. Repeats of the
// same base content across batches are expected in an infinite feed.
//
// One Generator is shared across request goroutines; shuffling goes
// through the package-level rand source, which is safe for concurrent
// use.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{
		now: time.Now,
	}
}

// Page shuffles the source posts into a batch of feed items. The result
// contains exactly the input posts, permuted, with fresh instance ids.
func (g *Generator) Page(posts []database.Post) []ContentItem {
	items := make([]ContentItem, len(posts))
	for i, p := range posts {
		items[i] = FromPost(p)
	}

	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})

	generation := g.now().UnixNano()
	for i := range items {
		items[i].InstanceID = instanceID(items[i].BaseID, generation, i)
	}

	return items
}

// instanceID derives a unique-per-occurrence identifier from the base
// id, the batch generation timestamp and the position within the batch.
func instanceID(baseID string, generation int64, position int) string {
	return fmt.Sprintf("%s-%d-%d", baseID, generation, position)
}
