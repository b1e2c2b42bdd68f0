package feed

// loadMoreFraction is the scroll position at which the next batch is
// appended.
const loadMoreFraction = 0.80

// ShouldLoadMore reports whether the scrollable container has reached
// the pagination trigger: scroll offset plus viewport height at or past
// 80% of the total scrollable height.
func ShouldLoadMore(scrollOffset, viewportHeight, totalHeight float64) bool {
	if totalHeight <= 0 {
		return false
	}
	return scrollOffset+viewportHeight >= totalHeight*loadMoreFraction
}
