package hnsw

import "github.com/RoaringBitmap/roaring/v2"

// BitmapFilter adapts a roaring bitmap of node ids into a search filter.
// Only nodes present in the bitmap are returned from Search; the graph is
// still traversed through nodes outside the bitmap.
//
// The filter runs under the index read lock, so the bitmap must not be
// mutated while a search is in flight.
//
// Example:
//
//	allowed := roaring.BitmapOf(1, 3, 5)
//	results, err := idx.Search(ctx, query, k, oracle,
//		hnsw.WithFilter(hnsw.BitmapFilter(allowed)))
func BitmapFilter(bitmap *roaring.Bitmap) func(id int) bool {
	if bitmap == nil {
		return func(int) bool { return false }
	}
	return func(id int) bool {
		return id >= 0 && bitmap.Contains(uint32(id))
	}
}
