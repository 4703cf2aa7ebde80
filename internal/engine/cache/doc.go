// Package cache persists fetched ticker metrics between runs and decides
// when a cached entry is fresh enough to reuse.
//
// The whole cache is one JSON snapshot file keyed by symbol, written
// atomically on every save. Key behaviors:
//   - Loads fail soft: a missing, empty, or corrupt file yields an empty
//     snapshot and costs one refetch, never a failed run
//   - Freshness is a strict window: an entry exactly interval old is
//     already stale
//   - Saves merge this pass's fetches over the loaded snapshot, so
//     symbols outside the current ticker list are retained
//
// The snapshot format is forward-readable; unknown fields written by
// newer builds are ignored on load.
package cache
