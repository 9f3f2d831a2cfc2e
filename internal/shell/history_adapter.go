package shell

// HistoryAdapter implements expand.HistoryStore over a *History, backing
// gobash's `$history` special variable. It must only be consulted from the
// main goroutine, matching History's own lack of synchronization.
type HistoryAdapter struct {
	h *History
}

// NewHistoryAdapter wraps h for use as an expand.HistoryStore.
func NewHistoryAdapter(h *History) *HistoryAdapter {
	return &HistoryAdapter{h: h}
}

func (a *HistoryAdapter) Size() int { return a.h.Size() }

// GetHistory returns every history entry, most-recent-last (the order
// History already stores them in).
func (a *HistoryAdapter) GetHistory() []string {
	return a.h.GetAll()
}

// ItemsAtIndexes resolves the 1-based, most-recent-first indices expand's
// slice syntax ($history[1], $history[1..3]) produces into their history
// text, mirroring fish's history_t::items_at_indexes.
func (a *HistoryAdapter) ItemsAtIndexes(idx []int) map[int]string {
	all := a.h.GetAll()
	n := len(all)
	out := make(map[int]string, len(idx))
	for _, i := range idx {
		if i < 1 || i > n {
			continue
		}
		// $history[1] is the most recent command: index from the end.
		out[i] = all[n-i]
	}
	return out
}
