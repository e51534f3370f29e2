package domain

// HashRecord is the change-detection state of one watched path.
type HashRecord struct {
	UserInput string `json:"userInput"`
	Resolved  string `json:"resolved"`
	Hash      string `json:"hash"`
	Changed   bool   `json:"changed"`
}

// History is the persisted manifest of hash records.
type History struct {
	Hashes []HashRecord `json:"hashes"`
}

// Find returns the record for a resolved path.
func (h *History) Find(resolved string) (HashRecord, bool) {
	if h == nil {
		return HashRecord{}, false
	}
	for _, r := range h.Hashes {
		if r.Resolved == resolved {
			return r, true
		}
	}
	return HashRecord{}, false
}

// Merge replaces records with the same resolved path in place and appends new
// ones. Records not present in updates are kept unchanged.
func (h *History) Merge(updates []HashRecord) {
	index := make(map[string]int, len(h.Hashes))
	for i, r := range h.Hashes {
		index[r.Resolved] = i
	}
	for _, u := range updates {
		if i, ok := index[u.Resolved]; ok {
			h.Hashes[i] = u
			continue
		}
		index[u.Resolved] = len(h.Hashes)
		h.Hashes = append(h.Hashes, u)
	}
}
