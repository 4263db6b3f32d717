package kddoc

import "sort"

// BuildLabels fixes the canonical label order from examples, unless the config pinned it.
// Doc labels come first by descending frequency with ties broken alphabetically,
// then labels only the teacher emitted, alphabetically.
func (h *Handler) BuildLabels(examples []Example) []string {
	if h.pinned {
		return h.Labels()
	}
	var freq = make(map[string]int)
	for _, ex := range examples {
		if ex.DocLabel != "" {
			freq[ex.DocLabel]++
		}
	}
	var labels = make([]string, 0, len(freq))
	for l := range freq {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if freq[labels[i]] != freq[labels[j]] {
			return freq[labels[i]] > freq[labels[j]]
		}
		return labels[i] < labels[j]
	})

	var extra = make(map[string]struct{})
	for _, ex := range examples {
		for _, l := range ex.TargetLabels {
			if _, ok := freq[l]; !ok {
				extra[l] = struct{}{}
			}
		}
	}
	var tail = make([]string, 0, len(extra))
	for l := range extra {
		tail = append(tail, l)
	}
	sort.Strings(tail)

	h.setLabels(append(labels, tail...))
	h.logger.Info("built label list", "labels", h.labels)
	return h.Labels()
}
