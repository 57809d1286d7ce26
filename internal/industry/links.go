package industry

// SelectLinks deduplicates documents into up to five distinct (title, url)
// pairs, preserving input order. A document contributes only if it carries a
// non-empty URL not already seen; missing titles get a placeholder. The scan
// stops as soon as five pairs are collected.
func SelectLinks(docs []Document) []Link {
	out := make([]Link, 0, DefaultMinResults)
	seen := map[string]struct{}{}
	for _, d := range docs {
		if d.URL == "" {
			continue
		}
		if _, ok := seen[d.URL]; ok {
			continue
		}
		title := d.Title
		if title == "" {
			title = PlaceholderTitle
		}
		out = append(out, Link{Title: title, URL: d.URL})
		seen[d.URL] = struct{}{}
		if len(out) == DefaultMinResults {
			break
		}
	}
	return out
}
