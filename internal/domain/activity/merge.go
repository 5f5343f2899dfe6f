package activity

import "sort"

// Merge folds a normalized batch into the previous register. Rows sharing a Key
// keep only the most recently uploaded occurrence; on equal upload dates the
// batch row wins. The result is ordered by upload date, newest first.
func Merge(previous, batch []Record) []Record {
	combined := make([]Record, 0, len(previous)+len(batch))
	combined = append(combined, previous...)
	combined = append(combined, batch...)
	if len(combined) == 0 {
		return []Record{}
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].UploadDate.Before(combined[j].UploadDate)
	})

	lastIndex := make(map[Key]int, len(combined))
	for i, item := range combined {
		lastIndex[item.Key()] = i
	}

	out := make([]Record, 0, len(lastIndex))
	for i, item := range combined {
		if lastIndex[item.Key()] == i {
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate.After(out[j].UploadDate)
	})
	return out
}
