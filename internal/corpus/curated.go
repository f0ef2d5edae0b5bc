package corpus

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"

	"github.com/hack-pad/hackpadfs"
)

// curatedFile is the hand-maintained seed list format:
// {"keywords": [{"keyword": "..."}]}.
type curatedFile struct {
	Keywords []curatedEntry `json:"keywords"`
}

type curatedEntry struct {
	Keyword string `json:"keyword"`
}

// LoadCuratedKeywords reads the curated keyword seed list. A missing or
// malformed file is reported as an error so the caller can warn and
// proceed with an empty set; it is never fatal to the pipeline.
func LoadCuratedKeywords(fsys hackpadfs.FS, name string) ([]string, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading curated keywords %s: %w", name, err)
	}

	var parsed curatedFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing curated keywords %s: %w", name, err)
	}

	seen := make(map[string]struct{}, len(parsed.Keywords))
	out := make([]string, 0, len(parsed.Keywords))
	for _, entry := range parsed.Keywords {
		if entry.Keyword == "" {
			continue
		}
		if _, dup := seen[entry.Keyword]; dup {
			continue
		}
		seen[entry.Keyword] = struct{}{}
		out = append(out, entry.Keyword)
	}

	sort.Strings(out)
	return out, nil
}
