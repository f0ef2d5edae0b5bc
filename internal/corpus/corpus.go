// Package corpus loads transcript documents from a filesystem. A
// transcript is a *.txt.md file whose first line is the episode title and
// whose remaining lines are the content.
package corpus

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hack-pad/hackpadfs"
)

// Document is one transcript, immutable for the run.
type Document struct {
	ID      string
	Title   string
	Content string
	ModTime int64
}

const transcriptSuffix = ".txt.md"

// Load reads every transcript under dir. Empty files are skipped.
// Documents are returned sorted by id for deterministic processing.
func Load(fsys hackpadfs.FS, dir string) ([]Document, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading transcript dir %s: %w", dir, err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), transcriptSuffix) {
			continue
		}

		name := path.Join(dir, entry.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading transcript %s: %w", name, err)
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat transcript %s: %w", name, err)
		}

		doc, ok := parseTranscript(entry.Name(), string(data), info.ModTime().Unix())
		if !ok {
			continue
		}
		docs = append(docs, doc)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// parseTranscript splits a raw transcript into title and content. The raw
// title is trimmed at the first " - " separator.
func parseTranscript(id, raw string, mtime int64) (Document, bool) {
	if strings.TrimSpace(raw) == "" {
		return Document{}, false
	}

	lines := strings.SplitN(raw, "\n", 2)
	title := strings.TrimSpace(lines[0])
	if idx := strings.Index(title, " - "); idx >= 0 {
		title = title[:idx]
	}

	content := ""
	if len(lines) > 1 {
		content = strings.TrimSpace(lines[1])
	}

	return Document{ID: id, Title: title, Content: content, ModTime: mtime}, true
}
