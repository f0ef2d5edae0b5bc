// Package results writes the final analysis artifacts as JSON files.
package results

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/hack-pad/hackpadfs"
)

// Transcript is the published document shape.
type Transcript struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Artifacts holds everything a run emits.
type Artifacts struct {
	KeywordToEpisodes map[string][]string
	EpisodeToKeywords map[string][]string
	Transcripts       map[string]Transcript
	CuratedKeywords   []string
}

// Output file names, stable for downstream consumers.
const (
	keywordToEpisodesFile = "keyword_to_episodes.json"
	episodeToKeywordsFile = "episode_to_keywords.json"
	transcriptsFile       = "transcripts.json"
	curatedKeywordsFile   = "json_source_keywords.json"
)

// Write serializes all artifacts into dir, creating it if needed.
func Write(fsys hackpadfs.FS, dir string, a Artifacts) error {
	if err := hackpadfs.MkdirAll(fsys, dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir %s: %w", dir, err)
	}

	files := map[string]any{
		keywordToEpisodesFile: a.KeywordToEpisodes,
		episodeToKeywordsFile: a.EpisodeToKeywords,
		transcriptsFile:       a.Transcripts,
		curatedKeywordsFile:   a.CuratedKeywords,
	}

	for name, payload := range files {
		if err := writeJSON(fsys, path.Join(dir, name), payload); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(fsys hackpadfs.FS, name string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := hackpadfs.WriteFullFile(fsys, name, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
