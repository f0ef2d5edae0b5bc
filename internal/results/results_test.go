package results

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	a := Artifacts{
		KeywordToEpisodes: map[string][]string{
			"東京タワー": {"ep001.txt.md", "ep002.txt.md"},
		},
		EpisodeToKeywords: map[string][]string{
			"ep001.txt.md": {"東京タワー"},
			"ep002.txt.md": {"東京タワー"},
		},
		Transcripts: map[string]Transcript{
			"ep001.txt.md": {Title: "第1回", Content: "東京タワーの話。"},
		},
		CuratedKeywords: []string{"東京タワー"},
	}
	require.NoError(t, Write(fsys, "public", a))

	var k2e map[string][]string
	readJSON(t, fsys, "public/keyword_to_episodes.json", &k2e)
	assert.Equal(t, a.KeywordToEpisodes, k2e)

	var e2k map[string][]string
	readJSON(t, fsys, "public/episode_to_keywords.json", &e2k)
	assert.Equal(t, a.EpisodeToKeywords, e2k)

	var transcripts map[string]Transcript
	readJSON(t, fsys, "public/transcripts.json", &transcripts)
	assert.Equal(t, a.Transcripts, transcripts)

	var curated []string
	readJSON(t, fsys, "public/json_source_keywords.json", &curated)
	assert.Equal(t, a.CuratedKeywords, curated)
}

func TestWriteEmptyArtifacts(t *testing.T) {
	fsys, err := mem.NewFS()
	require.NoError(t, err)

	require.NoError(t, Write(fsys, "public", Artifacts{}))

	data, err := fs.ReadFile(fsys, "public/keyword_to_episodes.json")
	require.NoError(t, err)
	assert.Equal(t, "null", string(data), "nil maps serialize as null, not an error")
}

func readJSON(t *testing.T, fsys fs.FS, name string, v any) {
	t.Helper()
	data, err := fs.ReadFile(fsys, name)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}
