package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gardar/bookocr/pkg/correct"
	"github.com/gardar/bookocr/pkg/excerpt"
)

func TestMergeNormalizesAndJoinsInCaptureOrder(t *testing.T) {
	store := excerpt.Group([]excerpt.Capture{
		{Name: "IMG_7781.jpg", Text: "《红楼梦》\n假作真时真亦假", Title: "红楼梦"},
		{Name: "IMG_7782.jpg", Text: "好妨佳节", Title: "江楼梦"},
	})

	docs := Merge(store, Options{})

	require.Len(t, docs, 1)
	doc := docs[0]
	assert.Equal(t, "红楼梦", doc.Title)
	assert.Equal(t, "红楼梦\n假作真时真亦假\n\n好了歌", doc.Body)
	assert.Equal(t, []string{"IMG_7781.jpg", "IMG_7782.jpg"}, doc.Sources)
	assert.Equal(t, []string{"江楼梦"}, doc.Misreadings)
	assert.Equal(t, "红楼梦.md", doc.FileName())
	assert.Equal(t, "# 红楼梦\n\n红楼梦\n假作真时真亦假\n\n好了歌\n", doc.Markdown())
}

func TestMergeKeepsFirstAppearanceOrder(t *testing.T) {
	store := excerpt.NewStore()
	store.Add("围城", excerpt.Fragment{Source: "a", Text: "一"})
	store.Add("话着", excerpt.Fragment{Source: "b", Text: "二"})
	store.Add("活着", excerpt.Fragment{Source: "c", Text: "三"})

	docs := Merge(store, Options{})

	require.Len(t, docs, 2)
	assert.Equal(t, "围城", docs[0].Title)
	assert.Equal(t, "活着", docs[1].Title)
	assert.Equal(t, "二\n\n三", docs[1].Body)
}

func TestMergeFiltersNoiseBeforeCorrecting(t *testing.T) {
	store := excerpt.NewStore()
	store.Add("月亮与六便士", excerpt.Fragment{Source: "a", Text: "OM\n\n\n\n我说的伟大并不是那种官运享通的政客\nNOTES\n\n"})

	docs := Merge(store, Options{})

	require.Len(t, docs, 1)
	// "OM" would have become "0M" and survived if corrections ran first.
	assert.Equal(t, "我说的伟大并不是那种官运亨通的政客", docs[0].Body)
	assert.Equal(t, 1, docs[0].Changes)
}

func TestMergeCustomTables(t *testing.T) {
	store := excerpt.NewStore()
	store.Add("t", excerpt.Fragment{Text: "skip\nfoo"})

	docs := Merge(store, Options{
		Table: correct.NewTable(correct.Entry{Canonical: "bar", Errors: []string{"foo"}}),
		Rules: correct.MustRules(`^skip$`),
	})

	require.Len(t, docs, 1)
	assert.Equal(t, "bar", docs[0].Body)
}

func TestMergeUnrelatedTextUnchanged(t *testing.T) {
	store := excerpt.NewStore()
	store.Add("围城", excerpt.Fragment{Text: "城外的人想冲进去"})

	docs := Merge(store, Options{})

	require.Len(t, docs, 1)
	assert.Equal(t, "城外的人想冲进去", docs[0].Body)
	assert.Zero(t, docs[0].Changes)
}

func TestParseFragment(t *testing.T) {
	tests := []struct {
		name, content, title, body string
	}{
		{"heading", "# 江楼梦\n\n甲\n\n乙\n\n", "江楼梦", "甲\n\n乙"},
		{"closing hashes", "# 围城 ##\n\n甲", "围城", "甲"},
		{"keeps indentation", "# t\n\n  缩进\n", "t", "  缩进"},
		{"no heading", "甲\n乙\n", "stem", "甲\n乙"},
		{"second level heading", "## 小节\n甲", "stem", "## 小节\n甲"},
		{"heading only", "# 活着", "活着", ""},
		{"empty", "", "stem", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, body := ParseFragment(tt.content, "stem")
			assert.Equal(t, tt.title, title)
			assert.Equal(t, tt.body, body)
		})
	}
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func readDir(t *testing.T, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	out := make(map[string]string)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		out[e.Name()] = string(data)
	}
	return out
}

func TestReadMergeWriteDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"江楼梦.md":    "# 江楼梦\n\n《江楼梦》\n李仇\n\n",
		"红楼梦.md":    "# 红楼梦\n\n世事洞明皆学问\n\n",
		"Unknown_1.md": "# Unknown_1\n\nDATE\n城外的人想冲进去\n\n",
		"notes.txt":    "kept",
	})

	store, err := ReadDir(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Unknown_1", "江楼梦", "红楼梦"}, store.Titles())

	docs := Merge(store, Options{})
	_, err = WriteDir(dir, docs, nil)
	require.NoError(t, err)

	got := readDir(t, dir)
	assert.Equal(t, map[string]string{
		"红楼梦.md":    "# 红楼梦\n\n红楼梦\n李纨\n\n世事洞明皆学问\n",
		"Unknown_1.md": "# Unknown_1\n\n城外的人想冲进去\n",
		"notes.txt":    "kept",
	}, got)
}

func TestMergeIsFixedPoint(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"江楼梦.md":    "# 江楼梦\n\n  第五回\n\n\n\nOM\n好妨佳节 Ol\n\n \n",
		"围城.md":     "# 围城\n\n《围城》\n\n",
		"话着.md":     "# 话着\n\nfront\n少年去游荡\n",
		"月亮与六便士.md": "# 月亮与六便士\n\n《DATE》\n满地都是六便士\n《OM》\n\n他却抬头看见了月亮\n",
	})

	store, err := ReadDir(dir, nil)
	require.NoError(t, err)
	_, err = WriteDir(dir, Merge(store, Options{}), nil)
	require.NoError(t, err)
	first := readDir(t, dir)

	store, err = ReadDir(dir, nil)
	require.NoError(t, err)
	docs := Merge(store, Options{})
	_, err = WriteDir(dir, docs, nil)
	require.NoError(t, err)

	assert.Equal(t, first, readDir(t, dir))
	for _, d := range docs {
		assert.Zero(t, d.Changes, d.Title)
	}
	assert.Equal(t, "# 红楼梦\n\n  第五回\n\n好了歌 01\n", first["红楼梦.md"])
	assert.Equal(t, "# 月亮与六便士\n\n满地都是六便士\n\n他却抬头看见了月亮\n", first["月亮与六便士.md"])
}

func TestReadDirMissing(t *testing.T) {
	_, err := ReadDir(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func TestWriteDirCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "final")
	paths, err := WriteDir(dir, []Document{{Title: "《围城》", Body: "甲"}}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "围城.md")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "# 《围城》\n\n甲\n", string(data))
}

func TestWriteDirLogsNameCollision(t *testing.T) {
	dir := t.TempDir()
	core, logs := observer.New(zap.WarnLevel)

	paths, err := WriteDir(dir, []Document{
		{Title: "围城?", Body: "甲"},
		{Title: "围城", Body: "乙"},
	}, zap.New(core))
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	collisions := logs.FilterMessage("file name collision, earlier book overwritten").All()
	require.Len(t, collisions, 1)
	assert.Equal(t, "围城?", collisions[0].ContextMap()["overwritten"])
	assert.Equal(t, map[string]string{"围城.md": "# 围城\n\n乙\n"}, readDir(t, dir))
}
