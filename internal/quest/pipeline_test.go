package quest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"questgraph/internal/config"
)

const questCSV = "ID,Title,Type,Difficulty Level,Experience Reward,Achievement Id,Required Achievement Id,Schedule Id,Objective Task ID\n" +
	"Q_Side,A Side Errand,Side Quest,5,100,ACH_SIDE,ACH_MAIN,,T1\n" +
	"Q_Main,The Main Thread,Main Story Quest,1,500,ACH_MAIN,,,\n" +
	"01_Internal,Dev Probe,Side Quest,1,0,ACH_DEV,,,\n"

func writeFixtures(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	cfg := config.Default()
	cfg.QuestsPath = write("quests.csv", questCSV)
	cfg.ItemsPath = write("items.csv", "Name,Item ID,Icon Path,Rarity\nIron Ore,iron_ore,icons/iron.png,common\n")
	cfg.TasksPath = write("tasks.csv", "TaskID,TP_DescriptionTag\nT1,@task_one\n")
	cfg.LocalePath = write("locale.json", `{"task_one": "Do the first thing"}`)
	cfg.ManualLinksPath = write("manual_links.json",
		`{"links": [{"source": "Q_Side", "target": "Q_Main", "type": "not"}]}`)
	cfg.OutPath = filepath.Join(dir, "out", "quests.json")
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := writeFixtures(t)
	doc, err := Run(cfg, zap.NewNop())
	require.NoError(t, err)

	// the 01_ row is filtered; main story sorts first
	require.Equal(t, 2, doc.QuestCount)
	assert.Equal(t, "Q_Main", doc.Quests[0].ID)
	assert.Equal(t, 0, doc.Quests[0].Priority)
	assert.Equal(t, "Q_Side", doc.Quests[1].ID)

	// derived edge Q_Main -> Q_Side plus one manual not-edge
	assert.Equal(t, 2, doc.EdgeCount)
	assert.Equal(t, []string{"Q_Main"}, doc.Quests[1].Prerequisites)
	assert.Equal(t, []string{"Q_Side"}, doc.Quests[0].NotPrerequisites)

	assert.Equal(t, []string{"Do the first thing"}, doc.Quests[1].TaskDescTexts)
}

func TestRun_NoSelfPrerequisites(t *testing.T) {
	cfg := writeFixtures(t)
	doc, err := Run(cfg, zap.NewNop())
	require.NoError(t, err)

	for _, q := range doc.Quests {
		assert.NotContains(t, q.Prerequisites, q.ID)
		assert.NotContains(t, q.NotPrerequisites, q.ID)
	}
}

func TestRun_Idempotent(t *testing.T) {
	cfg := writeFixtures(t)
	first, err := Run(cfg, zap.NewNop())
	require.NoError(t, err)
	second, err := Run(cfg, zap.NewNop())
	require.NoError(t, err)

	diff := cmp.Diff(first, second, cmpopts.IgnoreFields(Document{}, "GeneratedAt"))
	assert.Empty(t, diff)
}

func TestRun_MissingQuestTableIsFatal(t *testing.T) {
	cfg := config.Default()
	cfg.QuestsPath = filepath.Join(t.TempDir(), "missing.csv")
	_, err := Run(cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestRun_DegradedOptionalSources(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	questsPath := filepath.Join(dir, "quests.csv")
	require.NoError(t, os.WriteFile(questsPath, []byte(questCSV), 0644))
	cfg.QuestsPath = questsPath
	cfg.ItemsPath = filepath.Join(dir, "absent_items.csv")
	cfg.LocalePath = filepath.Join(dir, "absent_locale.json")
	cfg.TasksPath = filepath.Join(dir, "absent_tasks")
	cfg.ManualLinksPath = filepath.Join(dir, "absent_links.json")

	doc, err := Run(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, doc.QuestCount)
}

func TestWrite_CreatesDirectoryAndRoundTrips(t *testing.T) {
	doc := Assemble([]*Quest{
		{ID: "Q2", Priority: 1},
		{ID: "Q1", Priority: 0},
	}, []Edge{{Source: "Q1", Target: "Q2"}}, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

	path := filepath.Join(t.TempDir(), "nested", "out", "quests.json")
	require.NoError(t, Write(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "2026-08-01T12:00:00Z", back.GeneratedAt)
	assert.Equal(t, 2, back.QuestCount)
	assert.Equal(t, 1, back.EdgeCount)
	require.Len(t, back.Quests, 2)
	assert.Equal(t, "Q1", back.Quests[0].ID, "main-story priority sorts first")
}
