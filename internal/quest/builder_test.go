package quest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"questgraph/internal/refdata"
)

func questRow(cells map[string]string) refdata.Row {
	return refdata.NewRow(cells)
}

func TestFilter_ExclusionPatterns(t *testing.T) {
	excluded := []map[string]string{
		{"ID": ""},
		{"ID": "01_Something"},
		{"ID": "S_Tutorial"},
		{"ID": "Quest_Old"},
		{"ID": "Foo_AC_Test_Bar"},
		{"ID": "devworld_probe"},
		{"ID": "Hero_alt"},
		{"ID": "EnterZone_SM_City"},
		{"ID": "Defend_musketeer"},
		{"ID": "Valid_Quest", "Type": "Artifact"},
		{"ID": "Valid_Quest", "Type": "Community Goal"},
		{"ID": "Valid_Quest", "Type": "Faction mission"},
	}
	for _, cells := range excluded {
		assert.False(t, Filter(questRow(cells)), "expected exclusion for %v", cells)
	}

	kept := []map[string]string{
		{"ID": "MSQ_Intro", "Type": "Main Story Quest"},
		{"ID": "Side_Fishing", "Type": "Side Quest"},
		{"ID": "alt_start"}, // no _alt substring, survives
	}
	for _, cells := range kept {
		assert.True(t, Filter(questRow(cells)), "expected survival for %v", cells)
	}
}

func TestBuildAll_FilteredRowCannotBeSource(t *testing.T) {
	rows := []refdata.Row{
		questRow(map[string]string{"ID": "01_Something", "Achievement Id": "ACH_HIDDEN"}),
		questRow(map[string]string{"ID": "Q2", "Required Achievement Id": "ACH_HIDDEN"}),
	}
	quests, edges := BuildAll(rows, refdata.EmptyRefs(), zap.NewNop())

	require.Len(t, quests, 1)
	assert.Equal(t, "Q2", quests[0].ID)
	assert.Empty(t, quests[0].Prerequisites)
	assert.Empty(t, edges)
}

func TestBuildAll_EndToEndEdge(t *testing.T) {
	rows := []refdata.Row{
		questRow(map[string]string{"ID": "Q1", "Achievement Id": "ACH_1"}),
		questRow(map[string]string{"ID": "Q2", "Required Achievement Id": "ACH_1"}),
	}
	quests, edges := BuildAll(rows, refdata.EmptyRefs(), zap.NewNop())

	require.Len(t, quests, 2)
	assert.Equal(t, []string{"Q1"}, quests[1].Prerequisites)
	require.Len(t, edges, 1)
	assert.Equal(t, Edge{Source: "Q1", Target: "Q2"}, edges[0])
}

func TestBuildAll_NoSelfReference(t *testing.T) {
	rows := []refdata.Row{
		questRow(map[string]string{
			"ID":                      "Q1",
			"Achievement Id":          "ACH_1",
			"Required Achievement Id": "ACH_1",
		}),
	}
	quests, edges := BuildAll(rows, refdata.EmptyRefs(), zap.NewNop())
	assert.Empty(t, quests[0].Prerequisites)
	assert.Empty(t, quests[0].NotPrerequisites)
	assert.Empty(t, edges)
}

func TestBuildAll_NegatedToken(t *testing.T) {
	rows := []refdata.Row{
		questRow(map[string]string{"ID": "Q1", "Achievement Id": "ACH_1"}),
		questRow(map[string]string{"ID": "Q2", "Achievement Id": "ACH_2"}),
		questRow(map[string]string{"ID": "Q3", "Required Achievement Id": "ACH_1 && !ACH_2"}),
	}
	quests, edges := BuildAll(rows, refdata.EmptyRefs(), zap.NewNop())

	q3 := quests[2]
	assert.Equal(t, []string{"Q1"}, q3.Prerequisites)
	assert.Equal(t, []string{"Q2"}, q3.NotPrerequisites)
	require.Len(t, edges, 2)
	assert.False(t, edges[0].Negative)
	assert.True(t, edges[1].Negative)
}

func TestBuildAll_DuplicateTokenAppendsOnce(t *testing.T) {
	rows := []refdata.Row{
		questRow(map[string]string{"ID": "Q1", "Achievement Id": "ACH_1"}),
		questRow(map[string]string{"ID": "Q2", "Required Achievement Id": "ACH_1 || ACH_1"}),
	}
	quests, edges := BuildAll(rows, refdata.EmptyRefs(), zap.NewNop())
	assert.Equal(t, []string{"Q1"}, quests[1].Prerequisites)
	assert.Len(t, edges, 1)
}

func TestBuildQuest_RewardOrderAndLabels(t *testing.T) {
	refs := refdata.EmptyRefs()
	refs.Items.ByName["iron sword"] = refdata.Item{
		ID: "iron_sword", Name: "Iron Sword", Icon: "icons/sword.png", Rarity: "rare",
	}
	row := questRow(map[string]string{
		"ID":                        "Q1",
		"Experience Reward":         "500",
		"Azoth Reward":              "10",
		"Currency Reward":           "250.0",
		"Territory Standing Reward": "15",
		"Item Reward Name":          "Iron Sword",
		"Item Reward Qty":           "3",
	})
	q := buildQuest(row, refs)

	assert.Equal(t, []string{
		"XP +500", "Azoth +10", "Coin +250", "Standing +15", "Iron Sword x3",
	}, q.Rewards)
	assert.Equal(t, 500, q.RewardAmounts.Experience)
	assert.Equal(t, 15, q.RewardAmounts.Standing)
}

func TestBuildQuest_ItemRewardSlots(t *testing.T) {
	refs := refdata.EmptyRefs()
	refs.Items.ByID["amulet_01"] = refdata.Item{
		ID: "amulet_01", Name: "Old Amulet", Icon: "icons/amulet.png", Rarity: "epic",
	}
	refs.Items.ByName["iron sword"] = refdata.Item{
		ID: "iron_sword", Name: "Iron Sword", Icon: "icons/sword.png", Rarity: "rare",
	}
	row := questRow(map[string]string{
		"ID":               "Q1",
		"Item Reward":      "amulet_01",
		"Item Reward Name": "Iron Sword",
		"Item Reward Qty":  "2",
	})
	q := buildQuest(row, refs)

	require.Len(t, q.ItemRewards, 2)
	assert.Equal(t, "Old Amulet", q.ItemRewards[0].Name)
	assert.Equal(t, "Iron Sword", q.ItemRewards[1].Name)

	// the primary view prefers the name-keyed slot
	assert.Equal(t, "iron_sword", q.ItemRewardID)
	assert.Equal(t, "Iron Sword", q.ItemRewardName)
	require.NotNil(t, q.ItemRewardQty)
	assert.Equal(t, 2, *q.ItemRewardQty)
}

func TestBuildQuest_RepeatableAndPriority(t *testing.T) {
	q := buildQuest(questRow(map[string]string{
		"ID": "Q1", "Type": "  Main Story Quest ", "Schedule Id": "QS_DailyReset",
	}), refdata.EmptyRefs())
	assert.True(t, q.Repeatable)
	assert.Equal(t, 0, q.Priority)

	q = buildQuest(questRow(map[string]string{
		"ID": "Q2", "Type": "Side Quest", "Schedule Id": "OneTime",
	}), refdata.EmptyRefs())
	assert.False(t, q.Repeatable)
	assert.Equal(t, 1, q.Priority)
}

func TestBuildQuest_TasksResolvedAndBare(t *testing.T) {
	refs := refdata.EmptyRefs()
	refs.Tasks["T1"] = refdata.NewRow(map[string]string{
		"TaskID": "T1", "TP_DescriptionTag": "@do_thing",
	})
	q := buildQuest(questRow(map[string]string{
		"ID": "Q1", "Objective Task ID": "T1, T_MISSING",
	}), refs)

	require.Len(t, q.Tasks, 2)
	assert.Equal(t, "T1", q.Tasks[0].TaskID)
	assert.NotNil(t, q.Tasks[0].Task)
	assert.Equal(t, "T_MISSING", q.Tasks[1].TaskID)
	assert.Nil(t, q.Tasks[1].Task)

	assert.Equal(t, []string{"do_thing"}, q.TaskDescTexts)
}

func TestBuildQuest_NullableFields(t *testing.T) {
	q := buildQuest(questRow(map[string]string{
		"ID":                  "Q1",
		"Difficulty Level":    "12.0",
		"Required Level":      "nan",
		"Exclusive Territory": "true",
	}), refdata.EmptyRefs())

	require.NotNil(t, q.RecommendedLevel)
	assert.Equal(t, 12, *q.RecommendedLevel)
	assert.Nil(t, q.RequiredLevel)
	assert.Nil(t, q.ZoneID)
	assert.Nil(t, q.AchievementID)
	assert.Nil(t, q.RequiredAchievementsExpr)
}
