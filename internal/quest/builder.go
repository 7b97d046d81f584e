// Package quest builds the normalized quest graph from the raw export rows
// and the loaded reference indices, applies the manual override links and
// assembles the output document.
package quest

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"questgraph/internal/logic"
	"questgraph/internal/refdata"
	"questgraph/internal/resolve"
)

// Rows that never become quests: internal/test ids, dev-world content and the
// per-class weapon variants of shared quests.
var excludeIDRe = regexp.MustCompile(`(^01_|^S_|^Quest_|AC_Test|devworld|_alt|EnterZone_SM|_EG|_RW|(_soldier|_destroyer|_ranger|_musketeer|_occultist|_mystic|_swordsman)$)`)

var excludeTypeRe = regexp.MustCompile(`(?i)\b(Artifact|Mission|Community Goal)\b`)

// Quest is one normalized quest entity of the output document.
type Quest struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Type             string   `json:"type"`
	Icon             string   `json:"icon"`
	RecommendedLevel *int     `json:"recommended_level"`
	RequiredLevel    *int     `json:"required_level"`
	ZoneID           *int     `json:"zone_id"`
	RewardAmounts    Amounts  `json:"reward_amounts"`
	Rewards          []string `json:"rewards"`

	ItemRewards []ItemReward `json:"item_rewards"`

	// Primary single-item view for consumers that predate the two-slot
	// item_rewards list. The name-keyed slot wins when both are present.
	ItemRewardID     string `json:"item_reward_id"`
	ItemRewardName   string `json:"item_reward_name"`
	ItemRewardIcon   string `json:"item_reward_icon"`
	ItemRewardRarity string `json:"item_reward_rarity"`
	ItemRewardQty    *int   `json:"item_reward_qty"`

	AchievementID            *string `json:"achievement_id"`
	RequiredAchievementsExpr *string `json:"required_achievements_expr"`

	Prerequisites    []string `json:"prerequisites"`
	NotPrerequisites []string `json:"not_prerequisites"`

	Repeatable bool `json:"repeatable"`
	Priority   int  `json:"priority"`

	Tasks         []TaskRef `json:"tasks"`
	TaskDescTexts []string  `json:"task_desc_texts"`
}

// Amounts carries the numeric reward fields; absent cells read as 0.
type Amounts struct {
	Experience        int `json:"experience"`
	Azoth             int `json:"azoth"`
	Coin              int `json:"coin"`
	Standing          int `json:"standing"`
	FactionInfluence  int `json:"faction_influence"`
	FactionReputation int `json:"faction_reputation"`
	FactionTokens     int `json:"faction_tokens"`
}

// ItemReward is one resolved item-reward slot.
type ItemReward struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Rarity string `json:"rarity"`
	Qty    *int   `json:"quantity,omitempty"`
}

// TaskRef links a quest to one of its task roots. Task carries the resolved
// raw record when the id was found in the task index; unresolved ids keep the
// bare reference so the quest still lists them.
type TaskRef struct {
	TaskID string            `json:"task_id"`
	Task   map[string]string `json:"task,omitempty"`
}

// Edge is one derived or manually-authored dependency edge.
type Edge struct {
	Source   string
	Target   string
	Negative bool
}

// Filter reports whether a raw row survives the exclusion pass: non-empty id,
// id outside the exclusion naming pattern, type outside the excluded types.
func Filter(row refdata.Row) bool {
	id := row.GetDefault("ID", "")
	if id == "" || excludeIDRe.MatchString(id) {
		return false
	}
	return !excludeTypeRe.MatchString(row.GetDefault("Type", ""))
}

// BuildAll runs the whole per-row pipeline: filter, achievement index, then
// one quest entity per surviving row together with the derived edge list.
func BuildAll(rows []refdata.Row, refs refdata.Refs, logger *zap.Logger) ([]*Quest, []Edge) {
	kept := make([]refdata.Row, 0, len(rows))
	for _, r := range rows {
		if Filter(r) {
			kept = append(kept, r)
		}
	}
	logger.Info("quest rows filtered",
		zap.Int("total", len(rows)), zap.Int("kept", len(kept)))

	// Achievement -> quest ids, surviving rows only. A filtered row can
	// never serve as a prerequisite source. Insertion follows row order so
	// edge output is stable across runs.
	achToQuests := map[string][]string{}
	for _, r := range kept {
		ach := r.GetDefault("Achievement Id", "")
		qid := r.GetDefault("ID", "")
		if ach == "" {
			continue
		}
		if !containsString(achToQuests[ach], qid) {
			achToQuests[ach] = append(achToQuests[ach], qid)
		}
	}

	quests := make([]*Quest, 0, len(kept))
	var edges []Edge
	for _, r := range kept {
		q := buildQuest(r, refs)
		edges = appendDerivedEdges(q, achToQuests, edges)
		quests = append(quests, q)
	}
	return quests, edges
}

func buildQuest(row refdata.Row, refs refdata.Refs) *Quest {
	q := &Quest{
		ID:               row.GetDefault("ID", ""),
		Title:            row.GetDefault("Title", ""),
		Description:      row.GetDefault("Description", ""),
		Type:             row.GetDefault("Type", ""),
		Icon:             row.GetDefault("Icon", ""),
		RecommendedLevel: refdata.IntPtr(row.GetDefault("Difficulty Level", "")),
		RequiredLevel:    refdata.IntPtr(row.GetDefault("Required Level", "")),
		ZoneID:           refdata.IntPtr(row.GetDefault("Exclusive Territory", "")),
		Rewards:          []string{},
		ItemRewards:      []ItemReward{},
		Prerequisites:    []string{},
		NotPrerequisites: []string{},
		Priority:         1,
		Tasks:            []TaskRef{},
		TaskDescTexts:    []string{},
	}

	if v, ok := row.Get("Achievement Id"); ok {
		q.AchievementID = &v
	}
	if v, ok := row.Get("Required Achievement Id"); ok {
		q.RequiredAchievementsExpr = &v
	}

	buildRewards(q, row, refs)
	buildTasks(q, row, refs)

	if sched, ok := row.Get("Schedule Id"); ok {
		low := strings.ToLower(sched)
		q.Repeatable = strings.Contains(low, "hourly") || strings.Contains(low, "daily")
	}
	if strings.ToLower(strings.TrimSpace(q.Type)) == "main story quest" {
		q.Priority = 0
	}
	return q
}

func buildRewards(q *Quest, row refdata.Row, refs refdata.Refs) {
	amount := func(col string) int {
		if n, ok := refdata.IntSafe(row.GetDefault(col, "")); ok && n > 0 {
			return n
		}
		return 0
	}
	q.RewardAmounts = Amounts{
		Experience:        amount("Experience Reward"),
		Azoth:             amount("Azoth Reward"),
		Coin:              amount("Currency Reward"),
		Standing:          amount("Territory Standing Reward"),
		FactionInfluence:  amount("Faction Influence Reward"),
		FactionReputation: amount("Faction Reputation Reward"),
		FactionTokens:     amount("Faction Tokens Reward"),
	}

	if n := q.RewardAmounts.Experience; n > 0 {
		q.Rewards = append(q.Rewards, fmt.Sprintf("XP +%d", n))
	}
	if n := q.RewardAmounts.Azoth; n > 0 {
		q.Rewards = append(q.Rewards, fmt.Sprintf("Azoth +%d", n))
	}
	if n := q.RewardAmounts.Coin; n > 0 {
		q.Rewards = append(q.Rewards, fmt.Sprintf("Coin +%d", n))
	}
	if n := q.RewardAmounts.Standing; n > 0 {
		q.Rewards = append(q.Rewards, fmt.Sprintf("Standing +%d", n))
	}

	// Two independent item-reward slots: one keyed by item id, one by
	// display name with its own quantity.
	if rawID, ok := row.Get("Item Reward"); ok {
		slot := ItemReward{ID: rawID, Name: rawID}
		if it, found := refs.Items.Lookup(rawID, ""); found {
			slot.Name = it.Name
			slot.Icon = it.Icon
			slot.Rarity = it.Rarity
		}
		q.ItemRewards = append(q.ItemRewards, slot)
	}
	if rawName, ok := row.Get("Item Reward Name"); ok {
		slot := ItemReward{Name: rawName}
		if it, found := refs.Items.Lookup("", rawName); found {
			slot.ID = it.ID
			slot.Icon = it.Icon
			slot.Rarity = it.Rarity
		}
		if n, found := refdata.IntSafe(row.GetDefault("Item Reward Qty", "")); found {
			slot.Qty = &n
		}
		q.ItemRewards = append(q.ItemRewards, slot)
	}

	for _, slot := range q.ItemRewards {
		label := slot.Name
		if slot.Qty != nil && *slot.Qty > 1 {
			label = fmt.Sprintf("%s x%d", slot.Name, *slot.Qty)
		}
		if label != "" {
			q.Rewards = append(q.Rewards, label)
		}
	}

	// Primary single-item view: the name-keyed slot wins when present even
	// though it lists second in item_rewards.
	primary := primarySlot(q.ItemRewards, row)
	if primary != nil {
		q.ItemRewardID = primary.ID
		q.ItemRewardName = primary.Name
		q.ItemRewardIcon = primary.Icon
		q.ItemRewardRarity = primary.Rarity
		q.ItemRewardQty = primary.Qty
	}
}

func primarySlot(slots []ItemReward, row refdata.Row) *ItemReward {
	if len(slots) == 0 {
		return nil
	}
	if _, hasName := row.Get("Item Reward Name"); hasName {
		return &slots[len(slots)-1]
	}
	return &slots[0]
}

func buildTasks(q *Quest, row refdata.Row, refs refdata.Refs) {
	raw, ok := row.Get("Objective Task ID")
	if !ok {
		raw, ok = row.Get("Task ID")
	}
	if !ok {
		return
	}
	rootIDs := refdata.SplitIDs(raw)
	for _, id := range rootIDs {
		ref := TaskRef{TaskID: id}
		if task, found := refs.Tasks[id]; found {
			ref.Task = task.Cells()
		}
		q.Tasks = append(q.Tasks, ref)
	}
	q.TaskDescTexts = resolve.ExpandRoots(rootIDs, refs)
}

// appendDerivedEdges parses the quest's prerequisite expression and turns
// every achievement token into edges against the achievement index, skipping
// self-references and duplicates per polarity.
func appendDerivedEdges(q *Quest, achToQuests map[string][]string, edges []Edge) []Edge {
	if q.RequiredAchievementsExpr == nil {
		return edges
	}
	seenPos := map[string]bool{}
	seenNeg := map[string]bool{}
	for _, tok := range logic.Parse(*q.RequiredAchievementsExpr) {
		for _, src := range achToQuests[tok.Name] {
			if src == q.ID {
				continue
			}
			if tok.Negated {
				if seenNeg[src] {
					continue
				}
				seenNeg[src] = true
				q.NotPrerequisites = append(q.NotPrerequisites, src)
				edges = append(edges, Edge{Source: src, Target: q.ID, Negative: true})
			} else {
				if seenPos[src] {
					continue
				}
				seenPos[src] = true
				q.Prerequisites = append(q.Prerequisites, src)
				edges = append(edges, Edge{Source: src, Target: q.ID})
			}
		}
	}
	return edges
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
