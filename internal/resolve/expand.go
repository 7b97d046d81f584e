package resolve

import (
	"strings"

	"questgraph/internal/refdata"
)

// ExpandTask walks a task and its sub-task tree, returning the resolved,
// non-hidden description strings in field-then-token encounter order. The
// visited set is shared across one quest's whole expansion, so a task's
// description is emitted at most once per quest even through diamonds, and a
// cyclic sub-task reference terminates instead of recursing forever.
func ExpandTask(taskID string, refs refdata.Refs, visited map[string]bool) []string {
	if visited[taskID] {
		return nil
	}
	visited[taskID] = true

	task, ok := refs.Tasks[taskID]
	if !ok {
		return nil
	}

	var out []string
	if !hidden(task) {
		if tag, hasTag := task.Get(colDescriptionTag); hasTag {
			if text := refs.Locale.Lookup(tag); text != "" {
				out = append(out, ApplyTemplate(text, task, refs))
			}
		}
	}

	for _, col := range task.Columns() {
		if !strings.Contains(strings.ToLower(col), "subtask") {
			continue
		}
		cell, ok := task.Get(col)
		if !ok {
			continue
		}
		for _, sub := range refdata.SplitIDs(cell) {
			if _, known := refs.Tasks[sub]; !known {
				continue
			}
			out = append(out, ExpandTask(sub, refs, visited)...)
		}
	}
	return out
}

// ExpandRoots expands every task root of a quest with one shared visited set
// and de-duplicates the concatenated result while preserving first-seen
// order.
func ExpandRoots(rootIDs []string, refs refdata.Refs) []string {
	visited := make(map[string]bool)
	var all []string
	for _, id := range rootIDs {
		all = append(all, ExpandTask(id, refs, visited)...)
	}

	seen := make(map[string]bool, len(all))
	out := make([]string, 0, len(all))
	for _, s := range all {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func hidden(task refdata.Row) bool {
	return refdata.Truthy(task.GetDefault(colHiddenTask, ""))
}
