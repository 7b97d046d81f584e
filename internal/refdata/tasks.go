package refdata

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// TaskFilePattern matches the ObjectiveTasks fragment files inside a task
// data directory.
const TaskFilePattern = "ObjectiveTasksDataManager*"

// TaskIndex maps TaskID to its raw row. Rows keep every exported column so
// the template resolver and tree expander can read the free-form fields.
type TaskIndex map[string]Row

// LoadTasks reads objective-task data from a single table or, when path is a
// directory, from every fragment matching TaskFilePattern, merged in
// lexicographic file order with a later file's row replacing an earlier one
// for the same TaskID. A fragment without a TaskID column is skipped.
func LoadTasks(path string, logger *zap.Logger) TaskIndex {
	index := TaskIndex{}
	if path == "" {
		return index
	}
	st, err := os.Stat(path)
	if err != nil {
		logger.Warn("task data unavailable, task expansion disabled",
			zap.String("path", path), zap.Error(err))
		return index
	}

	files := []string{path}
	if st.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, TaskFilePattern))
		if err != nil || len(files) == 0 {
			logger.Warn("no task fragments found", zap.String("dir", path))
			return index
		}
		sort.Strings(files)
	}

	for _, file := range files {
		rows, err := ReadTable(file)
		if err != nil {
			logger.Warn("task fragment unreadable, skipped",
				zap.String("path", file), zap.Error(err))
			continue
		}
		merged := 0
		for _, r := range rows {
			id, ok := r.Get("TaskID")
			if !ok {
				continue
			}
			index[id] = r
			merged++
		}
		if merged == 0 && len(rows) > 0 {
			logger.Warn("task fragment has no TaskID column, skipped",
				zap.String("path", file))
			continue
		}
		logger.Debug("task fragment merged",
			zap.String("path", file), zap.Int("rows", merged))
	}
	logger.Info("task index built", zap.String("path", path), zap.Int("tasks", len(index)))
	return index
}
