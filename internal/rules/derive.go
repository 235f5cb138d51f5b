package rules

import (
	"math"
	"strings"

	"github.com/nhle/team-tracker/internal/model"
)

// Color is a semantic color token. The theme package maps it to a palette.
type Color string

const (
	ColorError   Color = "error"
	ColorWarning Color = "warning"
	ColorSuccess Color = "success"
	ColorPrimary Color = "primary"
	ColorNeutral Color = "neutral"
)

// Icon is a task type tier token. Callers map it to an asset.
type Icon string

const (
	IconSmall   Icon = "tier-small"
	IconMedium  Icon = "tier-medium"
	IconLarge   Icon = "tier-large"
	IconUnknown Icon = "unknown"
)

// CalculateProgress returns the rounded percentage of completed subtasks,
// or 0 when there are none.
func CalculateProgress(subtasks []model.Subtask) int {
	if len(subtasks) == 0 {
		return 0
	}
	done := 0
	for _, st := range subtasks {
		if st.Completed {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(subtasks))))
}

// GetPriorityColor maps a priority name to a color token.
func GetPriorityColor(priority string) Color {
	switch strings.ToLower(strings.TrimSpace(priority)) {
	case "high":
		return ColorError
	case "medium":
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// GetStatusColor maps a status name to a color token.
func GetStatusColor(status string) Color {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "completed":
		return ColorSuccess
	case "in progress":
		return ColorPrimary
	case "not started":
		return ColorWarning
	default:
		return ColorNeutral
	}
}

// GetTaskTypeIcon maps a task type to its tier icon token.
func GetTaskTypeIcon(taskType string) Icon {
	switch strings.ToLower(strings.TrimSpace(taskType)) {
	case "small":
		return IconSmall
	case "medium":
		return IconMedium
	case "large":
		return IconLarge
	default:
		return IconUnknown
	}
}

// GroupsCount is the number of distinct groups a member belongs to.
func GroupsCount(groups model.GroupIDs) int {
	return len(groups.Dedup())
}

// ClampProgress bounds a percentage to [0, 100].
func ClampProgress(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
