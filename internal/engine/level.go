package engine

// BaseXP is the per-level coefficient: reaching the next level from level L
// costs BaseXP * L experience.
const BaseXP = 100

// LevelThreshold returns the XP required to advance from the given level to
// the next one. Strictly increasing in level.
func LevelThreshold(level int) int {
	if level < 1 {
		level = 1
	}
	return BaseXP * level
}

// resolveLevel consumes xp against successive thresholds until the residual
// falls below the current threshold. A single large gain may advance several
// levels in one call.
func resolveLevel(level, xp int) (int, int) {
	for xp >= LevelThreshold(level) {
		xp -= LevelThreshold(level)
		level++
	}
	return level, xp
}
