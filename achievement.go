package main

// Achievement definitions
type AchievementDef struct {
	ID          string
	Name        string
	Description string
}

var Achievements = []AchievementDef{
	{"sweet_tooth", "Sweet Tooth", "Find your first candy"},
	{"snacker", "Snacker", "Find 10 candies in one visit"},
	{"hoarder", "Hoarder", "Find 100 candies total"},
	{"connoisseur", "Connoisseur", "Find 1000 candies total"},
	{"taster", "Taster", "Find every kind of candy at least once"},
	{"wanderer", "Wanderer", "Visit 10 worlds"},
	{"explorer", "Explorer", "Reach level 10"},
	{"pathfinder", "Pathfinder", "Reach level 25"},
	{"legend", "Candy Legend", "Reach level 50"},
	{"daydreamer", "Daydreamer", "Play for 1 hour total"},
}

// CheckAchievements checks if any new achievements should be unlocked
// for a player. sessionFinds is the find count within the current
// visit. Returns the newly unlocked definitions.
func CheckAchievements(db *DB, playerID int64, sessionFinds int) []AchievementDef {
	if db == nil {
		return nil
	}

	stats, err := db.GetStats(playerID)
	if err != nil || stats == nil {
		return nil
	}

	existing, err := db.GetAchievements(playerID)
	if err != nil {
		return nil
	}
	has := make(map[string]bool, len(existing))
	for _, a := range existing {
		has[a] = true
	}

	distinct := 0
	if !has["taster"] {
		distinct, _ = db.DistinctTypesFound(playerID)
	}

	var unlocked []AchievementDef

	check := func(id string) bool {
		if has[id] {
			return false
		}
		switch id {
		case "sweet_tooth":
			return stats.Finds >= 1
		case "snacker":
			return sessionFinds >= 10
		case "hoarder":
			return stats.Finds >= 100
		case "connoisseur":
			return stats.Finds >= 1000
		case "taster":
			return distinct >= len(ItemCatalog)
		case "wanderer":
			return stats.Worlds >= 10
		case "explorer":
			return stats.Level >= 10
		case "pathfinder":
			return stats.Level >= 25
		case "legend":
			return stats.Level >= 50
		case "daydreamer":
			return stats.Playtime >= 3600
		}
		return false
	}

	for _, def := range Achievements {
		if check(def.ID) {
			if newlyUnlocked, err := db.UnlockAchievement(playerID, def.ID); err == nil && newlyUnlocked {
				unlocked = append(unlocked, def)
			}
		}
	}

	return unlocked
}
