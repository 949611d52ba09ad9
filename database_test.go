package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndFetchPlayer(t *testing.T) {
	db := openTestDB(t)

	id, err := db.CreatePlayer("ana", "", "hash")
	if err != nil {
		t.Fatalf("CreatePlayer: %v", err)
	}

	p, err := db.GetPlayerByUsername("ana")
	if err != nil || p == nil {
		t.Fatalf("GetPlayerByUsername: %v, %v", p, err)
	}
	if p.ID != id || p.Username != "ana" {
		t.Errorf("got %+v, want id=%d username=ana", p, id)
	}

	// Stats row is created alongside the account
	stats, err := db.GetStats(id)
	if err != nil || stats == nil {
		t.Fatalf("GetStats: %v, %v", stats, err)
	}
	if stats.Level != 1 || stats.XP != 0 || stats.Finds != 0 {
		t.Errorf("fresh stats = %+v, want level 1, zero counters", stats)
	}
}

func TestGetPlayerMissing(t *testing.T) {
	db := openTestDB(t)
	p, err := db.GetPlayerByUsername("nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Errorf("got %+v, want nil for missing player", p)
	}
}

func TestUsernameExists(t *testing.T) {
	db := openTestDB(t)
	db.CreatePlayer("bo", "", "hash")

	if ok, _ := db.UsernameExists("bo"); !ok {
		t.Error("expected bo to exist")
	}
	if ok, _ := db.UsernameExists("cy"); ok {
		t.Error("expected cy to not exist")
	}
}

func TestRecordDiscovery(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ana", "", "hash")

	xp, level, leveled, err := db.RecordDiscovery(id, 3, 15)
	if err != nil {
		t.Fatalf("RecordDiscovery: %v", err)
	}
	if xp != 15 || level != 1 || leveled {
		t.Errorf("got xp=%d level=%d leveled=%v, want 15, 1, false", xp, level, leveled)
	}

	stats, _ := db.GetStats(id)
	if stats.Finds != 1 {
		t.Errorf("finds = %d, want 1", stats.Finds)
	}

	rows, err := db.GetDiscoveries(id)
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetDiscoveries: %v rows, %v", len(rows), err)
	}
	if rows[0].TypeID != 3 || rows[0].Count != 1 {
		t.Errorf("discovery row = %+v, want type 3 count 1", rows[0])
	}

	// Same type again bumps the counter rather than adding a row
	db.RecordDiscovery(id, 3, 15)
	rows, _ = db.GetDiscoveries(id)
	if len(rows) != 1 || rows[0].Count != 2 {
		t.Errorf("after second find: %d rows, count %d", len(rows), rows[0].Count)
	}
}

func TestRecordDiscoveryLevelsUp(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ana", "", "hash")

	// Level 2 needs 100 XP
	_, _, leveled, _ := db.RecordDiscovery(id, 8, 200)
	if !leveled {
		t.Error("expected a level-up from 200 XP")
	}
	stats, _ := db.GetStats(id)
	if stats.Level < 2 {
		t.Errorf("level = %d, want >= 2", stats.Level)
	}
}

func TestDistinctTypesFound(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ana", "", "hash")

	db.RecordDiscovery(id, 1, 10)
	db.RecordDiscovery(id, 1, 10)
	db.RecordDiscovery(id, 5, 25)

	n, err := db.DistinctTypesFound(id)
	if err != nil {
		t.Fatalf("DistinctTypesFound: %v", err)
	}
	if n != 2 {
		t.Errorf("distinct types = %d, want 2", n)
	}
}

func TestXPForLevelMonotonic(t *testing.T) {
	if XPForLevel(1) != 0 {
		t.Errorf("XPForLevel(1) = %d, want 0", XPForLevel(1))
	}
	if XPForLevel(2) != 100 {
		t.Errorf("XPForLevel(2) = %d, want 100", XPForLevel(2))
	}
	prev := 0
	for lvl := 2; lvl <= 50; lvl++ {
		xp := XPForLevel(lvl)
		if xp <= prev {
			t.Fatalf("XPForLevel(%d) = %d, not above %d", lvl, xp, prev)
		}
		prev = xp
	}
}

func TestCalculateLevelInvertsXPForLevel(t *testing.T) {
	for lvl := 1; lvl <= 30; lvl++ {
		if got := CalculateLevel(XPForLevel(lvl)); got != lvl {
			t.Errorf("CalculateLevel(XPForLevel(%d)) = %d", lvl, got)
		}
	}
	if got := CalculateLevel(0); got != 1 {
		t.Errorf("CalculateLevel(0) = %d, want 1", got)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	db := openTestDB(t)
	a, _ := db.CreatePlayer("ana", "", "hash")
	b, _ := db.CreatePlayer("bo", "", "hash")
	db.RecordDiscovery(a, 1, 50)
	db.RecordDiscovery(b, 1, 300)

	entries, err := db.GetLeaderboard("xp", 10)
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Username != "bo" || entries[0].Rank != 1 {
		t.Errorf("top entry = %+v, want bo at rank 1", entries[0])
	}
	if entries[1].Username != "ana" || entries[1].Rank != 2 {
		t.Errorf("second entry = %+v, want ana at rank 2", entries[1])
	}
}

func TestLeaderboardExcludesGuests(t *testing.T) {
	db := openTestDB(t)
	db.CreatePlayer("ana", "", "hash")
	gid, _ := db.CreateGuest("Guest_ab12")
	db.RecordDiscovery(gid, 1, 500)

	entries, _ := db.GetLeaderboard("xp", 10)
	for _, e := range entries {
		if e.Username == "Guest_ab12" {
			t.Error("guest accounts must not appear on the leaderboard")
		}
	}
}

func TestUnlockAchievementIdempotent(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ana", "", "hash")

	first, err := db.UnlockAchievement(id, "sweet_tooth")
	if err != nil || !first {
		t.Fatalf("first unlock: %v, %v", first, err)
	}
	second, err := db.UnlockAchievement(id, "sweet_tooth")
	if err != nil || second {
		t.Fatalf("second unlock: %v, %v (want false)", second, err)
	}

	got, _ := db.GetAchievements(id)
	if len(got) != 1 || got[0] != "sweet_tooth" {
		t.Errorf("achievements = %v, want [sweet_tooth]", got)
	}
}

func TestCheckAchievementsFirstFind(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ana", "", "hash")
	db.RecordDiscovery(id, 1, 10)

	unlocked := CheckAchievements(db, id, 1)
	found := false
	for _, def := range unlocked {
		if def.ID == "sweet_tooth" {
			found = true
		}
	}
	if !found {
		t.Errorf("unlocked = %v, want sweet_tooth", unlocked)
	}

	// Already unlocked: nothing new
	if again := CheckAchievements(db, id, 1); len(again) != 0 {
		t.Errorf("second check unlocked %v, want none", again)
	}
}

func TestSettingsRoundtrip(t *testing.T) {
	db := openTestDB(t)

	if v, _ := db.GetSetting("missing"); v != "" {
		t.Errorf("missing setting = %q, want empty", v)
	}
	db.SetSetting("k", "v1")
	db.SetSetting("k", "v2")
	if v, _ := db.GetSetting("k"); v != "v2" {
		t.Errorf("setting = %q, want v2", v)
	}
}

func TestWorldVisitAndPlaytime(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("ana", "", "hash")

	db.RecordWorldVisit(id)
	db.RecordWorldVisit(id)
	db.AddPlaytime(id, 90.5)

	stats, _ := db.GetStats(id)
	if stats.Worlds != 2 {
		t.Errorf("worlds = %d, want 2", stats.Worlds)
	}
	if stats.Playtime != 90.5 {
		t.Errorf("playtime = %v, want 90.5", stats.Playtime)
	}
}
