// Package session provides session management for the lane race game.
//
// Each session owns one engine.Game with its own simulation goroutine. The
// manager creates sessions, looks them up case-insensitively, and shuts
// their games down when they are deleted or expire.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. The manager ensures
// IDs are unique and generates them from crypto/rand.
//
// High Scores:
//
// All sessions created by one manager share its engine.HighScoreStore, so
// the persisted best score spans every game served by the process.
//
// Persistence:
//
// With a SessionPersistence attached, session records (ID, profile and
// timestamps) are written on creation and after every action. A restored
// session gets a fresh game in the START state; rounds in flight are not
// resumed.
//
// Usage:
//
//	manager := session.NewManager(highscore.NewFileStore("race_score"))
//	defer manager.Close()
//
//	sess, err := manager.Create("", "classic", engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	sess.Act(engine.ActionStart, false)
package session
