// Package config manages timing profiles for the lane race game.
//
// A timing profile (engine.Config) sets the cadence of the simulation loop:
// the virtual frame increment, the step threshold, the burst injected by a
// held accelerate action, the real sleep between iterations and the spawn
// period. Profiles are JSON files in a directory:
//
//	{
//	  "name": "Turbo",
//	  "description": "Twice the scroll rate and denser traffic",
//	  "base_tick_ms": 50,
//	  "frame_threshold": 750,
//	  "burst_increment": 500,
//	  "sleep_interval_ms": 10,
//	  "spawn_period": 8
//	}
//
// Fields left out take their classic values. The file name without its
// extension is the profile ID used when creating sessions.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	turbo, err := manager.LoadConfig("turbo")
//	defaultConfig := manager.GetDefault()
//	profiles, err := manager.ListConfigs()
//
// The default profile is "classic". When the directory has no usable
// profile at all, the built-in engine.DefaultConfig is used.
package config
