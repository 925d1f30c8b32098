// Package harness runs scripted play sessions against the real settings
// registry, control scheme, inventory, artifact screen and chirp table.
//
// A scenario is a YAML file with a setup, a flow of steps and assertions:
//
//	name: controller_counts
//	description: breadge badge appears once two are collected
//	device: controller
//	flow:
//	  - do: acquire
//	    args: {item: Breadge, area: Caves}
//	  - do: enable_screen
//	    expect: {text: Breadge}
//	assertions:
//	  - type: counter
//	    counter: breadge
//	    text: "1"
//	    visible: false
//
// Each scenario runs against a fresh in-memory SQLite preferences store.
// Steps and setting change notifications are recorded in one trace with a
// deterministic sequence, suitable for golden file comparison.
package harness
