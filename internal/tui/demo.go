package tui

import "github.com/colonyops/alertle/internal/core/alert"

type demoAlert struct {
	title   string
	message string
}

var demoAlerts = map[alert.Type][]demoAlert{
	alert.TypeSuccess: {
		{"Deploy finished", "api-gateway rolled out to 3/3 pods"},
		{"Backup complete", "Nightly snapshot stored in cold storage"},
		{"Tests passed", "412 passed, 0 failed"},
	},
	alert.TypeError: {
		{"Build failed", "go test exited with status 1"},
		{"Connection lost", "Upstream postgres is not responding"},
	},
	alert.TypeWarning: {
		{"Disk almost full", "/var is at 91%"},
		{"Slow response", "p99 latency above 800ms for 5m"},
	},
	alert.TypeInfo: {
		{"New version", "v2.4.0 is available"},
		{"Sync started", "Pulling 12 repositories"},
		{"", "Press n to raise the same alert again"},
	},
}

// demoCycler hands out demo alerts per type in round-robin order.
type demoCycler struct {
	next map[alert.Type]int
}

func newDemoCycler() *demoCycler {
	return &demoCycler{next: make(map[alert.Type]int)}
}

func (d *demoCycler) params(t alert.Type) alert.Params {
	list := demoAlerts[t]
	if len(list) == 0 {
		return alert.Params{Type: t, Message: string(t)}
	}
	i := d.next[t] % len(list)
	d.next[t] = i + 1
	return alert.Params{Type: t, Title: list[i].title, Message: list[i].message}
}
