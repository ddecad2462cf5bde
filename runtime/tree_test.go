package runtime

import (
	"slices"
	"testing"
)

type probe struct {
	name     string
	children []Widget
	log      *[]string
	services Services
}

func (p *probe) Measure(Constraints) Size           { return Size{} }
func (p *probe) Layout(Rect)                        {}
func (p *probe) Render(RenderContext)               {}
func (p *probe) HandleMessage(Message) HandleResult { return Unhandled() }
func (p *probe) ChildWidgets() []Widget             { return p.children }
func (p *probe) Mount()                             { p.record("mount") }
func (p *probe) Unmount()                           { p.record("unmount") }
func (p *probe) Unbind()                            { p.record("unbind") }

func (p *probe) Bind(services Services) {
	p.services = services
	p.record("bind")
}

func (p *probe) record(event string) {
	*p.log = append(*p.log, event+" "+p.name)
}

func probeTree(log *[]string) (*probe, *probe) {
	leaf := &probe{name: "chart", log: log}
	root := &probe{name: "column", log: log, children: []Widget{leaf, nil}}
	return root, leaf
}

func TestWalk_ParentsFirst(t *testing.T) {
	var log []string
	root, _ := probeTree(&log)
	var seen []string
	Walk(root, func(w Widget) { seen = append(seen, w.(*probe).name) })
	if want := []string{"column", "chart"}; !slices.Equal(seen, want) {
		t.Fatalf("expected %v, got %v", want, seen)
	}
}

func TestMountTree_ChildrenUnmountFirst(t *testing.T) {
	var log []string
	root, _ := probeTree(&log)

	MountTree(root)
	UnmountTree(root)

	want := []string{"mount column", "mount chart", "unmount chart", "unmount column"}
	if !slices.Equal(log, want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
}

func TestBindTree_HandsOutAppScheduler(t *testing.T) {
	var log []string
	root, leaf := probeTree(&log)
	app := NewApp(AppConfig{})

	BindTree(root, app.Services())
	if leaf.services.Scheduler() != app.StateScheduler() {
		t.Fatalf("expected leaf to receive the app scheduler")
	}
	UnbindTree(root)

	want := []string{"bind column", "bind chart", "unbind chart", "unbind column"}
	if !slices.Equal(log, want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
}

func TestBindTree_ZeroServicesSkipped(t *testing.T) {
	var log []string
	root, _ := probeTree(&log)
	BindTree(root, Services{})
	if len(log) != 0 {
		t.Fatalf("expected zero services to bind nothing, got %v", log)
	}
}

func TestServices_ZeroValue(t *testing.T) {
	var services Services
	if services.Scheduler() != nil {
		t.Fatalf("expected nil scheduler from zero services")
	}
	if services.Post(InvalidateMsg{}) {
		t.Fatalf("expected post on zero services to fail")
	}
	if services.Logger() == nil {
		t.Fatalf("expected default logger")
	}
	services.Invalidate()
	services.Spawn(Effect{})
}

func TestApp_SetRoot(t *testing.T) {
	var log []string
	first := &probe{name: "first", log: &log}
	second := &probe{name: "second", log: &log}
	app := NewApp(AppConfig{Root: first})

	app.SetRoot(first)
	if len(log) != 0 {
		t.Fatalf("expected no lifecycle calls before run, got %v", log)
	}

	app.attach(first)
	app.SetRoot(second)
	if app.Root() != second {
		t.Fatalf("expected second to be root")
	}
	want := []string{"mount first", "bind first", "unbind first", "unmount first", "mount second", "bind second"}
	if !slices.Equal(log, want) {
		t.Fatalf("expected %v, got %v", want, log)
	}
}
