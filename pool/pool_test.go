package pool

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/wallsync/wallsync/closing"
)

func TestFIFORunsAllTasks(t *testing.T) {
	cf := &closing.Flag{}
	p := New(2, cf)

	var n int64
	fns := make([]func(), 20)
	for i := range fns {
		fns[i] = func() { atomic.AddInt64(&n, 1) }
	}
	p.Run(context.Background(), fns...)

	if n != 20 {
		t.Errorf("n = %d, want 20", n)
	}
}

func TestFIFOPanicClosesFlagAndDoesNotBlockOthers(t *testing.T) {
	cf := &closing.Flag{}
	p := New(2, cf)

	var completed int64
	fns := []func(){
		func() { panic("boom") },
		func() { atomic.AddInt64(&completed, 1) },
		func() { atomic.AddInt64(&completed, 1) },
	}
	p.Run(context.Background(), fns...)

	if !cf.Closed() {
		t.Errorf("closing flag should be set after a panicking task")
	}
	if completed != 2 {
		t.Errorf("completed = %d, want 2 (panic in one task shouldn't block the others)", completed)
	}
}

func TestFIFOCustomPanicHandler(t *testing.T) {
	cf := &closing.Flag{}
	p := New(1, cf)

	var handled interface{}
	p.OnPanic(func(r interface{}) { handled = r })

	p.Run(context.Background(), func() { panic("custom") })

	if handled == nil {
		t.Errorf("custom panic handler should have been invoked")
	}
	if cf.Closed() {
		t.Errorf("custom panic handler overrides the default; flag should stay open unless it calls Close itself")
	}
}
