package recycler

import "fmt"

// initStep is the cursor of an initialization task.
type initStep int

const (
	stepResetCells initStep = iota
	stepResetBindings
	stepPrepareLayout
	stepCreateCells // repeats, one cell per step
	stepFinalize
	stepDone
)

func (s initStep) String() string {
	switch s {
	case stepResetCells:
		return "reset-cells"
	case stepResetBindings:
		return "reset-bindings"
	case stepPrepareLayout:
		return "prepare-layout"
	case stepCreateCells:
		return "create-cells"
	case stepFinalize:
		return "finalize"
	case stepDone:
		return "done"
	default:
		return fmt.Sprintf("initStep(%d)", int(s))
	}
}

// initRequest carries the collaborators of one build.
type initRequest struct {
	prototype *Transform
	viewport  *Transform
	content   *Transform
	source    DataSource
}

// initTask builds the pool step by step. The same task runs to completion
// inside Initialize when the recycler has no scheduler.
type initTask struct {
	r       *Recycler
	req     initRequest
	step    initStep
	aborted bool
	err     error
}

// Step implements Task.
func (t *initTask) Step() TaskResult {
	if t.aborted {
		return TaskAborted
	}
	if t.step == stepDone {
		return TaskSucceeded
	}
	next, err := t.r.runStep(t.step, t.req)
	if err != nil {
		t.err = err
		t.step = stepDone
		t.r.failInit(t, err)
		return TaskFailed
	}
	t.step = next
	if next == stepDone {
		t.r.finishInit(t)
		return TaskSucceeded
	}
	return TaskRunning
}

// Abort stops the task before its next step.
func (t *initTask) Abort() {
	t.aborted = true
}

// runToCompletion steps the task until it leaves TaskRunning.
func (t *initTask) runToCompletion() TaskResult {
	for {
		if res := t.Step(); res != TaskRunning {
			return res
		}
	}
}
