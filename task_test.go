package taskpool

import (
	"errors"
	"testing"
)

func TestNewTask_PriorityBounds(t *testing.T) {
	for _, prio := range []int{-1, 0, 11, 100} {
		if _, err := NewTask(func() {}, prio); !errors.Is(err, ErrInvalidPriority) {
			t.Fatalf("priority %d: err = %v; want ErrInvalidPriority", prio, err)
		}
	}
	for _, prio := range []int{1, 5, 10} {
		task, err := NewTask(func() {}, prio)
		if err != nil {
			t.Fatalf("priority %d rejected: %v", prio, err)
		}
		if int(task.Priority()) != prio {
			t.Fatalf("Priority() = %d; want %d", task.Priority(), prio)
		}
	}
}

func TestNewTask_NilFunc(t *testing.T) {
	if _, err := NewTask(nil, 5); !errors.Is(err, ErrNilFunc) {
		t.Fatalf("err = %v; want ErrNilFunc", err)
	}
}

func TestCompare_HigherPriorityFirst(t *testing.T) {
	low := mkTasks(t, 1, 1)[0]
	high := mkTasks(t, 1, 10)[0]

	if Compare(high, low) >= 0 {
		t.Fatal("priority 10 must order before priority 1")
	}
	if Compare(low, high) <= 0 {
		t.Fatal("priority 1 must order after priority 10")
	}
}

func TestCompare_EqualPriorityByCreation(t *testing.T) {
	tasks := mkTasks(t, 2, 5)
	if Compare(tasks[0], tasks[1]) >= 0 {
		t.Fatal("older task must order first among equal priorities")
	}
	if Compare(tasks[0], tasks[0]) != 0 {
		t.Fatal("task must compare equal to itself")
	}
}

func TestExecute_RunsOnceAndPropagatesPanic(t *testing.T) {
	calls := 0
	task, _ := NewTask(func() { calls++ }, 5)
	task.Execute()
	if calls != 1 {
		t.Fatalf("calls = %d; want 1", calls)
	}

	boom := errors.New("boom")
	panicking, _ := NewTask(func() { panic(boom) }, 5)
	defer func() {
		if r := recover(); r != boom {
			t.Fatalf("recovered %v; want the original panic value", r)
		}
	}()
	panicking.Execute()
}

func TestExecutionFault_Unwrap(t *testing.T) {
	boom := errors.New("boom")
	f := &ExecutionFault{Worker: 3, Priority: 7, Value: boom}

	if !errors.Is(f, ErrExecutionFault) {
		t.Fatal("fault must match ErrExecutionFault")
	}
	if !errors.Is(f, boom) {
		t.Fatal("fault must unwrap to the panic error")
	}

	plain := &ExecutionFault{Value: "text"}
	if plain.Unwrap() != nil {
		t.Fatal("non-error panic value must not unwrap")
	}
	if plain.Error() == "" {
		t.Fatal("empty fault message")
	}
}
