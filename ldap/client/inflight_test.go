package client

import (
	"testing"
)

func makeOp(id int64) *pendingOp {
	return &pendingOp{id: id, fut: makeFuture()}
}

func TestInflightTakeByID(t *testing.T) {
	table := makeInflightTable()
	table.add(makeOp(1))
	table.add(makeOp(2))
	table.add(makeOp(3))

	op, ok := table.take(2)
	if !ok || op.id != 2 {
		t.Fatalf("take(2) = %v, %v", op, ok)
	}
	if _, ok := table.take(2); ok {
		t.Error("take(2) succeeded twice")
	}
	if table.size() != 2 {
		t.Errorf("expected size 2, actually %d", table.size())
	}
}

func TestInflightPeekDoesNotRemove(t *testing.T) {
	table := makeInflightTable()
	table.add(makeOp(7))

	if _, ok := table.peek(7); !ok {
		t.Fatal("peek(7) missed")
	}
	if table.size() != 1 {
		t.Errorf("peek removed the operation, size %d", table.size())
	}
	if _, ok := table.peek(8); ok {
		t.Error("peek(8) hit a missing id")
	}
}

func TestInflightDrainKeepsOrder(t *testing.T) {
	table := makeInflightTable()
	for id := int64(1); id <= 4; id++ {
		table.add(makeOp(id))
	}
	table.take(2)

	ops := table.drain()
	if len(ops) != 3 {
		t.Fatalf("expected 3 drained, actually %d", len(ops))
	}
	for i, want := range []int64{1, 3, 4} {
		if ops[i].id != want {
			t.Errorf("position %d: expected id %d, actually %d", i, want, ops[i].id)
		}
	}
	if table.size() != 0 {
		t.Errorf("expected empty after drain, size %d", table.size())
	}
}
