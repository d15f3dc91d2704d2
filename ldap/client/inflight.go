package client

import (
	"container/list"
	"sync"
)

// inflightTable holds operations that have been written to the socket and
// await a response. Lookup is by message id; iteration order is send order,
// which failure paths use to resolve futures in submission order.
type inflightTable struct {
	mu    sync.Mutex
	order *list.List
	byID  map[int64]*list.Element
}

func makeInflightTable() *inflightTable {
	return &inflightTable{
		order: list.New(),
		byID:  make(map[int64]*list.Element),
	}
}

func (t *inflightTable) add(op *pendingOp) {
	t.mu.Lock()
	t.byID[op.id] = t.order.PushBack(op)
	t.mu.Unlock()
}

// peek returns the operation with the given message id without removing it
func (t *inflightTable) peek(id int64) (*pendingOp, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	elem, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return elem.Value.(*pendingOp), true
}

// take removes and returns the operation with the given message id
func (t *inflightTable) take(id int64) (*pendingOp, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	elem, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	delete(t.byID, id)
	t.order.Remove(elem)
	return elem.Value.(*pendingOp), true
}

func (t *inflightTable) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.order.Len()
}

// drain removes every operation, oldest first
func (t *inflightTable) drain() []*pendingOp {
	t.mu.Lock()
	defer t.mu.Unlock()
	ops := make([]*pendingOp, 0, t.order.Len())
	for elem := t.order.Front(); elem != nil; elem = elem.Next() {
		ops = append(ops, elem.Value.(*pendingOp))
	}
	t.order.Init()
	t.byID = make(map[int64]*list.Element)
	return ops
}
