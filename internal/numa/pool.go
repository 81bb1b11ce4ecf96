// Package numa gives frame numbers a physical meaning: a pool of
// per-node frame allocators, with a local-first/remote-fallback
// allocation policy. Frame numbers on their own are opaque integers;
// binding one LockedFrameAllocator per NUMA node is what lets a frame
// be read back as "node 2's 47th page" instead of a bare count.
package numa

import (
	"fmt"
	"sync/atomic"

	"github.com/orizon-lang/buddyalloc/internal/allocator"
)

// Node is one NUMA node's share of the frame pool.
type Node struct {
	ID     int
	frames allocator.LockedFrameAllocator
}

// Stats tracks how allocation requests were satisfied: on the
// requested node (Local) or on a fallback node after the local one
// was exhausted (Remote).
type Stats struct {
	LocalAllocations  int64
	RemoteAllocations int64
}

// Pool is a fixed set of per-node frame allocators.
type Pool struct {
	nodes []*Node

	local  atomic.Int64
	remote atomic.Int64
}

// NewPool creates a pool with nodeCount empty nodes, IDs 0..nodeCount-1.
func NewPool(nodeCount int) *Pool {
	if nodeCount <= 0 {
		nodeCount = 1
	}
	p := &Pool{nodes: make([]*Node, nodeCount)}
	for i := range p.nodes {
		p.nodes[i] = &Node{ID: i}
	}
	return p
}

func (p *Pool) node(id int) (*Node, error) {
	if id < 0 || id >= len(p.nodes) {
		return nil, fmt.Errorf("numa: node %d out of range [0,%d)", id, len(p.nodes))
	}
	return p.nodes[id], nil
}

// AddFrames adds the frame range [start, end) to nodeID's allocator.
func (p *Pool) AddFrames(nodeID int, start, end uintptr) error {
	n, err := p.node(nodeID)
	if err != nil {
		return err
	}
	n.frames.AddFrame(start, end)
	return nil
}

// Alloc reserves count frames, preferring nodeHint. If nodeHint is
// exhausted, the other nodes are scanned in ID order and the first
// successful allocation is counted as remote. It reports the node the
// frames came from alongside the frame number.
func (p *Pool) Alloc(nodeHint int, count uintptr) (frame uintptr, nodeID int, ok bool) {
	if home, err := p.node(nodeHint); err == nil {
		if f, allocated := home.frames.Alloc(count); allocated {
			p.local.Add(1)
			return f, home.ID, true
		}
	}

	for _, n := range p.nodes {
		if n.ID == nodeHint {
			continue
		}
		if f, allocated := n.frames.Alloc(count); allocated {
			p.remote.Add(1)
			return f, n.ID, true
		}
	}

	return 0, 0, false
}

// Dealloc returns count frames starting at frame to nodeID's
// allocator. nodeID must be the node Alloc reported the frames came
// from.
func (p *Pool) Dealloc(nodeID int, frame, count uintptr) error {
	n, err := p.node(nodeID)
	if err != nil {
		return err
	}
	n.frames.Dealloc(frame, count)
	return nil
}

// NodeStats returns the frame allocator statistics for a single node.
func (p *Pool) NodeStats(nodeID int) (allocator.Stats, error) {
	n, err := p.node(nodeID)
	if err != nil {
		return allocator.Stats{}, err
	}
	return n.frames.Stats(), nil
}

// Stats returns pool-wide local/remote allocation counters.
func (p *Pool) Stats() Stats {
	return Stats{
		LocalAllocations:  p.local.Load(),
		RemoteAllocations: p.remote.Load(),
	}
}
