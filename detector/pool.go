package detector

import (
	"context"
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Pool is a simple pool of DNN networks loaded from the same Model so
// frames can be inferenced in parallel, an OpenCV Net is not safe for
// concurrent use
type Pool struct {
	// nets are the idle networks
	nets chan *gocv.Net
	// size of pool
	size   int
	mu     sync.Mutex
	closed bool
}

// NewPool loads size copies of the ONNX model file
func NewPool(size int, modelFile string, backend gocv.NetBackendType,
	target gocv.NetTargetType) (*Pool, error) {

	if size < 1 {
		size = 1
	}

	p := &Pool{
		nets: make(chan *gocv.Net, size),
		size: size,
	}

	for i := 0; i < size; i++ {
		net := gocv.ReadNetFromONNX(modelFile)

		if net.Empty() {
			net.Close()
			// close any networks that may have been created before
			// receiving the error
			p.Close()
			return nil, fmt.Errorf("loading model %s: %w", modelFile, ErrUnavailable)
		}

		if err := net.SetPreferableBackend(backend); err != nil {
			net.Close()
			p.Close()
			return nil, fmt.Errorf("setting backend: %w", err)
		}

		if err := net.SetPreferableTarget(target); err != nil {
			net.Close()
			p.Close()
			return nil, fmt.Errorf("setting target: %w", err)
		}

		p.Return(&net)
	}

	return p, nil
}

// Get takes a network from the pool, waiting until one is idle or the
// context is done.  ErrUnavailable is returned once the pool is closed.
func (p *Pool) Get(ctx context.Context) (*gocv.Net, error) {
	select {
	case net, ok := <-p.nets:
		if !ok {
			return nil, ErrUnavailable
		}
		return net, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Return a network to the pool
func (p *Pool) Return(net *gocv.Net) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		net.Close()
		return
	}

	select {
	case p.nets <- net:
	default:
		// pool is full
		net.Close()
	}
}

// Size returns the number of networks the pool was created with
func (p *Pool) Size() int {
	return p.size
}

// Close the pool and all idle networks in it
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.closed = true
	close(p.nets)

	for next := range p.nets {
		_ = next.Close()
	}
}
