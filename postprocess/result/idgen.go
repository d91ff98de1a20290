package result

import "sync"

// IDGenerator is a struct to hold a counter for generating the next
// incremental detection ID number.  It is safe to share between goroutines
// as a single detector may serve several analysis runs.
type IDGenerator struct {
	id int64
	sync.Mutex
}

// NewIDGenerator returns an IDGenerator starting at zero
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GetNext returns the next incremental number
func (id *IDGenerator) GetNext() int64 {
	id.Lock()
	defer id.Unlock()
	id.id++
	return id.id
}
