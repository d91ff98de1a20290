package result

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxRectGeometry(t *testing.T) {

	box := BoxRect{Left: 10, Top: 20, Right: 70, Bottom: 40}

	assert.Equal(t, float32(60), box.Width())
	assert.Equal(t, float32(20), box.Height())
	assert.Equal(t, float32(1200), box.Area())
	assert.InDelta(t, 3.0, box.AspectRatio(), 1e-9)
	assert.True(t, box.Valid())

	x, y := box.Center()
	assert.Equal(t, float32(40), x)
	assert.Equal(t, float32(30), y)
}

func TestBoxRectZeroHeight(t *testing.T) {

	box := BoxRect{Left: 10, Top: 20, Right: 70, Bottom: 20}

	assert.Equal(t, 0.0, box.AspectRatio())
	assert.False(t, box.Valid())
}

func TestFilterConfidence(t *testing.T) {

	dets := []DetectResult{
		{ID: 1, Probability: 0.9},
		{ID: 2, Probability: 0.1},
		{ID: 3, Probability: 0.25},
	}

	kept := FilterConfidence(dets, 0.25)

	if assert.Len(t, kept, 2) {
		assert.Equal(t, int64(1), kept[0].ID)
		assert.Equal(t, int64(3), kept[1].ID)
	}
}

func TestIDGeneratorConcurrent(t *testing.T) {

	gen := NewIDGenerator()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				gen.GetNext()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1001), gen.GetNext())
}
