package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorderCounts(t *testing.T) {
	r := NewRecorder(300, 200)
	w, h := r.Size()
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 200.0, h)

	r.Clear()
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(1, 1)
	r.Stroke()
	r.FillText("{", 0, 0, 12)

	assert.Equal(t, 3, r.Draws(), "Clear, Stroke and FillText draw")
	assert.Equal(t, 1, r.Count("LineTo"))

	r.Save()
	r.Save()
	r.Restore()
	assert.Equal(t, 1, r.Depth())

	r.Reset()
	assert.Zero(t, r.Draws())

	r.SetSize(10, 20)
	w, h = r.Size()
	assert.Equal(t, 10.0, w)
	assert.Equal(t, 20.0, h)
}
