// Package render draws analysis results onto frames: detection boxes,
// morphology colored boxes, track trails and text overlays.
package render
