/*
spermtrack turns the output of a sperm cell object detector into
quantitative semen analysis metrics.

A still image is analysed per detection, measuring the contour of each cell
to classify its morphology and score its quality, then aggregated into
density, concentration and viability estimates.  A video is sub-sampled to
a fixed rate, detections are associated across frames into tracks, and the
tracks are aggregated into motility, movement pattern and temporal count
statistics.  Both paths finish with fixed band clinical interpretation text.

The detector is a collaborator supplied by the caller, see the detector
subpackage for an ONNX YOLOv8 implementation and a replay implementation
fed from recorded detections.

See example code and usage in the example subdirectory.
*/
package spermtrack
