package platform

// NewDetectorFor creates a Detector for a fixed GOOS and uname source.
var NewDetectorFor = newDetector
