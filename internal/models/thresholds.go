package models

// Thresholds are the two live-reloadable free-space alert settings. Percent
// is 0-100; Bytes is an absolute free-space budget. The stricter of the two
// wins when computing a disk's floor.
type Thresholds struct {
	Percent uint   `json:"percent"`
	Bytes   uint64 `json:"bytes"`
}
