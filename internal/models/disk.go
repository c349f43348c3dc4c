package models

// Disk is one free/total capacity sample of a watched storage location.
type Disk struct {
	Path  string `json:"path"`
	Free  uint64 `json:"free"`
	Total uint64 `json:"total"`
}

// PercentFree returns free space as a percentage of total capacity.
func (d Disk) PercentFree() float32 {
	return float32(float64(d.Free) / float64(d.Total) * 100.0)
}
