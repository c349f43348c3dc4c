package models

import "time"

// LocalState is one complete snapshot of the node's storage health. A
// snapshot is built whole by a refresh cycle and never mutated afterwards;
// readers always observe either the previous or the new snapshot, never a
// partial one.
type LocalState struct {
	Version           string        `json:"version"`
	Uptime            time.Duration `json:"uptime"`
	Disks             []Disk        `json:"disks"`
	StorageSpaceAlert AlertState    `json:"storage_space_alert"`
	RefreshedAt       time.Time     `json:"refreshed_at"`
}
