// Package models defines the domain types for Raido.
package models

import "time"

// FileMeta is a lightweight representation of a tracked workspace file,
// as returned by storage list operations.
type FileMeta struct {
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OpenTarget describes a resolved file ready to be opened by the host:
// the tracked relative path plus the absolute location on disk.
type OpenTarget struct {
	Code    string    `json:"code"`
	Path    string    `json:"path"`
	AbsPath string    `json:"abs_path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// RecentEntry is one row of the recently-opened history.
type RecentEntry struct {
	Path     string    `json:"path"`
	Code     string    `json:"code"`
	OpenedAt time.Time `json:"opened_at"`
}
