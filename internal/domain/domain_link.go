// Package domain defines domain models and interfaces
package domain

import "time"

// Link represents an explicit wiki-style reference inside note content.
// Links are created and deleted only by the graph synchronizer.
type Link struct {
	ID               int64
	SourceNoteID     int64
	TargetNoteID     int64 // 0 while the target title is unresolved
	TargetTitle      string
	TextOffset       int // best-effort byte offset into the source content
	RelationshipType RelationshipType
	CreatedAt        time.Time
}

// SyncCommit is the unit of work the synchronizer hands to the store.
// Everything inside commits in one transaction or not at all.
type SyncCommit struct {
	Note        *Note   // note row to persist alongside the link diff
	DeleteIDs   []int64 // stale links to remove
	InsertLinks []*Link // newly scanned links
	UpdateLinks []*Link // retained links with refreshed offsets or resolution
	MirrorEdges []*Edge // candidate edges for newly resolved links, pair-checked in the transaction
}

// SyncResult summarizes what a sync pass changed
type SyncResult struct {
	NoteID       int64 `json:"noteId"`
	LinksAdded   int   `json:"linksAdded"`
	LinksRemoved int   `json:"linksRemoved"`
	LinksKept    int   `json:"linksKept"`
	EdgesCreated int   `json:"edgesCreated"`
}
