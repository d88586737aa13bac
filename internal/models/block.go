package models

import "time"

// Block is a building or location grouping rooms.
type Block struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Icon    string `json:"icon" yaml:"icon"`
	Address string `json:"address" yaml:"address"`
	Rooms   []Room `json:"rooms" yaml:"rooms"`
}

// Room belongs to exactly one Block.
type Room struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// PendingDeletion is issued by a delete request and consumed on confirmation.
type PendingDeletion struct {
	Token     string    `json:"token"`
	BlockID   string    `json:"blockId"`
	BlockName string    `json:"blockName"`
	RoomCount int       `json:"roomCount"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Clone returns a copy that shares no slice memory with b.
func (b Block) Clone() Block {
	out := b
	out.Rooms = make([]Room, len(b.Rooms))
	copy(out.Rooms, b.Rooms)
	return out
}
