package service

import (
	"strings"
	"sync"
	"time"

	"optiwatt/internal/models"

	"github.com/google/uuid"
)

const (
	DefaultBlockAddress = "No address set"
	DefaultBlockIcon    = "building"

	defaultDeletionTTL = 5 * time.Minute
)

var blockIcons = map[string]struct{}{
	"building": {},
	"campus":   {},
	"fridge":   {},
	"light":    {},
	"oven":     {},
}

// HierarchyStore owns the Block -> Room tree. Invalid input is ignored and
// reported through the bool result; nothing here returns an error.
type HierarchyStore struct {
	mu      sync.RWMutex
	blocks  []models.Block
	pending map[string]models.PendingDeletion

	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

func NewHierarchyStore(seed []models.Block, deletionTTL time.Duration) *HierarchyStore {
	if deletionTTL <= 0 {
		deletionTTL = defaultDeletionTTL
	}
	blocks := make([]models.Block, 0, len(seed))
	for _, b := range seed {
		blocks = append(blocks, b.Clone())
	}
	return &HierarchyStore{
		blocks:  blocks,
		pending: make(map[string]models.PendingDeletion),
		ttl:     deletionTTL,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func normalizeName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func normalizeAddress(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return DefaultBlockAddress
	}
	return s
}

func normalizeIcon(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if _, ok := blockIcons[s]; !ok {
		return DefaultBlockIcon
	}
	return s
}

// indexOf must be called with mu held.
func (h *HierarchyStore) indexOf(id string) int {
	for i := range h.blocks {
		if h.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func roomIndex(b *models.Block, roomID string) int {
	for i := range b.Rooms {
		if b.Rooms[i].ID == roomID {
			return i
		}
	}
	return -1
}

func (h *HierarchyStore) Blocks() []models.Block {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]models.Block, 0, len(h.blocks))
	for _, b := range h.blocks {
		out = append(out, b.Clone())
	}
	return out
}

func (h *HierarchyStore) Block(id string) (models.Block, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i := h.indexOf(id)
	if i < 0 {
		return models.Block{}, false
	}
	return h.blocks[i].Clone(), true
}

func (h *HierarchyStore) Room(blockID, roomID string) (models.Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	i := h.indexOf(blockID)
	if i < 0 {
		return models.Room{}, false
	}
	j := roomIndex(&h.blocks[i], roomID)
	if j < 0 {
		return models.Room{}, false
	}
	return h.blocks[i].Rooms[j], true
}

// AddBlock appends a block with an empty room list.
func (h *HierarchyStore) AddBlock(name, address, icon string) (models.Block, bool) {
	name, ok := normalizeName(name)
	if !ok {
		return models.Block{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	b := models.Block{
		ID:      "b-" + h.newID(),
		Name:    name,
		Icon:    normalizeIcon(icon),
		Address: normalizeAddress(address),
		Rooms:   []models.Room{},
	}
	h.blocks = append(h.blocks, b)
	return b.Clone(), true
}

// RenameBlock replaces name, address and icon. Rooms are untouched.
func (h *HierarchyStore) RenameBlock(id, name, address, icon string) (models.Block, bool) {
	name, ok := normalizeName(name)
	if !ok {
		return models.Block{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(id)
	if i < 0 {
		return models.Block{}, false
	}
	b := &h.blocks[i]
	b.Name = name
	b.Address = normalizeAddress(address)
	b.Icon = normalizeIcon(icon)
	return b.Clone(), true
}

// DeleteBlock removes a block together with its rooms.
func (h *HierarchyStore) DeleteBlock(id string) (models.Block, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deleteLocked(id)
}

func (h *HierarchyStore) deleteLocked(id string) (models.Block, bool) {
	i := h.indexOf(id)
	if i < 0 {
		return models.Block{}, false
	}
	removed := h.blocks[i]
	h.blocks = append(h.blocks[:i], h.blocks[i+1:]...)

	// tokens for the same block are stale now
	for tok, p := range h.pending {
		if p.BlockID == id {
			delete(h.pending, tok)
		}
	}
	return removed, true
}

func (h *HierarchyStore) AddRoom(blockID, name string) (models.Room, bool) {
	name, ok := normalizeName(name)
	if !ok {
		return models.Room{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(blockID)
	if i < 0 {
		return models.Room{}, false
	}
	r := models.Room{ID: "r-" + h.newID(), Name: name}
	h.blocks[i].Rooms = append(h.blocks[i].Rooms, r)
	return r, true
}

// RenameRoom keeps the room's id and position.
func (h *HierarchyStore) RenameRoom(blockID, roomID, name string) (models.Room, bool) {
	name, ok := normalizeName(name)
	if !ok {
		return models.Room{}, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(blockID)
	if i < 0 {
		return models.Room{}, false
	}
	j := roomIndex(&h.blocks[i], roomID)
	if j < 0 {
		return models.Room{}, false
	}
	h.blocks[i].Rooms[j].Name = name
	return h.blocks[i].Rooms[j], true
}

func (h *HierarchyStore) DeleteRoom(blockID, roomID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(blockID)
	if i < 0 {
		return false
	}
	b := &h.blocks[i]
	j := roomIndex(b, roomID)
	if j < 0 {
		return false
	}
	b.Rooms = append(b.Rooms[:j], b.Rooms[j+1:]...)
	return true
}

// RequestDeleteBlock is the first step of block deletion. State is unchanged
// until ConfirmDeletion is called with the returned token.
func (h *HierarchyStore) RequestDeleteBlock(id string) (models.PendingDeletion, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sweepLocked()

	i := h.indexOf(id)
	if i < 0 {
		return models.PendingDeletion{}, false
	}
	p := models.PendingDeletion{
		Token:     h.newID(),
		BlockID:   id,
		BlockName: h.blocks[i].Name,
		RoomCount: len(h.blocks[i].Rooms),
		ExpiresAt: h.now().Add(h.ttl),
	}
	h.pending[p.Token] = p
	return p, true
}

// ConfirmDeletion consumes the token and deletes its block.
// Unknown, expired or already used tokens do nothing.
func (h *HierarchyStore) ConfirmDeletion(token string) (models.Block, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, ok := h.pending[token]
	if !ok {
		return models.Block{}, false
	}
	delete(h.pending, token)
	if !h.now().Before(p.ExpiresAt) {
		return models.Block{}, false
	}
	return h.deleteLocked(p.BlockID)
}

func (h *HierarchyStore) CancelDeletion(token string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.pending[token]; !ok {
		return false
	}
	delete(h.pending, token)
	return true
}

func (h *HierarchyStore) sweepLocked() {
	now := h.now()
	for tok, p := range h.pending {
		if !now.Before(p.ExpiresAt) {
			delete(h.pending, tok)
		}
	}
}
