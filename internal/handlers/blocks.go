package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type blockRequest struct {
	Name    string `json:"name" example:"Takshila"`
	Address string `json:"address" example:"Sector 42, Knowledge Park"`
	Icon    string `json:"icon" example:"building"`
}

type roomRequest struct {
	Name string `json:"name" example:"Room 201"`
}

// @Summary      List blocks with their rooms
// @Tags         blocks
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, blocks"
// @Router       /api/v1/blocks [get]
// @Security     BearerAuth
func (h *Handler) listBlocks(c *gin.Context) {
	blocks := h.services.Hierarchy.Blocks()
	c.JSON(http.StatusOK, gin.H{
		"count":  len(blocks),
		"blocks": blocks,
	})
}

// @Summary      Add block
// @Description  Blank address and unknown icons fall back to defaults.
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        body  body      blockRequest  true  "Block"
// @Success      201   {object}  models.Block
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/blocks [post]
// @Security     BearerAuth
func (h *Handler) addBlock(c *gin.Context) {
	var req blockRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	b, ok := h.services.Hierarchy.AddBlock(req.Name, req.Address, req.Icon)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNameRequired})
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary      Update block
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Block id"
// @Param        body  body      blockRequest  true  "Block"
// @Success      200   {object}  models.Block
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/blocks/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBlock(c *gin.Context) {
	var req blockRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	b, ok := h.services.Hierarchy.RenameBlock(c.Param("id"), req.Name, req.Address, req.Icon)
	if !ok {
		h.notFoundOrInvalidName(c, req.Name, errBlockNotFound)
		return
	}
	c.JSON(http.StatusOK, b)
}

// @Summary      Request block deletion
// @Description  Returns a confirmation token. Nothing is deleted until the token is confirmed.
// @Tags         blocks
// @Produce      json
// @Param        id   path      string  true  "Block id"
// @Success      202  {object}  models.PendingDeletion
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/blocks/{id} [delete]
// @Security     BearerAuth
func (h *Handler) requestBlockDeletion(c *gin.Context) {
	p, ok := h.services.Hierarchy.RequestDeleteBlock(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errBlockNotFound})
		return
	}
	c.JSON(http.StatusAccepted, p)
}

// @Summary      Confirm block deletion
// @Tags         blocks
// @Produce      json
// @Param        token  path      string  true  "Deletion token"
// @Success      200    {object}  map[string]interface{}  "status, block"
// @Failure      404    {object}  map[string]string
// @Router       /api/v1/blocks/deletions/{token}/confirm [post]
// @Security     BearerAuth
func (h *Handler) confirmBlockDeletion(c *gin.Context) {
	b, ok := h.services.Hierarchy.ConfirmDeletion(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownToken})
		return
	}
	if h.log != nil {
		h.log.Infow("block_deleted", "block_id", b.ID, "rooms", len(b.Rooms))
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "block": b})
}

// @Summary      Cancel block deletion
// @Tags         blocks
// @Param        token  path  string  true  "Deletion token"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/blocks/deletions/{token} [delete]
// @Security     BearerAuth
func (h *Handler) cancelBlockDeletion(c *gin.Context) {
	if !h.services.Hierarchy.CancelDeletion(c.Param("token")) {
		c.JSON(http.StatusNotFound, gin.H{"error": errUnknownToken})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Add room to block
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        id    path      string       true  "Block id"
// @Param        body  body      roomRequest  true  "Room"
// @Success      201   {object}  models.Room
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/blocks/{id}/rooms [post]
// @Security     BearerAuth
func (h *Handler) addRoom(c *gin.Context) {
	var req roomRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	r, ok := h.services.Hierarchy.AddRoom(c.Param("id"), req.Name)
	if !ok {
		h.notFoundOrInvalidName(c, req.Name, errBlockNotFound)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// @Summary      Rename room
// @Tags         blocks
// @Accept       json
// @Produce      json
// @Param        id      path      string       true  "Block id"
// @Param        roomId  path      string       true  "Room id"
// @Param        body    body      roomRequest  true  "Room"
// @Success      200     {object}  models.Room
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/blocks/{id}/rooms/{roomId} [put]
// @Security     BearerAuth
func (h *Handler) renameRoom(c *gin.Context) {
	var req roomRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	r, ok := h.services.Hierarchy.RenameRoom(c.Param("id"), c.Param("roomId"), req.Name)
	if !ok {
		h.notFoundOrInvalidName(c, req.Name, errRoomNotFound)
		return
	}
	c.JSON(http.StatusOK, r)
}

// @Summary      Delete room
// @Tags         blocks
// @Param        id      path  string  true  "Block id"
// @Param        roomId  path  string  true  "Room id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/blocks/{id}/rooms/{roomId} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRoom(c *gin.Context) {
	if !h.services.Hierarchy.DeleteRoom(c.Param("id"), c.Param("roomId")) {
		c.JSON(http.StatusNotFound, gin.H{"error": errRoomNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

// The stores only report ok=false; a blank name is the caller's fault, anything else is a missing id.
func (h *Handler) notFoundOrInvalidName(c *gin.Context, name, notFound string) {
	if strings.TrimSpace(name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errNameRequired})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": notFound})
}
