package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danupratama/shopping-note/internal/schema"
	"github.com/danupratama/shopping-note/internal/store"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": ServiceName})
}

func (s *Server) handleListItems(c *gin.Context) {
	items, err := s.items.List(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) handleCreateItem(c *gin.Context) {
	raw, ok := bindObject(c)
	if !ok {
		return
	}

	payload, issues := schema.ParseCreate(raw)
	if issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "issues": issues})
		return
	}

	item, err := s.items.Create(c.Request.Context(), payload)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	raw, ok := bindObject(c)
	if !ok {
		return
	}

	patch, issues := schema.ParseUpdate(raw)
	if issues != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "issues": issues})
		return
	}

	item, err := s.items.Update(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleToggleItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	item, err := s.items.Toggle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteItem(c *gin.Context) {
	id, ok := itemID(c)
	if !ok {
		return
	}

	if err := s.items.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "item not found"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// itemID parses the :id path parameter. A malformed id is rejected with a
// 400 before any storage access.
func itemID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid item id"})
		return 0, false
	}
	return id, true
}

// bindObject decodes the request body into an untyped JSON object for the
// schema layer to validate.
func bindObject(c *gin.Context) (map[string]any, bool) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid JSON body"})
		return nil, false
	}
	return raw, true
}
