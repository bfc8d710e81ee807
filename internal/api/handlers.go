package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nhle/personal-diary/internal/diary"
	"github.com/nhle/personal-diary/internal/model"
)

func (s *Server) listEntries(c *gin.Context) {
	userID := currentUserID(c)
	tag := c.Query("tag")
	sortType := model.ParseSortType(c.Query("sort"))

	var (
		entries diary.Entries
		err     error
	)
	if q, ok := c.GetQuery("q"); ok {
		entries, err = s.diary.SearchEntries(c.Request.Context(), &q, userID, tag, sortType)
	} else {
		entries, err = s.diary.ListEntries(c.Request.Context(), userID, tag, sortType)
	}
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make([]entryResponse, 0, entries.Len())
	for _, e := range entries.Sorted() {
		out = append(out, newEntryResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createEntry(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.diary.CreateEntry(c.Request.Context(), diary.CreateRequest{
		Title:  req.Title,
		Body:   req.Body,
		UserID: currentUserID(c),
		Mood:   req.mood(),
		Tags:   req.Tags,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry_id": id})
}

func (s *Server) getEntry(c *gin.Context) {
	entry, err := s.diary.ReadOwnedEntry(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newEntryResponse(*entry))
}

func (s *Server) updateEntry(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.diary.ReadOwnedEntry(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.fail(c, err)
		return
	}

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := s.diary.UpdateEntry(c.Request.Context(), diary.UpdateRequest{
		EntryID: id,
		Title:   req.Title,
		Body:    req.Body,
		Mood:    req.mood(),
		Tags:    req.Tags,
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	out := make(map[string]entryResponse, len(updated))
	for k, e := range updated {
		out[k] = newEntryResponse(e)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) deleteEntry(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.diary.ReadOwnedEntry(c.Request.Context(), id, currentUserID(c)); err != nil {
		s.fail(c, err)
		return
	}

	deleted, err := s.diary.DeleteEntry(c.Request.Context(), diary.DeleteRequest{EntryID: id})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry_id": deleted})
}

func (s *Server) listTags(c *gin.Context) {
	tags, err := s.diary.Tags().All(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) reminder(c *gin.Context) {
	ok, err := s.diary.CheckEntryForToday(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_entry_today": ok})
}

// fail maps a diary error onto a status code.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, diary.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
	case errors.Is(err, diary.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
