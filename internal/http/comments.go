package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/songbook/internal/services"
)

// CommentRequest is the body of a comment update. An empty comment clears it.
type CommentRequest struct {
	Comment *string `json:"comment" binding:"required,max=4000"`
}

type CommentsController struct {
	store CommentStore
}

func NewCommentsController(store CommentStore) *CommentsController {
	return &CommentsController{store: store}
}

// GetComment returns the comment of a song.
// GET /api/songs/:id/comment
func (cc *CommentsController) GetComment(c *gin.Context) {
	id, ok := cc.requireSong(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"song_id": id, "comment": cc.store.Comment(id)})
}

// SetComment stores the comment of a song.
// PUT /api/songs/:id/comment
func (cc *CommentsController) SetComment(c *gin.Context) {
	id, ok := cc.requireSong(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := cc.store.SetComment(id, *req.Comment); err != nil {
		respondInternalError(c, err, "set comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"song_id": id, "comment": *req.Comment})
}

// GetHistory returns every stored comment of a song, newest first.
// GET /api/songs/:id/comments
func (cc *CommentsController) GetHistory(c *gin.Context) {
	id, ok := cc.requireSong(c)
	if !ok {
		return
	}

	history, err := cc.store.CommentHistory(id)
	if errors.Is(err, services.ErrStoreDisabled) {
		respondError(c, http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "comment history")
		return
	}

	respondList(c, history)
}

func (cc *CommentsController) requireSong(c *gin.Context) (string, bool) {
	id, ok := requireParam(c, "id")
	if !ok {
		return "", false
	}
	if _, found := cc.store.Song(id); !found {
		respondNotFound(c, "song")
		return "", false
	}
	return id, true
}
