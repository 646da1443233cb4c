package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/songbook/internal/services"
	"github.com/mrlokans/songbook/internal/utils"
)

// BookResponse is a book variant with its display color.
type BookResponse struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Year     *int            `json:"year,omitempty"`
	Favorite bool            `json:"favorite"`
	Color    utils.BookColor `json:"color"`
}

// BookCommentRequest is the body of a new book comment.
type BookCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=4000"`
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// GetAllBooks returns every book variant, or those whose title contains q.
// GET /api/books?q=noten
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	books, err := bc.store.SearchBooks(c.Query("q"))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, BookResponse{
			ID:       b.ID,
			Title:    b.Title,
			Year:     b.Year,
			Favorite: b.Favorite,
			Color:    utils.BookColorFor(b.ID),
		})
	}
	respondList(c, out)
}

// GetBook returns one book variant.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := requireParam(c, "id")
	if !ok {
		return
	}

	book, found := bc.store.Book(id)
	if !found {
		respondNotFound(c, "book")
		return
	}

	c.JSON(http.StatusOK, BookResponse{
		ID:       book.ID,
		Title:    book.Title,
		Year:     book.Year,
		Favorite: book.Favorite,
		Color:    utils.BookColorFor(book.ID),
	})
}

// GetComments returns the comments of a book variant.
// GET /api/books/:id/comments
func (bc *BooksController) GetComments(c *gin.Context) {
	id, ok := bc.requireBook(c)
	if !ok {
		return
	}

	comments, err := bc.store.BookComments(id)
	if errors.Is(err, services.ErrStoreDisabled) {
		respondError(c, http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "book comments")
		return
	}

	respondList(c, comments)
}

// AddComment attaches a comment to a book variant.
// POST /api/books/:id/comments
func (bc *BooksController) AddComment(c *gin.Context) {
	id, ok := bc.requireBook(c)
	if !ok {
		return
	}

	var req BookCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	comment, err := bc.store.AddBookComment(id, req.Comment)
	if errors.Is(err, services.ErrStoreDisabled) {
		respondError(c, http.StatusNotImplemented, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "add book comment")
		return
	}

	respondCreated(c, comment)
}

func (bc *BooksController) requireBook(c *gin.Context) (string, bool) {
	id, ok := requireParam(c, "id")
	if !ok {
		return "", false
	}
	if _, found := bc.store.Book(id); !found {
		respondNotFound(c, "book")
		return "", false
	}
	return id, true
}
