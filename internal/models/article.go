package models

// Article represents a blog article from the document store.
type Article struct {
	ID          string `json:"id"`          // ID is the unique identifier assigned by the store.
	Title       string `json:"title"`       // Title of the article.
	Description string `json:"description"` // Description is the short teaser text.
	Tag         string `json:"tag"`         // Tag is the category label shown on cards.
	Content     string `json:"content"`     // Content is the article body (rich text HTML).
	Image       string `json:"image"`       // Image is the cover image URL.
	Date        string `json:"date"`        // Date is the display date of the article.
}

// ContactMessage is a contact-form submission relayed to the transactional
// email endpoint. It is never persisted locally.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}
