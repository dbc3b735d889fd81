package domain

import "time"

// Post is a titled piece of content managed through the posts service
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPost holds the caller-supplied fields of a post before the store assigns an ID
type NewPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
