// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "io"

// UploadInput is a user-supplied file. Content is read at most once.
type UploadInput struct {
	Filename string
	Content  io.Reader
}
