package services

import (
	"errors"
	"fmt"

	"github.com/jueviolegrace13/account-management/internal/models"
	"github.com/jueviolegrace13/account-management/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNoteNotFound      = errors.New("note not found")
	ErrNoteTitleRequired = errors.New("note title is required")
	ErrInvalidNoteType   = errors.New("note type must be regular or report")
)

// NoteService handles note business logic
type NoteService struct {
	noteRepo repository.NoteRepository
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo repository.NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// CreateNoteInput represents input for creating a note
type CreateNoteInput struct {
	AccountID uint64
	AuthorID  uint64
	Title     string
	Content   string
	Type      models.NoteType
}

// CreateNote attaches a note or report to an account.
func (s *NoteService) CreateNote(input CreateNoteInput) (*models.Note, error) {
	if input.Title == "" {
		return nil, ErrNoteTitleRequired
	}
	if input.Type == "" {
		input.Type = models.NoteTypeRegular
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidNoteType
	}

	note := &models.Note{
		AccountID: input.AccountID,
		AuthorID:  input.AuthorID,
		Title:     input.Title,
		Content:   input.Content,
		Type:      input.Type,
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	return note, nil
}

// GetNote retrieves a note by ID.
func (s *NoteService) GetNote(noteID uint64) (*models.Note, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return note, nil
}

// UpdateNoteInput represents input for updating a note
type UpdateNoteInput struct {
	Title   *string
	Content *string
}

// UpdateNote edits a note in place.
func (s *NoteService) UpdateNote(noteID uint64, input UpdateNoteInput) (*models.Note, error) {
	note, err := s.noteRepo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrNoteTitleRequired
		}
		note.Title = *input.Title
	}
	if input.Content != nil {
		note.Content = *input.Content
	}

	if err := s.noteRepo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(noteID uint64) error {
	if _, err := s.noteRepo.FindByID(noteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to find note: %w", err)
	}

	if err := s.noteRepo.Delete(noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
