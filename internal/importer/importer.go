// Package importer loads exam files into the store. A file is imported once
// per content hash so repeated runs do not duplicate questions.
package importer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pavelanni/examcloud/internal/model"
	"github.com/pavelanni/examcloud/internal/store"
	"github.com/pavelanni/examcloud/internal/validate"
)

// Hashes records the content hash of every imported file.
type Hashes interface {
	ImportedFileHash(ctx context.Context, name string) (string, error)
	SetImportedFileHash(ctx context.Context, name, hash string) error
}

// Report summarizes one file import.
type Report struct {
	Name      string `json:"name"`
	Exams     int    `json:"exams"`
	Questions int    `json:"questions"`
	// Skipped is set when the file was already imported. Changed tells
	// whether its content differs from the imported version.
	Skipped bool `json:"skipped"`
	Changed bool `json:"changed,omitempty"`
}

// Import parses data as a JSON array of exams and adds them to s. Exams with
// an id already in the catalog are merged and get the file's questions
// appended. A file that was imported before is skipped unless force is set.
func Import(ctx context.Context, s *store.Store, hashes Hashes, name string, data []byte, force bool) (Report, error) {
	rep := Report{Name: name}
	hash := sha256sum(data)

	stored, err := hashes.ImportedFileHash(ctx, name)
	if err != nil {
		return rep, fmt.Errorf("check import status for %s: %w", name, err)
	}
	if stored != "" && !force {
		rep.Skipped = true
		rep.Changed = stored != hash
		if rep.Changed {
			slog.Warn("exam file changed since last import, skipping to avoid duplicate questions", "name", name)
		} else {
			slog.Info("exam file unchanged, skipping", "name", name)
		}
		return rep, nil
	}

	var exams []model.ExamImport
	if err := json.Unmarshal(data, &exams); err != nil {
		return rep, fmt.Errorf("parse %s: %w", name, err)
	}
	for i, ei := range exams {
		if err := validate.Struct(ei.ExamInput); err != nil {
			return rep, fmt.Errorf("exam %d in %s: %w", i, name, err)
		}
	}

	for _, ei := range exams {
		in := ei.ExamInput
		in.Questions = nil
		e := s.UpsertExam(in)
		for _, q := range ei.Questions {
			if _, err := s.AddQuestion(e.ID, q); err != nil {
				return rep, fmt.Errorf("add question to %s: %w", e.ID, err)
			}
			rep.Questions++
		}
		rep.Exams++
	}

	if err := hashes.SetImportedFileHash(ctx, name, hash); err != nil {
		return rep, fmt.Errorf("record import for %s: %w", name, err)
	}
	slog.Info("imported exams", "name", name, "exams", rep.Exams, "questions", rep.Questions)
	return rep, nil
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
