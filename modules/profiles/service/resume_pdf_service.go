package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/andreypavlenko/jobmatch/modules/profiles/model"
	"github.com/andreypavlenko/jobmatch/modules/profiles/ports"
	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
)

// ObjectStore is the slice of internal/platform/storage.S3Client this
// service needs, narrowed so tests don't require a real bucket.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
}

// ResumePDFService turns an uploaded PDF into an immutable ResumeVersion
// draft: the raw file goes to object storage for the record, and its
// extracted text becomes ContentText, mirroring how the teacher's
// ResumeService.GenerateUploadURL records a storage key against a row, but
// doing the extraction server-side instead of handing back a presigned URL.
type ResumePDFService struct {
	versions ports.ResumeVersionRepository
	store    ObjectStore
	enabled  bool

	// extract abstracts PDF text extraction for tests; defaults to
	// extractPDFText.
	extract func([]byte) (string, error)
}

// NewResumePDFService creates a ResumePDFService. store may be nil, in
// which case Import always fails with a clear error instead of a nil
// pointer panic (object storage is optional configuration, §7).
func NewResumePDFService(versions ports.ResumeVersionRepository, store ObjectStore) *ResumePDFService {
	return &ResumePDFService{versions: versions, store: store, enabled: store != nil, extract: extractPDFText}
}

// Import uploads the PDF to object storage under
// profiles/{profileID}/resumes/{versionID}.pdf, extracts its text, and
// inserts a draft ResumeVersion sourced from the upload.
func (s *ResumePDFService) Import(ctx context.Context, profileID string, vacancyID *string, pdfBytes []byte) (*model.ResumeVersion, error) {
	if !s.enabled {
		return nil, fmt.Errorf("object storage is not configured")
	}

	text, err := s.extract(pdfBytes)
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, model.ErrEmptyPDFText
	}

	versionID := uuid.New().String()
	storageKey := fmt.Sprintf("profiles/%s/resumes/%s.pdf", profileID, versionID)
	if err := s.store.PutObject(ctx, storageKey, pdfBytes, "application/pdf"); err != nil {
		return nil, fmt.Errorf("upload resume pdf: %w", err)
	}

	version := &model.ResumeVersion{
		ID:          versionID,
		ProfileID:   profileID,
		VacancyID:   vacancyID,
		ContentText: text,
		Source:      model.VersionSourceUser,
		Status:      model.VersionStatusDraft,
	}
	if _, err := s.versions.Create(ctx, version); err != nil {
		return nil, fmt.Errorf("save resume version: %w", err)
	}

	return version, nil
}

// extractPDFText reads the document's plain text, the way a resume's body
// text reads start to finish regardless of page breaks.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", err
	}
	return buf.String(), nil
}
