package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/observability"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
)

// FileStorage abstracts where document bytes are kept.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// DocumentService handles document uploads and document metadata management.
type DocumentService interface {
	List(ctx context.Context, req dto.DocumentListRequest) (dto.ListResponse[dto.DocumentResponse], error)
	Get(ctx context.Context, id uuid.UUID) (dto.DocumentResponse, error)
	Upload(ctx context.Context, file *multipart.FileHeader, name string, actor Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req dto.DocumentUpdateRequest, actor Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor Actor) error
}

type documentService struct {
	repo      repository.DocumentRepository
	storage   FileStorage
	maxSize   int64
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewDocumentService constructs the document service.
func NewDocumentService(repo repository.DocumentRepository, storage FileStorage, maxSizeMB int, validator *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) DocumentService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &documentService{
		repo:      repo,
		storage:   storage,
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		validator: validator,
		activity:  activity,
		logger:    logger.With().Str("component", "document_service").Logger(),
		tracer:    otel.Tracer("github.com/noah-isme/therapy-admin-api/internal/service/document"),
	}
}

func (s *documentService) List(ctx context.Context, req dto.DocumentListRequest) (dto.ListResponse[dto.DocumentResponse], error) {
	if err := validateStruct(s.validator, req); err != nil {
		return dto.ListResponse[dto.DocumentResponse]{}, err
	}

	filter := repository.DocumentFilter{
		Name:     strings.TrimSpace(req.Name),
		MimeType: strings.TrimSpace(req.MimeType),
		SortBy:   defaultString(req.SortBy, "createdAt"),
		SortDesc: sortDesc(req.ListQuery, "desc"),
		Page:     pageOf(req.ListQuery),
	}

	documents, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ListResponse[dto.DocumentResponse]{}, err
	}

	responses := make([]dto.DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, dto.NewDocumentResponse(document))
	}
	return dto.ListResponse[dto.DocumentResponse]{Data: responses, Pagination: dto.NewPagination(total, filter.Page.Size)}, nil
}

func (s *documentService) Get(ctx context.Context, id uuid.UUID) (dto.DocumentResponse, error) {
	document, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dto.DocumentResponse{}, storageError(apperror.ResourceDocument, err)
	}
	return dto.NewDocumentResponse(document), nil
}

// Upload validates the file, stores its bytes and records the metadata. name overrides
// the original file name when present.
func (s *documentService) Upload(ctx context.Context, file *multipart.FileHeader, name string, actor Actor) (uuid.UUID, error) {
	ctx, span := s.tracer.Start(ctx, "document.upload")
	defer span.End()

	start := time.Now()
	defer func() {
		observability.UploadLatency().Observe(time.Since(start).Seconds())
	}()

	span.SetAttributes(attribute.Int64("upload.max_bytes", s.maxSize))
	if file == nil {
		span.SetStatus(codes.Error, "validation failed")
		return uuid.Nil, apperror.InvalidRequest("file: is required")
	}
	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	if file.Size > s.maxSize {
		return uuid.Nil, s.reject(span, "size", s.tooLarge())
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return uuid.Nil, fmt.Errorf("open upload: %w", err)
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return uuid.Nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(buf.Len()) > s.maxSize {
		return uuid.Nil, s.reject(span, "size", s.tooLarge())
	}
	if buf.Len() == 0 {
		return uuid.Nil, s.reject(span, "empty", apperror.InvalidRequest("file: must not be empty"))
	}

	detected := mimetype.Detect(buf.Bytes())
	fileType := baseMime(detected.String())
	span.SetAttributes(attribute.String("upload.detected_mime", fileType))
	if !isAllowedDocumentType(fileType) {
		return uuid.Nil, s.reject(span, "type", apperror.InvalidRequest("file: type "+fileType+" is not allowed"))
	}

	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = strings.TrimSpace(filepath.Base(file.Filename))
	}
	if len(displayName) > 255 {
		displayName = displayName[:255]
	}

	checksum := sha256.Sum256(buf.Bytes())
	storedName := sanitizeFileName(file.Filename, detected.Extension())
	url, err := s.storage.Upload(ctx, storedName, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.UploadRejected().WithLabelValues("storage").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return uuid.Nil, fmt.Errorf("store upload: %w", err)
	}

	document := models.Document{
		Name:     displayName,
		URL:      url,
		MimeType: fileType,
		Size:     int64(buf.Len()),
		Checksum: hex.EncodeToString(checksum[:]),
	}
	if err := s.repo.Create(ctx, &document); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return uuid.Nil, storageError(apperror.ResourceDocument, err)
	}

	observability.UploadRequests().WithLabelValues(fileType).Inc()
	span.SetAttributes(attribute.String("document.id", document.ID.String()))
	span.SetStatus(codes.Ok, "stored")

	recordActivity(ctx, s.activity, actor, VerbCreate, apperror.ResourceDocument, document.ID, map[string]interface{}{
		"mimeType": document.MimeType,
		"size":     document.Size,
	})
	return document.ID, nil
}

func (s *documentService) Update(ctx context.Context, id uuid.UUID, req dto.DocumentUpdateRequest, actor Actor) error {
	if err := validateStruct(s.validator, req); err != nil {
		return err
	}

	changes := newChangeSet()
	changes.setString("name", "name", req.Name)

	if err := s.repo.Update(ctx, id, changes.updates); err != nil {
		return storageError(apperror.ResourceDocument, err)
	}

	recordActivity(ctx, s.activity, actor, VerbUpdate, apperror.ResourceDocument, id, changes.metadata())
	return nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return storageError(apperror.ResourceDocument, err)
	}

	recordActivity(ctx, s.activity, actor, VerbDelete, apperror.ResourceDocument, id, nil)
	return nil
}

func (s *documentService) tooLarge() error {
	return apperror.InvalidRequest(fmt.Sprintf("file: must not exceed %d bytes", s.maxSize))
}

func (s *documentService) reject(span trace.Span, reason string, err error) error {
	observability.UploadRejected().WithLabelValues(reason).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "upload rejected: "+reason)
	return err
}

func isAllowedDocumentType(mime string) bool {
	switch mime {
	case "application/pdf", "image/png", "image/jpeg", "text/plain", "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return true
	default:
		return false
	}
}

// baseMime strips parameters such as charset from a detected MIME type.
func baseMime(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if idx := strings.Index(value, ";"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	return value
}

func sanitizeFileName(name, detectedExt string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("document-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = detectedExt
	}
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}
