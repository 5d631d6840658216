package service

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/octobees/autoschema/internal/entity"
	"github.com/octobees/autoschema/internal/metrics"
	"github.com/octobees/autoschema/internal/render"
	"github.com/octobees/autoschema/internal/schema"
)

// ValidationTarget selects which validation rules apply.
type ValidationTarget string

const (
	// TargetProfile validates the raw form data.
	TargetProfile ValidationTarget = "profile"
	// TargetDocument validates the generated schema.org document.
	TargetDocument ValidationTarget = "document"
)

// ErrUnknownTarget is returned for unsupported validation targets.
var ErrUnknownTarget = errors.New("unknown validation target")

// ParseValidationTarget maps a query value to a target; empty defaults to profile.
func ParseValidationTarget(value string) (ValidationTarget, error) {
	switch ValidationTarget(strings.ToLower(strings.TrimSpace(value))) {
	case "", TargetProfile:
		return TargetProfile, nil
	case TargetDocument:
		return TargetDocument, nil
	default:
		return "", ErrUnknownTarget
	}
}

// SchemaService generates, validates and renders structured data for dealership profiles.
type SchemaService struct {
	validator *schema.Validator
	logger    *zap.Logger
}

// NewSchemaService creates a new instance of SchemaService.
func NewSchemaService(validator *schema.Validator, logger *zap.Logger) *SchemaService {
	if validator == nil {
		validator = schema.NewValidator("")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaService{validator: validator, logger: logger}
}

// Generate builds the AutoDealer document for a profile.
func (s *SchemaService) Generate(p entity.DealershipProfile) schema.Document {
	return schema.Generate(p)
}

// Validate runs the rules for target against the profile.
func (s *SchemaService) Validate(p entity.DealershipProfile, target ValidationTarget) schema.Result {
	var result schema.Result
	if target == TargetDocument {
		result = s.validator.Document(schema.Generate(p))
	} else {
		target = TargetProfile
		result = s.validator.Profile(p)
	}
	metrics.SchemaValidations.WithLabelValues(string(target), strconv.FormatBool(result.IsValid)).Inc()
	return result
}

// Render produces the requested representation of the profile.
func (s *SchemaService) Render(p entity.DealershipProfile, format string) (render.Format, string, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return "", "", err
	}
	content, err := render.Render(p, f)
	if err != nil {
		s.logger.Error("render schema", zap.String("format", string(f)), zap.Error(err))
		return "", "", err
	}
	metrics.SchemaRenders.WithLabelValues(string(f)).Inc()
	return f, content, nil
}

// Export produces a downloadable artifact for the profile.
func (s *SchemaService) Export(p entity.DealershipProfile, format string) (render.Artifact, error) {
	f, err := render.ParseFormat(format)
	if err != nil {
		return render.Artifact{}, err
	}
	artifact, err := render.Export(p, f)
	if err != nil {
		s.logger.Error("export schema", zap.String("format", string(f)), zap.Error(err))
		return render.Artifact{}, err
	}
	metrics.SchemaRenders.WithLabelValues(string(f)).Inc()
	return artifact, nil
}
