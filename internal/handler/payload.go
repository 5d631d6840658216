package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/xeipuuv/gojsonschema"

	"github.com/octobees/autoschema/internal/dto"
	"github.com/octobees/autoschema/internal/entity"
)

const maxPayloadBytes = 1 << 20

//go:embed schemas/profile.schema.json
var profileSchemaJSON []byte

var (
	profileSchema     = mustCompile(profileSchemaLoader())
	saveRequestSchema = mustCompile(saveRequestSchemaLoader())
)

// payloadError reports a request body that failed decoding or the JSON Schema check.
type payloadError struct {
	message string
	details []string
}

func (e *payloadError) Error() string {
	return e.message
}

func profileSchemaLoader() gojsonschema.JSONLoader {
	return gojsonschema.NewBytesLoader(profileSchemaJSON)
}

// saveRequestSchemaLoader wraps the profile schema as the "data" member of a save request.
func saveRequestSchemaLoader() gojsonschema.JSONLoader {
	var profile map[string]any
	if err := json.Unmarshal(profileSchemaJSON, &profile); err != nil {
		panic(fmt.Sprintf("decode profile schema: %v", err))
	}
	definitions := profile["definitions"]
	delete(profile, "definitions")
	delete(profile, "$schema")

	return gojsonschema.NewGoLoader(map[string]any{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"type":        "object",
		"definitions": definitions,
		"properties": map[string]any{
			"name": map[string]any{"type": []string{"string", "null"}},
			"data": profile,
		},
		"required": []string{"data"},
	})
}

func mustCompile(loader gojsonschema.JSONLoader) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(loader)
	if err != nil {
		panic(fmt.Sprintf("compile payload schema: %v", err))
	}
	return s
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPayloadBytes+1))
	if err != nil {
		return nil, &payloadError{message: "failed to read request body"}
	}
	if len(body) > maxPayloadBytes {
		return nil, &payloadError{message: "request body too large"}
	}
	if len(body) == 0 {
		return nil, &payloadError{message: "request body is required"}
	}
	return body, nil
}

func checkAgainst(s *gojsonschema.Schema, body []byte) error {
	result, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &payloadError{message: "invalid JSON body"}
	}
	if result.Valid() {
		return nil
	}
	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	sort.Strings(details)
	return &payloadError{message: "payload does not match schema", details: details}
}

func bindProfile(c echo.Context) (entity.DealershipProfile, error) {
	var profile entity.DealershipProfile
	body, err := readBody(c)
	if err != nil {
		return profile, err
	}
	if err := checkAgainst(profileSchema, body); err != nil {
		return profile, err
	}
	if err := json.Unmarshal(body, &profile); err != nil {
		return profile, &payloadError{message: "invalid profile payload"}
	}
	return profile, nil
}

func bindSaveRequest(c echo.Context) (dto.SaveSchemaRequest, error) {
	var req dto.SaveSchemaRequest
	body, err := readBody(c)
	if err != nil {
		return req, err
	}
	if err := checkAgainst(saveRequestSchema, body); err != nil {
		return req, err
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return req, &payloadError{message: "invalid save payload"}
	}
	return req, nil
}

// payloadFailure writes a 400 for binding errors.
func payloadFailure(c echo.Context, err error) error {
	var pe *payloadError
	if errors.As(err, &pe) {
		if len(pe.details) > 0 {
			return ErrorWithData(c, http.StatusBadRequest, pe.message, pe.details)
		}
		return Error(c, http.StatusBadRequest, pe.message)
	}
	return Error(c, http.StatusBadRequest, "invalid request payload")
}
