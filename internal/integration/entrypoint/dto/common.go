// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

func init() {
	// Amounts travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error      string                `json:"error"`
	Code       string                `json:"code,omitempty"`
	Details    string                `json:"details,omitempty"`
	Parameters []ParameterResponse   `json:"parameters,omitempty"`
	Errors     []ErrorDetailResponse `json:"errors,omitempty"`
}

// ParameterResponse is a key/value pair attached to an error.
type ParameterResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ErrorDetailResponse describes one of several violated rules.
type ErrorDetailResponse struct {
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Parameters []ParameterResponse `json:"parameters,omitempty"`
}

// NewErrorResponse builds an ErrorResponse from a coded domain error's parts.
func NewErrorResponse(message, code string, params []domainerror.Parameter, details []domainerror.ErrorDetail) ErrorResponse {
	response := ErrorResponse{
		Error:      message,
		Code:       code,
		Parameters: toParameterResponses(params),
	}
	for _, d := range details {
		response.Errors = append(response.Errors, ErrorDetailResponse{
			Code:       d.Code,
			Message:    d.Message,
			Parameters: toParameterResponses(d.Parameters),
		})
	}
	return response
}

func toParameterResponses(params []domainerror.Parameter) []ParameterResponse {
	if len(params) == 0 {
		return nil
	}
	out := make([]ParameterResponse, len(params))
	for i, p := range params {
		out[i] = ParameterResponse{Key: p.Key, Value: p.Value}
	}
	return out
}

// TagsDTO wraps a record's free-form tags.
type TagsDTO struct {
	TagList []string `json:"tagList"`
}

func toTagsDTO(tags []string) *TagsDTO {
	if len(tags) == 0 {
		return nil
	}
	return &TagsDTO{TagList: tags}
}

func (t *TagsDTO) list() []string {
	if t == nil {
		return nil
	}
	return t.TagList
}

// MetadataDTO carries record audit information.
type MetadataDTO struct {
	CreatedDate     time.Time  `json:"createdDate"`
	CreatedByUserID *uuid.UUID `json:"createdByUserId,omitempty"`
	UpdatedDate     time.Time  `json:"updatedDate"`
	UpdatedByUserID *uuid.UUID `json:"updatedByUserId,omitempty"`
}

func toMetadataDTO(m entity.Metadata) *MetadataDTO {
	if m.CreatedDate.IsZero() && m.UpdatedDate.IsZero() {
		return nil
	}
	return &MetadataDTO{
		CreatedDate:     m.CreatedDate,
		CreatedByUserID: m.CreatedByUserID,
		UpdatedDate:     m.UpdatedDate,
		UpdatedByUserID: m.UpdatedByUserID,
	}
}

func (m *MetadataDTO) toEntity() entity.Metadata {
	if m == nil {
		return entity.Metadata{}
	}
	return entity.Metadata{
		CreatedDate:     m.CreatedDate,
		CreatedByUserID: m.CreatedByUserID,
		UpdatedDate:     m.UpdatedDate,
		UpdatedByUserID: m.UpdatedByUserID,
	}
}
