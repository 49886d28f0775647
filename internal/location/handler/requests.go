package handler

import (
	"strconv"
	"strings"

	backendmodels "veriadmin/internal/backend/models"
	"veriadmin/internal/formbind"
	"veriadmin/internal/gallery"
	"veriadmin/internal/media"
	dErrors "veriadmin/pkg/domain-errors"
)

const (
	maxFilesPerSubmission = 20
	maxPreviewItems       = 100
	maxValueLength        = 200
)

// OpenSelectionRequest is the body of POST /selections.
type OpenSelectionRequest struct {
	Profile      string `json:"profile"`
	PricingLevel string `json:"pricingLevel,omitempty"`

	parsedProfile formbind.Profile
}

func (r *OpenSelectionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	p, err := formbind.ProfileByName(r.Profile, r.PricingLevel)
	if err != nil {
		return err
	}
	r.parsedProfile = p
	return nil
}

func (r *OpenSelectionRequest) ParsedProfile() formbind.Profile {
	return r.parsedProfile
}

// SetLevelRequest is the body of PUT /selections/{id}/{level}. Value is an
// option code or name for dataset levels and free text otherwise. Fee is read
// only for the city region.
type SetLevelRequest struct {
	Value string   `json:"value"`
	Fee   *float64 `json:"fee,omitempty"`
}

func (r *SetLevelRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Value) > maxValueLength {
		return dErrors.NewValidation("value is too long",
			map[string]string{"value": "Value must be at most 200 characters"})
	}
	r.Value = strings.TrimSpace(r.Value)
	return nil
}

// FileUpload is one gallery file sent inline as a data URL.
type FileUpload struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

// SubmitLocationRequest is the body of POST /selections/{id}/submit/location.
// The detail fields sit at the top level next to the organization.
type SubmitLocationRequest struct {
	OrganizationID string                `json:"organizationId"`
	LocationID     string                `json:"locationId,omitempty"`
	Gallery        backendmodels.Gallery `json:"gallery"`
	Files          []FileUpload          `json:"files,omitempty"`
	formbind.Details

	parsedFiles []media.File
}

func (r *SubmitLocationRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Files) > maxFilesPerSubmission {
		return dErrors.New(dErrors.CodeValidation, "at most 20 files can be uploaded at once")
	}

	r.OrganizationID = strings.TrimSpace(r.OrganizationID)
	if r.OrganizationID == "" {
		return dErrors.NewValidation("organization is required",
			map[string]string{"organizationId": "Organization is required"})
	}
	r.LocationID = strings.TrimSpace(r.LocationID)

	r.parsedFiles = make([]media.File, 0, len(r.Files))
	for i, f := range r.Files {
		ct, data, err := media.ParseDataURL(f.DataURL)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(f.Name)
		if name == "" {
			name = "file-" + strconv.Itoa(i+1)
		}
		r.parsedFiles = append(r.parsedFiles, media.File{Name: name, ContentType: ct, Data: data})
	}
	return nil
}

func (r *SubmitLocationRequest) ParsedFiles() []media.File {
	return r.parsedFiles
}

// SubmitCityRegionRequest is the body of POST /selections/{id}/submit/city-region.
type SubmitCityRegionRequest struct {
	ID string `json:"id,omitempty"`
}

func (r *SubmitCityRegionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.ID = strings.TrimSpace(r.ID)
	return nil
}

// SubmitPricingRequest is the body of POST /selections/{id}/submit/pricing.
type SubmitPricingRequest struct {
	ID          string   `json:"id,omitempty"`
	DefaultFee  *float64 `json:"defaultFee"`
	Description string   `json:"description,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

func (r *SubmitPricingRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.ID = strings.TrimSpace(r.ID)
	r.Description = strings.TrimSpace(r.Description)
	return nil
}

func (r *SubmitPricingRequest) Details() formbind.Details {
	return formbind.Details{
		DefaultFee:  r.DefaultFee,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

// GalleryPreviewRequest is the body of POST /gallery/preview. Promote and
// Demote are applied after the items are loaded; both together form a swap.
type GalleryPreviewRequest struct {
	Items   []gallery.Item `json:"items"`
	Promote string         `json:"promote,omitempty"`
	Demote  string         `json:"demote,omitempty"`
}

func (r *GalleryPreviewRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Items) > maxPreviewItems {
		return dErrors.New(dErrors.CodeValidation, "at most 100 gallery items can be previewed")
	}
	public := 0
	for _, it := range r.Items {
		if it.Public {
			public++
		}
	}
	if public > gallery.MaxPublic {
		return gallery.ErrCapacityExceeded
	}
	r.Promote = strings.TrimSpace(r.Promote)
	r.Demote = strings.TrimSpace(r.Demote)
	return nil
}
