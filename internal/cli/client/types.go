package client

import (
	"encoding/json"
	"time"

	"github.com/printmarket-dev/printmarket/internal/cli/session"
)

// Role is the account type of a user
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RolePrinter  Role = "PRINTER"
)

// ProductType is the kind of print product a job asks for
type ProductType string

const (
	ProductLeaflets      ProductType = "LEAFLETS"
	ProductPosters       ProductType = "POSTERS"
	ProductBrochures     ProductType = "BROCHURES"
	ProductFlyers        ProductType = "FLYERS"
	ProductBusinessCards ProductType = "BUSINESS_CARDS"
	ProductOther         ProductType = "OTHER"
)

// ProductTypes lists every product type accepted by the backend
var ProductTypes = []ProductType{
	ProductLeaflets,
	ProductPosters,
	ProductBrochures,
	ProductFlyers,
	ProductBusinessCards,
	ProductOther,
}

// JobState is the lifecycle state of a printing job
type JobState string

const (
	JobDraft      JobState = "DRAFT"
	JobOpen       JobState = "OPEN"
	JobClosed     JobState = "CLOSED"
	JobInProgress JobState = "IN_PROGRESS"
	JobCompleted  JobState = "COMPLETED"
)

// JobStates lists every job state in lifecycle order
var JobStates = []JobState{JobDraft, JobOpen, JobClosed, JobInProgress, JobCompleted}

// HealthStatus is the answer of the health endpoint
type HealthStatus struct {
	Status    string `json:"status" yaml:"status"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
}

// LoginRequest represents the login request body.
// Role is optional; the backend resolves an existing user's role.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role,omitempty" validate:"omitempty,oneof=CUSTOMER PRINTER"`
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Role        Role   `json:"role" validate:"required,oneof=CUSTOMER PRINTER"`
	CompanyName string `json:"company_name,omitempty" validate:"required_if=Role CUSTOMER"`
}

// AuthResponse is returned by both login and signup
type AuthResponse struct {
	AccessToken string       `json:"access_token" yaml:"access_token"`
	TokenType   string       `json:"token_type" yaml:"token_type"`
	User        session.User `json:"user" yaml:"user"`
}

// LogoutResponse is returned by the logout endpoint
type LogoutResponse struct {
	Message string `json:"message"`
}

// Job represents a printing job
type Job struct {
	ID                   int64   `json:"id" yaml:"id"`
	UUID                 string  `json:"uuid" yaml:"uuid"`
	CustomerProfileID    int64   `json:"customer_profile_id" yaml:"customer_profile_id"`
	ProductType          string  `json:"product_type" yaml:"product_type"`
	Quantity             int     `json:"quantity" yaml:"quantity"`
	DueDate              string  `json:"due_date" yaml:"due_date"`
	Description          *string `json:"description" yaml:"description"`
	SpecialInstructions  *string `json:"special_instructions" yaml:"special_instructions"`
	FileURL              *string `json:"file_url" yaml:"file_url"`
	BiddingDurationHours int     `json:"bidding_duration_hours" yaml:"bidding_duration_hours"`
	BiddingEndsAt        *string `json:"bidding_ends_at" yaml:"bidding_ends_at"`
	DeliveryLocation     *string `json:"delivery_location" yaml:"delivery_location"`
	PickupPreferred      bool    `json:"pickup_preferred" yaml:"pickup_preferred"`
	State                string  `json:"state" yaml:"state"`
	CreatedAt            string  `json:"created_at" yaml:"created_at"`
	UpdatedAt            *string `json:"updated_at" yaml:"updated_at"`
	PublishedAt          *string `json:"published_at" yaml:"published_at"`
	ClosedAt             *string `json:"closed_at" yaml:"closed_at"`
	CompletedAt          *string `json:"completed_at" yaml:"completed_at"`
}

// JobCreate is the body of the create job request
type JobCreate struct {
	ProductType          ProductType `json:"product_type" validate:"required,oneof=LEAFLETS POSTERS BROCHURES FLYERS BUSINESS_CARDS OTHER"`
	Quantity             int         `json:"quantity" validate:"gt=0"`
	DueDate              time.Time   `json:"due_date" validate:"required"`
	Description          string      `json:"description,omitempty"`
	SpecialInstructions  string      `json:"special_instructions,omitempty"`
	FileURL              string      `json:"file_url,omitempty"`
	BiddingDurationHours int         `json:"bidding_duration_hours,omitempty" validate:"omitempty,gt=0"`
	DeliveryLocation     string      `json:"delivery_location,omitempty"`
	PickupPreferred      bool        `json:"pickup_preferred"`
}

// Validate checks the job the same way CreateJob does, without sending it
func (j JobCreate) Validate() error {
	return validateRequest(j)
}

// JobUpdate is a partial update; nil fields are not sent
type JobUpdate struct {
	ProductType          *ProductType `json:"product_type,omitempty" validate:"omitempty,oneof=LEAFLETS POSTERS BROCHURES FLYERS BUSINESS_CARDS OTHER"`
	Quantity             *int         `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	DueDate              *time.Time   `json:"due_date,omitempty"`
	Description          *string      `json:"description,omitempty"`
	SpecialInstructions  *string      `json:"special_instructions,omitempty"`
	FileURL              *string      `json:"file_url,omitempty"`
	BiddingDurationHours *int         `json:"bidding_duration_hours,omitempty" validate:"omitempty,gt=0"`
	DeliveryLocation     *string      `json:"delivery_location,omitempty"`
	PickupPreferred      *bool        `json:"pickup_preferred,omitempty"`
}

// IsEmpty reports whether the update carries no field at all
func (u JobUpdate) IsEmpty() bool {
	return u == JobUpdate{}
}

// UploadResult describes a stored job file
type UploadResult struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	FileURL  string `json:"file_url" yaml:"file_url"`
	Filename string `json:"filename" yaml:"filename"`
	Size     int64  `json:"size" yaml:"size"`
}

// CustomerProfileInput creates or updates the customer profile
type CustomerProfileInput struct {
	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// CustomerProfile is the customer side profile
type CustomerProfile struct {
	UUID        string  `json:"uuid" yaml:"uuid"`
	UserID      int64   `json:"user_id" yaml:"user_id"`
	CompanyName *string `json:"company_name" yaml:"company_name"`
	ContactName *string `json:"contact_name" yaml:"contact_name"`
	Phone       *string `json:"phone" yaml:"phone"`
	Address     *string `json:"address" yaml:"address"`
	CreatedAt   string  `json:"created_at" yaml:"created_at"`
	UpdatedAt   *string `json:"updated_at" yaml:"updated_at"`
}

// PrinterProfileInput creates or updates the printer profile.
// SupportedProductTypes is sent as a JSON encoded array, as the backend expects.
type PrinterProfileInput struct {
	BusinessName          string        `json:"business_name" validate:"required"`
	ContactName           string        `json:"contact_name,omitempty"`
	Phone                 string        `json:"phone,omitempty"`
	Email                 string        `json:"email,omitempty" validate:"omitempty,email"`
	Address               string        `json:"address,omitempty"`
	Capabilities          string        `json:"capabilities,omitempty"`
	SupportedProductTypes []ProductType `json:"-" label:"supported_product_types" validate:"required,min=1,dive,oneof=LEAFLETS POSTERS BROCHURES FLYERS BUSINESS_CARDS OTHER"`
	MinQuantity           *int          `json:"min_quantity,omitempty" validate:"omitempty,gte=1"`
	MaxQuantity           *int          `json:"max_quantity,omitempty" validate:"omitempty,gte=1"`
	ServiceAreas          []string      `json:"-" label:"service_areas"`
	PaymentTerms          string        `json:"payment_terms" validate:"required"`
	EmailNotifications    bool          `json:"email_notifications"`
	WhatsappNotifications bool          `json:"whatsapp_notifications"`
	WhatsappNumber        string        `json:"whatsapp_number,omitempty"`
}

// PrinterProfile is the printer side profile
type PrinterProfile struct {
	UUID                  string  `json:"uuid" yaml:"uuid"`
	UserID                int64   `json:"user_id" yaml:"user_id"`
	BusinessName          string  `json:"business_name" yaml:"business_name"`
	ContactName           *string `json:"contact_name" yaml:"contact_name"`
	Phone                 *string `json:"phone" yaml:"phone"`
	Email                 *string `json:"email" yaml:"email"`
	Address               *string `json:"address" yaml:"address"`
	Capabilities          *string `json:"capabilities" yaml:"capabilities"`
	SupportedProductTypes string  `json:"supported_product_types" yaml:"supported_product_types"`
	MinQuantity           *int    `json:"min_quantity" yaml:"min_quantity"`
	MaxQuantity           *int    `json:"max_quantity" yaml:"max_quantity"`
	ServiceAreas          *string `json:"service_areas" yaml:"service_areas"`
	PaymentTerms          string  `json:"payment_terms" yaml:"payment_terms"`
	EmailNotifications    bool    `json:"email_notifications" yaml:"email_notifications"`
	WhatsappNotifications bool    `json:"whatsapp_notifications" yaml:"whatsapp_notifications"`
	WhatsappNumber        *string `json:"whatsapp_number" yaml:"whatsapp_number"`
	CreatedAt             string  `json:"created_at" yaml:"created_at"`
	UpdatedAt             *string `json:"updated_at" yaml:"updated_at"`
}

// Profile holds whichever profile matches the user's role
type Profile struct {
	CustomerProfile *CustomerProfile `json:"customer_profile" yaml:"customer_profile"`
	PrinterProfile  *PrinterProfile  `json:"printer_profile" yaml:"printer_profile"`
}

// MarshalJSON encodes the list fields as JSON strings, the form the backend stores
func (p PrinterProfileInput) MarshalJSON() ([]byte, error) {
	type alias PrinterProfileInput

	productTypes, err := json.Marshal(p.SupportedProductTypes)
	if err != nil {
		return nil, err
	}

	var serviceAreas *string
	if len(p.ServiceAreas) > 0 {
		data, err := json.Marshal(p.ServiceAreas)
		if err != nil {
			return nil, err
		}
		s := string(data)
		serviceAreas = &s
	}

	return json.Marshal(struct {
		alias
		SupportedProductTypes string  `json:"supported_product_types"`
		ServiceAreas          *string `json:"service_areas,omitempty"`
	}{
		alias:                 alias(p),
		SupportedProductTypes: string(productTypes),
		ServiceAreas:          serviceAreas,
	})
}
