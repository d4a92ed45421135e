// SPDX-License-Identifier: GPL-3.0-only

package handlers

import "time"

// swagger:model RegisterRequest
type RegisterRequest struct {
	// Desired username
	Username string `json:"username" validate:"required,min=3,max=150" example:"jdoe"`
	// User's email address
	Email string `json:"email" validate:"required,email" example:"user@example.com"`
	// User's password
	Password string `json:"password" validate:"required" example:"MySecretPassword@123"`
	// Confirmation of the password, must match password
	PasswordConfirm string `json:"password_confirm" validate:"required" example:"MySecretPassword@123"`
	// Optional first name
	FirstName string `json:"first_name" example:"John"`
	// Optional last name
	LastName string `json:"last_name" example:"Doe"`
}

// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	Username string `json:"username" validate:"required" example:"jdoe"`
	// User's password
	Password string `json:"password" validate:"required" example:"MySecretPassword@123"`
}

// swagger:model AuthResponse
type AuthResponse struct {
	// Authentication session token.
	// Should be used in the Authorization header as a Bearer token.
	SessionToken string `json:"session_token" example:"sample_session_token"`
	// Authenticated user details
	User UserDetails `json:"user"`
	// Message indicating successful operation
	Message string `json:"message" example:"Operation successful"`
}

// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password, verified before the change is applied
	CurrentPassword string `json:"current_password" validate:"required" example:"MyOldPassword@123"`
	// New password
	NewPassword string `json:"new_password" validate:"required" example:"MyNewPassword@123"`
}

// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Desired username
	Username string `json:"username" validate:"required,min=3,max=150" example:"jdoe"`
	// User's email address
	Email string `json:"email" validate:"required,email" example:"user@example.com"`
	// Initial password
	Password string `json:"password" validate:"required" example:"MySecretPassword@123"`
	// Optional first name
	FirstName string `json:"first_name" example:"John"`
	// Optional last name
	LastName string `json:"last_name" example:"Doe"`
}

// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// New email address
	Email *string `json:"email" validate:"omitempty,email" example:"user@example.com"`
	// New first name
	FirstName *string `json:"first_name" example:"John"`
	// New last name
	LastName *string `json:"last_name" example:"Doe"`
	// New role, admins only
	Role *string `json:"role" example:"editor"`
	// Staff flag, admins only
	IsStaff *bool `json:"is_staff" example:"false"`
	// Active flag, admins only
	IsActive *bool `json:"is_active" example:"true"`
}

// swagger:model UserDetails
type UserDetails struct {
	// Public identifier of the user
	UserID string `json:"user_id" example:"usr_1234567890"`
	// Username
	Username string `json:"username" example:"jdoe"`
	// Email address
	Email string `json:"email" example:"user@example.com"`
	// First name
	FirstName string `json:"first_name" example:"John"`
	// Last name
	LastName string `json:"last_name" example:"Doe"`
	// Role of the user: admin, editor or reader
	Role string `json:"role" example:"reader"`
	// Whether the user is a staff member
	IsStaff bool `json:"is_staff" example:"false"`
	// Whether the account is active
	IsActive bool `json:"is_active" example:"true"`
	// Timestamp of when the account was created
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model GetMeResponse
type GetMeResponse struct {
	UserDetails
	// Active subscription of the user, if any
	ActiveSubscription *SubscriptionDetails `json:"active_subscription"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"User retrieved successfully"`
}

// swagger:model UserListResponse
type UserListResponse struct {
	// List of users
	Data []UserDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Users retrieved successfully"`
}

// swagger:model CreateNewsRequest
type CreateNewsRequest struct {
	// Title of the article
	Title string `json:"title" validate:"required,max=200" example:"Senate approves tax reform"`
	// Optional subtitle
	Subtitle string `json:"subtitle" validate:"max=300" example:"Vote closed at 54-22"`
	// Body of the article
	Content string `json:"content" validate:"required" example:"The full text of the article."`
	// Vertical the article belongs to
	Category string `json:"category" validate:"required" example:"tributos"`
	// Whether the article is gated behind a pro subscription
	IsProContent bool `json:"is_pro_content" example:"true"`
}

// swagger:model UpdateNewsRequest
type UpdateNewsRequest struct {
	// New title
	Title *string `json:"title" validate:"omitempty,max=200" example:"Senate approves tax reform"`
	// New subtitle
	Subtitle *string `json:"subtitle" validate:"omitempty,max=300" example:"Vote closed at 54-22"`
	// New body
	Content *string `json:"content" example:"The full text of the article."`
	// New vertical
	Category *string `json:"category" example:"tributos"`
	// New pro-content flag
	IsProContent *bool `json:"is_pro_content" example:"true"`
}

// swagger:model NewsDetails
type NewsDetails struct {
	// ID of the article
	ID uint `json:"id" example:"42"`
	// Title of the article
	Title string `json:"title" example:"Senate approves tax reform"`
	// Subtitle of the article
	Subtitle string `json:"subtitle" example:"Vote closed at 54-22"`
	// Body of the article, omitted in list responses
	Content string `json:"content,omitempty" example:"The full text of the article."`
	// Vertical the article belongs to
	Category string `json:"category" example:"tributos"`
	// Whether the article is gated behind a pro subscription
	IsProContent bool `json:"is_pro_content" example:"true"`
	// Workflow status: draft or published
	Status string `json:"status" example:"published"`
	// Timestamp of publication, null for drafts
	PublicationDate *string `json:"publication_date" example:"2023-10-01T12:00:00Z"`
	// ID of the author
	AuthorID uint `json:"author_id" example:"7"`
	// Username of the author
	AuthorUsername string `json:"author_username" example:"jdoe"`
	// Timestamp of when the article was created
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
	// Timestamp of when the article was last updated
	UpdatedAt string `json:"updated_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model NewsResponse
type NewsResponse struct {
	NewsDetails
	// Message indicating the result of the operation
	Message string `json:"message" example:"Article retrieved successfully"`
}

// swagger:model NewsListResponse
type NewsListResponse struct {
	// List of articles, without bodies
	Data []NewsDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Articles retrieved successfully"`
}

// swagger:model CreateVerticalRequest
type CreateVerticalRequest struct {
	// Slug of the vertical
	Slug string `json:"slug" validate:"required" example:"tributos"`
	// Display name
	Name string `json:"name" validate:"required,max=100" example:"Tributos"`
	// Description of the vertical
	Description string `json:"description" example:"Tax policy coverage."`
}

// swagger:model UpdateVerticalRequest
type UpdateVerticalRequest struct {
	// New display name
	Name *string `json:"name" validate:"omitempty,max=100" example:"Tributos"`
	// New description
	Description *string `json:"description" example:"Tax policy coverage."`
}

// swagger:model VerticalDetails
type VerticalDetails struct {
	// ID of the vertical
	ID uint `json:"id" example:"2"`
	// Slug of the vertical
	Slug string `json:"slug" example:"tributos"`
	// Display name
	Name string `json:"name" example:"Tributos"`
	// Description of the vertical
	Description string `json:"description" example:"Tax policy coverage."`
}

// swagger:model VerticalListResponse
type VerticalListResponse struct {
	// List of verticals
	Data []VerticalDetails `json:"data"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Verticals retrieved successfully"`
}

// swagger:model CreatePlanRequest
type CreatePlanRequest struct {
	// Display name of the plan
	Name string `json:"name" validate:"required,max=100" example:"PRO Tributos"`
	// Unique slug of the plan
	Slug string `json:"slug" validate:"required,max=100" example:"pro-tributos"`
	// Description of the plan
	Description string `json:"description" example:"Full access to the tax vertical."`
	// Plan type: info or pro
	PlanType string `json:"plan_type" validate:"required" example:"pro"`
	// Monthly price in BRL
	Price float64 `json:"price" validate:"gte=0" example:"99.90"`
	// Slugs of the verticals bundled in the plan
	Verticals []string `json:"verticals" example:"tributos,poder"`
	// Whether the plan can be subscribed to
	IsActive *bool `json:"is_active" example:"true"`
	// Whether the plan starts with a trial period
	HasTrial bool `json:"has_trial" example:"false"`
	// Length of the trial period in days
	TrialDays uint `json:"trial_days" example:"0"`
	// Promotional discount percentage
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100" example:"10"`
	// End of the promotional window
	DiscountValidUntil *time.Time `json:"discount_valid_until" example:"2023-12-01T00:00:00Z"`
}

// swagger:model UpdatePlanRequest
type UpdatePlanRequest struct {
	// New display name
	Name *string `json:"name" validate:"omitempty,max=100" example:"PRO Tributos"`
	// New description
	Description *string `json:"description" example:"Full access to the tax vertical."`
	// New plan type
	PlanType *string `json:"plan_type" example:"pro"`
	// New monthly price in BRL
	Price *float64 `json:"price" validate:"omitempty,gte=0" example:"99.90"`
	// New set of bundled vertical slugs, replaces the current set
	Verticals *[]string `json:"verticals" example:"tributos,poder"`
	// New active flag
	IsActive *bool `json:"is_active" example:"true"`
	// New trial flag
	HasTrial *bool `json:"has_trial" example:"false"`
	// New trial length in days
	TrialDays *uint `json:"trial_days" example:"0"`
	// New discount percentage
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100" example:"10"`
	// New end of the promotional window
	DiscountValidUntil *time.Time `json:"discount_valid_until" example:"2023-12-01T00:00:00Z"`
}

// swagger:model PlanDetails
type PlanDetails struct {
	// ID of the plan
	ID uint `json:"id" example:"3"`
	// Display name of the plan
	Name string `json:"name" example:"PRO Tributos"`
	// Slug of the plan
	Slug string `json:"slug" example:"pro-tributos"`
	// Description of the plan
	Description string `json:"description" example:"Full access to the tax vertical."`
	// Plan type: info or pro
	PlanType string `json:"plan_type" example:"pro"`
	// Monthly list price in BRL
	Price float64 `json:"price" example:"99.90"`
	// Price with any promotional discount applied
	CurrentPrice float64 `json:"current_price" example:"89.91"`
	// Verticals bundled in the plan
	Verticals []VerticalDetails `json:"verticals"`
	// Whether the plan can be subscribed to
	IsActive bool `json:"is_active" example:"true"`
	// Whether the plan starts with a trial period
	HasTrial bool `json:"has_trial" example:"false"`
	// Length of the trial period in days
	TrialDays uint `json:"trial_days" example:"0"`
	// Promotional discount percentage
	DiscountPercent float64 `json:"discount_percent" example:"10"`
	// End of the promotional window
	DiscountValidUntil *string `json:"discount_valid_until" example:"2023-12-01T00:00:00Z"`
}

// swagger:model PlanListResponse
type PlanListResponse struct {
	// List of plans
	Data []PlanDetails `json:"data"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Plans retrieved successfully"`
}

// swagger:model CreateSubscriptionRequest
type CreateSubscriptionRequest struct {
	// ID of the subscribing user
	UserID uint `json:"user_id" validate:"required" example:"7"`
	// ID of the plan being subscribed to
	PlanID uint `json:"plan_id" validate:"required" example:"3"`
	// Initial status, defaults to active
	Status string `json:"status" example:"active"`
	// Start of the subscription, defaults to now
	StartDate *time.Time `json:"start_date" example:"2023-10-01T00:00:00Z"`
	// End of the subscription, open-ended when omitted
	EndDate *time.Time `json:"end_date" example:"2024-10-01T00:00:00Z"`
	// Whether the subscription renews automatically
	AutoRenew *bool `json:"auto_renew" example:"true"`
}

// swagger:model UpdateSubscriptionRequest
type UpdateSubscriptionRequest struct {
	// New status
	Status *string `json:"status" example:"cancelled"`
	// New end date
	EndDate *time.Time `json:"end_date" example:"2024-10-01T00:00:00Z"`
	// New auto-renew flag
	AutoRenew *bool `json:"auto_renew" example:"false"`
}

// swagger:model SubscriptionDetails
type SubscriptionDetails struct {
	// Public identifier of the subscription
	SubscriptionID string `json:"subscription_id" example:"sub_1234567890"`
	// ID of the subscribing user
	UserID uint `json:"user_id" example:"7"`
	// Username of the subscribing user
	Username string `json:"username" example:"jdoe"`
	// Subscribed plan
	Plan PlanDetails `json:"plan"`
	// Status of the subscription
	Status string `json:"status" example:"active"`
	// Start of the subscription
	StartDate string `json:"start_date" example:"2023-10-01T00:00:00Z"`
	// End of the subscription, null when open-ended
	EndDate *string `json:"end_date" example:"2024-10-01T00:00:00Z"`
	// Whether the subscription renews automatically
	AutoRenew bool `json:"auto_renew" example:"true"`
	// Whether the subscription currently grants access
	IsCurrent bool `json:"is_current" example:"true"`
}

// swagger:model SubscriptionListResponse
type SubscriptionListResponse struct {
	// List of subscriptions
	Data []SubscriptionDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Subscriptions retrieved successfully"`
}

// swagger:model EventLogDetails
type EventLogDetails struct {
	// Unique identifier of the event
	EventID string `json:"event_id" example:"0d8894b2-7b5c-4e8e-9db5-1f53ad44cf86"`
	// Category of the event
	Category string `json:"category" example:"AUTH"`
	// Outcome of the audited operation
	Status string `json:"status" example:"OK"`
	// Audited action
	Action string `json:"action" example:"user.login"`
	// Optional free-form description
	Description *string `json:"description" example:"Login from new device"`
	// ID of the acting user, null for anonymous events
	UserID *uint `json:"user_id" example:"7"`
	// Timestamp of the event
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model EventLogListResponse
type EventLogListResponse struct {
	// List of events
	Data []EventLogDetails `json:"data"`
	// Pagination details
	Pagination PaginationDetails `json:"pagination"`
	// Message indicating successful retrieval
	Message string `json:"message" example:"Events retrieved successfully"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model GenericResponse
type GenericResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message" example:"Operation completed successfully"`
}
