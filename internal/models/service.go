package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service is a listing offered by a provider.
type Service struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Category      string             `json:"category" bson:"category"`
	Price         float64            `json:"price" bson:"price"`
	Description   string             `json:"description" bson:"description"`
	Image         string             `json:"image" bson:"image"`
	ProviderName  string             `json:"provider_name" bson:"provider_name"`
	ProviderEmail string             `json:"provider_email" bson:"provider_email"`
	Rating        float64            `json:"rating" bson:"rating"`
	TotalReviews  int64              `json:"totalReviews" bson:"totalReviews"`
	Reviews       []Review           `json:"reviews" bson:"reviews"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	Extra         map[string]any     `json:"-" bson:",inline"`
}

func (s Service) MarshalJSON() ([]byte, error) {
	type plain Service
	return marshalWithExtra(plain(s), s.Extra)
}

func (s *Service) UnmarshalJSON(data []byte) error {
	type plain Service
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*s = Service(p)
	s.Extra = extra
	return nil
}

type Review struct {
	UserEmail string    `json:"userEmail" bson:"userEmail"`
	UserName  string    `json:"userName,omitempty" bson:"userName,omitempty"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewServiceRequest is the body of POST /services. All seven fields are required.
type NewServiceRequest struct {
	Name          string `json:"name" validate:"required"`
	Category      string `json:"category" validate:"required"`
	Price         Amount `json:"price" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Image         string `json:"image" validate:"required"`
	ProviderName  string `json:"provider_name" validate:"required"`
	ProviderEmail string `json:"provider_email" validate:"required"`
}

// Service builds the document to insert with a fresh rating.
func (r NewServiceRequest) Service(now time.Time) *Service {
	return &Service{
		Name:          r.Name,
		Category:      r.Category,
		Price:         r.Price.Float64(),
		Description:   r.Description,
		Image:         r.Image,
		ProviderName:  r.ProviderName,
		ProviderEmail: r.ProviderEmail,
		Rating:        0,
		TotalReviews:  0,
		Reviews:       []Review{},
		CreatedAt:     now,
	}
}

// ServicePatch is the body of PATCH /services/{id}.
type ServicePatch struct {
	Name          *string   `json:"name,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Price         *Amount   `json:"price,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Image         *string   `json:"image,omitempty"`
	ProviderName  *string   `json:"provider_name,omitempty"`
	ProviderEmail *string   `json:"provider_email,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	TotalReviews  *int64    `json:"totalReviews,omitempty"`
	Reviews       *[]Review `json:"reviews,omitempty"`

	Extra map[string]any `json:"-"`
}

func (p *ServicePatch) UnmarshalJSON(data []byte) error {
	type plain ServicePatch
	var pp plain
	if err := json.Unmarshal(data, &pp); err != nil {
		return err
	}
	extra, err := splitExtra(data, pp)
	if err != nil {
		return err
	}
	*p = ServicePatch(pp)
	p.Extra = extra
	return nil
}

func (p ServicePatch) Fields() map[string]any {
	set := map[string]any{}
	putString(set, "name", p.Name)
	putString(set, "category", p.Category)
	if p.Price != nil {
		set["price"] = p.Price.Float64()
	}
	putString(set, "description", p.Description)
	putString(set, "image", p.Image)
	putString(set, "provider_name", p.ProviderName)
	putString(set, "provider_email", p.ProviderEmail)
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.TotalReviews != nil {
		set["totalReviews"] = *p.TotalReviews
	}
	if p.Reviews != nil {
		set["reviews"] = *p.Reviews
	}
	mergeExtra(set, p.Extra)
	return set
}
