package entity

import (
	"time"
)

const (
	RoleCreator = "creator"
	RoleBrand   = "brand"
	RoleAdmin   = "admin"
)

// CollabPackage is a fixed-price offering a creator advertises on their
// profile. Brands can pre-fill an offer from one of these.
type CollabPackage struct {
	Name        string  `json:"name" firestore:"name"`
	Description string  `json:"description,omitempty" firestore:"description,omitempty"`
	Price       float64 `json:"price" firestore:"price"`
}

type SocialLinks struct {
	Instagram string `json:"instagram,omitempty" firestore:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty" firestore:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty" firestore:"youtube,omitempty"`
	Website   string `json:"website,omitempty" firestore:"website,omitempty"`
}

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Role        string `json:"role" firestore:"role"` // "creator", "brand", "admin"
	Status      string `json:"status" firestore:"status"`

	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	HomeCountry string `json:"home_country,omitempty" firestore:"homeCountry,omitempty"`

	// Creator fields
	Niche       string          `json:"niche,omitempty" firestore:"niche,omitempty"`
	Socials     *SocialLinks    `json:"socials,omitempty" firestore:"socials,omitempty"`
	Packages    []CollabPackage `json:"packages,omitempty" firestore:"packages,omitempty"`
	RatePerPost float64         `json:"rate_per_post,omitempty" firestore:"ratePerPost,omitempty"`

	// Brand fields
	CompanyName string `json:"company_name,omitempty" firestore:"companyName,omitempty"`
	LogoURL     string `json:"logo_url,omitempty" firestore:"logoURL,omitempty"`
	Website     string `json:"website,omitempty" firestore:"website,omitempty"`
	Industry    string `json:"industry,omitempty" firestore:"industry,omitempty"`

	LastSeen     time.Time `json:"last_seen,omitempty" firestore:"lastSeen,omitempty"`
	OnlineStatus string    `json:"online_status,omitempty" firestore:"onlineStatus,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsCreator() bool {
	return u.Role == RoleCreator
}

func (u *User) IsBrand() bool {
	return u.Role == RoleBrand
}
